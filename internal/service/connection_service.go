package service

import (
	"context"

	"twosides/internal/cache"
	"twosides/internal/models"
	"twosides/internal/observability"
	"twosides/internal/repository"
)

type ConnectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
}

type SendRequestInput struct {
	FromUID string
	ToUID   string
	Comment string
}

type ResolveRequestInput struct {
	RequestID uint
	ViewerUID string
}

func NewConnectionService(connRepo repository.ConnectionRepository, userRepo repository.UserRepository) *ConnectionService {
	return &ConnectionService{connRepo: connRepo, userRepo: userRepo}
}

// SendRequest creates a pending directed request. A reverse-direction
// request may already be pending; only an exact duplicate or an existing
// connection blocks a new one.
func (s *ConnectionService) SendRequest(ctx context.Context, in SendRequestInput) (*models.ConnectionRequest, error) {
	if in.FromUID == in.ToUID {
		return nil, models.NewSelfRequestError()
	}
	if _, err := s.userRepo.GetByUID(ctx, in.ToUID); err != nil {
		return nil, err
	}

	connected, err := s.connRepo.ConnectionExists(ctx, in.FromUID, in.ToUID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, models.NewAlreadyConnectedError()
	}

	req := &models.ConnectionRequest{
		FromUID: in.FromUID,
		ToUID:   in.ToUID,
		Comment: in.Comment,
	}
	if err := s.connRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptRequest resolves a pending request into a connection. Only the
// addressee may accept.
func (s *ConnectionService) AcceptRequest(ctx context.Context, in ResolveRequestInput) error {
	req, err := s.connRepo.GetRequestByID(ctx, in.RequestID)
	if err != nil {
		return err
	}
	if req.ToUID != in.ViewerUID {
		return models.NewUnauthorizedError("Only the addressee can accept a request")
	}

	if err := s.connRepo.AcceptRequest(ctx, req); err != nil {
		return err
	}

	observability.ConnectionsFormed.Inc()
	cache.InvalidateConnections(ctx, req.FromUID, req.ToUID)
	return nil
}

// RejectRequest discards a pending request without forming a connection.
// Only the addressee may reject.
func (s *ConnectionService) RejectRequest(ctx context.Context, in ResolveRequestInput) error {
	req, err := s.connRepo.GetRequestByID(ctx, in.RequestID)
	if err != nil {
		return err
	}
	if req.ToUID != in.ViewerUID {
		return models.NewUnauthorizedError("Only the addressee can reject a request")
	}
	return s.connRepo.DeleteRequest(ctx, req.ID)
}

func (s *ConnectionService) ListIncoming(ctx context.Context, uid string) ([]models.ConnectionRequest, error) {
	return s.connRepo.ListRequestsTo(ctx, uid)
}

func (s *ConnectionService) ListOutgoing(ctx context.Context, uid string) ([]models.ConnectionRequest, error) {
	return s.connRepo.ListRequestsFrom(ctx, uid)
}

// ListConnections returns the users connected to uid, cached per viewer.
func (s *ConnectionService) ListConnections(ctx context.Context, uid string) ([]models.User, error) {
	var users []models.User
	err := cache.Aside(ctx, cache.ConnectionsKey(uid), &users, cache.ConnectionsTTL, func() error {
		var fetchErr error
		users, fetchErr = s.connRepo.ListConnectedUsers(ctx, uid)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AreConnected reports whether an edge exists between the two users, in
// either storage order.
func (s *ConnectionService) AreConnected(ctx context.Context, uidA, uidB string) (bool, error) {
	return s.connRepo.ConnectionExists(ctx, uidA, uidB)
}

// Disconnect removes an existing edge. Either endpoint may sever it.
func (s *ConnectionService) Disconnect(ctx context.Context, viewerUID, otherUID string) error {
	if err := s.connRepo.DeleteConnection(ctx, viewerUID, otherUID); err != nil {
		return err
	}
	cache.InvalidateConnections(ctx, viewerUID, otherUID)
	return nil
}
