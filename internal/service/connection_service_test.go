package service

import (
	"context"
	"testing"

	"twosides/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionService_SendRequest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("self request rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewConnectionService(noopConnRepo(), noopUserRepo())
		_, err := svc.SendRequest(ctx, SendRequestInput{FromUID: "u1", ToUID: "u1"})
		assertCode(t, err, models.CodeSelfRequest)
	})

	t.Run("unknown target rejected", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUIDFn = func(_ context.Context, uid string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", uid)
		}
		svc := NewConnectionService(noopConnRepo(), userRepo)
		_, err := svc.SendRequest(ctx, SendRequestInput{FromUID: "u1", ToUID: "ghost"})
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("already connected rejected in both directions", func(t *testing.T) {
		t.Parallel()
		connRepo := noopConnRepo()
		connRepo.connectionExistsFn = func(_ context.Context, _, _ string) (bool, error) { return true, nil }
		svc := NewConnectionService(connRepo, noopUserRepo())

		_, err := svc.SendRequest(ctx, SendRequestInput{FromUID: "u1", ToUID: "u2"})
		assertCode(t, err, models.CodeAlreadyConnected)

		_, err = svc.SendRequest(ctx, SendRequestInput{FromUID: "u2", ToUID: "u1"})
		assertCode(t, err, models.CodeAlreadyConnected)
	})

	t.Run("duplicate request propagates", func(t *testing.T) {
		t.Parallel()
		connRepo := noopConnRepo()
		connRepo.createRequestFn = func(_ context.Context, _ *models.ConnectionRequest) error {
			return models.NewDuplicateRequestError()
		}
		svc := NewConnectionService(connRepo, noopUserRepo())
		_, err := svc.SendRequest(ctx, SendRequestInput{FromUID: "u1", ToUID: "u2"})
		assertCode(t, err, models.CodeDuplicateRequest)
	})

	t.Run("request created", func(t *testing.T) {
		t.Parallel()
		connRepo := noopConnRepo()
		connRepo.createRequestFn = func(_ context.Context, req *models.ConnectionRequest) error {
			req.ID = 7
			return nil
		}
		svc := NewConnectionService(connRepo, noopUserRepo())
		req, err := svc.SendRequest(ctx, SendRequestInput{FromUID: "u1", ToUID: "u2", Comment: "hi"})
		require.NoError(t, err)
		assert.Equal(t, uint(7), req.ID)
		assert.Equal(t, "u1", req.FromUID)
		assert.Equal(t, "u2", req.ToUID)
	})
}

func TestConnectionService_AcceptRequest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("only addressee may accept", func(t *testing.T) {
		t.Parallel()
		connRepo := noopConnRepo()
		connRepo.getRequestByIDFn = func(_ context.Context, id uint) (*models.ConnectionRequest, error) {
			return &models.ConnectionRequest{ID: id, FromUID: "u1", ToUID: "u2"}, nil
		}
		svc := NewConnectionService(connRepo, noopUserRepo())

		err := svc.AcceptRequest(ctx, ResolveRequestInput{RequestID: 1, ViewerUID: "u1"})
		assertUnauthorizedError(t, err)

		err = svc.AcceptRequest(ctx, ResolveRequestInput{RequestID: 1, ViewerUID: "u3"})
		assertUnauthorizedError(t, err)
	})

	t.Run("addressee accepts and edge forms", func(t *testing.T) {
		t.Parallel()
		accepted := false
		connRepo := noopConnRepo()
		connRepo.getRequestByIDFn = func(_ context.Context, id uint) (*models.ConnectionRequest, error) {
			return &models.ConnectionRequest{ID: id, FromUID: "u1", ToUID: "u2"}, nil
		}
		connRepo.acceptRequestFn = func(_ context.Context, req *models.ConnectionRequest) error {
			accepted = true
			assert.Equal(t, "u1", req.FromUID)
			return nil
		}
		svc := NewConnectionService(connRepo, noopUserRepo())

		err := svc.AcceptRequest(ctx, ResolveRequestInput{RequestID: 1, ViewerUID: "u2"})
		require.NoError(t, err)
		assert.True(t, accepted)
	})

	t.Run("missing request propagates", func(t *testing.T) {
		t.Parallel()
		connRepo := noopConnRepo()
		connRepo.getRequestByIDFn = func(_ context.Context, id uint) (*models.ConnectionRequest, error) {
			return nil, models.NewNotFoundError("ConnectionRequest", id)
		}
		svc := NewConnectionService(connRepo, noopUserRepo())
		err := svc.AcceptRequest(ctx, ResolveRequestInput{RequestID: 9, ViewerUID: "u2"})
		assertCode(t, err, models.CodeNotFound)
	})
}

func TestConnectionService_RejectRequest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("only addressee may reject", func(t *testing.T) {
		t.Parallel()
		connRepo := noopConnRepo()
		connRepo.getRequestByIDFn = func(_ context.Context, id uint) (*models.ConnectionRequest, error) {
			return &models.ConnectionRequest{ID: id, FromUID: "u1", ToUID: "u2"}, nil
		}
		svc := NewConnectionService(connRepo, noopUserRepo())
		err := svc.RejectRequest(ctx, ResolveRequestInput{RequestID: 1, ViewerUID: "u1"})
		assertUnauthorizedError(t, err)
	})

	t.Run("reject deletes without forming edge", func(t *testing.T) {
		t.Parallel()
		deleted := false
		connRepo := noopConnRepo()
		connRepo.getRequestByIDFn = func(_ context.Context, id uint) (*models.ConnectionRequest, error) {
			return &models.ConnectionRequest{ID: id, FromUID: "u1", ToUID: "u2"}, nil
		}
		connRepo.deleteRequestFn = func(_ context.Context, id uint) error {
			deleted = true
			assert.Equal(t, uint(1), id)
			return nil
		}
		svc := NewConnectionService(connRepo, noopUserRepo())
		err := svc.RejectRequest(ctx, ResolveRequestInput{RequestID: 1, ViewerUID: "u2"})
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestConnectionService_ListConnections(t *testing.T) {
	t.Parallel()

	connRepo := noopConnRepo()
	connRepo.listConnectedUsersFn = func(_ context.Context, uid string) ([]models.User, error) {
		return []models.User{{UID: "u2"}, {UID: "u3"}}, nil
	}
	svc := NewConnectionService(connRepo, noopUserRepo())

	users, err := svc.ListConnections(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].UID)
}
