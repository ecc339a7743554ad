package repository

import (
	"context"
	"errors"

	"twosides/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConnectionRepository defines the interface for connection graph operations
type ConnectionRepository interface {
	CreateRequest(ctx context.Context, req *models.ConnectionRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.ConnectionRequest, error)
	DeleteRequest(ctx context.Context, id uint) error
	PendingRequestExists(ctx context.Context, fromUID, toUID string) (bool, error)
	ListRequestsTo(ctx context.Context, uid string) ([]models.ConnectionRequest, error)
	ListRequestsFrom(ctx context.Context, uid string) ([]models.ConnectionRequest, error)
	AcceptRequest(ctx context.Context, req *models.ConnectionRequest) error
	ConnectionExists(ctx context.Context, uidA, uidB string) (bool, error)
	ListConnections(ctx context.Context, uid string) ([]models.Connection, error)
	ListConnectedUsers(ctx context.Context, uid string) ([]models.User, error)
	DeleteConnection(ctx context.Context, uidA, uidB string) error
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) CreateRequest(ctx context.Context, req *models.ConnectionRequest) error {
	err := r.db.WithContext(ctx).Create(req).Error
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewDuplicateRequestError()
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetRequestByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := r.db.WithContext(ctx).Preload("From").Preload("To").First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("ConnectionRequest", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *connectionRepository) DeleteRequest(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ConnectionRequest{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("ConnectionRequest", id)
	}
	return nil
}

func (r *connectionRepository) PendingRequestExists(ctx context.Context, fromUID, toUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Where("from_uid = ? AND to_uid = ?", fromUID, toUID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *connectionRepository) ListRequestsTo(ctx context.Context, uid string) ([]models.ConnectionRequest, error) {
	var reqs []models.ConnectionRequest
	err := r.db.WithContext(ctx).
		Preload("From").
		Where("to_uid = ?", uid).
		Order("id ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *connectionRepository) ListRequestsFrom(ctx context.Context, uid string) ([]models.ConnectionRequest, error) {
	var reqs []models.ConnectionRequest
	err := r.db.WithContext(ctx).
		Preload("To").
		Where("from_uid = ?", uid).
		Order("id ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// AcceptRequest turns a pending request into an undirected edge and removes
// the request in one transaction. The edge insert is idempotent; accepting a
// request whose edge already exists still consumes the request.
func (r *connectionRepository) AcceptRequest(ctx context.Context, req *models.ConnectionRequest) error {
	_, err := withRetry(ctx, "accept_request", func() (struct{}, error) {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			u1, u2 := models.NormalizePair(req.FromUID, req.ToUID)
			conn := models.Connection{User1UID: u1, User2UID: u2}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user1_uid"}, {Name: "user2_uid"}},
				DoNothing: true,
			}).Create(&conn)
			if res.Error != nil {
				return res.Error
			}

			del := tx.Delete(&models.ConnectionRequest{}, req.ID)
			if del.Error != nil {
				return del.Error
			}
			if del.RowsAffected == 0 {
				// Someone else resolved the request while we held the edge.
				return models.NewConcurrentConflictError(nil)
			}
			return nil
		})
		return struct{}{}, err
	})
	return err
}

func (r *connectionRepository) ConnectionExists(ctx context.Context, uidA, uidB string) (bool, error) {
	u1, u2 := models.NormalizePair(uidA, uidB)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("user1_uid = ? AND user2_uid = ?", u1, u2).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *connectionRepository) ListConnections(ctx context.Context, uid string) ([]models.Connection, error) {
	var conns []models.Connection
	err := r.db.WithContext(ctx).
		Where("user1_uid = ? OR user2_uid = ?", uid, uid).
		Order("id ASC").
		Find(&conns).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}

// ListConnectedUsers resolves the users on the far side of every edge
// touching uid, in a single join.
func (r *connectionRepository) ListConnectedUsers(ctx context.Context, uid string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Raw(`SELECT u.* FROM users u
		     JOIN connections c
		       ON (c.user1_uid = u.uid AND c.user2_uid = ?)
		       OR (c.user2_uid = u.uid AND c.user1_uid = ?)
		    ORDER BY u.uid ASC`, uid, uid).
		Scan(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *connectionRepository) DeleteConnection(ctx context.Context, uidA, uidB string) error {
	u1, u2 := models.NormalizePair(uidA, uidB)
	res := r.db.WithContext(ctx).
		Where("user1_uid = ? AND user2_uid = ?", u1, u2).
		Delete(&models.Connection{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Connection", u1+"/"+u2)
	}
	return nil
}
