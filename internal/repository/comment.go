package repository

import (
	"context"
	"errors"

	"twosides/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment forest operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (newCount int, err error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	Like(ctx context.Context, commentID uint, viewerUID string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create appends a comment and advances the discussion counter in one
// transaction. The counter update and the lock transition are a single
// statement, so exactly one comment can observe the crossing of the
// threshold regardless of how many writers race on the post.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (int, error) {
	return withRetry(ctx, "create_comment", func() (int, error) {
		var newCount int
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if comment.ParentID != 0 {
				var parent models.Comment
				err := tx.Select("id", "post_id").First(&parent, comment.ParentID).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewInvalidParentError(comment.ParentID)
				}
				if err != nil {
					return err
				}
				if parent.PostID != comment.PostID {
					return models.NewInvalidParentError(comment.ParentID)
				}
			}

			var count struct{ CommentCount int }
			res := tx.Raw(
				`UPDATE posts
				   SET comment_count = comment_count + 1,
				       locked = comment_count + 1 >= ?
				 WHERE id = ? AND locked = ?
				 RETURNING comment_count`,
				models.LockThreshold, comment.PostID, false,
			).Scan(&count)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return r.lockedOrMissingPost(tx, comment.PostID)
			}
			newCount = count.CommentCount

			return tx.Create(comment).Error
		})
		return newCount, err
	})
}

func (r *commentRepository) lockedOrMissingPost(tx *gorm.DB, postID uint) error {
	var post models.Post
	if err := tx.Select("id", "locked").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", postID)
		}
		return err
	}
	return models.NewDiscussionLockedError(postID)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Comment", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost returns every comment on the post in ID order and attaches the
// liker UIDs to each. Two queries total; the fan-out to LikedBy happens in
// memory.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(comments) == 0 {
		return comments, nil
	}

	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	var likes []models.CommentLike
	err = r.db.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Order("id ASC").
		Find(&likes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	byComment := make(map[uint][]string, len(comments))
	for _, l := range likes {
		byComment[l.CommentID] = append(byComment[l.CommentID], l.ViewerUID)
	}
	for i := range comments {
		comments[i].LikedBy = byComment[comments[i].ID]
	}
	return comments, nil
}

// Like records one like per viewer per comment. The uniqueness constraint on
// (comment_id, viewer_uid) is the source of truth; the counter only moves
// when the insert actually lands.
func (r *commentRepository) Like(ctx context.Context, commentID uint, viewerUID string) error {
	_, err := withRetry(ctx, "like_comment", func() (struct{}, error) {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			like := models.CommentLike{CommentID: commentID, ViewerUID: viewerUID}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "comment_id"}, {Name: "viewer_uid"}},
				DoNothing: true,
			}).Create(&like)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.NewAlreadyLikedError()
			}

			res = tx.Model(&models.Comment{}).
				Where("id = ?", commentID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.NewNotFoundError("Comment", commentID)
			}
			return nil
		})
		return struct{}{}, err
	})
	return err
}
