// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"twosides/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteOutcome describes what a CastVote call did to the ledger.
type VoteOutcome string

const (
	// VoteCreated means a first vote was recorded for the (post, voter) pair.
	VoteCreated VoteOutcome = "created"
	// VoteChanged means an existing vote switched color.
	VoteChanged VoteOutcome = "changed"
	// VoteUnchanged means the voter re-cast the same color; nothing moved.
	VoteUnchanged VoteOutcome = "unchanged"
)

// VoteRepository defines the interface for vote ledger operations
type VoteRepository interface {
	GetByPostAndVoter(ctx context.Context, postID uint, voterUID string) (*models.Vote, error)
	CastVote(ctx context.Context, postID uint, voterUID string, color models.VoteColor) (VoteOutcome, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// GetByPostAndVoter returns nil without error when the pair has no vote yet.
func (r *voteRepository) GetByPostAndVoter(ctx context.Context, postID uint, voterUID string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND voter_uid = ?", postID, voterUID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &vote, nil
}

// CastVote applies one vote to the ledger. The vote row and the post tally
// commit in a single transaction: either both land or neither does. Tally
// columns are mutated with single-statement relative updates so concurrent
// voters on the same post cannot lose each other's increments.
func (r *voteRepository) CastVote(ctx context.Context, postID uint, voterUID string, color models.VoteColor) (VoteOutcome, error) {
	return withRetry(ctx, "cast_vote", func() (VoteOutcome, error) {
		var outcome VoteOutcome
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.Vote
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("post_id = ? AND voter_uid = ?", postID, voterUID).
				First(&existing).Error

			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return r.castFirstVote(tx, postID, voterUID, color, &outcome)
			case err != nil:
				return err
			case existing.Color == color:
				// Idempotent: re-casting the same color never re-increments.
				outcome = VoteUnchanged
				return nil
			default:
				return r.switchVote(tx, &existing, postID, color, &outcome)
			}
		})
		return outcome, err
	})
}

func (r *voteRepository) castFirstVote(tx *gorm.DB, postID uint, voterUID string, color models.VoteColor, outcome *VoteOutcome) error {
	vote := models.Vote{PostID: postID, VoterUID: voterUID, Color: color}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "voter_uid"}},
		DoNothing: true,
	}).Create(&vote)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Another request for the same voter won the insert; retry takes the
		// existing-vote path.
		return models.NewConcurrentConflictError(nil)
	}

	col := color.CounterColumn()
	res = tx.Model(&models.Post{}).
		Where("id = ? AND locked = ?", postID, false).
		UpdateColumn(col, gorm.Expr(col+" + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.lockedOrMissing(tx, postID)
	}

	*outcome = VoteCreated
	return nil
}

func (r *voteRepository) switchVote(tx *gorm.DB, existing *models.Vote, postID uint, color models.VoteColor, outcome *VoteOutcome) error {
	res := tx.Model(&models.Vote{}).
		Where("id = ? AND color = ?", existing.ID, existing.Color).
		Update("color", color)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewConcurrentConflictError(nil)
	}

	oldCol := existing.Color.CounterColumn()
	newCol := color.CounterColumn()
	res = tx.Model(&models.Post{}).
		Where("id = ? AND locked = ?", postID, false).
		UpdateColumns(map[string]interface{}{
			// Old side floors at zero; counters must never go negative.
			oldCol:         gorm.Expr("GREATEST(" + oldCol + " - 1, 0)"),
			newCol:         gorm.Expr(newCol + " + 1"),
			"change_count": gorm.Expr("change_count + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.lockedOrMissing(tx, postID)
	}

	*outcome = VoteChanged
	return nil
}

// lockedOrMissing explains a zero-row tally update: the post is either gone
// or its discussion has ended.
func (r *voteRepository) lockedOrMissing(tx *gorm.DB, postID uint) error {
	var post models.Post
	if err := tx.Select("id", "locked").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", postID)
		}
		return err
	}
	return models.NewDiscussionLockedError(postID)
}
