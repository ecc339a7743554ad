package service

import (
	"context"

	"twosides/internal/cache"
	"twosides/internal/models"
	"twosides/internal/observability"
	"twosides/internal/repository"
)

type VoteService struct {
	voteRepo repository.VoteRepository
	postRepo repository.PostRepository
	connRepo repository.ConnectionRepository
}

type CastVoteInput struct {
	PostID   uint
	VoterUID string
	Color    string
}

// VoteResult reports what the cast did and the post tallies afterwards.
type VoteResult struct {
	Outcome repository.VoteOutcome `json:"outcome"`
	Post    *models.Post           `json:"post"`
}

func NewVoteService(
	voteRepo repository.VoteRepository,
	postRepo repository.PostRepository,
	connRepo repository.ConnectionRepository,
) *VoteService {
	return &VoteService{voteRepo: voteRepo, postRepo: postRepo, connRepo: connRepo}
}

// CastVote records or switches the viewer's vote. Re-casting the held color
// is a no-op, never an error, so clients can submit blindly.
func (s *VoteService) CastVote(ctx context.Context, in CastVoteInput) (*VoteResult, error) {
	color := models.VoteColor(in.Color)
	if !color.Valid() {
		return nil, models.NewInvalidOptionError(in.Color)
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := requireViewPost(ctx, s.connRepo, post, in.VoterUID); err != nil {
		return nil, err
	}

	outcome, err := s.voteRepo.CastVote(ctx, in.PostID, in.VoterUID, color)
	if err != nil {
		return nil, err
	}
	observability.VotesCast.WithLabelValues(string(color), string(outcome)).Inc()

	if outcome != repository.VoteUnchanged {
		cache.InvalidatePost(ctx, in.PostID)
	}

	post, err = s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Outcome: outcome, Post: post}, nil
}

// GetMyVote returns the viewer's current vote on a post, or nil when they
// have not voted.
func (s *VoteService) GetMyVote(ctx context.Context, postID uint, voterUID string) (*models.Vote, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := requireViewPost(ctx, s.connRepo, post, voterUID); err != nil {
		return nil, err
	}
	return s.voteRepo.GetByPostAndVoter(ctx, postID, voterUID)
}
