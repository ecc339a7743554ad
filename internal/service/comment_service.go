package service

import (
	"context"

	"twosides/internal/cache"
	"twosides/internal/middleware"
	"twosides/internal/models"
	"twosides/internal/observability"
	"twosides/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	connRepo    repository.ConnectionRepository
}

type AddCommentInput struct {
	PostID    uint
	ParentID  uint
	AuthorUID string
	Text      string
}

type LikeCommentInput struct {
	CommentID uint
	ViewerUID string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	connRepo repository.ConnectionRepository,
) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, connRepo: connRepo}
}

// AddComment appends a comment to an open discussion. The comment that
// brings the count to the threshold still lands; it closes the discussion
// behind itself.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	const maxCommentLen = 10000

	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := requireViewPost(ctx, s.connRepo, post, in.AuthorUID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    in.PostID,
		ParentID:  in.ParentID,
		AuthorUID: in.AuthorUID,
		Text:      in.Text,
	}
	newCount, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	observability.CommentsCreated.Inc()
	if newCount == models.LockThreshold {
		observability.DiscussionsLocked.Inc()
		middleware.Logger.InfoContext(ctx, "discussion locked",
			"post_id", in.PostID, "comment_count", newCount)
	}
	cache.InvalidatePost(ctx, in.PostID)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListThread returns the post's comments as a nested forest.
func (s *CommentService) ListThread(ctx context.Context, postID uint, viewerUID string) ([]*CommentNode, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := requireViewPost(ctx, s.connRepo, post, viewerUID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildThread(comments), nil
}

// LikeComment marks the viewer's like. Authors cannot like their own
// comments, and a viewer can like a comment at most once.
func (s *CommentService) LikeComment(ctx context.Context, in LikeCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorUID == in.ViewerUID {
		return nil, models.NewSelfLikeError()
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}
	if err := requireViewPost(ctx, s.connRepo, post, in.ViewerUID); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Like(ctx, in.CommentID, in.ViewerUID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, in.CommentID)
}
