package service

import (
	"context"

	"twosides/internal/models"
	"twosides/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	connRepo repository.ConnectionRepository
}

type CreatePostInput struct {
	AuthorUID string
	Title     string
	Topic     string
	BlueSide  string
	RedSide   string
	IsGlobal  bool
}

func NewPostService(postRepo repository.PostRepository, connRepo repository.ConnectionRepository) *PostService {
	return &PostService{postRepo: postRepo, connRepo: connRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 300

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.BlueSide == "" || in.RedSide == "" {
		return nil, models.NewValidationError("Both side labels are required")
	}
	if in.BlueSide == in.RedSide {
		return nil, models.NewValidationError("Side labels must differ")
	}

	post := &models.Post{
		AuthorUID: in.AuthorUID,
		Title:     in.Title,
		Topic:     in.Topic,
		BlueSide:  in.BlueSide,
		RedSide:   in.RedSide,
		IsGlobal:  in.IsGlobal,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the post when viewerUID may see it. Invisible posts report
// NotFound, never Unauthorized.
func (s *PostService) GetPost(ctx context.Context, id uint, viewerUID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireViewPost(ctx, s.connRepo, post, viewerUID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint, viewerUID string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorUID != viewerUID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, id)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorUID, viewerUID string) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorUID)
	if err != nil {
		return nil, err
	}
	if authorUID == viewerUID {
		return posts, nil
	}

	visible := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		ok, err := canViewPost(ctx, s.connRepo, post, viewerUID)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, post)
		}
	}
	return visible, nil
}
