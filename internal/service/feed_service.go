package service

import (
	"context"

	"twosides/internal/models"
	"twosides/internal/repository"
)

type FeedService struct {
	postRepo repository.PostRepository
}

func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// VisiblePosts returns the feed for a viewer. Anonymous viewers get global
// posts only; authenticated viewers additionally see their own posts and the
// private posts of their connections.
func (s *FeedService) VisiblePosts(ctx context.Context, viewerUID string) ([]*models.Post, error) {
	if viewerUID == "" {
		return s.postRepo.ListGlobal(ctx)
	}
	return s.postRepo.ListVisible(ctx, viewerUID)
}
