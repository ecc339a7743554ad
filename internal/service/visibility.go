// Package service contains the business logic layer of the application.
package service

import (
	"context"

	"twosides/internal/models"
	"twosides/internal/repository"
)

// canViewPost decides whether viewerUID may see post. Global posts are open
// to everyone, including anonymous viewers. Private posts are open to the
// author and the author's connections only.
func canViewPost(ctx context.Context, connRepo repository.ConnectionRepository, post *models.Post, viewerUID string) (bool, error) {
	if post.IsGlobal {
		return true, nil
	}
	if viewerUID == "" {
		return false, nil
	}
	if post.AuthorUID == viewerUID {
		return true, nil
	}
	return connRepo.ConnectionExists(ctx, post.AuthorUID, viewerUID)
}

// requireViewPost maps an invisible post to NotFound so private posts do not
// leak their existence.
func requireViewPost(ctx context.Context, connRepo repository.ConnectionRepository, post *models.Post, viewerUID string) error {
	ok, err := canViewPost(ctx, connRepo, post, viewerUID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}
