// Package service contains business logic sitting between handlers and repositories.
package service

import (
	"context"
	"strings"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
)

const (
	maxSubjectLen = 200
	maxContentLen = 20000
)

// PostService implements post creation, listing and ownership-checked deletion.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Subject string
	Content string
	UserID  uint
}

// CreatePost validates and persists a new post for the given author.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	subject := strings.TrimSpace(in.Subject)
	content := strings.TrimSpace(in.Content)

	if subject == "" {
		return nil, models.NewValidationError("Subject is required")
	}
	if len(subject) > maxSubjectLen {
		return nil, models.NewValidationError("Subject too long (max 200 characters)")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 20000 characters)")
	}

	post := &models.Post{
		Subject: subject,
		Content: content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	middleware.PostsCreated.Inc()
	return post, nil
}

// ListPosts returns the global feed, newest first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// ListPostsByAuthor returns one author's posts, newest first.
func (s *PostService) ListPostsByAuthor(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

// DeletePost removes a post after verifying the caller owns it.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != callerID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}
