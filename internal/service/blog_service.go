package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

// BlogService handles post operations on behalf of an authenticated user.
type BlogService interface {
	Create(ctx context.Context, user *model.User, title, content string) (*model.Post, error)
	ListByAuthor(ctx context.Context, user *model.User) ([]model.Post, error)
	GetOwned(ctx context.Context, user *model.User, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, title, content string) (*model.Post, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
}

type blogService struct {
	postRepo repository.PostRepository
}

// NewBlogService creates a new blog service.
func NewBlogService(postRepo repository.PostRepository) BlogService {
	return &blogService{postRepo: postRepo}
}

func validatePost(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title: %w", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content: %w", apperrors.ErrInvalidInput)
	}
	return nil
}

// Create stores a post authored by user.
func (s *blogService) Create(ctx context.Context, user *model.User, title, content string) (*model.Post, error) {
	if user == nil {
		return nil, apperrors.ErrForbidden
	}
	if err := validatePost(title, content); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: user.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, apperrors.StoreFailure(err, "user_id", user.ID.String())
	}
	post.Author = *user
	return post, nil
}

// ListByAuthor returns the user's posts oldest first.
func (s *blogService) ListByAuthor(ctx context.Context, user *model.User) ([]model.Post, error) {
	if user == nil {
		return nil, apperrors.ErrForbidden
	}
	posts, err := s.postRepo.FindByAuthor(ctx, user.ID)
	if err != nil {
		return nil, apperrors.StoreFailure(err, "user_id", user.ID.String())
	}
	return posts, nil
}

// GetOwned loads a post the user is allowed to edit.
func (s *blogService) GetOwned(ctx context.Context, user *model.User, id uuid.UUID) (*model.Post, error) {
	return s.loadOwned(ctx, user, id)
}

// Update replaces title and content. Repeating the same update leaves the same state.
func (s *blogService) Update(ctx context.Context, user *model.User, id uuid.UUID, title, content string) (*model.Post, error) {
	post, err := s.loadOwned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if err := validatePost(title, content); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, id, title, content); err != nil {
		return nil, apperrors.StoreFailure(err, "post_id", id.String())
	}
	post.Title = title
	post.Content = content
	return post, nil
}

// Delete removes a post owned by user.
func (s *blogService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, user, id); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrPostNotFound
		}
		return apperrors.StoreFailure(err, "post_id", id.String())
	}
	return nil
}

// loadOwned is the existence and ownership check every mutation goes through.
func (s *blogService) loadOwned(ctx context.Context, user *model.User, id uuid.UUID) (*model.Post, error) {
	if user == nil {
		return nil, apperrors.ErrForbidden
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.StoreFailure(err, "post_id", id.String())
	}

	if !auth.IsOwner(post, user.ID) {
		return nil, apperrors.ErrForbidden
	}
	return post, nil
}
