package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogapp/internal/model"
)

// PostRepository defines blog post persistence operations.
// Ownership is not checked here; callers authorize before Update and Delete.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)
	Update(ctx context.Context, id uuid.UUID, title, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a post. The Author association is never written.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// FindByID finds a post by ID.
func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByAuthor lists an author's posts oldest first with the author preloaded.
func (r *postRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update replaces title and content. The author column is left untouched.
// MySQL reports zero affected rows for a no-op update, so existence is not inferred here.
func (r *postRepository) Update(ctx context.Context, id uuid.UUID, title, content string) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "content": content}).Error
}

// Delete removes a post.
func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
