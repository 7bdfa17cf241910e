// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"journal/internal/cache"
	"journal/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Search(ctx context.Context, keyword string) ([]*models.Post, error)
	Update(ctx context.Context, id uint, title, content string) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.Date.IsZero() {
		post.Date = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostsListKey)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post

	err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.PostsListTTL, func() error {
		if err := r.db.WithContext(ctx).Order("date DESC, id DESC").Find(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, keyword string) ([]*models.Post, error) {
	var posts []*models.Post
	// Matches the GIN index expression created in database.Migrate; ranked
	// by relevance like the document store's text query it replaces.
	err := r.db.WithContext(ctx).
		Where("to_tsvector('english', title || ' ' || content) @@ plainto_tsquery('english', ?)", keyword).
		Order(gorm.Expr(
			"ts_rank(to_tsvector('english', title || ' ' || content), plainto_tsquery('english', ?)) DESC",
			keyword,
		)).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, id uint, title, content string) error {
	// Title and content only; id and date are fixed after creation.
	// A missing id updates zero rows without error, matching the
	// fire-and-forget semantics of the edit operation.
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "content": content}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
