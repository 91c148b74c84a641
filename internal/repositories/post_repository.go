package repositories

import (
	"context"

	"github.com/sociablehq/sociable/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int) ([]models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	AdjustLikes(ctx context.Context, id int64, delta int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// GormPostRepository implements PostRepository on the relational store
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// CreatePost inserts a new post. The ID is assigned by the store.
func (r *GormPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post with its author and comments preloaded
func (r *GormPostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes DESC, created_at ASC")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves all posts owned by a user, newest first
func (r *GormPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllPosts retrieves the feed with pagination, newest first
func (r *GormPostRepository) GetAllPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes DESC, created_at ASC")
		}).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post and its comments
func (r *GormPostRepository) DeletePost(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AdjustLikes applies a relative delta to the likes counter and returns
// the new value. The delta form avoids a read-modify-write of the row.
func (r *GormPostRepository) AdjustLikes(ctx context.Context, id int64, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	var likes int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Select("likes").
		Scan(&likes).Error
	if err != nil {
		return 0, err
	}
	return likes, nil
}

// Exists reports whether a post with the given ID is present
func (r *GormPostRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
