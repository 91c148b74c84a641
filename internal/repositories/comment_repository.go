package repositories

import (
	"context"

	"github.com/sociablehq/sociable/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	AdjustLikes(ctx context.Context, id int64, delta int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// GormCommentRepository implements CommentRepository on the relational store
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// CreateComment inserts a new comment. The ID is assigned by the store.
func (r *GormCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID retrieves a single comment
func (r *GormCommentRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves a post's comments sorted by likes
// descending, ties broken by oldest first.
func (r *GormCommentRepository) GetCommentsByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("likes DESC, created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment deletes a comment by ID
func (r *GormCommentRepository) DeleteComment(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustLikes applies a relative delta to the likes counter and returns
// the new value
func (r *GormCommentRepository) AdjustLikes(ctx context.Context, id int64, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	var likes int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Select("likes").
		Scan(&likes).Error
	if err != nil {
		return 0, err
	}
	return likes, nil
}

// Exists reports whether a comment with the given ID is present
func (r *GormCommentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
