package repositories

import (
	"github.com/sociablehq/sociable/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetLikedPosts(id string) ([]models.LikedPost, error)
	UpdateLikedPosts(id string, likedPosts []models.LikedPost) error
	UpdateUser(user *models.User) error
	DeleteAccount(id string) error
	SearchUsers(query string) ([]models.User, error)
}

// GormUserRepository implements UserRepository on the relational store
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// CreateUser creates a new user row
func (r *GormUserRepository) CreateUser(user *models.User) error {
	if user.LikedPosts == nil {
		user.LikedPosts = []models.LikedPost{}
	}
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by its OAuth-issued ID
func (r *GormUserRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetLikedPosts retrieves only the liked_posts column for a user
func (r *GormUserRepository) GetLikedPosts(id string) ([]models.LikedPost, error) {
	var user models.User
	if err := r.db.Select("id", "liked_posts").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if user.LikedPosts == nil {
		return []models.LikedPost{}, nil
	}
	return user.LikedPosts, nil
}

// UpdateLikedPosts replaces a user's liked-set. Only the like service
// calls this.
func (r *GormUserRepository) UpdateLikedPosts(id string, likedPosts []models.LikedPost) error {
	if likedPosts == nil {
		likedPosts = []models.LikedPost{}
	}
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("liked_posts", likedPosts)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateUser updates an existing user row
func (r *GormUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteAccount removes a user and everything it owns in one transaction:
// comments the user wrote, comments on the user's posts, the posts, and
// finally the user row. Media purging happens before this is called.
func (r *GormUserRepository) DeleteAccount(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []int64
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

// SearchUsers searches for users by name or email
func (r *GormUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	// Search by name or email (case-insensitive)
	if err := r.db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
