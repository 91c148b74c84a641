package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sociablehq/sociable/backend/internal/middleware"
	"github.com/sociablehq/sociable/backend/internal/repositories"
	"github.com/sociablehq/sociable/backend/pkg/media"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository // To purge post media on account deletion
	mediaStore     media.Store
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, mediaStore media.Store) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		mediaStore:     mediaStore,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetProfile)       // Get own profile
	g.DELETE("/users/me", h.DeleteAccount) // Delete own account
	g.GET("/users/:id", h.GetUser)         // Get other user's profile by ID
	g.GET("/users/search", h.SearchUsers)
}

// GetUser retrieves another user's public profile
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteAccount deletes the authenticated user's account. Media attached
// to the user's posts is purged from the upload store first, then the
// rows are removed in one transaction.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	ctx := c.Request().Context()

	posts, err := h.postRepository.GetPostsByUserID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var mediaKeys []string
	for _, post := range posts {
		for _, m := range post.Media {
			mediaKeys = append(mediaKeys, m.ID)
		}
	}
	if len(mediaKeys) > 0 {
		if err := h.mediaStore.DeleteAll(ctx, mediaKeys); err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, "Error deleting media")
		}
	}

	if err := h.userRepository.DeleteAccount(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// SearchUsers searches users by name or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}
	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}
