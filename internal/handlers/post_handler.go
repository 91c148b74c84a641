package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sociablehq/sociable/backend/internal/middleware"
	"github.com/sociablehq/sociable/backend/internal/models"
	"github.com/sociablehq/sociable/backend/internal/repositories"
	"github.com/sociablehq/sociable/backend/pkg/config"
	"github.com/sociablehq/sociable/backend/pkg/media"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	mediaStore     media.Store
	cfg            *config.Config
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, mediaStore media.Store, cfg *config.Config) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		mediaStore:     mediaStore,
		cfg:            cfg,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post for the authenticated user. The post ID
// is assigned by the store.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		UserID:  userID,
		Content: req.Content,
		Media:   req.Media,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPosts returns the feed, newest first, with authors and comments
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a single post with author and sorted comments
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post. Only the owner or an admin may delete; the
// post's media is purged from the upload store before the row goes away.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != userID && !h.cfg.IsAdmin(userID) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to delete this post")
	}

	if len(post.Media) > 0 {
		keys := make([]string, 0, len(post.Media))
		for _, m := range post.Media {
			keys = append(keys, m.ID)
		}
		if err := h.mediaStore.DeleteAll(ctx, keys); err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, "Error deleting media")
		}
	}

	if err := h.postRepository.DeletePost(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
