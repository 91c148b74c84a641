package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sociablehq/sociable/backend/internal/likes"
	"github.com/sociablehq/sociable/backend/internal/middleware"
)

// LikeHandler exposes the like toggle service over HTTP
type LikeHandler struct {
	likeService *likes.Service
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *likes.Service) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes", h.ToggleLike)
	g.GET("/users/me/likes", h.GetLikedSet)
}

// ToggleLike transitions a (user, target) pair to the requested liked
// state and returns the target's new counter.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	callerID := middleware.UserIDFromContext(c)

	var req likes.ToggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	counter, err := h.likeService.Toggle(c.Request().Context(), callerID, req)
	if err != nil {
		return likeErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"target_id":   req.TargetID,
		"target_kind": req.TargetKind,
		"likes":       counter,
	})
}

// GetLikedSet returns the authenticated user's liked-set, used by page
// rendering to pre-compute liked state per item.
func (h *LikeHandler) GetLikedSet(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	likedSet, err := h.likeService.LikedSet(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"liked_posts": likedSet})
}

// likeErrorToHTTP maps a toggle failure kind to a transport status. The
// partial-failure detail stays internal; the client sees a generic error.
func likeErrorToHTTP(err error) *echo.HTTPError {
	if errors.Is(err, likes.ErrTargetNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Target not found")
	}
	if errors.Is(err, likes.ErrUnknownTargetKind) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown target kind")
	}
	switch likes.KindOf(err) {
	case likes.KindNotAuthorized:
		return echo.NewHTTPError(http.StatusUnauthorized, "Not Authorized")
	case likes.KindInvalidTransition:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case likes.KindStoreWriteFailure:
		return echo.NewHTTPError(http.StatusBadGateway, "Error updating user liked posts")
	case likes.KindPartialFailure:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating likes counter")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
