package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sociablehq/sociable/backend/internal/middleware"
	"github.com/sociablehq/sociable/backend/pkg/media"
	"github.com/sociablehq/sociable/backend/pkg/metrics"
)

// maxMediaSize limits a single upload to 4 MB
const maxMediaSize = 4 << 20

// MediaHandler handles image uploads to the object store
type MediaHandler struct {
	mediaStore media.Store
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaStore media.Store) *MediaHandler {
	return &MediaHandler{mediaStore: mediaStore}
}

// RegisterMediaRoutes registers media-related routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.UploadMedia)
}

// UploadMedia stores one image file and returns its reference for
// embedding in a post.
func (h *MediaHandler) UploadMedia(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}
	if fileHeader.Size > maxMediaSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds 4MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only image uploads are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer file.Close()

	object, err := h.mediaStore.Upload(c.Request().Context(), userID, fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		metrics.MediaUploads.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "Error uploading media")
	}
	metrics.MediaUploads.WithLabelValues("success").Inc()

	return c.JSON(http.StatusCreated, object)
}
