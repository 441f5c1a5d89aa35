package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-youtube-clone/internal/application"
	"github.com/oksasatya/go-youtube-clone/pkg/response"
	"github.com/oksasatya/go-youtube-clone/pkg/validation"
)

type VideoHandler struct {
	Svc    *app.VideoService
	Logger *logrus.Logger
}

func NewVideoHandler(svc *app.VideoService, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{Svc: svc, Logger: logger}
}

type uploadVideoRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
	Category    string `json:"category" binding:"max=100"`
	VideoURL    string `json:"videoUrl" binding:"required"`
}

type updateVideoRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
}

func (h *VideoHandler) Upload(c *gin.Context) {
	uid := c.GetString("userID")
	var req uploadVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	v, err := h.Svc.Upload(c.Request.Context(), uid, app.UploadVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "video uploaded", nil)
}

func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "videos", map[string]any{"count": len(videos)})
}

func (h *VideoHandler) Get(c *gin.Context) {
	v, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "video", nil)
}

// Suggested returns up to 8 videos from the same category, excluding
// the one being watched.
func (h *VideoHandler) Suggested(c *gin.Context) {
	videos, err := h.Svc.Suggested(c.Request.Context(), c.Param("category"), c.Param("excludeId"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "suggested videos", map[string]any{"count": len(videos)})
}

func (h *VideoHandler) ChannelVideos(c *gin.Context) {
	uid := c.GetString("userID")
	videos, err := h.Svc.ChannelVideos(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "channel videos", map[string]any{"count": len(videos)})
}

func (h *VideoHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	v, err := h.Svc.Update(c.Request.Context(), c.Param("id"), uid, app.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "video updated", nil)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "video deleted", nil)
}

func (h *VideoHandler) AddView(c *gin.Context) {
	v, err := h.Svc.AddView(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "view counted", nil)
}

func (h *VideoHandler) ToggleLike(c *gin.Context) {
	uid := c.GetString("userID")
	v, err := h.Svc.ToggleLike(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "like toggled", nil)
}

func (h *VideoHandler) ToggleDislike(c *gin.Context) {
	uid := c.GetString("userID")
	v, err := h.Svc.ToggleDislike(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "dislike toggled", nil)
}

func (h *VideoHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
