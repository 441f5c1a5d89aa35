package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-youtube-clone/internal/application"
	"github.com/oksasatya/go-youtube-clone/pkg/response"
	"github.com/oksasatya/go-youtube-clone/pkg/validation"
)

type CommentHandler struct {
	Svc    *app.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *app.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type commentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

func (h *CommentHandler) Add(c *gin.Context) {
	uid := c.GetString("userID")
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	created, err := h.Svc.Add(c.Request.Context(), c.Param("videoId"), uid, req.Text)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "comment added", nil)
}

func (h *CommentHandler) Edit(c *gin.Context) {
	uid := c.GetString("userID")
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	updated, err := h.Svc.Edit(c.Request.Context(), c.Param("videoId"), c.Param("commentId"), uid, req.Text)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "comment updated", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), c.Param("videoId"), c.Param("commentId"), uid); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "comment deleted", nil)
}
