package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-youtube-clone/internal/application"
	"github.com/oksasatya/go-youtube-clone/pkg/response"
	"github.com/oksasatya/go-youtube-clone/pkg/validation"
)

const maxImageUploadBytes = 8 << 20

type UserHandler struct {
	Svc    *app.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *app.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Username           string  `json:"username" binding:"omitempty,min=3,max=50"`
	Email              string  `json:"email" binding:"omitempty,email"`
	ChannelDescription *string `json:"channelDescription"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, app.UpdateProfileInput{
		Username:           req.Username,
		Email:              req.Email,
		ChannelDescription: req.ChannelDescription,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "profile updated", nil)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	h.uploadImage(c, "avatar", h.Svc.UploadAvatar)
}

func (h *UserHandler) UploadBanner(c *gin.Context) {
	h.uploadImage(c, "banner", h.Svc.UploadBanner)
}

func (h *UserHandler) uploadImage(c *gin.Context, field string, store app.ChannelImageUploader) {
	uid := c.GetString("userID")

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	if fh.Size > maxImageUploadBytes {
		response.Error[any](c, http.StatusBadRequest, "file too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable "+field+" file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := store(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), field+" updated", nil)
}
