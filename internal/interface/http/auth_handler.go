package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-youtube-clone/internal/application"
	"github.com/oksasatya/go-youtube-clone/pkg/response"
	"github.com/oksasatya/go-youtube-clone/pkg/validation"
)

type AuthHandler struct {
	Svc    *app.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *app.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Avatar   string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func tokenMeta(pair app.TokenPair) map[string]any {
	return map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         u.Public(),
	}, "registered", tokenMeta(pair))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         u.Public(),
	}, "login successful", tokenMeta(pair))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	pair, _, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "token refreshed", tokenMeta(pair))
}
