package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-youtube-clone/internal/container"
	handlers "github.com/oksasatya/go-youtube-clone/internal/interface/http"
	"github.com/oksasatya/go-youtube-clone/internal/interface/middleware"
)

// AuthModule wires registration/login/refresh routes
// Public: POST /api/auth/register, POST /api/auth/login, POST /api/auth/refresh

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)
}
