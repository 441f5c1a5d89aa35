package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-youtube-clone/internal/container"
	repo "github.com/oksasatya/go-youtube-clone/internal/domain/repository"
	handlers "github.com/oksasatya/go-youtube-clone/internal/interface/http"
	"github.com/oksasatya/go-youtube-clone/internal/interface/middleware"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
)

// UserModule wires the profile/channel routes
// Protected: GET /api/users/me, PUT /api/users/me,
// PUT /api/users/me/avatar, PUT /api/users/me/banner

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, users repo.UserRepository) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.BearerAuth(m.JWT, m.Users))
	users.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		users.GET("/me", m.Handler.GetProfile)
		users.PUT("/me", m.Handler.UpdateProfile)
		users.PUT("/me/avatar", m.Handler.UploadAvatar)
		users.PUT("/me/banner", m.Handler.UploadBanner)
	}
}
