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

// VideoModule wires the catalog and engagement routes
// Public: GET /api/videos, GET /api/videos/search,
// GET /api/videos/suggested/:category/:excludeId, GET /api/videos/:id,
// PUT /api/videos/view/:id
// Protected: POST /api/videos/upload, GET /api/videos/channel,
// PUT /api/videos/like/:id, PUT /api/videos/dislike/:id,
// PUT /api/videos/:id, DELETE /api/videos/:id

type VideoModule struct {
	Handler *handlers.VideoHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewVideoModule(h *handlers.VideoHandler, jwt *helpers.JWTManager, users repo.UserRepository) *VideoModule {
	return &VideoModule{Handler: h, JWT: jwt, Users: users}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	// View counts are unauthenticated; limit per IP so a single client
	// cannot inflate a counter cheaply.
	viewLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	videos := rg.Group("/videos")
	videos.GET("", m.Handler.List)
	videos.GET("/search", m.Handler.Search)
	videos.GET("/suggested/:category/:excludeId", m.Handler.Suggested)
	videos.GET("/:id", m.Handler.Get)
	videos.PUT("/view/:id", viewLimiter, m.Handler.AddView)

	auth := videos.Group("/")
	auth.Use(middleware.BearerAuth(m.JWT, m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/upload", m.Handler.Upload)
		auth.GET("/channel", m.Handler.ChannelVideos)
		auth.PUT("/like/:id", m.Handler.ToggleLike)
		auth.PUT("/dislike/:id", m.Handler.ToggleDislike)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
