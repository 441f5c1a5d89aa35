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

// CommentModule wires the embedded-comment routes. Creation requires
// auth like edit/delete; the author always comes from the token.
// Protected: POST /api/comments/:videoId,
// PUT /api/comments/:videoId/comment/:commentId,
// DELETE /api/comments/:videoId/comment/:commentId

type CommentModule struct {
	Handler *handlers.CommentHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewCommentModule(h *handlers.CommentHandler, jwt *helpers.JWTManager, users repo.UserRepository) *CommentModule {
	return &CommentModule{Handler: h, JWT: jwt, Users: users}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	comments := rg.Group("/comments")
	comments.Use(middleware.BearerAuth(m.JWT, m.Users))
	comments.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		comments.POST("/:videoId", m.Handler.Add)
		comments.PUT("/:videoId/comment/:commentId", m.Handler.Edit)
		comments.DELETE("/:videoId/comment/:commentId", m.Handler.Delete)
	}
}
