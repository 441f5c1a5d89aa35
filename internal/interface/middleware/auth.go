package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	repo "github.com/oksasatya/go-youtube-clone/internal/domain/repository"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
	"github.com/oksasatya/go-youtube-clone/pkg/response"
)

const CtxUserIDKey = "userID"

// BearerAuth validates the Authorization header, resolves the token's
// user against storage and injects the user id into context. A valid
// token whose user no longer exists yields 404, not 401.
func BearerAuth(jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		if _, err := users.GetByID(claims.UserID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.Error[any](c, http.StatusNotFound, "user not found", nil)
			} else {
				response.Error[any](c, http.StatusInternalServerError, "auth lookup failed", nil)
			}
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
