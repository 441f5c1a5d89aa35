package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	"github.com/oksasatya/go-youtube-clone/internal/domain/repository"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (s *stubUserRepo) Create(*entity.User) error { return nil }
func (s *stubUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}
func (s *stubUserRepo) GetByIDs([]string) ([]*entity.User, error)  { return nil, nil }
func (s *stubUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, repository.ErrNotFound }
func (s *stubUserRepo) Update(*entity.User) error                  { return nil }
func (s *stubUserRepo) AddLikedVideo(string, string) error         { return nil }
func (s *stubUserRepo) RemoveLikedVideo(string, string) error      { return nil }
func (s *stubUserRepo) ListLikedVideoIDs(string) ([]string, error) { return nil, nil }

func newAuthRig(t *testing.T, users *stubUserRepo) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	r := gin.New()
	r.GET("/whoami", BearerAuth(jwt, users), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r, jwt
}

func TestBearerAuthMissingToken(t *testing.T) {
	r, _ := newAuthRig(t, &stubUserRepo{users: map[string]*entity.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerAuthInvalidToken(t *testing.T) {
	r, _ := newAuthRig(t, &stubUserRepo{users: map[string]*entity.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerAuthValidToken(t *testing.T) {
	users := &stubUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Username: "alice"},
	}}
	r, jwt := newAuthRig(t, users)

	token, _, err := jwt.GenerateAccessToken("u1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

// A syntactically valid token whose user has been removed maps to 404.
func TestBearerAuthUserGone(t *testing.T) {
	r, jwt := newAuthRig(t, &stubUserRepo{users: map[string]*entity.User{}})

	token, _, err := jwt.GenerateAccessToken("deleted-user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
