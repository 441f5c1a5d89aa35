package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)
	logger := helpers.NewLogger("test", "development")
	svc := NewUserService(repo, jwt, nil, "", nil, logger, nil, false)
	return svc, repo
}

func register(t *testing.T, svc *UserService, username, email, password string) (*entity.User, TokenPair) {
	t.Helper()
	u, pair, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return u, pair
}

func TestRegister(t *testing.T) {
	svc, _ := newUserFixture(t)

	u, pair := register(t, svc, "alice", "Alice@Example.com", "password123")

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, entity.DefaultAvatarURL, u.AvatarURL)
	assert.NotEqual(t, "password123", u.Password)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	register(t, svc, "alice", "alice@example.com", "password123")

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "imposter",
		Email:    "alice@example.com",
		Password: "password456",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newUserFixture(t)
	register(t, svc, "alice", "alice@example.com", "password123")
	ctx := context.Background()

	u, pair, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, pair.AccessToken)

	// Unknown email is not-found, distinct from a bad password.
	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _ := newUserFixture(t)
	u, pair := register(t, svc, "alice", "alice@example.com", "password123")
	ctx := context.Background()

	rotated, uid, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
	assert.NotEmpty(t, rotated.AccessToken)

	_, _, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfileIncludesLikedVideos(t *testing.T) {
	svc, repo := newUserFixture(t)
	u, _ := register(t, svc, "alice", "alice@example.com", "password123")
	require.NoError(t, repo.AddLikedVideo(u.ID, "vid-1"))

	loaded, err := svc.GetProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"vid-1"}, loaded.LikedVideoIDs)

	_, err = svc.GetProfile("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newUserFixture(t)
	u, _ := register(t, svc, "alice", "alice@example.com", "password123")
	ctx := context.Background()

	desc := "gopher videos"
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{ChannelDescription: &desc})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "gopher videos", updated.ChannelDescription)

	updated, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Username: "alice2"})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "gopher videos", updated.ChannelDescription)
}

func TestPublicOmitsCredential(t *testing.T) {
	svc, _ := newUserFixture(t)
	u, _ := register(t, svc, "alice", "alice@example.com", "password123")

	pub := u.Public()
	assert.NotContains(t, pub, "password")
	assert.Equal(t, u.Email, pub["email"])
	assert.Equal(t, []string{}, pub["likedVideos"])
}
