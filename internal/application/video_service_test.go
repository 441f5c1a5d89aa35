package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
)

func newVideoFixture(t *testing.T) (*VideoService, *fakeVideoRepo, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	videos := newFakeVideoRepo()
	logger := helpers.NewLogger("test", "development")
	svc := NewVideoService(videos, users, nil, logger, nil, "")
	return svc, videos, users
}

func seedVideo(t *testing.T, svc *VideoService, channelID, title, category, url string) *entity.Video {
	t.Helper()
	v, err := svc.Upload(context.Background(), channelID, UploadVideoInput{
		Title:    title,
		Category: category,
		VideoURL: url,
	})
	require.NoError(t, err)
	return v
}

func TestUploadNormalizesURL(t *testing.T) {
	svc, _, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")

	v := seedVideo(t, svc, "u1", "first", "music", "https://www.youtube.com/watch?v=abc123")

	assert.Equal(t, "https://www.youtube.com/embed/abc123", v.VideoURL)
	assert.Contains(t, v.ThumbnailURL, "abc123")
	assert.NotEmpty(t, v.VideoID)
	assert.Equal(t, "u1", v.ChannelID)
	assert.Empty(t, v.Likes)
	assert.Empty(t, v.Comments)
}

func TestUploadRequiresURL(t *testing.T) {
	svc, _, _ := newVideoFixture(t)

	_, err := svc.Upload(context.Background(), "u1", UploadVideoInput{Title: "no url", VideoURL: "   "})
	assert.ErrorIs(t, err, ErrMissingVideoURL)
}

func TestAddViewIncrementsByExactlyOne(t *testing.T) {
	svc, _, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")
	v := seedVideo(t, svc, "u1", "counted", "misc", "https://youtu.be/xyz")

	for i := 1; i <= 5; i++ {
		updated, err := svc.AddView(context.Background(), v.VideoID)
		require.NoError(t, err)
		assert.Equal(t, int64(i), updated.Views)
	}

	_, err := svc.AddView(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestToggleLikeFlipsMembership(t *testing.T) {
	svc, _, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")
	v := seedVideo(t, svc, "u1", "likeable", "misc", "https://youtu.be/xyz")

	updated, err := svc.ToggleLike(context.Background(), v.VideoID, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.Likes)

	// Second toggle returns the user to their original state.
	updated, err = svc.ToggleLike(context.Background(), v.VideoID, "u2")
	require.NoError(t, err)
	assert.Empty(t, updated.Likes)
	assert.Empty(t, updated.Dislikes)
}

func TestLikeDislikeStayDisjoint(t *testing.T) {
	svc, _, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")
	v := seedVideo(t, svc, "u1", "contested", "misc", "https://youtu.be/xyz")
	ctx := context.Background()

	updated, err := svc.ToggleLike(ctx, v.VideoID, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.Likes)
	assert.Empty(t, updated.Dislikes)

	updated, err = svc.ToggleDislike(ctx, v.VideoID, "u2")
	require.NoError(t, err)
	assert.Empty(t, updated.Likes)
	assert.Equal(t, []string{"u2"}, updated.Dislikes)

	updated, err = svc.ToggleLike(ctx, v.VideoID, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.Likes)
	assert.Empty(t, updated.Dislikes)
}

func TestToggleLikeMirrorsLikedVideos(t *testing.T) {
	svc, _, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")
	users.mustAdd("u2", "bob", "bob@example.com")
	v := seedVideo(t, svc, "u1", "mirrored", "misc", "https://youtu.be/xyz")
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, v.VideoID, "u2")
	require.NoError(t, err)
	liked, err := users.ListLikedVideoIDs("u2")
	require.NoError(t, err)
	assert.Equal(t, []string{v.VideoID}, liked)

	_, err = svc.ToggleDislike(ctx, v.VideoID, "u2")
	require.NoError(t, err)
	liked, err = users.ListLikedVideoIDs("u2")
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	svc, _, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")
	v := seedVideo(t, svc, "u1", "owned", "misc", "https://youtu.be/xyz")
	ctx := context.Background()

	title := "renamed"
	_, err := svc.Update(ctx, v.VideoID, "intruder", UpdateVideoInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	// Missing video wins over ownership.
	_, err = svc.Update(ctx, "missing", "intruder", UpdateVideoInput{Title: &title})
	assert.ErrorIs(t, err, ErrVideoNotFound)

	updated, err := svc.Update(ctx, v.VideoID, "u1", UpdateVideoInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "misc", updated.Category)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc, videos, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")
	v := seedVideo(t, svc, "u1", "doomed", "misc", "https://youtu.be/xyz")
	ctx := context.Background()

	err := svc.Delete(ctx, v.VideoID, "intruder")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = videos.GetByVideoID(ctx, v.VideoID)
	assert.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, v.VideoID, "u1"))
	_, err = svc.Get(ctx, v.VideoID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestSuggestedExcludesCurrentVideo(t *testing.T) {
	svc, _, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")
	ctx := context.Background()

	current := seedVideo(t, svc, "u1", "watching", "music", "https://youtu.be/a")
	seedVideo(t, svc, "u1", "same category", "music", "https://youtu.be/b")
	seedVideo(t, svc, "u1", "other category", "sports", "https://youtu.be/c")

	suggested, err := svc.Suggested(ctx, "music", current.VideoID)
	require.NoError(t, err)
	require.Len(t, suggested, 1)
	assert.Equal(t, "same category", suggested[0].Title)
}

func TestListPopulatesChannel(t *testing.T) {
	svc, _, users := newVideoFixture(t)
	users.mustAdd("u1", "alice", "alice@example.com")
	seedVideo(t, svc, "u1", "published", "misc", "https://youtu.be/xyz")

	videos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.NotNil(t, videos[0].Channel)
	assert.Equal(t, "alice", videos[0].Channel.Username)
	assert.Equal(t, entity.DefaultAvatarURL, videos[0].Channel.Avatar)
}
