package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
)

func newCommentFixture(t *testing.T) (*CommentService, *fakeVideoRepo, *entity.Video) {
	t.Helper()
	users := newFakeUserRepo()
	users.mustAdd("author", "alice", "alice@example.com")
	users.mustAdd("other", "bob", "bob@example.com")

	videos := newFakeVideoRepo()
	v := &entity.Video{VideoID: "vid-1", Title: "commented", ChannelID: "author"}
	require.NoError(t, videos.Create(context.Background(), v))

	logger := helpers.NewLogger("test", "development")
	return NewCommentService(videos, users, logger), videos, v
}

func TestAddComment(t *testing.T) {
	svc, videos, video := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, video.VideoID, "author", "first!")
	require.NoError(t, err)
	assert.Equal(t, "author", c.UserID)
	assert.Equal(t, "first!", c.Text)
	assert.Nil(t, c.EditedAt)
	assert.False(t, c.ID.IsZero())

	stored, err := videos.GetByVideoID(ctx, video.VideoID)
	require.NoError(t, err)
	require.Len(t, stored.Comments, 1)
	assert.Equal(t, c.ID, stored.Comments[0].ID)
}

func TestAddCommentValidation(t *testing.T) {
	svc, _, video := newCommentFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, video.VideoID, "author", "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.Add(ctx, "missing", "author", "hello")
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = svc.Add(ctx, video.VideoID, "ghost", "hello")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEditCommentAuthorOnly(t *testing.T) {
	svc, videos, video := newCommentFixture(t)
	ctx := context.Background()
	c, err := svc.Add(ctx, video.VideoID, "author", "hi")
	require.NoError(t, err)

	_, err = svc.Edit(ctx, video.VideoID, c.ID.Hex(), "other", "bye")
	assert.ErrorIs(t, err, ErrForbidden)

	// Forbidden edit leaves the comment untouched.
	stored, err := videos.GetByVideoID(ctx, video.VideoID)
	require.NoError(t, err)
	assert.Equal(t, "hi", stored.Comments[0].Text)
	assert.Nil(t, stored.Comments[0].EditedAt)

	edited, err := svc.Edit(ctx, video.VideoID, c.ID.Hex(), "author", "bye")
	require.NoError(t, err)
	assert.Equal(t, "bye", edited.Text)
	assert.NotNil(t, edited.EditedAt)

	stored, err = videos.GetByVideoID(ctx, video.VideoID)
	require.NoError(t, err)
	assert.Equal(t, "bye", stored.Comments[0].Text)
	assert.NotNil(t, stored.Comments[0].EditedAt)
}

func TestEditCommentNotFoundDistinctions(t *testing.T) {
	svc, _, video := newCommentFixture(t)
	ctx := context.Background()
	c, err := svc.Add(ctx, video.VideoID, "author", "hi")
	require.NoError(t, err)

	// Missing video, not missing comment.
	_, err = svc.Edit(ctx, "missing", c.ID.Hex(), "author", "bye")
	assert.ErrorIs(t, err, ErrVideoNotFound)

	// Existing video, unknown comment id.
	_, err = svc.Edit(ctx, video.VideoID, primitive.NewObjectID().Hex(), "author", "bye")
	assert.ErrorIs(t, err, ErrCommentNotFound)

	// Unparseable comment id behaves like an unknown comment.
	_, err = svc.Edit(ctx, video.VideoID, "not-an-objectid", "author", "bye")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	svc, videos, video := newCommentFixture(t)
	ctx := context.Background()
	c, err := svc.Add(ctx, video.VideoID, "author", "hi")
	require.NoError(t, err)

	err = svc.Delete(ctx, video.VideoID, c.ID.Hex(), "other")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(ctx, video.VideoID, c.ID.Hex(), "author"))
	stored, err := videos.GetByVideoID(ctx, video.VideoID)
	require.NoError(t, err)
	assert.Empty(t, stored.Comments)

	err = svc.Delete(ctx, video.VideoID, c.ID.Hex(), "author")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
