package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
)

// VideoRepository defines the document-store operations for videos and
// their embedded comments. Every mutation is a single-document update;
// the engagement operations return the post-update document.
type VideoRepository interface {
	Create(ctx context.Context, v *entity.Video) error
	List(ctx context.Context) ([]entity.Video, error)
	GetByVideoID(ctx context.Context, videoID string) (*entity.Video, error)
	ListByChannel(ctx context.Context, channelID string) ([]entity.Video, error)
	ListSuggested(ctx context.Context, category, excludeID string, limit int64) ([]entity.Video, error)
	UpdateDetails(ctx context.Context, videoID string, title, description, category *string) (*entity.Video, error)
	Delete(ctx context.Context, videoID string) error

	// Engagement: server-side atomic updates ($inc / $addToSet / $pull).
	IncrementViews(ctx context.Context, videoID string) (*entity.Video, error)
	SetLike(ctx context.Context, videoID, userID string) (*entity.Video, error)
	UnsetLike(ctx context.Context, videoID, userID string) (*entity.Video, error)
	SetDislike(ctx context.Context, videoID, userID string) (*entity.Video, error)
	UnsetDislike(ctx context.Context, videoID, userID string) (*entity.Video, error)

	// Embedded comments.
	PushComment(ctx context.Context, videoID string, c *entity.Comment) error
	SetCommentText(ctx context.Context, videoID string, commentID primitive.ObjectID, text string, editedAt time.Time) error
	PullComment(ctx context.Context, videoID string, commentID primitive.ObjectID) error
}
