package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	repo "github.com/oksasatya/go-youtube-clone/internal/domain/repository"
)

// CommentService manages the comment arrays embedded in video
// documents. Comments have no standalone collection; every operation
// goes through the parent video.
type CommentService struct {
	Videos repo.VideoRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewCommentService(videos repo.VideoRepository, users repo.UserRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Videos: videos, Users: users, Logger: logger}
}

// Add appends a comment to the video and returns it. The author id
// comes from the authenticated caller, never from the request body.
func (s *CommentService) Add(ctx context.Context, videoID, authorID, text string) (*entity.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.Users.GetByID(authorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	c := &entity.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Videos.PushComment(ctx, videoID, c); err != nil {
		return nil, mapVideoErr(err)
	}
	return c, nil
}

// Edit replaces the comment text and stamps editedAt. Only the author
// may edit.
func (s *CommentService) Edit(ctx context.Context, videoID, commentIDHex, requesterID, text string) (*entity.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}
	commentID, c, err := s.resolve(ctx, videoID, commentIDHex)
	if err != nil {
		return nil, err
	}
	if c.UserID != requesterID {
		return nil, ErrForbidden
	}

	editedAt := time.Now().UTC()
	if err := s.Videos.SetCommentText(ctx, videoID, commentID, text, editedAt); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	c.Text = text
	c.EditedAt = &editedAt
	return c, nil
}

// Delete removes the comment from the array. Author-only, same
// not-found semantics as Edit.
func (s *CommentService) Delete(ctx context.Context, videoID, commentIDHex, requesterID string) error {
	commentID, c, err := s.resolve(ctx, videoID, commentIDHex)
	if err != nil {
		return err
	}
	if c.UserID != requesterID {
		return ErrForbidden
	}

	if err := s.Videos.PullComment(ctx, videoID, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// resolve loads the parent video and locates the comment, so ownership
// can be checked before any write happens. A missing video stays
// distinct from a missing comment.
func (s *CommentService) resolve(ctx context.Context, videoID, commentIDHex string) (primitive.ObjectID, *entity.Comment, error) {
	commentID, err := primitive.ObjectIDFromHex(commentIDHex)
	if err != nil {
		return primitive.NilObjectID, nil, ErrCommentNotFound
	}
	v, err := s.Videos.GetByVideoID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return primitive.NilObjectID, nil, ErrVideoNotFound
		}
		return primitive.NilObjectID, nil, err
	}
	c := v.FindComment(commentID)
	if c == nil {
		return primitive.NilObjectID, nil, ErrCommentNotFound
	}
	return commentID, c, nil
}
