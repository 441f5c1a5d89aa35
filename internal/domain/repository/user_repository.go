package repository

import "github.com/oksasatya/go-youtube-clone/internal/domain/entity"

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByIDs(ids []string) ([]*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error

	// Liked-video set, mirrored from the likes array on the video
	// document so a profile read does not fan out over the whole
	// videos collection.
	AddLikedVideo(userID, videoID string) error
	RemoveLikedVideo(userID, videoID string) error
	ListLikedVideoIDs(userID string) ([]string, error)
}
