package entity

import (
	"time"
)

// DefaultAvatarURL is assigned at registration when the user has not
// uploaded a profile picture yet.
const DefaultAvatarURL = "https://i.pravatar.cc/150"

// User is the aggregate root for the user/channel domain. A user IS a
// channel: uploaded videos reference the user id directly.
// Passwords are stored as bcrypt hashes in Password field and are never
// serialized outward.
type User struct {
	ID                 string
	Username           string
	Email              string
	Password           string
	AvatarURL          string
	BannerURL          string
	ChannelDescription string
	LikedVideoIDs      []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Public returns the outward-facing representation without the
// credential field.
func (u *User) Public() map[string]any {
	liked := u.LikedVideoIDs
	if liked == nil {
		liked = []string{}
	}
	return map[string]any{
		"id":                 u.ID,
		"username":           u.Username,
		"email":              u.Email,
		"avatar":             u.AvatarURL,
		"banner":             u.BannerURL,
		"channelDescription": u.ChannelDescription,
		"likedVideos":        liked,
		"createdAt":          u.CreatedAt,
		"updatedAt":          u.UpdatedAt,
	}
}
