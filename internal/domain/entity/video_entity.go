package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lives embedded inside its parent Video document and shares
// its lifecycle. EditedAt stays nil until the first edit.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Text      string             `bson:"text" json:"text"`
	EditedAt  *time.Time         `bson:"editedAt" json:"editedAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Channel is the uploader info attached to video responses. Listings
// populate username + avatar so clients never join on their side.
type Channel struct {
	ID       string `bson:"-" json:"id"`
	Username string `bson:"-" json:"username"`
	Avatar   string `bson:"-" json:"avatar"`
}

// Video is the document stored in MongoDB. VideoID is the external,
// immutable identifier; the Mongo _id never leaves the service.
// Likes and Dislikes are sets of user ids and stay disjoint: every
// update that toggles one side clears the other in the same operation.
type Video struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	VideoID      string             `bson:"videoId" json:"videoId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Category     string             `bson:"category" json:"category"`
	ChannelID    string             `bson:"channelId" json:"channelId"`
	Channel      *Channel           `bson:"-" json:"channel,omitempty"`
	VideoURL     string             `bson:"videoUrl" json:"videoUrl"`
	ThumbnailURL string             `bson:"thumbnailUrl" json:"thumbnailUrl"`
	Views        int64              `bson:"views" json:"views"`
	Likes        []string           `bson:"likes" json:"likes"`
	Dislikes     []string           `bson:"dislikes" json:"dislikes"`
	Comments     []Comment          `bson:"comments" json:"comments"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LikedBy reports membership in the likes set.
func (v *Video) LikedBy(userID string) bool {
	for _, id := range v.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// DislikedBy reports membership in the dislikes set.
func (v *Video) DislikedBy(userID string) bool {
	for _, id := range v.Dislikes {
		if id == userID {
			return true
		}
	}
	return false
}

// FindComment returns the embedded comment with the given id, or nil.
func (v *Video) FindComment(commentID primitive.ObjectID) *Comment {
	for i := range v.Comments {
		if v.Comments[i].ID == commentID {
			return &v.Comments[i]
		}
	}
	return nil
}
