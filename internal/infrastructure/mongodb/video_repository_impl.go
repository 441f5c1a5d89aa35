package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	"github.com/oksasatya/go-youtube-clone/internal/domain/repository"
)

// VideoRepository persists Video documents with embedded comments.
// All writes address a single document by its external videoId; the
// engagement updates run server-side so concurrent toggles by different
// users cannot lose each other's membership changes.
type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(client *mongo.Client, db, collection string) *VideoRepository {
	return &VideoRepository{coll: client.Database(db).Collection(collection)}
}

// EnsureIndexes creates the unique external-id index and the listing
// indexes. Called once at startup, mirroring the SQL migration step.
func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "videoId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "channelId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *VideoRepository) Create(ctx context.Context, v *entity.Video) error {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.Likes == nil {
		v.Likes = []string{}
	}
	if v.Dislikes == nil {
		v.Dislikes = []string{}
	}
	if v.Comments == nil {
		v.Comments = []entity.Comment{}
	}
	res, err := r.coll.InsertOne(ctx, v)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (r *VideoRepository) List(ctx context.Context) ([]entity.Video, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *VideoRepository) GetByVideoID(ctx context.Context, videoID string) (*entity.Video, error) {
	v := &entity.Video{}
	err := r.coll.FindOne(ctx, bson.M{"videoId": videoID}).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VideoRepository) ListByChannel(ctx context.Context, channelID string) ([]entity.Video, error) {
	return r.find(ctx, bson.M{"channelId": channelID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *VideoRepository) ListSuggested(ctx context.Context, category, excludeID string, limit int64) ([]entity.Video, error) {
	filter := bson.M{"category": category, "videoId": bson.M{"$ne": excludeID}}
	return r.find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
}

func (r *VideoRepository) UpdateDetails(ctx context.Context, videoID string, title, description, category *string) (*entity.Video, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if title != nil {
		set["title"] = *title
	}
	if description != nil {
		set["description"] = *description
	}
	if category != nil {
		set["category"] = *category
	}
	return r.findOneAndUpdate(ctx, videoID, bson.M{"$set": set})
}

func (r *VideoRepository) Delete(ctx context.Context, videoID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"videoId": videoID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, videoID string) (*entity.Video, error) {
	return r.findOneAndUpdate(ctx, videoID, bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
}

// SetLike removes the user from dislikes and adds it to likes in one
// atomic update, so the disjointness invariant never breaks mid-write.
func (r *VideoRepository) SetLike(ctx context.Context, videoID, userID string) (*entity.Video, error) {
	return r.findOneAndUpdate(ctx, videoID, bson.M{
		"$pull":     bson.M{"dislikes": userID},
		"$addToSet": bson.M{"likes": userID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *VideoRepository) UnsetLike(ctx context.Context, videoID, userID string) (*entity.Video, error) {
	return r.findOneAndUpdate(ctx, videoID, bson.M{
		"$pull": bson.M{"likes": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

// SetDislike is the mirror of SetLike.
func (r *VideoRepository) SetDislike(ctx context.Context, videoID, userID string) (*entity.Video, error) {
	return r.findOneAndUpdate(ctx, videoID, bson.M{
		"$pull":     bson.M{"likes": userID},
		"$addToSet": bson.M{"dislikes": userID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *VideoRepository) UnsetDislike(ctx context.Context, videoID, userID string) (*entity.Video, error) {
	return r.findOneAndUpdate(ctx, videoID, bson.M{
		"$pull": bson.M{"dislikes": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *VideoRepository) PushComment(ctx context.Context, videoID string, c *entity.Comment) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"videoId": videoID}, bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) SetCommentText(ctx context.Context, videoID string, commentID primitive.ObjectID, text string, editedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"videoId": videoID, "comments._id": commentID},
		bson.M{"$set": bson.M{
			"comments.$.text":     text,
			"comments.$.editedAt": editedAt,
			"updatedAt":           time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) PullComment(ctx context.Context, videoID string, commentID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"videoId": videoID}, bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.Video, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	videos := make([]entity.Video, 0)
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *VideoRepository) findOneAndUpdate(ctx context.Context, videoID string, update bson.M) (*entity.Video, error) {
	v := &entity.Video{}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"videoId": videoID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
