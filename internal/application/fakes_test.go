package application

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	"github.com/oksasatya/go-youtube-clone/internal/domain/repository"
)

// In-memory doubles with the same semantics as the real stores: the
// video fake keeps likes/dislikes as sets and clears the opposite set
// inside a single operation, matching the atomic document updates.

type fakeUserRepo struct {
	users map[string]*entity.User
	liked map[string]map[string]bool
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[string]*entity.User),
		liked: make(map[string]map[string]bool),
	}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByIDs(ids []string) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range f.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) AddLikedVideo(userID, videoID string) error {
	if f.liked[userID] == nil {
		f.liked[userID] = make(map[string]bool)
	}
	f.liked[userID][videoID] = true
	return nil
}

func (f *fakeUserRepo) RemoveLikedVideo(userID, videoID string) error {
	delete(f.liked[userID], videoID)
	return nil
}

func (f *fakeUserRepo) ListLikedVideoIDs(userID string) ([]string, error) {
	out := make([]string, 0, len(f.liked[userID]))
	for id := range f.liked[userID] {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeUserRepo) mustAdd(id, username, email string) *entity.User {
	u := &entity.User{
		ID:        id,
		Username:  username,
		Email:     email,
		AvatarURL: entity.DefaultAvatarURL,
		CreatedAt: time.Now().UTC(),
	}
	f.users[id] = u
	return u
}

type fakeVideoRepo struct {
	videos map[string]*entity.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[string]*entity.Video)}
}

func (f *fakeVideoRepo) Create(_ context.Context, v *entity.Video) error {
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
	cp := *v
	f.videos[v.VideoID] = &cp
	return nil
}

func (f *fakeVideoRepo) get(videoID string) (*entity.Video, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func copyVideo(v *entity.Video) *entity.Video {
	cp := *v
	cp.Likes = append([]string(nil), v.Likes...)
	cp.Dislikes = append([]string(nil), v.Dislikes...)
	cp.Comments = append([]entity.Comment(nil), v.Comments...)
	return &cp
}

func (f *fakeVideoRepo) List(_ context.Context) ([]entity.Video, error) {
	out := make([]entity.Video, 0, len(f.videos))
	for _, v := range f.videos {
		out = append(out, *copyVideo(v))
	}
	return out, nil
}

func (f *fakeVideoRepo) GetByVideoID(_ context.Context, videoID string) (*entity.Video, error) {
	v, err := f.get(videoID)
	if err != nil {
		return nil, err
	}
	return copyVideo(v), nil
}

func (f *fakeVideoRepo) ListByChannel(_ context.Context, channelID string) ([]entity.Video, error) {
	out := make([]entity.Video, 0)
	for _, v := range f.videos {
		if v.ChannelID == channelID {
			out = append(out, *copyVideo(v))
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) ListSuggested(_ context.Context, category, excludeID string, limit int64) ([]entity.Video, error) {
	out := make([]entity.Video, 0)
	for _, v := range f.videos {
		if v.Category == category && v.VideoID != excludeID && int64(len(out)) < limit {
			out = append(out, *copyVideo(v))
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) UpdateDetails(_ context.Context, videoID string, title, description, category *string) (*entity.Video, error) {
	v, err := f.get(videoID)
	if err != nil {
		return nil, err
	}
	if title != nil {
		v.Title = *title
	}
	if description != nil {
		v.Description = *description
	}
	if category != nil {
		v.Category = *category
	}
	v.UpdatedAt = time.Now().UTC()
	return copyVideo(v), nil
}

func (f *fakeVideoRepo) Delete(_ context.Context, videoID string) error {
	if _, ok := f.videos[videoID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.videos, videoID)
	return nil
}

func (f *fakeVideoRepo) IncrementViews(_ context.Context, videoID string) (*entity.Video, error) {
	v, err := f.get(videoID)
	if err != nil {
		return nil, err
	}
	v.Views++
	return copyVideo(v), nil
}

func remove(set []string, id string) []string {
	out := set[:0]
	for _, s := range set {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}

func addToSet(set []string, id string) []string {
	for _, s := range set {
		if s == id {
			return set
		}
	}
	return append(set, id)
}

func (f *fakeVideoRepo) SetLike(_ context.Context, videoID, userID string) (*entity.Video, error) {
	v, err := f.get(videoID)
	if err != nil {
		return nil, err
	}
	v.Dislikes = remove(v.Dislikes, userID)
	v.Likes = addToSet(v.Likes, userID)
	return copyVideo(v), nil
}

func (f *fakeVideoRepo) UnsetLike(_ context.Context, videoID, userID string) (*entity.Video, error) {
	v, err := f.get(videoID)
	if err != nil {
		return nil, err
	}
	v.Likes = remove(v.Likes, userID)
	return copyVideo(v), nil
}

func (f *fakeVideoRepo) SetDislike(_ context.Context, videoID, userID string) (*entity.Video, error) {
	v, err := f.get(videoID)
	if err != nil {
		return nil, err
	}
	v.Likes = remove(v.Likes, userID)
	v.Dislikes = addToSet(v.Dislikes, userID)
	return copyVideo(v), nil
}

func (f *fakeVideoRepo) UnsetDislike(_ context.Context, videoID, userID string) (*entity.Video, error) {
	v, err := f.get(videoID)
	if err != nil {
		return nil, err
	}
	v.Dislikes = remove(v.Dislikes, userID)
	return copyVideo(v), nil
}

func (f *fakeVideoRepo) PushComment(_ context.Context, videoID string, c *entity.Comment) error {
	v, err := f.get(videoID)
	if err != nil {
		return err
	}
	v.Comments = append(v.Comments, *c)
	return nil
}

func (f *fakeVideoRepo) SetCommentText(_ context.Context, videoID string, commentID primitive.ObjectID, text string, editedAt time.Time) error {
	v, err := f.get(videoID)
	if err != nil {
		return err
	}
	for i := range v.Comments {
		if v.Comments[i].ID == commentID {
			v.Comments[i].Text = text
			at := editedAt
			v.Comments[i].EditedAt = &at
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeVideoRepo) PullComment(_ context.Context, videoID string, commentID primitive.ObjectID) error {
	v, err := f.get(videoID)
	if err != nil {
		return err
	}
	for i := range v.Comments {
		if v.Comments[i].ID == commentID {
			v.Comments = append(v.Comments[:i], v.Comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var (
	_ repository.UserRepository  = (*fakeUserRepo)(nil)
	_ repository.VideoRepository = (*fakeVideoRepo)(nil)
)
