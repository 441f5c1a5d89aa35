package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	repo "github.com/oksasatya/go-youtube-clone/internal/domain/repository"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
	"github.com/oksasatya/go-youtube-clone/pkg/videolink"
)

const (
	suggestedLimit   = 8
	listCacheKey     = "videos:list"
	listCacheTTL     = 30 * time.Second
	esRequestTimeout = 3 * time.Second
)

// VideoService owns the video lifecycle and the engagement state
// machine (views, likes, dislikes). Listings are cached briefly in
// Redis; title/description/category are indexed into Elasticsearch for
// search.
type VideoService struct {
	Videos        repo.VideoRepository
	Users         repo.UserRepository
	Redis         *redis.Client
	Logger        *logrus.Logger
	ES            *elasticsearch.Client
	ESVideosIndex string
}

func NewVideoService(videos repo.VideoRepository, users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *VideoService {
	return &VideoService{
		Videos:        videos,
		Users:         users,
		Redis:         rdb,
		Logger:        logger,
		ES:            es,
		ESVideosIndex: esIndex,
	}
}

type UploadVideoInput struct {
	Title       string
	Description string
	Category    string
	VideoURL    string
}

// Upload normalizes the submitted URL, assigns the external id and
// persists the document.
func (s *VideoService) Upload(ctx context.Context, channelID string, in UploadVideoInput) (*entity.Video, error) {
	if strings.TrimSpace(in.VideoURL) == "" {
		return nil, ErrMissingVideoURL
	}
	link := videolink.Normalize(in.VideoURL)

	v := &entity.Video{
		VideoID:      uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		ChannelID:    channelID,
		VideoURL:     link.VideoURL,
		ThumbnailURL: link.ThumbnailURL,
	}
	if err := s.Videos.Create(ctx, v); err != nil {
		return nil, err
	}

	s.indexVideo(ctx, v)
	s.invalidateListCache(ctx)
	return s.populateOne(ctx, v), nil
}

// List returns all videos newest first, with a short Redis cache in
// front of the document store.
func (s *VideoService) List(ctx context.Context) ([]entity.Video, error) {
	if s.Redis != nil {
		var cached []entity.Video
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, listCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	videos, err := s.Videos.List(ctx)
	if err != nil {
		return nil, err
	}
	videos = s.populate(ctx, videos)

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, listCacheKey, videos, listCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("video list cache write failed")
		}
	}
	return videos, nil
}

func (s *VideoService) Get(ctx context.Context, videoID string) (*entity.Video, error) {
	v, err := s.Videos.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, mapVideoErr(err)
	}
	return s.populateOne(ctx, v), nil
}

func (s *VideoService) Suggested(ctx context.Context, category, excludeID string) ([]entity.Video, error) {
	videos, err := s.Videos.ListSuggested(ctx, category, excludeID, suggestedLimit)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, videos), nil
}

func (s *VideoService) ChannelVideos(ctx context.Context, channelID string) ([]entity.Video, error) {
	videos, err := s.Videos.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, videos), nil
}

type UpdateVideoInput struct {
	Title       *string
	Description *string
	Category    *string
}

// Update mutates title/description/category. Existence is checked
// before ownership so a missing video is always 404, never 403.
func (s *VideoService) Update(ctx context.Context, videoID, requesterID string, in UpdateVideoInput) (*entity.Video, error) {
	v, err := s.Videos.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, mapVideoErr(err)
	}
	if err := assertOwner(v, requesterID); err != nil {
		return nil, err
	}

	updated, err := s.Videos.UpdateDetails(ctx, videoID, in.Title, in.Description, in.Category)
	if err != nil {
		return nil, mapVideoErr(err)
	}

	s.indexVideo(ctx, updated)
	s.invalidateListCache(ctx)
	return s.populateOne(ctx, updated), nil
}

// Delete removes the video document (taking its comments with it) plus
// its search-index entry.
func (s *VideoService) Delete(ctx context.Context, videoID, requesterID string) error {
	v, err := s.Videos.GetByVideoID(ctx, videoID)
	if err != nil {
		return mapVideoErr(err)
	}
	if err := assertOwner(v, requesterID); err != nil {
		return err
	}

	if err := s.Videos.Delete(ctx, videoID); err != nil {
		return mapVideoErr(err)
	}

	s.deleteVideoIndex(ctx, videoID)
	s.invalidateListCache(ctx)
	return nil
}

// AddView bumps the view counter by exactly one. Views are not
// deduplicated per caller; N calls mean N increments.
func (s *VideoService) AddView(ctx context.Context, videoID string) (*entity.Video, error) {
	v, err := s.Videos.IncrementViews(ctx, videoID)
	if err != nil {
		return nil, mapVideoErr(err)
	}
	return s.populateOne(ctx, v), nil
}

// ToggleLike flips the caller's membership in the likes set. The
// dislike entry is cleared in the same document update, so the two sets
// can never both contain the user.
func (s *VideoService) ToggleLike(ctx context.Context, videoID, userID string) (*entity.Video, error) {
	v, err := s.Videos.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, mapVideoErr(err)
	}

	var updated *entity.Video
	if v.LikedBy(userID) {
		updated, err = s.Videos.UnsetLike(ctx, videoID, userID)
		s.mirrorLikedVideo(userID, videoID, false)
	} else {
		updated, err = s.Videos.SetLike(ctx, videoID, userID)
		s.mirrorLikedVideo(userID, videoID, true)
	}
	if err != nil {
		return nil, mapVideoErr(err)
	}
	return s.populateOne(ctx, updated), nil
}

// ToggleDislike is symmetric to ToggleLike: the like entry is removed
// unconditionally, then dislike membership flips.
func (s *VideoService) ToggleDislike(ctx context.Context, videoID, userID string) (*entity.Video, error) {
	v, err := s.Videos.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, mapVideoErr(err)
	}

	var updated *entity.Video
	if v.DislikedBy(userID) {
		updated, err = s.Videos.UnsetDislike(ctx, videoID, userID)
	} else {
		updated, err = s.Videos.SetDislike(ctx, videoID, userID)
	}
	if err != nil {
		return nil, mapVideoErr(err)
	}
	// Either branch leaves the user outside the likes set.
	s.mirrorLikedVideo(userID, videoID, false)
	return s.populateOne(ctx, updated), nil
}

// Search runs a multi_match query over the video index.
func (s *VideoService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESVideosIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, esRequestTimeout)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESVideosIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// assertOwner gates every owner-only mutation. Callers must have
// resolved the video first: existence precedes authorization.
func assertOwner(v *entity.Video, requesterID string) error {
	if v.ChannelID != requesterID {
		return ErrForbidden
	}
	return nil
}

func mapVideoErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}

// mirrorLikedVideo keeps the user's liked-video set in step with the
// likes array on the document. Best effort: the video document is the
// source of truth.
func (s *VideoService) mirrorLikedVideo(userID, videoID string, liked bool) {
	var err error
	if liked {
		err = s.Users.AddLikedVideo(userID, videoID)
	} else {
		err = s.Users.RemoveLikedVideo(userID, videoID)
	}
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"video_id": videoID,
		}).Warn("liked videos mirror failed")
	}
}

// populate attaches uploader info (username + avatar) to each video in
// one batched user lookup.
func (s *VideoService) populate(ctx context.Context, videos []entity.Video) []entity.Video {
	if len(videos) == 0 {
		return videos
	}
	seen := make(map[string]struct{}, len(videos))
	ids := make([]string, 0, len(videos))
	for i := range videos {
		if _, ok := seen[videos[i].ChannelID]; !ok {
			seen[videos[i].ChannelID] = struct{}{}
			ids = append(ids, videos[i].ChannelID)
		}
	}

	users, err := s.Users.GetByIDs(ids)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("channel populate failed")
		}
		return videos
	}
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range videos {
		if u, ok := byID[videos[i].ChannelID]; ok {
			videos[i].Channel = &entity.Channel{ID: u.ID, Username: u.Username, Avatar: u.AvatarURL}
		}
	}
	return videos
}

func (s *VideoService) populateOne(ctx context.Context, v *entity.Video) *entity.Video {
	out := s.populate(ctx, []entity.Video{*v})
	return &out[0]
}

func (s *VideoService) indexVideo(ctx context.Context, v *entity.Video) {
	if s.ES == nil || s.ESVideosIndex == "" {
		return
	}
	doc := map[string]any{
		"videoId":      v.VideoID,
		"title":        v.Title,
		"description":  v.Description,
		"category":     v.Category,
		"channelId":    v.ChannelID,
		"thumbnailUrl": v.ThumbnailURL,
		"createdAt":    v.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESVideosIndex, DocumentID: v.VideoID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, esRequestTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", v.VideoID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("video_id", v.VideoID).Warn("es index response error")
	}
}

func (s *VideoService) deleteVideoIndex(ctx context.Context, videoID string) {
	if s.ES == nil || s.ESVideosIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESVideosIndex, DocumentID: videoID}

	c, cancel := context.WithTimeout(ctx, esRequestTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", videoID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func (s *VideoService) invalidateListCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, listCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("video list cache invalidation failed")
	}
}
