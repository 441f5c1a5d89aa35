package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	repo "github.com/oksasatya/go-youtube-clone/internal/domain/repository"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
	"github.com/oksasatya/go-youtube-clone/pkg/mailer"
)

// UserService owns registration, login, profile and channel-image
// flows. Avatars and banners land in GCS; the welcome email goes out
// through the RabbitMQ queue consumed by cmd/email_worker.
type UserService struct {
	Repo            repo.UserRepository
	JWT             *helpers.JWTManager
	GCS             *storage.Client
	GCSBucket       string
	Redis           *redis.Client
	Logger          *logrus.Logger
	Pub             *helpers.RabbitPublisher
	MailSendEnabled bool
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, gcs *storage.Client, gcsBucket string, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailSendEnabled bool) *UserService {
	return &UserService{
		Repo:            repo,
		JWT:             jwt,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		Redis:           rdb,
		Logger:          logger,
		Pub:             pub,
		MailSendEnabled: mailSendEnabled,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Avatar   string
}

// Register creates the account, issues a token pair and enqueues the
// welcome email (best effort; registration never fails on mail).
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, TokenPair, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	avatar := in.Avatar
	if avatar == "" {
		avatar = entity.DefaultAvatarURL
	}
	u := &entity.User{
		Username:  in.Username,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Password:  hash,
		AvatarURL: avatar,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, TokenPair{}, ErrEmailTaken
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if s.Pub != nil && s.MailSendEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Username": u.Username},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}

	return u, pair, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"username":   u.Username,
			"avatar_url": u.AvatarURL,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// GetProfile loads the user plus the liked-video id set.
func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	liked, err := s.Repo.ListLikedVideoIDs(userID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("liked videos lookup failed")
		}
		liked = []string{}
	}
	u.LikedVideoIDs = liked
	return u, nil
}

type UpdateProfileInput struct {
	Username           string
	Email              string
	ChannelDescription *string
}

// UpdateProfile applies partial updates to the allowed profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.ChannelDescription != nil {
		u.ChannelDescription = *in.ChannelDescription
	}
	if err := s.Repo.Update(u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"username":   u.Username,
			"email":      u.Email,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return s.GetProfile(u.ID)
}

// ChannelImageUploader is the shape shared by UploadAvatar and
// UploadBanner, so handlers can route both through one code path.
type ChannelImageUploader func(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error)

// UploadAvatar stores the image in GCS under avatars/<uid>/ and points
// the profile at the public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	return s.uploadChannelImage(ctx, userID, r, filename, contentType, "avatars")
}

// UploadBanner is the banner twin of UploadAvatar.
func (s *UserService) UploadBanner(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	return s.uploadChannelImage(ctx, userID, r, filename, contentType, "banners")
}

func (s *UserService) uploadChannelImage(ctx context.Context, userID string, r io.Reader, filename, contentType, folder string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join(folder, userID, id+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	switch folder {
	case "banners":
		u.BannerURL = url
	default:
		u.AvatarURL = url
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		s.Redis.HSet(ctx, key, map[string]any{
			"avatar_url": u.AvatarURL,
			"updated_at": nowRFC3339(),
		})
	}
	return s.GetProfile(u.ID)
}
