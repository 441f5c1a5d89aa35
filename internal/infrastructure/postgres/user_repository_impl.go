package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	"github.com/oksasatya/go-youtube-clone/internal/domain/repository"
)

const duplicateKeyCode = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func isDuplicateKey(err error) bool {
	type sqlState interface{ SQLState() string }
	var st sqlState
	return errors.As(err, &st) && st.SQLState() == duplicateKeyCode
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, avatar_url, banner_url, channel_description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Password, u.AvatarURL, u.BannerURL, u.ChannelDescription)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isDuplicateKey(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, avatar_url, banner_url, channel_description, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.AvatarURL,
		&u.BannerURL, &u.ChannelDescription, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) GetByIDs(ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, username, email, password_hash, avatar_url, banner_url, channel_description, created_at, updated_at
		FROM users
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.User, 0, len(ids))
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.AvatarURL,
			&u.BannerURL, &u.ChannelDescription, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, avatar_url, banner_url, channel_description, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`, email)

	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.AvatarURL,
		&u.BannerURL, &u.ChannelDescription, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, avatar_url = $4,
		    banner_url = $5, channel_description = $6, updated_at = $7
		WHERE id = $8
	`, u.Username, u.Email, u.Password, u.AvatarURL, u.BannerURL, u.ChannelDescription, u.UpdatedAt, u.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) AddLikedVideo(userID, videoID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_liked_videos (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO NOTHING
	`, userID, videoID)
	return err
}

func (r *UserRepository) RemoveLikedVideo(userID, videoID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		DELETE FROM user_liked_videos
		WHERE user_id = $1 AND video_id = $2
	`, userID, videoID)
	return err
}

func (r *UserRepository) ListLikedVideoIDs(userID string) ([]string, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT video_id
		FROM user_liked_videos
		WHERE user_id = $1
		ORDER BY liked_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
