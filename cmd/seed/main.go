package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-youtube-clone/config"
	"github.com/oksasatya/go-youtube-clone/internal/domain/entity"
	"github.com/oksasatya/go-youtube-clone/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-youtube-clone/pkg/helpers"
	"github.com/oksasatya/go-youtube-clone/pkg/videolink"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	username := "demoChannel"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET username=EXCLUDED.username
		RETURNING id
	`, username, email, hash, entity.DefaultAvatarURL).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", id, email, username, password)

	client, err := mongodb.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	videos := mongodb.NewVideoRepository(client, cfg.MongoDB, cfg.MongoVideosColl)
	if err := videos.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	samples := []struct {
		title, category, url string
	}{
		{"Go in 100 Seconds", "programming", "https://www.youtube.com/watch?v=446E-r0rXHI"},
		{"Lofi beats to code to", "music", "https://youtu.be/jfKfPfyJRdk"},
		{"Trail running the Alps", "sports", "https://cdn.example.com/videos/alps-run.mp4"},
	}
	for _, s := range samples {
		link := videolink.Normalize(s.url)
		v := &entity.Video{
			VideoID:      uuid.NewString(),
			Title:        s.title,
			Description:  "Seeded demo video.",
			Category:     s.category,
			ChannelID:    id,
			VideoURL:     link.VideoURL,
			ThumbnailURL: link.ThumbnailURL,
		}
		if err := videos.Create(ctx, v); err != nil {
			log.Fatalf("failed to seed video %q: %v", s.title, err)
		}
		fmt.Printf("seeded video: %s (%s)\n", v.Title, v.VideoID)
	}
}
