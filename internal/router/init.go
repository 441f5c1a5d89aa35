package router

import (
	app "github.com/oksasatya/go-youtube-clone/internal/application"
	"github.com/oksasatya/go-youtube-clone/internal/container"
	"github.com/oksasatya/go-youtube-clone/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/go-youtube-clone/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-youtube-clone/internal/interface/http"
	"github.com/oksasatya/go-youtube-clone/internal/router/modules"
)

// InitModules builds the repositories/services/handlers from the
// container singletons and registers every feature module.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	videoRepo := mongodb.NewVideoRepository(container.GetMongo(), cfg.MongoDB, cfg.MongoVideosColl)

	userSvc := app.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
	)
	videoSvc := app.NewVideoService(
		videoRepo,
		userRepo,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESVideosIndex,
	)
	commentSvc := app.NewCommentService(videoRepo, userRepo, container.GetLogger())

	logger := container.GetLogger()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt, userRepo))
	r.Add(modules.NewVideoModule(handlers.NewVideoHandler(videoSvc, logger), jwt, userRepo))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, logger), jwt, userRepo))
}
