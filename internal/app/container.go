package app

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/skill"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/mailer"
	"jobboard/internal/pkg/resumetext"
	"jobboard/internal/pkg/textgen"
	"jobboard/internal/repository"
	"jobboard/internal/repository/memory"
	"jobboard/internal/scheduler"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"

	"go.uber.org/zap"
)

// Repositories groups the storage ports the usecases depend on.
type Repositories struct {
	Users         repository.UserRepository
	Jobs          repository.JobRepository
	Applications  repository.ApplicationRepository
	Moderation    repository.ModerationRepository
	Notifications repository.NotificationRepository
	SavedJobs     repository.SavedJobRepository
}

type Container struct {
	Config config.Config
	Logger *zap.Logger

	// DB is nil when the memory driver is selected.
	DB    database.DB
	Repos Repositories
	Cache *cache.Redis

	JWT      jwt.Service
	Registry *ws.Registry

	Auth          *usecase.Auth
	Jobs          *usecase.Jobs
	Applications  *usecase.Applications
	Moderation    *usecase.Moderation
	Notifications *usecase.Notifications
	Profiles      *usecase.Profiles
	AI            *usecase.AI

	Scheduler *scheduler.Scheduler
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := &Container{Config: cfg, Logger: log}

	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		c.Repos = Repositories{
			Users:         store.Users(),
			Jobs:          store.Jobs(),
			Applications:  store.Applications(),
			Moderation:    store.Moderation(),
			Notifications: store.Notifications(),
			SavedJobs:     store.SavedJobs(),
		}
		log.Warn("using in-memory store, data is lost on restart")
	case "", "postgres":
		db, err := dbpostgres.Connect(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Repos = Repositories{
			Users:         repository.NewPostgresUserRepository(db),
			Jobs:          repository.NewPostgresJobRepository(db),
			Applications:  repository.NewPostgresApplicationRepository(db),
			Moderation:    repository.NewPostgresModerationRepository(db),
			Notifications: repository.NewPostgresNotificationRepository(db),
			SavedJobs:     repository.NewPostgresSavedJobRepository(db),
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, log.Named("cache"))

	gen, err := textgen.New(ctx, cfg.AI)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("text generator: %w", err)
	}
	mail, err := mailer.New(cfg.Mail, log.Named("mail"))
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("mailer: %w", err)
	}

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Registry = ws.NewRegistry(log.Named("ws"))

	vocab := skill.DefaultVocabulary()
	resumes := storage.NewLocal(cfg.Storage.UploadDir, cfg.Storage.MaxResumeBytes)

	c.Auth = usecase.NewAuthUsecase(c.Repos.Users, c.JWT)
	c.Jobs = usecase.NewJobUsecase(c.Repos.Jobs, c.Repos.SavedJobs, c.Cache, log)
	c.Applications = usecase.NewApplicationUsecase(
		c.Repos.Jobs,
		c.Repos.Applications,
		c.Repos.Users,
		resumes,
		vocab,
		resumetext.Extract,
		mail,
		c.Registry,
		log,
	)
	c.Moderation = usecase.NewModerationUsecase(c.Repos.Jobs, c.Repos.Moderation, c.Registry, c.Cache, log)
	c.Notifications = usecase.NewNotificationUsecase(c.Repos.Notifications, log)
	c.Profiles = usecase.NewProfileUsecase(c.Repos.Users, resumes, log)
	c.AI = usecase.NewAIUsecase(
		gen,
		c.Repos.Users,
		c.Repos.Jobs,
		vocab,
		resumetext.Extract,
		usecase.AIOptions{Timeout: cfg.AI.Timeout, RatePerMinute: cfg.AI.RatePerMinute},
		log,
	)

	c.Scheduler = scheduler.New(
		c.Notifications,
		cfg.Scheduler.NotificationRetentionSpec,
		cfg.Scheduler.RetentionDays,
		log.Named("scheduler"),
	)

	return c, nil
}

// Close waits for in-flight applicant mails, then releases the cache and
// the database.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Applications != nil {
		c.Applications.Wait()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
