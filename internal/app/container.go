package app

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/infrastructure/oauth"
	"jobboard/internal/infrastructure/session"
	"jobboard/internal/logger"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	"jobboard/migrations"

	log "github.com/sirupsen/logrus"
)

type Usecases struct {
	Jobs         usecase.JobUsecase
	Applications usecase.ApplicationUsecase
	Dashboard    usecase.DashboardUsecase
	Auth         usecase.AuthUsecase
}

type Container struct {
	Config   config.Config
	DB       database.DB
	Sessions session.Store
	Usecases Usecases

	closers []func() error
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, DB: db, closers: []func() error{db.Close}}

	c.Sessions = newSessionStore(ctx, cfg.Redis)
	if closer, ok := c.Sessions.(interface{ Close() error }); ok {
		c.closers = append(c.closers, closer.Close)
	}

	providers := oauth.NewRegistry(cfg.OAuth, cfg.App.BaseURL)
	if len(providers.Names()) == 0 {
		log.Warn("no OAuth provider configured, sign-in is unavailable")
	}

	c.Usecases = NewUsecases(db, providers, jwt.NewHMACService(cfg.Session.Secret, cfg.Session.TTL, cfg.App.AppName), c.Sessions)
	return c, nil
}

// NewUsecases wires the repositories over db into the application usecases.
func NewUsecases(db database.DB, providers usecase.ProviderRegistry, tokens jwt.Service, sessions session.Store) Usecases {
	jobs := repository.NewPostgresJobRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)
	users := repository.NewPostgresUserRepository(db)

	return Usecases{
		Jobs:         usecase.NewJobUsecase(jobs),
		Applications: usecase.NewApplicationUsecase(jobs, apps),
		Dashboard:    usecase.NewDashboardUsecase(jobs, apps),
		Auth:         usecase.NewAuthUsecase(providers, users, tokens, sessions),
	}
}

// Migrate applies pending schema migrations, preferring files under
// MIGRATIONS_DIR and falling back to the ones built into the binary.
func (c *Container) Migrate(ctx context.Context) error {
	return Migrate(ctx, c.DB, c.Config.Database.MigrationsDir)
}

// Migrate applies pending migrations from dir, or from the embedded set when
// dir does not exist. cmd/migrate calls it without building a Container.
func Migrate(ctx context.Context, db database.DB, dir string) error {
	if db == nil {
		return database.ErrNilDB
	}
	r := migration.Runner{Dir: dir, Source: migrations.FS}
	applied, err := r.Run(ctx, db.SQLDB())
	if err != nil {
		return err
	}
	log.WithField("applied", len(applied)).Info("migrations up to date")
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newSessionStore(ctx context.Context, cfg config.RedisConfig) session.Store {
	if !cfg.Enabled() {
		log.Info("REDIS_HOST not set, using in-memory session store")
		return session.NewMemory()
	}

	store, err := session.NewRedis(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField(logger.ErrorTypeField, logger.ErrorTypeSession).
			Error("redis unavailable, falling back to in-memory session store")
		return session.NewMemory()
	}
	return store
}
