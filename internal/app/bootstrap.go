package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/metrics"

	"github.com/gofiber/fiber/v3"
	log "github.com/sirupsen/logrus"
)

type App struct {
	Fiber *fiber.App
}

// New builds the HTTP application over uc. checks are the dependencies
// reported by /health.
func New(cfg config.Config, uc Usecases, checks map[string]handler.Pinger) *App {
	metrics.Register()

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f)
	registerRoutes(f, cfg, uc, checks)

	return &App{Fiber: f}
}

// Bootstrap connects every dependency, optionally migrates, and returns the
// app together with the cleanup that releases those dependencies.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := c.Migrate(ctx); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	app := New(cfg, c.Usecases, map[string]handler.Pinger{
		"database": c.DB,
		"sessions": c.Sessions,
	})
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log.StandardLogger()).Middleware())
	app.Use(middleware.NewMetricsMiddleware().Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func registerRoutes(app *fiber.App, cfg config.Config, uc Usecases, checks map[string]handler.Pinger) {
	if app == nil {
		return
	}

	r := &routes.Registry{
		Health:       handler.NewHealthHandler(checks),
		Jobs:         handler.NewJobsHandler(uc.Jobs),
		Applications: handler.NewApplicationHandler(uc.Applications),
		Dashboard:    handler.NewDashboardHandler(uc.Dashboard),
		Auth: handler.NewAuthHandler(uc.Auth, handler.CookieConfig{
			Name:       cfg.Session.CookieName,
			Secure:     strings.HasPrefix(cfg.App.BaseURL, "https://"),
			SignInPath: cfg.Session.SignInPath,
		}),
		Session: middleware.NewSessionMiddleware(uc.Auth, middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			SignInPath: cfg.Session.SignInPath,
		}),
	}
	r.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
