package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Health       *handler.HealthHandler
	Jobs         *handler.JobsHandler
	Applications *handler.ApplicationHandler
	Dashboard    *handler.DashboardHandler
	Auth         *handler.AuthHandler

	Session *middleware.SessionMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerMetrics(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	required := r.Session.Required()

	jobs := api.Group("/jobs")
	r.Jobs.RegisterRoutes(jobs, required)
	jobs.Post("/:id/apply", required, r.Applications.HandleApply)

	api.Get("/applications", required, r.Applications.HandleListMine)
	api.Get("/dashboard", required, r.Dashboard.HandleGet)

	r.Auth.RegisterRoutes(api.Group("/auth"), r.Session.Optional())
}
