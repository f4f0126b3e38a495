package router

import (
	availsvc "polypoint-backend/internal/application/availability"
	devsvc "polypoint-backend/internal/application/developers"
	impsvc "polypoint-backend/internal/application/improvements"
	"polypoint-backend/internal/config"
	"polypoint-backend/internal/infrastructure/cache"
	"polypoint-backend/internal/infrastructure/database"
	availhandler "polypoint-backend/internal/interfaces/handlers/availability"
	caphandler "polypoint-backend/internal/interfaces/handlers/capacity"
	devhandler "polypoint-backend/internal/interfaces/handlers/developers"
	healthhandler "polypoint-backend/internal/interfaces/handlers/health"
	imphandler "polypoint-backend/internal/interfaces/handlers/improvements"
	rechandler "polypoint-backend/internal/interfaces/handlers/reconcile"
	"polypoint-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration, and opens the record store and the optional dashboard cache.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *cache.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	dashCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}

	developers := &devsvc.Service{DB: db, Cache: dashCache}
	availability := &availsvc.Service{DB: db, Cache: dashCache}
	improvements := &impsvc.Service{DB: db}

	healthHandlers := &healthhandler.Handlers{DB: db, Cache: dashCache}
	app.Get("/health/json", healthHandlers.JSON)

	devHandlers := &devhandler.Handlers{Service: developers, DefaultPI: cfg.DefaultPI}
	devGroup := app.Group("/api/v1/developers")
	devGroup.Get("/", devHandlers.List)
	devGroup.Post("/", devHandlers.Save)
	devGroup.Get("/export.csv", devHandlers.ExportCSV)
	devGroup.Post("/import", devHandlers.ImportCSV)
	devGroup.Delete("/:key", devHandlers.Delete)

	availHandlers := &availhandler.Handlers{Service: availability, DefaultPI: cfg.DefaultPI}
	availGroup := app.Group("/api/v1/availabilities")
	availGroup.Get("/", availHandlers.List)
	availGroup.Post("/", availHandlers.Save)
	availGroup.Post("/seed", availHandlers.Seed)
	availGroup.Get("/export.csv", availHandlers.ExportCSV)
	availGroup.Post("/import", availHandlers.ImportCSV)

	capHandlers := &caphandler.Handlers{
		Developers:   developers,
		Availability: availability,
		Cache:        dashCache,
		DefaultPI:    cfg.DefaultPI,
	}
	capGroup := app.Group("/api/v1/capacity")
	capGroup.Get("/dashboard", capHandlers.Dashboard)
	capGroup.Get("/export.csv", capHandlers.ExportCSV)

	recHandlers := &rechandler.Handlers{
		Developers:   developers,
		Availability: availability,
		DefaultPI:    cfg.DefaultPI,
	}
	app.Post("/api/v1/reconcile/compare", recHandlers.Compare)

	impHandlers := &imphandler.Handlers{Service: improvements}
	impGroup := app.Group("/api/v1/improvements")
	impGroup.Get("/", impHandlers.List)
	impGroup.Post("/", impHandlers.Save)
	impGroup.Delete("/:id", impHandlers.Delete)

	return app, db, dashCache, nil
}
