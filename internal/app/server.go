package app

import (
	"time"

	"quiz-practice/internal/config"
	"quiz-practice/internal/handler"
	"quiz-practice/internal/metrics"
	"quiz-practice/internal/middleware"
	"quiz-practice/internal/service"
	"quiz-practice/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer builds the fiber app with every route registered. scheduler may
// be shared with the caller so it can be stopped on shutdown.
func NewServer(cfg *config.Config, c *Components, scheduler *service.Scheduler) *fiber.App {
	validator := validation.NewValidator(cfg.Generation.Categories, cfg.Generation.MaxCount)

	generationHandler := handler.NewGenerationHandler(c.Generation, validator, cfg.Generation)
	questionHandler := handler.NewQuestionHandler(c.QuestionService, validator)
	recordHandler := handler.NewRecordHandler(c.QuestionService, validator)
	schedulerHandler := handler.NewSchedulerHandler(scheduler, validator, cfg.Scheduler.Category)
	validationMiddleware := middleware.NewValidationMiddleware(validator)
	generateLimiter := middleware.NewRateLimiter(cfg.RateLimit.GeneratePerMinute, cfg.RateLimit.Burst)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(metrics.Middleware())

	app.Get("/health", handler.Health(c.DB))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Post("/generate", generateLimiter.Handler(), generationHandler.Generate)

	api.Get("/questions", validationMiddleware.ValidateCategoryQuery(), questionHandler.ListQuestions)
	api.Post("/questions", questionHandler.CreateQuestion)

	api.Get("/records", recordHandler.ListRecords)
	api.Post("/records", recordHandler.RecordAnswer)

	api.Get("/scheduler", schedulerHandler.Status)
	api.Post("/scheduler/start", schedulerHandler.Start)
	api.Post("/scheduler/stop", schedulerHandler.Stop)

	return app
}
