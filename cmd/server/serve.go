package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/config"
	"github.com/fadilmartias/interview-quiz/internal/domain/fiber/handler"
	"github.com/fadilmartias/interview-quiz/internal/event"
	appLogger "github.com/fadilmartias/interview-quiz/internal/logger"
	"github.com/fadilmartias/interview-quiz/internal/middleware"
	"github.com/fadilmartias/interview-quiz/internal/repository"
	"github.com/fadilmartias/interview-quiz/internal/requestdata"
	"github.com/fadilmartias/interview-quiz/internal/service"
	"github.com/fadilmartias/interview-quiz/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	appConfig := config.LoadAppConfig()

	db, err := ConnectDB()
	if err != nil {
		return err
	}

	gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig())
	if err != nil {
		return err
	}
	identity, err := service.NewIdentityService(config.LoadAuthConfig())
	if err != nil {
		return err
	}
	events := newPublisher(log)
	defer events.Close()

	quizConfig := config.LoadQuizConfig()
	generator := usecase.NewQuestionGenerator(gemini, log, usecase.GeneratorConfig{
		QuestionCount: quizConfig.QuestionCount,
		MinQuestions:  quizConfig.MinQuestions,
		MaxAttempts:   quizConfig.MaxAttempts,
		RetryDelay:    quizConfig.RetryDelay,
	})
	uc := usecase.NewQuizUsecase(
		requestdata.Gate{},
		repository.NewUserRepository(db),
		repository.NewAssessmentRepository(db),
		generator,
		gemini,
		events,
		log,
	)

	app := newApp(appConfig, log, identity)
	handler.NewQuizHandler(uc).RegisterRoutes(app)

	go monitorGoroutines(ctx, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "port", appConfig.Port)
		errCh <- app.Listen(appConfig.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func newApp(appConfig *config.AppConfig, log *appLogger.Logger, identity service.IdentityServiceInterface) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	// Authenticate first so the limiter can count per user.
	app.Use(middleware.Authenticate(log, identity))
	app.Use(middleware.RateLimiter(50, time.Minute))
	return app
}

// newPublisher falls back to dropping events when AMQP is not configured or
// unreachable at startup.
func newPublisher(log *appLogger.Logger) event.Publisher {
	amqpConfig := config.LoadAMQPConfig()
	if amqpConfig.URL == "" {
		log.Info("AMQP_URL not set, assessment events disabled")
		return event.NoopPublisher{}
	}
	publisher, err := event.NewAMQPPublisher(amqpConfig.URL, amqpConfig.Exchange)
	if err != nil {
		log.Warn("assessment events disabled", "error", fmt.Errorf("amqp: %w", err))
		return event.NoopPublisher{}
	}
	return publisher
}

func monitorGoroutines(ctx context.Context, log *appLogger.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("goroutine count", "active", runtime.NumGoroutine())
		}
	}
}
