package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"quiz-manager/core/config"
	"quiz-manager/core/database"
	"quiz-manager/core/loader"
	"quiz-manager/core/logger"
	"quiz-manager/core/middleware/auth"
	"quiz-manager/core/middleware/rayid"
	"quiz-manager/core/storage"
	"quiz-manager/feature/quiz"
	quizstore "quiz-manager/feature/quiz/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "quiz-manager/docs/swagger"
)

// @title Quiz Manager API
// @version 1.0
// @description API for storing, synchronizing, and deduplicating quizzes.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the quiz manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !cfg.Server.Validate() {
			logg.Fatal("Invalid server configuration",
				zap.String("port", cfg.Server.Port),
				zap.Int("max_sync_batch", cfg.Server.MaxSyncBatch),
			)
		}

		// 3. Pick the quiz store: database-backed when a database is
		// reachable, in-memory otherwise.
		var st quizstore.Store
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Database connection failed, using in-memory store", zap.Error(err))
			st = quizstore.NewMemory()
		} else {
			gs, err := quizstore.NewGorm(db)
			if err != nil {
				logg.Fatal("Failed to initialize quiz store", zap.Error(err))
			}
			st = gs
			logg.Info("Connected to quiz database")
		}

		// 4. Initialize image storage (optional)
		var client storage.Client
		if c, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Image storage unavailable, images disabled", zap.Error(err))
		} else {
			client = c
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 6. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(quiz.NewFeature(st, client, cfg.Storage.Bucket, logg, cfg.Server.MaxSyncBatch))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		// Request logging with the ray id attached.
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger documentation (public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// API key auth protects everything below.
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
