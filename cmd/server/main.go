package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/config"
	"github.com/fadilmartias/harvard-cv/internal/domain/fiber/handler"
	"github.com/fadilmartias/harvard-cv/internal/middleware"
	"github.com/fadilmartias/harvard-cv/internal/model"
	"github.com/fadilmartias/harvard-cv/internal/progress"
	"github.com/fadilmartias/harvard-cv/internal/ratelimit"
	"github.com/fadilmartias/harvard-cv/internal/repository"
	"github.com/fadilmartias/harvard-cv/internal/service"
	"github.com/fadilmartias/harvard-cv/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	ctx := context.Background()
	appConfig := config.LoadAppConfig()
	rateConfig := config.LoadRateLimitConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: appConfig.BodyLimitMB * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			} else {
				log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders: "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset, Retry-After",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/events"
		},
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

	app.Use(middleware.RequestID())
	app.Use(middleware.RateLimiter(rateConfig.GlobalMax, rateConfig.GlobalWindow))

	var (
		store    ratelimit.Store
		recorder usecase.ExtractionRecorder
		history  *usecase.HistoryUsecase
	)
	if dbConfig := config.LoadDBConfig(); dbConfig.Enabled() {
		db, err := ConnectDB()
		if err != nil {
			log.Printf("Database unavailable, rate limiting disabled: %v", err)
		} else {
			extractionRepo := repository.NewExtractionRepository(db)
			store = repository.NewRateLimitRepository(db)
			recorder = extractionRepo
			history = usecase.NewHistoryUsecase(extractionRepo)
		}
	} else {
		log.Println("DB_HOST not set, using in-memory rate limit store")
		store = ratelimit.NewMemoryStore()
	}

	limiter := ratelimit.NewLimiter(store, ratelimit.Config{
		Route:  rateConfig.Route,
		Limit:  rateConfig.Max,
		Window: rateConfig.Window,
	})

	llm, err := service.NewLLMService(ctx)
	if err != nil {
		log.Fatal(err)
	}

	hub := progress.NewHub(0)
	uc := usecase.NewExtractionUsecase(limiter, service.NewPDFService(), llm, hub, recorder, config.LoadLLMConfig().Timeout)

	handler.NewExtractionHandler(uc).RegisterRoutes(app)
	handler.NewProgressHandler(hub, 15*time.Second).RegisterRoutes(app)
	handler.NewRenderHandler().RegisterRoutes(app)
	if history != nil {
		handler.NewHistoryHandler(history).RegisterRoutes(app)
	}

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d, SSE subscribers: %d", runtime.NumGoroutine(), hub.Len())
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// ConnectDB opens the pool and migrates the tables this service owns.
func ConnectDB() (*gorm.DB, error) {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	gormConfig := &gorm.Config{}
	if appConfig.IsProduction() {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.Extraction{}, &model.RateLimitRequest{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
