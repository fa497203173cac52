package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdfquiz/internal/api"
	"pdfquiz/internal/api/handlers"
	"pdfquiz/internal/assembler"
	"pdfquiz/internal/cache"
	"pdfquiz/internal/config"
	"pdfquiz/internal/gemini"
	"pdfquiz/internal/history"
	"pdfquiz/internal/logger"
	"pdfquiz/internal/pdf"
	"pdfquiz/internal/r2"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionName = "pdfquiz_session"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	if err := logger.Initialize(os.Getenv("ENV"), os.Getenv("LOG_LEVEL")); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// History persistence: postgres when configured, process memory otherwise.
	var store history.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := history.NewPostgresStore(ctx, cfg.DatabaseURL, cfg.History.Capacity)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pgStore.Close()
		store = pgStore
		log.Info("history backed by postgres")
	} else {
		store = history.NewMemoryStore(cfg.History.Capacity)
		log.Warn("DATABASE_URL not set, history kept in memory only")
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		log.Fatal("failed to initialize Gemini client", zap.Error(err))
	}
	defer geminiClient.Close()

	var quizCache *cache.QuizCache
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		quizCache = cache.NewQuizCache(cache.NewRedisCache(redisClient), cfg.Redis.CacheTTL)
		log.Info("quiz cache enabled", zap.String("addr", cfg.Redis.Address))
	}

	archive, err := r2.NewClient(log)
	if err != nil {
		log.Fatal("failed to initialize archive client", zap.Error(err))
	}

	asm := assembler.New(cfg.Pipeline, pdf.NewExtractor(), geminiClient, log)
	handler := handlers.NewHandler(asm, store, quizCache, archive, cfg, log)

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn("SESSION_SECRET not set, sessions will not survive restarts")
	}
	sessionStore := cookie.NewStore([]byte(secret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(sessionName, sessionStore))

	api.SetupRoutes(router, handler, cfg.FrontendURL)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
