package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "blogapp/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	"blogapp/internal/cache"
	"blogapp/internal/config"
	"blogapp/internal/db"
	"blogapp/internal/handler"
	"blogapp/internal/logger"
	"blogapp/internal/repository"
	"blogapp/internal/router"
	"blogapp/internal/service"
	"blogapp/internal/view"
)

// @title Blog API
// @version 1.0
// @description Blogging application with cookie based session tokens and per-author post ownership.
// @host localhost:3001
// @BasePath /
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session token issued at login or registration.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("database init", "error", err, "driver", cfg.Database.Driver)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Error("close database", "error", err)
		}
	}()

	cacheClient := cache.Disabled()
	if cfg.Redis.Enabled {
		cacheClient = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cacheClient.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, logout will only clear the cookie until it recovers", "error", err, "addr", cfg.Redis.Addr)
		}
	}
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	gate := auth.NewGate(jwtService, userRepo, tokenStore, logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService, tokenStore, logger)
	blogService := service.NewBlogService(postRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{Secure: cfg.Cookie.Secure}, logger)
	blogHandler := handler.NewBlogHandler(blogService)

	renderer, err := view.New()
	if err != nil {
		logger.Fatal("load templates", "error", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	router.Register(e, cfg, logger, gate, authHandler, blogHandler)

	addr := ":" + cfg.Server.Port
	go func() {
		logger.Info("server started", "addr", addr, "swagger", "http://localhost"+addr+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
}
