package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"blogapp/internal/auth"
	"blogapp/internal/cache"
	"blogapp/internal/config"
	"blogapp/internal/db"
	"blogapp/internal/logger"
	"blogapp/internal/repository"
	"blogapp/internal/service"
)

const defaultSeedTimeout = 2 * time.Minute

// seedConfig holds flags of the seed command.
type seedConfig struct {
	file    string
	timeout time.Duration
}

// NewSeedCmd creates the seed command.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users and their posts from a JSON fixture",
		Long: `Registers every user of the fixture and creates their posts.
Users whose email is already registered are skipped together with their posts,
so running the command twice does not duplicate data.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.file, "file", "f", "fixtures.json", "path of the JSON fixture")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for the whole run (e.g. 30s, 2m)")

	return cmd
}

func runSeed(cmd *cobra.Command, sc *seedConfig) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	fixture, err := loadFixture(sc.file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sc.timeout)
	defer cancel()

	gormDB, err := db.Open(cfg.Database, log)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("driver", cfg.Database.Driver).Wrap(err)
	}
	defer db.Close(gormDB)

	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	// Seeding never revokes tokens.
	tokenStore := auth.NewTokenStore(cache.Disabled())
	authService := service.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), jwtService, tokenStore, log)
	blogService := service.NewBlogService(repository.NewPostRepository(gormDB))

	res, err := seed(ctx, userRepo, authService, blogService, fixture)
	cmd.Printf("users created: %d, users skipped: %d, posts created: %d\n", res.UsersCreated, res.UsersSkipped, res.PostsCreated)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewSeedCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
