package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/moviehub/catalog-service/internal/api/http"
	"github.com/moviehub/catalog-service/internal/api/http/handlers"
	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/config"
	"github.com/moviehub/catalog-service/internal/observability"
	"github.com/moviehub/catalog-service/internal/persistence"
	"github.com/moviehub/catalog-service/internal/repository"
	"github.com/moviehub/catalog-service/internal/repository/memory"
	"github.com/moviehub/catalog-service/internal/service"
	"github.com/moviehub/catalog-service/internal/tmdb"
)

const shutdownTimeout = 10 * time.Second

type repositories struct {
	users     repository.UserRepository
	comments  repository.CommentRepository
	favorites repository.FavoriteRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrSigningKeyMissing) {
			logger.Fatal("AUTH_JWT_SECRET must be set; refusing to start without a signing key")
		}
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(pg, logger)
	metrics := observability.NewMetrics()

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: repos.users,
		Hasher:   hasher,
		Tokens:   tokens,
		Logger:   logger,
	})
	userService := service.NewUserService(repos.users, hasher)
	commentService := service.NewCommentService(repos.comments, repos.users)
	favoriteService := service.NewFavoriteService(repos.favorites, repos.users)
	movieService := service.NewMovieService(
		tmdb.NewClient(cfg.TMDB, nil),
		repository.NewMovieCache(redis.Client),
		cfg.Redis.MovieCacheTTL(),
		logger,
	)

	if _, err := authService.SeedDefaultAdmin(ctx, cfg.Admin); err != nil {
		logger.Fatal("failed to seed default admin", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		BasePath:  cfg.App.BasePath,
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readinessDependencies(pg, redis)),
		Auth:      handlers.NewAuthHandler(authService),
		Comments:  handlers.NewCommentsHandler(commentService),
		Favorites: handlers.NewFavoritesHandler(favoriteService),
		Admin: handlers.NewAdminHandler(handlers.AdminDependencies{
			Users:     userService,
			Comments:  commentService,
			Favorites: favoriteService,
			Metrics:   metrics,
		}),
		Movies:         handlers.NewMoviesHandler(movieService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("base_path", cfg.App.BasePath))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

// buildRepositories uses Postgres when configured and falls back to the
// in-memory store otherwise, which loses all data on restart.
func buildRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	if pg.Pool == nil {
		logger.Warn("using in-memory repositories; data will not persist")
		store := memory.NewStore()
		return repositories{users: store.Users(), comments: store.Comments(), favorites: store.Favorites()}
	}
	return repositories{
		users:     repository.NewUserRepository(pg.Pool),
		comments:  repository.NewCommentRepository(pg.Pool),
		favorites: repository.NewFavoriteRepository(pg.Pool),
	}
}

// readinessDependencies lists only the backends that were configured.
func readinessDependencies(pg *persistence.Postgres, redis *persistence.Redis) map[string]handlers.Pinger {
	deps := map[string]handlers.Pinger{}
	if pg.Pool != nil {
		deps["postgres"] = pg
	}
	if redis.Client != nil {
		deps["redis"] = redis
	}
	return deps
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
