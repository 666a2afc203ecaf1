package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moviehub/catalog-service/internal/api/http/handlers"
	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	BasePath       string
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Comments       *handlers.CommentsHandler
	Favorites      *handlers.FavoritesHandler
	Admin          *handlers.AdminHandler
	Movies         *handlers.MoviesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every route declares its access policy
// here, so the gate runs before any handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	anonymous := cfg.AuthMiddleware.Require(auth.Anonymous)
	authenticated := cfg.AuthMiddleware.Require(auth.Authenticated)
	adminOnly := cfg.AuthMiddleware.Require(auth.RequireRole(domain.RoleAdmin))

	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	api := app.Group(cfg.BasePath)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", anonymous, cfg.Auth.SignUp)
	authGroup.Post("/signin", anonymous, cfg.Auth.SignIn)
	authGroup.Get("/me", authenticated, cfg.Auth.Me)

	comments := api.Group("/comments")
	comments.Get("/:movieId", anonymous, cfg.Comments.ListForMovie)
	comments.Post("/", authenticated, cfg.Comments.Create)

	favorites := api.Group("/favorites", authenticated)
	favorites.Get("/", cfg.Favorites.List)
	favorites.Post("/", cfg.Favorites.Add)
	favorites.Delete("/:movieId", cfg.Favorites.Remove)

	admin := api.Group("/admin", adminOnly)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUser)
	admin.Post("/users", cfg.Admin.CreateUser)
	admin.Put("/users/:id", cfg.Admin.UpdateUser)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/comments", cfg.Admin.ListComments)
	admin.Get("/comments/:id", cfg.Admin.GetComment)
	admin.Post("/comments", cfg.Admin.CreateComment)
	admin.Put("/comments/:id", cfg.Admin.UpdateComment)
	admin.Delete("/comments/:id", cfg.Admin.DeleteComment)
	admin.Get("/favorites", cfg.Admin.ListFavorites)
	admin.Get("/favorites/:id", cfg.Admin.GetFavorite)
	admin.Post("/favorites", cfg.Admin.CreateFavorite)
	admin.Put("/favorites/:id", cfg.Admin.UpdateFavorite)
	admin.Delete("/favorites/:id", cfg.Admin.DeleteFavorite)
	admin.Get("/metrics", cfg.Admin.Metrics)

	if cfg.Movies != nil {
		movies := api.Group("/movies", anonymous)
		movies.Get("/genres", cfg.Movies.Genres)
		movies.Get("/top-rated", cfg.Movies.TopRated)
		movies.Get("/discover", cfg.Movies.Discover)
		movies.Get("/search", cfg.Movies.Search)
		movies.Get("/:id", cfg.Movies.Movie)
	}
}
