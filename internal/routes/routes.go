package routes

import (
	"movie-collection/internal/handlers"
	"movie-collection/internal/middleware"
	"movie-collection/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	Movie  *handlers.MovieHandler
	Review *handlers.ReviewHandler
	Upload *handlers.UploadHandler
}

type Options struct {
	Tokens services.TokenService
	// AuthRequired puts the bearer check in front of every mutating route.
	AuthRequired bool
	// AuthLimiter throttles the /auth group per client IP. Nil disables it.
	AuthLimiter *middleware.RateLimiter
}

func Setup(app *fiber.App, h Handlers, opts Options) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	write := middleware.OptionalAuth(opts.AuthRequired, opts.Tokens)

	// Auth routes
	auth := v1.Group("/auth")
	if opts.AuthLimiter != nil {
		auth.Use(opts.AuthLimiter.Handler())
	}
	{
		auth.Post("/register", h.Auth.Register)
		auth.Post("/login", h.Auth.Login)
		auth.Get("/verify", middleware.RequireAuth(opts.Tokens), h.Auth.Verify)
	}

	// Movie routes
	movies := v1.Group("/movies")
	{
		movies.Get("/", h.Movie.GetAllMovies)
		movies.Get("/search", h.Movie.SearchMovies)
		movies.Get("/detail", h.Movie.GetMovieDetail)
		movies.Post("/add", write, h.Movie.AddMovie)
		movies.Post("/update", write, h.Movie.UpdateMovie)
		movies.Post("/delete", write, h.Movie.DeleteMovie)
		movies.Post("/favorite", write, h.Movie.ToggleFavorite)
	}

	// User routes
	users := v1.Group("/users")
	{
		users.Get("/movies", h.Movie.GetUserMovies)
	}

	// Review routes
	reviews := v1.Group("/reviews")
	{
		reviews.Get("/", h.Review.GetReviews)
		reviews.Post("/add", write, h.Review.AddReview)
	}

	upload := v1.Group("/upload")
	{
		upload.Post("/image", write, h.Upload.UploadImage)
	}
}
