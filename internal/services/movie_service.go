package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"movie-collection/internal/models"
	"movie-collection/internal/repository"
	"movie-collection/internal/utils"
	"movie-collection/internal/validation"

	"github.com/sirupsen/logrus"
)

const (
	detailRecentReviews = 3
	userRecentMovies    = 5

	MaxFormRating = 10.0

	ownerReviewComment = "Rating awal dari pemilik"
	msgInvalidMovieID  = "ID film tidak valid"
	msgMovieNotFound   = "Film tidak ditemukan"
	msgUserNotFound    = "User tidak ditemukan"
	msgInvalidStatus   = "watch_status tidak valid. Pilih: plan_to_watch, watching, atau watched"
	msgInvalidFavorite = "is_favorite harus 0 atau 1"
)

type AddMovieInput struct {
	UserID      uint    `json:"user_id" validate:"required"`
	Title       string  `json:"title" label:"Title" validate:"required,max=255"`
	Year        string  `json:"year" validate:"required"`
	Genre       string  `json:"genre" label:"Genre" validate:"max=100"`
	Director    string  `json:"director" label:"Director" validate:"max=255"`
	Duration    string  `json:"duration" label:"Duration" validate:"max=50"`
	PosterURL   string  `json:"poster_url"`
	Description string  `json:"description"`
	WatchStatus string  `json:"watch_status"`
	IsFavorite  bool    `json:"is_favorite"`
	Rating      float64 `json:"rating"`
}

// UpdateMovieInput carries only the fields present in the request.
type UpdateMovieInput struct {
	ID          uint
	Title       *string
	Year        *string
	Genre       *string
	Director    *string
	Duration    *string
	PosterURL   *string
	Description *string
	WatchStatus *string
	IsFavorite  *int
}

type DeleteMovieInput struct {
	MovieID uint
	// UserID, when non-zero, must own the movie.
	UserID  uint
}

type UpdateResult struct {
	MovieID     uint
	Movie       *models.MovieWithStats
	ChangesMade int
}

type DeleteResult struct {
	Movie          models.MovieDeleteSummary
	ReviewsDeleted int64
}

type FavoriteResult struct {
	MovieID  uint
	Title    string
	Movie    *models.MovieWithStats
	Previous bool
	Current  bool
	Changed  bool
}

type MovieDetailResult struct {
	Movie         *models.MovieDetail
	RecentReviews []models.ReviewWithUser
}

type UserMoviesResult struct {
	User         models.UserSummary
	Stats        *models.UserMovieStats
	RecentMovies []models.Movie
}

type MovieService interface {
	// CRUD operations
	AddMovie(ctx context.Context, in AddMovieInput) (*models.MovieWithStats, error)
	UpdateMovie(ctx context.Context, in UpdateMovieInput) (*UpdateResult, error)
	DeleteMovie(ctx context.Context, in DeleteMovieInput) (*DeleteResult, error)
	ToggleFavorite(ctx context.Context, movieID uint, favorite int) (*FavoriteResult, error)

	// Read operations
	ListMovies(ctx context.Context, q models.MovieListQuery) ([]models.MovieWithStats, int64, error)
	SearchMovies(ctx context.Context, f models.SearchFilter, page models.PageRequest) ([]models.MovieWithStats, int64, error)
	GetMovieDetail(ctx context.Context, id uint) (*MovieDetailResult, error)
	GetUserMovies(ctx context.Context, userID uint) (*UserMoviesResult, error)
}

type movieService struct {
	repo       repository.MovieRepository
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	audit      repository.AuditRepository
	logger     *logrus.Logger
	now        func() time.Time
}

func NewMovieService(repo repository.MovieRepository, userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, audit repository.AuditRepository, logger *logrus.Logger) MovieService {
	return &movieService{
		repo:       repo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		audit:      audit,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *movieService) AddMovie(ctx context.Context, in AddMovieInput) (*models.MovieWithStats, error) {
	in.Title = utils.Sanitize(in.Title)
	in.Year = utils.Sanitize(in.Year)
	in.Genre = utils.Sanitize(in.Genre)
	in.Director = utils.Sanitize(in.Director)
	in.Duration = utils.Sanitize(in.Duration)
	in.PosterURL = utils.Sanitize(in.PosterURL)
	in.Description = utils.Sanitize(in.Description)

	if err := fromValidation(validation.Struct(&in)); err != nil {
		return nil, err
	}
	if err := validation.ValidateYear(in.Year, s.now()); err != nil {
		return nil, invalid(err.Error())
	}

	status := models.WatchStatusPlanToWatch
	if in.WatchStatus != "" {
		status = models.WatchStatus(in.WatchStatus)
		if !status.Valid() {
			return nil, invalid(msgInvalidStatus)
		}
	}
	if in.Rating < 0 || in.Rating > MaxFormRating || math.IsNaN(in.Rating) {
		return nil, invalid("Rating harus antara 0-10")
	}

	user, err := s.userRepo.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, notFound(msgUserNotFound)
	}

	movie := &models.Movie{
		UserID:      in.UserID,
		Title:       in.Title,
		Year:        in.Year,
		Genre:       in.Genre,
		Director:    in.Director,
		Duration:    in.Duration,
		PosterURL:   in.PosterURL,
		Description: in.Description,
		WatchStatus: status,
		IsFavorite:  in.IsFavorite,
	}
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	if stars := starsFromFormRating(in.Rating); stars > 0 {
		review := &models.Review{
			UserID:  in.UserID,
			MovieID: movie.ID,
			Rating:  stars,
			Comment: ownerReviewComment,
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			s.logger.WithError(err).WithField("movie_id", movie.ID).Warn("Failed to store owner rating")
		}
	}

	created, err := s.repo.FindWithStats(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created movie: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("movie %d not found after insert", movie.ID)
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"user_id":  in.UserID,
		"title":    movie.Title,
	}).Info("Movie added")
	logActivity(ctx, s.audit, s.logger, in.UserID, models.ActionAddMovie, fmt.Sprintf("Added movie: %s", movie.Title))

	return created, nil
}

// starsFromFormRating maps the form's 0..10 score onto 1..5 stars; 0 means no rating.
func starsFromFormRating(rating float64) int {
	if rating <= 0 {
		return 0
	}
	stars := int(math.Round(rating / 2))
	if stars < models.MinRating {
		stars = models.MinRating
	}
	if stars > models.MaxRating {
		stars = models.MaxRating
	}
	return stars
}

func (s *movieService) UpdateMovie(ctx context.Context, in UpdateMovieInput) (*UpdateResult, error) {
	if in.ID == 0 {
		return nil, invalid(msgInvalidMovieID)
	}

	existing, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if existing == nil {
		return nil, notFound(msgMovieNotFound)
	}

	fields := make(map[string]interface{})
	setText := func(column string, v *string) {
		if v != nil {
			fields[column] = utils.Sanitize(*v)
		}
	}
	setText("title", in.Title)
	setText("year", in.Year)
	setText("genre", in.Genre)
	setText("director", in.Director)
	setText("duration", in.Duration)
	setText("poster_url", in.PosterURL)
	setText("description", in.Description)
	setText("watch_status", in.WatchStatus)
	if in.IsFavorite != nil {
		fields["is_favorite"] = *in.IsFavorite == 1
	}

	if len(fields) == 0 {
		return nil, invalid("Tidak ada data yang diupdate")
	}

	if in.WatchStatus != nil && !models.WatchStatus(*in.WatchStatus).Valid() {
		return nil, invalid(msgInvalidStatus)
	}
	if in.IsFavorite != nil && *in.IsFavorite != 0 && *in.IsFavorite != 1 {
		return nil, invalid(msgInvalidFavorite)
	}
	if title, ok := fields["title"]; ok && title == "" {
		return nil, invalid("Judul film tidak boleh kosong")
	}
	if year, ok := fields["year"]; ok {
		if err := validation.ValidateYear(year.(string), s.now()); err != nil {
			return nil, invalid(err.Error())
		}
	}

	changes := len(fields)
	affected, err := s.repo.UpdateFields(ctx, in.ID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	if affected == 0 {
		return &UpdateResult{MovieID: in.ID}, nil
	}

	updated, err := s.repo.FindWithStats(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated movie: %w", err)
	}

	logActivity(ctx, s.audit, s.logger, existing.UserID, models.ActionUpdateMovie, fmt.Sprintf("Updated movie: %s", existing.Title))

	return &UpdateResult{
		MovieID:     in.ID,
		Movie:       updated,
		ChangesMade: changes,
	}, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, in DeleteMovieInput) (*DeleteResult, error) {
	if in.MovieID == 0 {
		return nil, invalid(msgInvalidMovieID)
	}

	summary, err := s.repo.FindDeleteSummary(ctx, in.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if summary == nil {
		return nil, notFound(msgMovieNotFound)
	}
	if in.UserID != 0 && in.UserID != summary.UserID {
		return nil, forbidden("Anda tidak memiliki izin menghapus film ini")
	}

	reviewsDeleted, err := s.repo.DeleteWithReviews(ctx, in.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete movie: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id":        summary.ID,
		"reviews_deleted": reviewsDeleted,
	}).Info("Movie deleted")
	logActivity(ctx, s.audit, s.logger, summary.UserID, models.ActionDeleteMovie, fmt.Sprintf("Deleted movie: %s", summary.Title))

	return &DeleteResult{
		Movie:          *summary,
		ReviewsDeleted: reviewsDeleted,
	}, nil
}

func (s *movieService) ToggleFavorite(ctx context.Context, movieID uint, favorite int) (*FavoriteResult, error) {
	if movieID == 0 {
		return nil, invalid("Movie ID tidak valid")
	}
	if favorite != 0 && favorite != 1 {
		return nil, invalid(msgInvalidFavorite)
	}
	want := favorite == 1

	movie, err := s.repo.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if movie == nil {
		return nil, notFound(msgMovieNotFound)
	}

	if movie.IsFavorite == want {
		return &FavoriteResult{
			MovieID:  movieID,
			Title:    movie.Title,
			Previous: movie.IsFavorite,
			Current:  want,
		}, nil
	}

	if err := s.repo.SetFavorite(ctx, movieID, want); err != nil {
		return nil, fmt.Errorf("failed to update favorite status: %w", err)
	}

	updated, err := s.repo.FindWithStats(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie: %w", err)
	}

	return &FavoriteResult{
		MovieID:  movieID,
		Title:    movie.Title,
		Movie:    updated,
		Previous: movie.IsFavorite,
		Current:  want,
		Changed:  true,
	}, nil
}

func (s *movieService) ListMovies(ctx context.Context, q models.MovieListQuery) ([]models.MovieWithStats, int64, error) {
	movies, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	if movies == nil {
		movies = []models.MovieWithStats{}
	}
	return movies, total, nil
}

func (s *movieService) SearchMovies(ctx context.Context, f models.SearchFilter, page models.PageRequest) ([]models.MovieWithStats, int64, error) {
	f.Query = utils.Sanitize(f.Query)
	f.Genre = utils.Sanitize(f.Genre)
	f.Year = utils.Sanitize(f.Year)
	if f.Empty() {
		return nil, 0, invalid("Harap masukkan kata kunci pencarian")
	}

	movies, total, err := s.repo.Search(ctx, f, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search movies: %w", err)
	}
	if movies == nil {
		movies = []models.MovieWithStats{}
	}
	return movies, total, nil
}

func (s *movieService) GetMovieDetail(ctx context.Context, id uint) (*MovieDetailResult, error) {
	if id == 0 {
		return nil, invalid("Parameter movie_id diperlukan")
	}

	movie, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie detail: %w", err)
	}
	if movie == nil {
		return nil, notFound(msgMovieNotFound)
	}

	reviews, err := s.reviewRepo.Recent(ctx, id, detailRecentReviews)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.ReviewWithUser{}
	}

	return &MovieDetailResult{Movie: movie, RecentReviews: reviews}, nil
}

func (s *movieService) GetUserMovies(ctx context.Context, userID uint) (*UserMoviesResult, error) {
	if userID == 0 {
		return nil, invalid("Parameter user_id diperlukan")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, notFound(msgUserNotFound)
	}

	stats, err := s.repo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user statistics: %w", err)
	}

	recent, err := s.repo.FindRecentByUser(ctx, userID, userRecentMovies)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent movies: %w", err)
	}
	if recent == nil {
		recent = []models.Movie{}
	}

	return &UserMoviesResult{
		User: models.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
		},
		Stats:        stats,
		RecentMovies: recent,
	}, nil
}
