package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-collection/internal/database"
	"movie-collection/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMovieNotDeleted = errors.New("movie was not deleted")

type MovieRepository interface {
	// CRUD operations
	Create(ctx context.Context, movie *models.Movie) error
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	SetFavorite(ctx context.Context, id uint, favorite bool) error
	FindDeleteSummary(ctx context.Context, id uint) (*models.MovieDeleteSummary, error)
	DeleteWithReviews(ctx context.Context, id uint) (int64, error)

	// Read models joined with owner and review aggregates
	FindWithStats(ctx context.Context, id uint) (*models.MovieWithStats, error)
	FindDetail(ctx context.Context, id uint) (*models.MovieDetail, error)
	FindAll(ctx context.Context, q models.MovieListQuery) ([]models.MovieWithStats, int64, error)
	Search(ctx context.Context, f models.SearchFilter, page models.PageRequest) ([]models.MovieWithStats, int64, error)

	// Per-user collection
	FindRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Movie, error)
	GetUserStats(ctx context.Context, userID uint) (*models.UserMovieStats, error)
}

const movieStatsColumns = `movies.*,
	COALESCE(users.username, '') AS user_username,
	COALESCE(users.full_name, '') AS user_full_name,
	COALESCE(ROUND(AVG(reviews.rating)::numeric, 1), 0)::float8 AS average_rating,
	COUNT(reviews.id) AS total_reviews`

const movieDetailColumns = movieStatsColumns + `,
	COALESCE(users.email, '') AS user_email,
	COUNT(CASE WHEN reviews.rating = 1 THEN 1 END) AS rating_1,
	COUNT(CASE WHEN reviews.rating = 2 THEN 1 END) AS rating_2,
	COUNT(CASE WHEN reviews.rating = 3 THEN 1 END) AS rating_3,
	COUNT(CASE WHEN reviews.rating = 4 THEN 1 END) AS rating_4,
	COUNT(CASE WHEN reviews.rating = 5 THEN 1 END) AS rating_5`

type movieRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewMovieRepository(db *database.Database) MovieRepository {
	return &movieRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *movieRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// withStats joins the owner and aggregates every review of each movie.
func withStats(db *gorm.DB, columns string) *gorm.DB {
	return db.Table("movies").
		Select(columns).
		Joins("LEFT JOIN users ON users.id = movies.user_id").
		Joins("LEFT JOIN reviews ON reviews.movie_id = movies.id").
		Group("movies.id, users.id")
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindWithStats(ctx context.Context, id uint) (*models.MovieWithStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.MovieWithStats
	res := withStats(r.db.WithContext(ctx), movieStatsColumns).
		Where("movies.id = ?", id).
		Limit(1).
		Scan(&movie)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &movie, nil
}

func (r *movieRepository) FindDetail(ctx context.Context, id uint) (*models.MovieDetail, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.MovieDetail
	res := withStats(r.db.WithContext(ctx), movieDetailColumns).
		Where("movies.id = ?", id).
		Limit(1).
		Scan(&movie)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, q models.MovieListQuery) ([]models.MovieWithStats, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.MovieWithStats
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply sorting
	desc := q.Order.Desc()
	err := withStats(r.db.WithContext(ctx), movieStatsColumns).
		Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortBy.Column(), Raw: true}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "movies.id", Raw: true}, Desc: desc}).
		Limit(q.Limit).
		Offset(q.Offset()).
		Scan(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (r *movieRepository) Search(ctx context.Context, f models.SearchFilter, page models.PageRequest) ([]models.MovieWithStats, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	conds := searchConditions(f)

	var total int64
	countQuery := r.db.WithContext(ctx).Model(&models.Movie{})
	for _, c := range conds {
		countQuery = countQuery.Where(c.expr, c.args...)
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movies []models.MovieWithStats
	query := withStats(r.db.WithContext(ctx), movieStatsColumns)
	for _, c := range conds {
		query = query.Where(c.expr, c.args...)
	}
	err := query.
		Order("movies.created_at DESC, movies.id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Scan(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// UpdateFields applies a column map and returns the number of rows touched.
func (r *movieRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	values := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Updates(values)
	return res.RowsAffected, res.Error
}

func (r *movieRepository) SetFavorite(ctx context.Context, id uint, favorite bool) error {
	_, err := r.UpdateFields(ctx, id, map[string]interface{}{"is_favorite": favorite})
	return err
}

func (r *movieRepository) FindDeleteSummary(ctx context.Context, id uint) (*models.MovieDeleteSummary, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var summary models.MovieDeleteSummary
	res := r.db.WithContext(ctx).Table("movies").
		Select(`movies.id, movies.title, movies.user_id,
			COALESCE(users.username, '') AS username,
			COUNT(reviews.id) AS total_reviews`).
		Joins("LEFT JOIN users ON users.id = movies.user_id").
		Joins("LEFT JOIN reviews ON reviews.movie_id = movies.id").
		Where("movies.id = ?", id).
		Group("movies.id, users.id").
		Limit(1).
		Scan(&summary)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &summary, nil
}

// DeleteWithReviews removes the movie and its reviews atomically and
// returns how many reviews went with it.
func (r *movieRepository) DeleteWithReviews(ctx context.Context, id uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var reviewsDeleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("movie_id = ?", id).Delete(&models.Review{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete reviews: %w", res.Error)
		}
		reviewsDeleted = res.RowsAffected

		res = tx.Delete(&models.Movie{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete movie: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrMovieNotDeleted
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reviewsDeleted, nil
}

func (r *movieRepository) FindRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

func (r *movieRepository) GetUserStats(ctx context.Context, userID uint) (*models.UserMovieStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stats models.UserMovieStats
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Select(`COUNT(*) AS total_movies,
			COALESCE(SUM(CASE WHEN is_favorite THEN 1 ELSE 0 END), 0) AS favorite_movies,
			COALESCE(SUM(CASE WHEN watch_status = ? THEN 1 ELSE 0 END), 0) AS plan_to_watch,
			COALESCE(SUM(CASE WHEN watch_status = ? THEN 1 ELSE 0 END), 0) AS watching,
			COALESCE(SUM(CASE WHEN watch_status = ? THEN 1 ELSE 0 END), 0) AS watched`,
			models.WatchStatusPlanToWatch, models.WatchStatusWatching, models.WatchStatusWatched).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
