package repository

import (
	"context"
	"errors"
	"time"

	"movie-collection/internal/database"
	"movie-collection/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Exists(ctx context.Context, userID, movieID uint) (bool, error)
	FindWithUser(ctx context.Context, id uint) (*models.ReviewWithUser, error)
	ListByMovie(ctx context.Context, movieID uint, sort models.ReviewSort, page models.PageRequest) ([]models.ReviewWithUser, error)
	Recent(ctx context.Context, movieID uint, limit int) ([]models.ReviewWithUser, error)
	// Stats aggregates every review of the movie, independent of paging.
	Stats(ctx context.Context, movieID uint) (*models.RatingStats, error)
}

const reviewWithUserColumns = `reviews.*,
	COALESCE(users.username, '') AS username,
	COALESCE(users.full_name, '') AS full_name,
	COALESCE(users.email, '') AS email`

type reviewRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewReviewRepository(db *database.Database) ReviewRepository {
	return &reviewRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *reviewRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Exists(ctx context.Context, userID, movieID uint) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) FindWithUser(ctx context.Context, id uint) (*models.ReviewWithUser, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var review models.ReviewWithUser
	res := r.db.WithContext(ctx).Table("reviews").
		Select(reviewWithUserColumns).
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Where("reviews.id = ?", id).
		Limit(1).
		Scan(&review)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.New("review not found")
	}
	return &review, nil
}

func (r *reviewRepository) ListByMovie(ctx context.Context, movieID uint, sort models.ReviewSort, page models.PageRequest) ([]models.ReviewWithUser, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var reviews []models.ReviewWithUser
	err := r.db.WithContext(ctx).Table("reviews").
		Select(reviewWithUserColumns).
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Where("reviews.movie_id = ?", movieID).
		Order(sort.OrderClause()).
		Limit(page.Limit).
		Offset(page.Offset()).
		Scan(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Recent(ctx context.Context, movieID uint, limit int) ([]models.ReviewWithUser, error) {
	return r.ListByMovie(ctx, movieID, models.ReviewSortNewest, models.PageRequest{Page: 1, Limit: limit})
}

func (r *reviewRepository) Stats(ctx context.Context, movieID uint) (*models.RatingStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("movie_id = ?", movieID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := make(models.RatingDistribution, len(rows))
	for _, row := range rows {
		dist[row.Rating] = row.Count
	}
	return models.NewRatingStats(dist), nil
}
