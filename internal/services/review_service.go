package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"movie-collection/internal/models"
	"movie-collection/internal/repository"
	"movie-collection/internal/utils"
	"movie-collection/internal/validation"

	"github.com/sirupsen/logrus"
)

const minCommentLength = 3

type AddReviewInput struct {
	UserID  uint   `json:"user_id" validate:"required"`
	MovieID uint   `json:"movie_id" validate:"required"`
	Rating  *int   `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

type AddReviewResult struct {
	Review *models.ReviewWithUser
	Movie  *models.Movie
	Stats  *models.RatingStats
}

type ReviewListResult struct {
	Movie   *models.Movie
	Reviews []models.ReviewWithUser
	Stats   *models.RatingStats
	Total   int64
}

type ReviewService interface {
	AddReview(ctx context.Context, in AddReviewInput) (*AddReviewResult, error)
	ListReviews(ctx context.Context, movieID uint, sort models.ReviewSort, page models.PageRequest) (*ReviewListResult, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	movieRepo repository.MovieRepository
	userRepo  repository.UserRepository
	audit     repository.AuditRepository
	logger    *logrus.Logger
}

func NewReviewService(repo repository.ReviewRepository, movieRepo repository.MovieRepository, userRepo repository.UserRepository, audit repository.AuditRepository, logger *logrus.Logger) ReviewService {
	return &reviewService{
		repo:      repo,
		movieRepo: movieRepo,
		userRepo:  userRepo,
		audit:     audit,
		logger:    logger,
	}
}

func (s *reviewService) AddReview(ctx context.Context, in AddReviewInput) (*AddReviewResult, error) {
	in.Comment = utils.Sanitize(in.Comment)

	if err := fromValidation(validation.Struct(&in)); err != nil {
		return nil, err
	}
	rating := *in.Rating
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, invalid("Rating harus antara 1-5")
	}
	if utf8.RuneCountInString(in.Comment) < minCommentLength {
		return nil, invalid("Komentar minimal 3 karakter")
	}

	user, err := s.userRepo.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, notFound(msgUserNotFound)
	}

	movie, err := s.movieRepo.FindByID(ctx, in.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if movie == nil {
		return nil, notFound(msgMovieNotFound)
	}

	// Check-then-insert is not atomic; concurrent submissions may both pass.
	exists, err := s.repo.Exists(ctx, in.UserID, in.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, conflict("Anda sudah memberikan review untuk film ini")
	}

	review := &models.Review{
		UserID:  in.UserID,
		MovieID: in.MovieID,
		Rating:  rating,
		Comment: in.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	created, err := s.repo.FindWithUser(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created review: %w", err)
	}

	stats, err := s.repo.Stats(ctx, in.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating stats: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"review_id": review.ID,
		"movie_id":  in.MovieID,
		"user_id":   in.UserID,
		"rating":    rating,
	}).Info("Review added")
	logActivity(ctx, s.audit, s.logger, in.UserID, models.ActionAddReview, fmt.Sprintf("Reviewed movie: %s", movie.Title))

	return &AddReviewResult{
		Review: created,
		Movie:  movie,
		Stats:  stats,
	}, nil
}

func (s *reviewService) ListReviews(ctx context.Context, movieID uint, sort models.ReviewSort, page models.PageRequest) (*ReviewListResult, error) {
	if movieID == 0 {
		return nil, invalid("Parameter movie_id diperlukan")
	}

	movie, err := s.movieRepo.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if movie == nil {
		return nil, notFound(msgMovieNotFound)
	}

	reviews, err := s.repo.ListByMovie(ctx, movieID, sort, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.ReviewWithUser{}
	}

	stats, err := s.repo.Stats(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating stats: %w", err)
	}

	return &ReviewListResult{
		Movie:   movie,
		Reviews: reviews,
		Stats:   stats,
		Total:   stats.TotalReviews,
	}, nil
}
