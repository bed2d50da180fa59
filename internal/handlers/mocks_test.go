package handlers

import (
	"context"

	"movie-collection/internal/models"
	"movie-collection/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*services.AuthResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*services.AuthResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) VerifyToken(token string) (*services.TokenClaims, error) {
	args := m.Called(token)
	if v := args.Get(0); v != nil {
		return v.(*services.TokenClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) AddMovie(ctx context.Context, in services.AddMovieInput) (*models.MovieWithStats, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*models.MovieWithStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, in services.UpdateMovieInput) (*services.UpdateResult, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*services.UpdateResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, in services.DeleteMovieInput) (*services.DeleteResult, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*services.DeleteResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieService) ToggleFavorite(ctx context.Context, movieID uint, favorite int) (*services.FavoriteResult, error) {
	args := m.Called(ctx, movieID, favorite)
	if v := args.Get(0); v != nil {
		return v.(*services.FavoriteResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieService) ListMovies(ctx context.Context, q models.MovieListQuery) ([]models.MovieWithStats, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.MovieWithStats), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieService) SearchMovies(ctx context.Context, f models.SearchFilter, page models.PageRequest) ([]models.MovieWithStats, int64, error) {
	args := m.Called(ctx, f, page)
	return args.Get(0).([]models.MovieWithStats), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieService) GetMovieDetail(ctx context.Context, id uint) (*services.MovieDetailResult, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*services.MovieDetailResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieService) GetUserMovies(ctx context.Context, userID uint) (*services.UserMoviesResult, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*services.UserMoviesResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) AddReview(ctx context.Context, in services.AddReviewInput) (*services.AddReviewResult, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*services.AddReviewResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewService) ListReviews(ctx context.Context, movieID uint, sort models.ReviewSort, page models.PageRequest) (*services.ReviewListResult, error) {
	args := m.Called(ctx, movieID, sort, page)
	if v := args.Get(0); v != nil {
		return v.(*services.ReviewListResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) UploadImage(ctx context.Context, in services.UploadInput) (*services.UploadResult, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*services.UploadResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUploadService) MaxSize() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}
