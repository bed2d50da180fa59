package services

import (
	"context"
	"io"
	"time"

	"movie-collection/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) LogActivity(ctx context.Context, entry *models.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) RecordImage(ctx context.Context, image *models.UploadedImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovieRepository) SetFavorite(ctx context.Context, id uint, favorite bool) error {
	args := m.Called(ctx, id, favorite)
	return args.Error(0)
}

func (m *MockMovieRepository) FindDeleteSummary(ctx context.Context, id uint) (*models.MovieDeleteSummary, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.MovieDeleteSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) DeleteWithReviews(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovieRepository) FindWithStats(ctx context.Context, id uint) (*models.MovieWithStats, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.MovieWithStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) FindDetail(ctx context.Context, id uint) (*models.MovieDetail, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.MovieDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) FindAll(ctx context.Context, q models.MovieListQuery) ([]models.MovieWithStats, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.MovieWithStats), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieRepository) Search(ctx context.Context, f models.SearchFilter, page models.PageRequest) ([]models.MovieWithStats, int64, error) {
	args := m.Called(ctx, f, page)
	return args.Get(0).([]models.MovieWithStats), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieRepository) FindRecentByUser(ctx context.Context, userID uint, limit int) ([]models.Movie, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetUserStats(ctx context.Context, userID uint) (*models.UserMovieStats, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.UserMovieStats), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Exists(ctx context.Context, userID, movieID uint) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) FindWithUser(ctx context.Context, id uint) (*models.ReviewWithUser, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.ReviewWithUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) ListByMovie(ctx context.Context, movieID uint, sort models.ReviewSort, page models.PageRequest) ([]models.ReviewWithUser, error) {
	args := m.Called(ctx, movieID, sort, page)
	return args.Get(0).([]models.ReviewWithUser), args.Error(1)
}

func (m *MockReviewRepository) Recent(ctx context.Context, movieID uint, limit int) ([]models.ReviewWithUser, error) {
	args := m.Called(ctx, movieID, limit)
	return args.Get(0).([]models.ReviewWithUser), args.Error(1)
}

func (m *MockReviewRepository) Stats(ctx context.Context, movieID uint) (*models.RatingStats, error) {
	args := m.Called(ctx, movieID)
	if v := args.Get(0); v != nil {
		return v.(*models.RatingStats), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, name, contentType string, data []byte) error {
	args := m.Called(ctx, name, contentType, data)
	return args.Error(0)
}

func (m *MockImageStore) URL(baseURL, name string) string {
	args := m.Called(baseURL, name)
	return args.String(0)
}

func (m *MockImageStore) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}
