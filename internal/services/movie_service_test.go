package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"movie-collection/internal/models"
	"movie-collection/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type movieFixture struct {
	svc     *movieService
	movies  *MockMovieRepository
	users   *MockUserRepository
	reviews *MockReviewRepository
	audit   *MockAuditRepository
}

func newMovieFixture() *movieFixture {
	f := &movieFixture{
		movies:  new(MockMovieRepository),
		users:   new(MockUserRepository),
		reviews: new(MockReviewRepository),
		audit:   new(MockAuditRepository),
	}
	f.svc = NewMovieService(f.movies, f.users, f.reviews, f.audit, testLogger()).(*movieService)
	f.svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	f.audit.On("LogActivity", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

// savedPoster stores an upload in a temp dir and returns the dir and its URL.
func savedPoster(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewLocalStore(dir, "/uploads", testLogger())
	name, err := storage.NewImageName("jpg", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), name, "image/jpeg", []byte("poster")))
	return dir, store.URL("http://localhost:8010", name)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestAddMovie(t *testing.T) {
	f := newMovieFixture()
	ctx := context.Background()

	f.users.On("FindByID", ctx, uint(1)).Return(&models.User{ID: 1}, nil)
	f.movies.On("Create", ctx, mock.MatchedBy(func(m *models.Movie) bool {
		return m.Title == "Inception" && m.WatchStatus == models.WatchStatusWatched && m.IsFavorite
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Movie).ID = 42
	}).Return(nil)
	f.reviews.On("Create", ctx, mock.MatchedBy(func(r *models.Review) bool {
		return r.MovieID == 42 && r.UserID == 1 && r.Rating == 4 && r.Comment == ownerReviewComment
	})).Return(nil)
	f.movies.On("FindWithStats", ctx, uint(42)).Return(&models.MovieWithStats{
		Movie:         models.Movie{ID: 42, Title: "Inception"},
		AverageRating: 4,
		TotalReviews:  1,
	}, nil)

	movie, err := f.svc.AddMovie(ctx, AddMovieInput{
		UserID:      1,
		Title:       " <b>Inception</b> ",
		Year:        "2010",
		WatchStatus: "watched",
		IsFavorite:  true,
		Rating:      8.4,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), movie.ID)
	assert.Equal(t, int64(1), movie.TotalReviews)

	f.movies.AssertExpectations(t)
	f.reviews.AssertExpectations(t)
}

func TestAddMovieValidation(t *testing.T) {
	tests := []struct {
		name string
		in   AddMovieInput
		want string
	}{
		{"missing fields", AddMovieInput{}, "Missing required fields: user_id, title, year"},
		{"bad year", AddMovieInput{UserID: 1, Title: "X", Year: "10"}, "Tahun harus terdiri dari 4 digit angka"},
		{"future year", AddMovieInput{UserID: 1, Title: "X", Year: "2031"}, "Tahun harus antara 1900 dan 2030"},
		{"bad status", AddMovieInput{UserID: 1, Title: "X", Year: "2010", WatchStatus: "dropped"}, msgInvalidStatus},
		{"rating too high", AddMovieInput{UserID: 1, Title: "X", Year: "2010", Rating: 11}, "Rating harus antara 0-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMovieFixture()
			_, err := f.svc.AddMovie(context.Background(), tt.in)
			svcErr, ok := AsError(err)
			require.True(t, ok, "expected service error, got %v", err)
			assert.Equal(t, KindValidation, svcErr.Kind)
			assert.Equal(t, tt.want, svcErr.Message)
			f.movies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAddMovieUnknownUser(t *testing.T) {
	f := newMovieFixture()
	ctx := context.Background()
	f.users.On("FindByID", ctx, uint(9)).Return(nil, nil)

	_, err := f.svc.AddMovie(ctx, AddMovieInput{UserID: 9, Title: "X", Year: "2010"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStarsFromFormRating(t *testing.T) {
	assert.Equal(t, 0, starsFromFormRating(0))
	assert.Equal(t, 1, starsFromFormRating(0.5))
	assert.Equal(t, 4, starsFromFormRating(8.4))
	assert.Equal(t, 5, starsFromFormRating(10))
	assert.Equal(t, 3, starsFromFormRating(5))
}

func TestUpdateMovie(t *testing.T) {
	t.Run("applies present fields only", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()

		f.movies.On("FindByID", ctx, uint(3)).Return(&models.Movie{ID: 3, UserID: 1, Title: "Old"}, nil)
		f.movies.On("UpdateFields", ctx, uint(3), map[string]interface{}{
			"title":        "New",
			"watch_status": "watching",
			"is_favorite":  true,
		}).Return(int64(1), nil)
		f.movies.On("FindWithStats", ctx, uint(3)).Return(&models.MovieWithStats{Movie: models.Movie{ID: 3, Title: "New"}}, nil)

		res, err := f.svc.UpdateMovie(ctx, UpdateMovieInput{
			ID:          3,
			Title:       strPtr("New"),
			WatchStatus: strPtr("watching"),
			IsFavorite:  intPtr(1),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, res.ChangesMade)
		assert.Equal(t, "New", res.Movie.Title)
		f.movies.AssertExpectations(t)
	})

	t.Run("no rows affected", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()

		f.movies.On("FindByID", ctx, uint(3)).Return(&models.Movie{ID: 3}, nil)
		f.movies.On("UpdateFields", ctx, uint(3), mock.Anything).Return(int64(0), nil)

		res, err := f.svc.UpdateMovie(ctx, UpdateMovieInput{ID: 3, Genre: strPtr("Drama")})
		require.NoError(t, err)
		assert.Nil(t, res.Movie)
		assert.Equal(t, uint(3), res.MovieID)
	})

	t.Run("replacing a shared poster keeps the file", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		dir, oldURL := savedPoster(t)

		f.movies.On("FindByID", ctx, uint(3)).Return(&models.Movie{ID: 3, PosterURL: oldURL}, nil)
		f.movies.On("UpdateFields", ctx, uint(3), mock.Anything).Return(int64(1), nil)
		f.movies.On("FindWithStats", ctx, uint(3)).Return(&models.MovieWithStats{}, nil)

		_, err := f.svc.UpdateMovie(ctx, UpdateMovieInput{ID: 3, PosterURL: strPtr("http://cdn/new.jpg")})
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, filepath.Base(oldURL)))
	})

	errorCases := []struct {
		name string
		in   UpdateMovieInput
		want string
	}{
		{"nothing to update", UpdateMovieInput{ID: 3}, "Tidak ada data yang diupdate"},
		{"bad status", UpdateMovieInput{ID: 3, WatchStatus: strPtr("dropped")}, msgInvalidStatus},
		{"bad favorite", UpdateMovieInput{ID: 3, IsFavorite: intPtr(2)}, msgInvalidFavorite},
		{"empty title", UpdateMovieInput{ID: 3, Title: strPtr("  ")}, "Judul film tidak boleh kosong"},
		{"bad year", UpdateMovieInput{ID: 3, Year: strPtr("1800")}, "Tahun harus antara 1900 dan 2030"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			f := newMovieFixture()
			ctx := context.Background()
			f.movies.On("FindByID", ctx, uint(3)).Return(&models.Movie{ID: 3}, nil)

			_, err := f.svc.UpdateMovie(ctx, tt.in)
			svcErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, svcErr.Message)
			f.movies.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		f := newMovieFixture()
		_, err := f.svc.UpdateMovie(context.Background(), UpdateMovieInput{})
		svcErr, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, msgInvalidMovieID, svcErr.Message)
	})

	t.Run("missing movie", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		f.movies.On("FindByID", ctx, uint(4)).Return(nil, nil)
		_, err := f.svc.UpdateMovie(ctx, UpdateMovieInput{ID: 4, Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteMovie(t *testing.T) {
	summary := &models.MovieDeleteSummary{ID: 5, Title: "Heat", UserID: 2, Username: "sandi"}

	t.Run("success", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		f.movies.On("FindDeleteSummary", ctx, uint(5)).Return(summary, nil)
		f.movies.On("DeleteWithReviews", ctx, uint(5)).Return(int64(3), nil)

		res, err := f.svc.DeleteMovie(ctx, DeleteMovieInput{MovieID: 5, UserID: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.ReviewsDeleted)
		assert.Equal(t, "Heat", res.Movie.Title)
	})

	t.Run("poster naming another user's upload survives", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		dir, url := savedPoster(t)
		foreign := "https://elsewhere.invalid/uploads/" + filepath.Base(url)

		f.movies.On("FindDeleteSummary", ctx, uint(2)).Return(&models.MovieDeleteSummary{ID: 2, Title: "Copy", UserID: 2}, nil)
		f.movies.On("FindByID", ctx, uint(2)).Return(&models.Movie{ID: 2, UserID: 2, PosterURL: foreign}, nil).Maybe()
		f.movies.On("DeleteWithReviews", ctx, uint(2)).Return(int64(0), nil)

		_, err := f.svc.DeleteMovie(ctx, DeleteMovieInput{MovieID: 2, UserID: 2})
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, filepath.Base(url)))
	})

	t.Run("not owner", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		f.movies.On("FindDeleteSummary", ctx, uint(5)).Return(summary, nil)

		_, err := f.svc.DeleteMovie(ctx, DeleteMovieInput{MovieID: 5, UserID: 9})
		assert.ErrorIs(t, err, ErrForbidden)
		f.movies.AssertNotCalled(t, "DeleteWithReviews", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		f.movies.On("FindDeleteSummary", ctx, uint(6)).Return(nil, nil)

		_, err := f.svc.DeleteMovie(ctx, DeleteMovieInput{MovieID: 6})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("transaction failure is internal", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		f.movies.On("FindDeleteSummary", ctx, uint(5)).Return(summary, nil)
		f.movies.On("DeleteWithReviews", ctx, uint(5)).Return(int64(0), errors.New("deadlock"))

		_, err := f.svc.DeleteMovie(ctx, DeleteMovieInput{MovieID: 5})
		require.Error(t, err)
		_, ok := AsError(err)
		assert.False(t, ok)
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Run("unchanged", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		f.movies.On("FindByID", ctx, uint(1)).Return(&models.Movie{ID: 1, Title: "Up", IsFavorite: true}, nil)

		res, err := f.svc.ToggleFavorite(ctx, 1, 1)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.True(t, res.Current)
		f.movies.AssertNotCalled(t, "SetFavorite", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("changed", func(t *testing.T) {
		f := newMovieFixture()
		ctx := context.Background()
		f.movies.On("FindByID", ctx, uint(1)).Return(&models.Movie{ID: 1, Title: "Up"}, nil)
		f.movies.On("SetFavorite", ctx, uint(1), true).Return(nil)
		f.movies.On("FindWithStats", ctx, uint(1)).Return(&models.MovieWithStats{Movie: models.Movie{ID: 1, IsFavorite: true}}, nil)

		res, err := f.svc.ToggleFavorite(ctx, 1, 1)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.False(t, res.Previous)
		assert.True(t, res.Current)
		assert.True(t, res.Movie.IsFavorite)
	})

	t.Run("invalid flag", func(t *testing.T) {
		f := newMovieFixture()
		_, err := f.svc.ToggleFavorite(context.Background(), 1, 3)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSearchMoviesRequiresCriteria(t *testing.T) {
	f := newMovieFixture()
	_, _, err := f.svc.SearchMovies(context.Background(), models.SearchFilter{Query: "  "}, models.NewPageRequest(1, 10))
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Harap masukkan kata kunci pencarian", svcErr.Message)
}

func TestSearchMovies(t *testing.T) {
	f := newMovieFixture()
	ctx := context.Background()
	page := models.NewPageRequest(1, 10)
	f.movies.On("Search", ctx, models.SearchFilter{Genre: "Drama"}, page).Return([]models.MovieWithStats(nil), int64(0), nil)

	movies, total, err := f.svc.SearchMovies(ctx, models.SearchFilter{Genre: " Drama "}, page)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
	assert.Equal(t, int64(0), total)
}

func TestGetMovieDetail(t *testing.T) {
	f := newMovieFixture()
	ctx := context.Background()
	f.movies.On("FindDetail", ctx, uint(8)).Return(&models.MovieDetail{Rating5: 2}, nil)
	f.reviews.On("Recent", ctx, uint(8), detailRecentReviews).Return([]models.ReviewWithUser{{Username: "a"}}, nil)

	res, err := f.svc.GetMovieDetail(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, res.RecentReviews, 1)
	assert.Equal(t, int64(2), res.Movie.Distribution()[5])

	_, err = f.svc.GetMovieDetail(ctx, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetUserMovies(t *testing.T) {
	f := newMovieFixture()
	ctx := context.Background()
	f.users.On("FindByID", ctx, uint(2)).Return(&models.User{ID: 2, Username: "sandi", FullName: "Sandi"}, nil)
	f.movies.On("GetUserStats", ctx, uint(2)).Return(&models.UserMovieStats{TotalMovies: 4, Watched: 1}, nil)
	f.movies.On("FindRecentByUser", ctx, uint(2), userRecentMovies).Return([]models.Movie{{ID: 1}}, nil)

	res, err := f.svc.GetUserMovies(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "sandi", res.User.Username)
	assert.Equal(t, int64(4), res.Stats.TotalMovies)
	assert.Len(t, res.RecentMovies, 1)

	f.users.On("FindByID", ctx, uint(3)).Return(nil, nil)
	_, err = f.svc.GetUserMovies(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}
