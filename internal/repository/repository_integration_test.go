//go:build integration

package repository

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"movie-collection/internal/config"
	"movie-collection/internal/database"
	"movie-collection/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func dockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// startPostgres runs a throwaway postgres and returns a migrated handle.
func startPostgres(t *testing.T) *database.Database {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "movie",
				"POSTGRES_PASSWORD": "movie",
				"POSTGRES_DB":       "movie_collection",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := database.Connect(config.DatabaseConfig{
		Host:            host,
		Port:            port.Port(),
		User:            "movie",
		Password:        "movie",
		DBName:          "movie_collection",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		QueryTimeout:    5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type repos struct {
	users   UserRepository
	movies  MovieRepository
	reviews ReviewRepository
	audit   AuditRepository
}

func seed(t *testing.T, r repos) (*models.User, *models.User, []*models.Movie) {
	t.Helper()
	ctx := context.Background()

	owner := &models.User{Username: "sandi", Password: "hash", Email: "sandi@example.com", FullName: "Sandi Yudha"}
	critic := &models.User{Username: "rani", Password: "hash", Email: "rani@example.com", FullName: "Rani Putri"}
	require.NoError(t, r.users.Create(ctx, owner))
	require.NoError(t, r.users.Create(ctx, critic))

	movies := []*models.Movie{
		{UserID: owner.ID, Title: "Inception", Year: "2010", Genre: "Sci-Fi", Director: "Christopher Nolan", WatchStatus: models.WatchStatusWatched, IsFavorite: true},
		{UserID: owner.ID, Title: "Heat", Year: "1995", Genre: "Crime", Director: "Michael Mann", WatchStatus: models.WatchStatusPlanToWatch},
		{UserID: critic.ID, Title: "100% Wolf", Year: "2020", Genre: "Animation", Description: "A boy who turns into a poodle", WatchStatus: models.WatchStatusWatching},
	}
	for _, m := range movies {
		require.NoError(t, r.movies.Create(ctx, m))
	}
	return owner, critic, movies
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	db := startPostgres(t)
	r := repos{
		users:   NewUserRepository(db),
		movies:  NewMovieRepository(db),
		reviews: NewReviewRepository(db),
		audit:   NewAuditRepository(db),
	}
	ctx := context.Background()
	owner, critic, movies := seed(t, r)
	inception, heat, wolf := movies[0], movies[1], movies[2]

	t.Run("users", func(t *testing.T) {
		u, err := r.users.FindByLogin(ctx, "sandi@example.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, owner.ID, u.ID)

		mixed, err := r.users.FindByLogin(ctx, "SANDI@example.com")
		require.NoError(t, err)
		require.NotNil(t, mixed)
		assert.Equal(t, owner.ID, mixed.ID)

		missing, err := r.users.FindByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, missing)

		exists, err := r.users.ExistsByUsernameOrEmail(ctx, "someone", "rani@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("reviews and stats", func(t *testing.T) {
		require.NoError(t, r.reviews.Create(ctx, &models.Review{UserID: owner.ID, MovieID: inception.ID, Rating: 5, Comment: "Brilliant"}))
		require.NoError(t, r.reviews.Create(ctx, &models.Review{UserID: critic.ID, MovieID: inception.ID, Rating: 4, Comment: "Clever"}))
		require.NoError(t, r.reviews.Create(ctx, &models.Review{UserID: critic.ID, MovieID: heat.ID, Rating: 2, Comment: "Too long"}))

		exists, err := r.reviews.Exists(ctx, critic.ID, inception.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		stats, err := r.reviews.Stats(ctx, inception.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.5, stats.AverageRating)
		assert.Equal(t, int64(2), stats.TotalReviews)

		detail, err := r.movies.FindDetail(ctx, inception.ID)
		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.Equal(t, "sandi@example.com", detail.UserEmail)
		assert.Equal(t, 4.5, detail.AverageRating)
		assert.Equal(t, int64(1), detail.Distribution()[5])

		list, err := r.reviews.ListByMovie(ctx, inception.ID, models.ReviewSortLowest, models.NewPageRequest(1, 10))
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, 4, list[0].Rating)
		assert.Equal(t, "rani", list[0].Username)
	})

	t.Run("list sorted by rating", func(t *testing.T) {
		got, total, err := r.movies.FindAll(ctx, models.MovieListQuery{
			PageRequest: models.NewPageRequest(1, 2),
			SortBy:      models.SortByAverageRating,
			Order:       models.OrderDesc,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, got, 2)
		assert.Equal(t, inception.ID, got[0].ID)
		assert.Equal(t, "sandi", got[0].UserUsername)
		assert.Equal(t, heat.ID, got[1].ID)
	})

	t.Run("search", func(t *testing.T) {
		got, total, err := r.movies.Search(ctx, models.SearchFilter{Query: "nolan"}, models.NewPageRequest(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, got, 1)
		assert.Equal(t, inception.ID, got[0].ID)

		got, total, err = r.movies.Search(ctx, models.SearchFilter{Query: "100%"}, models.NewPageRequest(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, wolf.ID, got[0].ID)

		_, total, err = r.movies.Search(ctx, models.SearchFilter{Genre: "crime", Year: "2010"}, models.NewPageRequest(1, 10))
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("update and favorite", func(t *testing.T) {
		n, err := r.movies.UpdateFields(ctx, heat.ID, map[string]interface{}{"watch_status": models.WatchStatusWatching})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, r.movies.SetFavorite(ctx, heat.ID, true))
		m, err := r.movies.FindByID(ctx, heat.ID)
		require.NoError(t, err)
		assert.True(t, m.IsFavorite)
		assert.Equal(t, models.WatchStatusWatching, m.WatchStatus)

		n, err = r.movies.UpdateFields(ctx, 9999, map[string]interface{}{"title": "Ghost"})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("user stats", func(t *testing.T) {
		stats, err := r.movies.GetUserStats(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalMovies)
		assert.Equal(t, int64(2), stats.FavoriteMovies)
		assert.Equal(t, int64(1), stats.Watched)
		assert.Equal(t, int64(1), stats.Watching)

		recent, err := r.movies.FindRecentByUser(ctx, owner.ID, 5)
		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})

	t.Run("delete cascades reviews", func(t *testing.T) {
		summary, err := r.movies.FindDeleteSummary(ctx, inception.ID)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, "sandi", summary.Username)

		n, err := r.movies.DeleteWithReviews(ctx, inception.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		gone, err := r.movies.FindByID(ctx, inception.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		_, err = r.movies.DeleteWithReviews(ctx, inception.ID)
		assert.ErrorIs(t, err, ErrMovieNotDeleted)
	})

	t.Run("audit", func(t *testing.T) {
		require.NoError(t, r.audit.LogActivity(ctx, &models.ActivityLog{UserID: owner.ID, Action: "add_movie", Details: "Inception"}))
		img := &models.UploadedImage{Filename: "movie_1.png", OriginalName: "poster.png", FileType: "image/png", FileSize: 10}
		require.NoError(t, r.audit.RecordImage(ctx, img))
		assert.NotZero(t, img.ID)
	})
}
