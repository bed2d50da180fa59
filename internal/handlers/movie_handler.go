package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"movie-collection/internal/models"
	"movie-collection/internal/services"
	"movie-collection/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.MovieService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// queryID reads a positive integer query parameter; anything else is zero.
func queryID(c *fiber.Ctx, key string) uint {
	v := c.QueryInt(key, 0)
	if v <= 0 {
		return 0
	}
	return uint(v)
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func pageRequest(c *fiber.Ctx) models.PageRequest {
	return models.NewPageRequest(c.QueryInt("page", 1), c.QueryInt("limit", models.DefaultPageLimit))
}

// AddMovie godoc
// @Summary Add a movie
// @Description Add a movie to a user's collection. A rating (0-10) also stores the owner's first review.
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body AddMovieRequest true "Movie data"
// @Success 201 {object} utils.StandardResponse "Film berhasil ditambahkan"
// @Failure 400 {object} utils.StandardResponse "Validation error"
// @Failure 404 {object} utils.StandardResponse "User tidak ditemukan"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/add [post]
func (h *MovieHandler) AddMovie(c *fiber.Ctx) error {
	var req AddMovieRequest
	if err := parseJSON(c, &req); err != nil {
		return err
	}

	in := services.AddMovieInput{
		UserID:      req.UserID.Uint(),
		Title:       req.Title,
		Year:        string(req.Year),
		Genre:       req.Genre,
		Director:    req.Director,
		Duration:    req.Duration,
		PosterURL:   req.PosterURL,
		Description: req.Description,
		WatchStatus: req.WatchStatus,
		IsFavorite:  req.IsFavorite.Int() == 1,
	}
	if req.Rating != nil {
		in.Rating = float64(*req.Rating)
	}

	movie, err := h.service.AddMovie(c.UserContext(), in)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Gagal menambahkan film")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Film berhasil ditambahkan", fiber.Map{
		"movie": movie,
	})
}

// UpdateMovie godoc
// @Summary Update a movie
// @Description Update any subset of a movie's fields
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body UpdateMovieRequest true "Fields to change"
// @Success 200 {object} utils.StandardResponse "Film berhasil diupdate"
// @Failure 400 {object} utils.StandardResponse "Validation error"
// @Failure 404 {object} utils.StandardResponse "Film tidak ditemukan"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/update [post]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	var req UpdateMovieRequest
	if err := parseJSON(c, &req); err != nil {
		return err
	}

	in := services.UpdateMovieInput{
		ID:          req.ID.Uint(),
		Title:       req.Title,
		Year:        req.Year.Ptr(),
		Genre:       req.Genre,
		Director:    req.Director,
		Duration:    req.Duration,
		PosterURL:   req.PosterURL,
		Description: req.Description,
		WatchStatus: req.WatchStatus,
	}
	if req.IsFavorite != nil {
		fav := req.IsFavorite.Int()
		in.IsFavorite = &fav
	}

	res, err := h.service.UpdateMovie(c.UserContext(), in)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Gagal mengupdate film")
	}

	if res.Movie == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, "Tidak ada perubahan data", fiber.Map{
			"movie_id": res.MovieID,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Film berhasil diupdate", fiber.Map{
		"movie":        res.Movie,
		"changes_made": res.ChangesMade,
	})
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Delete a movie and all of its reviews in one transaction
// @Tags movies
// @Accept json
// @Produce json
// @Param request body DeleteMovieRequest true "Movie to delete"
// @Success 200 {object} utils.StandardResponse "Film berhasil dihapus"
// @Failure 400 {object} utils.StandardResponse "ID film tidak valid"
// @Failure 403 {object} utils.StandardResponse "Not the owner"
// @Failure 404 {object} utils.StandardResponse "Film tidak ditemukan"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/delete [post]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	var req DeleteMovieRequest
	if err := parseJSON(c, &req); err != nil {
		return err
	}

	res, err := h.service.DeleteMovie(c.UserContext(), services.DeleteMovieInput{
		MovieID: req.MovieID.Uint(),
		UserID:  req.UserID.Uint(),
	})
	if err != nil {
		return handleServiceError(c, h.logger, err, "Gagal menghapus film")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Film berhasil dihapus", fiber.Map{
		"deleted_movie": res.Movie,
		"statistics": fiber.Map{
			"movie_deleted":       true,
			"reviews_deleted":     res.ReviewsDeleted,
			"total_items_deleted": res.ReviewsDeleted + 1,
		},
		"message": fmt.Sprintf("Film '%s' telah dihapus dari koleksi", res.Movie.Title),
	})
}

// ToggleFavorite godoc
// @Summary Set favorite status
// @Description Mark or unmark a movie as favorite. Repeating the current state changes nothing.
// @Tags movies
// @Accept json
// @Produce json
// @Param request body FavoriteRequest true "Favorite flag"
// @Success 200 {object} utils.StandardResponse "Favorite status"
// @Failure 400 {object} utils.StandardResponse "Validation error"
// @Failure 404 {object} utils.StandardResponse "Film tidak ditemukan"
// @Router /movies/favorite [post]
func (h *MovieHandler) ToggleFavorite(c *fiber.Ctx) error {
	var req FavoriteRequest
	if err := parseJSON(c, &req); err != nil {
		return err
	}
	if req.MovieID == nil || req.IsFavorite == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "movie_id dan is_favorite harus diisi")
	}

	res, err := h.service.ToggleFavorite(c.UserContext(), req.MovieID.Uint(), req.IsFavorite.Int())
	if err != nil {
		return handleServiceError(c, h.logger, err, "Gagal mengubah status favorit")
	}

	if !res.Changed {
		state := "sudah bukan favorit"
		if res.Current {
			state = "sudah favorit"
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fmt.Sprintf("Film '%s' %s", res.Title, state), fiber.Map{
			"movie_id":       res.MovieID,
			"current_status": res.Current,
			"changed":        false,
		})
	}

	action := "dihapus dari"
	if res.Current {
		action = "ditambahkan ke"
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fmt.Sprintf("Film '%s' berhasil %s favorit", res.Title, action), fiber.Map{
		"movie":           res.Movie,
		"previous_status": res.Previous,
		"new_status":      res.Current,
		"changed":         true,
	})
}

// GetAllMovies godoc
// @Summary List movies
// @Description List every movie with owner, average rating and review count
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param sort_by query string false "created_at, title, year or average_rating" default(created_at)
// @Param order query string false "ASC or DESC" default(DESC)
// @Success 200 {object} utils.StandardResponse "Berhasil mengambil data film"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	q := models.MovieListQuery{
		PageRequest: pageRequest(c),
		SortBy:      models.ParseMovieSortField(c.Query("sort_by")),
		Order:       models.ParseSortOrder(c.Query("order")),
	}

	movies, total, err := h.service.ListMovies(c.UserContext(), q)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Gagal mengambil data film")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Berhasil mengambil data film", fiber.Map{
		"movies":     movies,
		"pagination": utils.CreatePaginationMeta(q.PageRequest, total),
		"sorting": fiber.Map{
			"sort_by": q.SortBy,
			"order":   q.Order,
		},
	})
}

// SearchMovies godoc
// @Summary Search movies
// @Description Match title, director or description (q), genre and exact year. At least one criterion is required.
// @Tags movies
// @Produce json
// @Param q query string false "Keyword"
// @Param genre query string false "Genre"
// @Param year query string false "Year"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Results per page (max 50)" default(10)
// @Success 200 {object} utils.StandardResponse "Hasil pencarian ditemukan"
// @Failure 400 {object} utils.StandardResponse "Harap masukkan kata kunci pencarian"
// @Router /movies/search [get]
func (h *MovieHandler) SearchMovies(c *fiber.Ctx) error {
	filter := models.SearchFilter{
		Query: c.Query("q"),
		Genre: c.Query("genre"),
		Year:  c.Query("year"),
	}
	page := pageRequest(c)

	movies, total, err := h.service.SearchMovies(c.UserContext(), filter, page)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Error searching movies")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Hasil pencarian ditemukan", fiber.Map{
		"search_results": movies,
		"search_metadata": fiber.Map{
			"query":         utils.Sanitize(filter.Query),
			"genre":         utils.Sanitize(filter.Genre),
			"year":          utils.Sanitize(filter.Year),
			"total_results": total,
		},
		"pagination": utils.CreateSearchPaginationMeta(page, total),
	})
}

// GetMovieDetail godoc
// @Summary Movie detail
// @Description Movie with owner, rating distribution and the three latest reviews
// @Tags movies
// @Produce json
// @Param movie_id query int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Berhasil mengambil detail film"
// @Failure 400 {object} utils.StandardResponse "Parameter movie_id diperlukan"
// @Failure 404 {object} utils.StandardResponse "Film tidak ditemukan"
// @Router /movies/detail [get]
func (h *MovieHandler) GetMovieDetail(c *fiber.Ctx) error {
	res, err := h.service.GetMovieDetail(c.UserContext(), queryID(c, "movie_id"))
	if err != nil {
		return handleServiceError(c, h.logger, err, "Error fetching movie details")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Berhasil mengambil detail film", fiber.Map{
		"movie":               res.Movie,
		"rating_distribution": ratingDistributionView(res.Movie.Distribution()),
		"recent_reviews":      res.RecentReviews,
	})
}

// GetUserMovies godoc
// @Summary User collection summary
// @Description Counts per watch status and the five most recently added movies of a user
// @Tags users
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} utils.StandardResponse "Berhasil mengambil data user"
// @Failure 400 {object} utils.StandardResponse "Parameter user_id diperlukan"
// @Failure 404 {object} utils.StandardResponse "User tidak ditemukan"
// @Router /users/movies [get]
func (h *MovieHandler) GetUserMovies(c *fiber.Ctx) error {
	res, err := h.service.GetUserMovies(c.UserContext(), queryID(c, "user_id"))
	if err != nil {
		return handleServiceError(c, h.logger, err, "Error fetching user movies")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Berhasil mengambil data user", fiber.Map{
		"user":          res.User,
		"statistics":    res.Stats,
		"recent_movies": res.RecentMovies,
	})
}
