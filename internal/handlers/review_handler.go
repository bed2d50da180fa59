package handlers

import (
	"movie-collection/internal/models"
	"movie-collection/internal/services"
	"movie-collection/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	service services.ReviewService
	logger  *logrus.Logger
}

func NewReviewHandler(service services.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

// AddReview godoc
// @Summary Review a movie
// @Description Add a 1-5 star review. A user may review each movie once.
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body AddReviewRequest true "Review"
// @Success 201 {object} utils.StandardResponse "Review berhasil ditambahkan"
// @Failure 400 {object} utils.StandardResponse "Validation error"
// @Failure 404 {object} utils.StandardResponse "User or movie not found"
// @Failure 409 {object} utils.StandardResponse "Anda sudah memberikan review untuk film ini"
// @Router /reviews/add [post]
func (h *ReviewHandler) AddReview(c *fiber.Ctx) error {
	var req AddReviewRequest
	if err := parseJSON(c, &req); err != nil {
		return err
	}

	in := services.AddReviewInput{
		UserID:  req.UserID.Uint(),
		MovieID: req.MovieID.Uint(),
		Comment: req.Comment,
	}
	if req.Rating != nil {
		rating := req.Rating.Int()
		in.Rating = &rating
	}
	if (req.UserID != nil && in.UserID == 0) || (req.MovieID != nil && in.MovieID == 0) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "User ID atau Movie ID tidak valid")
	}

	res, err := h.service.AddReview(c.UserContext(), in)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Gagal menambahkan review")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Review berhasil ditambahkan", fiber.Map{
		"review": res.Review,
		"movie": fiber.Map{
			"id":    res.Movie.ID,
			"title": res.Movie.Title,
			"new_rating_stats": fiber.Map{
				"avg_rating":    res.Stats.AverageRating,
				"total_reviews": res.Stats.TotalReviews,
			},
		},
	})
}

// GetReviews godoc
// @Summary List reviews of a movie
// @Description Paged reviews with statistics over every review of the movie
// @Tags reviews
// @Produce json
// @Param movie_id query int true "Movie ID"
// @Param sort query string false "newest, oldest, highest or lowest" default(newest)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Success 200 {object} utils.StandardResponse "Berhasil mengambil review"
// @Failure 400 {object} utils.StandardResponse "Parameter movie_id diperlukan"
// @Failure 404 {object} utils.StandardResponse "Film tidak ditemukan"
// @Router /reviews [get]
func (h *ReviewHandler) GetReviews(c *fiber.Ctx) error {
	sort := models.ParseReviewSort(c.Query("sort"))
	page := pageRequest(c)

	res, err := h.service.ListReviews(c.UserContext(), queryID(c, "movie_id"), sort, page)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Gagal mengambil review")
	}

	pagination := utils.CreatePaginationMeta(page, res.Total)
	pagination.SortBy = string(sort)

	return utils.SuccessResponse(c, fiber.StatusOK, "Berhasil mengambil review", fiber.Map{
		"movie": fiber.Map{
			"id":    res.Movie.ID,
			"title": res.Movie.Title,
		},
		"reviews": res.Reviews,
		"statistics": fiber.Map{
			"average_rating":      res.Stats.AverageRating,
			"total_reviews":       res.Stats.TotalReviews,
			"rating_distribution": ratingDistributionView(res.Stats.Distribution),
		},
		"pagination": pagination,
	})
}
