package models

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	UserID    uint      `gorm:"index:idx_reviews_user_movie;not null" json:"user_id" example:"1"`
	MovieID   uint      `gorm:"index:idx_reviews_user_movie;index;not null" json:"movie_id" example:"1"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating" example:"5"`
	Comment   string    `gorm:"type:text;not null" json:"comment" example:"Mind-bending!"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewWithUser is a review joined with the reviewer's public profile.
type ReviewWithUser struct {
	Review
	Username string `json:"username" example:"sandi"`
	FullName string `json:"full_name" example:"Sandi Yudha"`
	Email    string `json:"email,omitempty"`
}

// RatingDistribution counts reviews per star value (1..5).
type RatingDistribution map[int]int64

// NewRatingDistribution returns a histogram with every star present.
func NewRatingDistribution() RatingDistribution {
	d := make(RatingDistribution, MaxRating)
	for r := MinRating; r <= MaxRating; r++ {
		d[r] = 0
	}
	return d
}

// RatingStats aggregates every review of a single movie.
type RatingStats struct {
	AverageRating float64            `json:"average_rating"`
	TotalReviews  int64              `json:"total_reviews"`
	Distribution  RatingDistribution `json:"rating_distribution"`
}

// NewRatingStats builds the aggregate from per-star counts.
func NewRatingStats(dist RatingDistribution) *RatingStats {
	stats := &RatingStats{Distribution: NewRatingDistribution()}
	var sum int64
	for rating, count := range dist {
		if rating < MinRating || rating > MaxRating {
			continue
		}
		stats.Distribution[rating] = count
		stats.TotalReviews += count
		sum += int64(rating) * count
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = RoundRating(float64(sum) / float64(stats.TotalReviews))
	}
	return stats
}

// RoundRating rounds an average to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
