package models

import (
	"time"
)

type WatchStatus string

const (
	WatchStatusPlanToWatch WatchStatus = "plan_to_watch"
	WatchStatusWatching    WatchStatus = "watching"
	WatchStatusWatched     WatchStatus = "watched"
)

// Valid reports whether s is one of the three tracked states.
func (s WatchStatus) Valid() bool {
	switch s {
	case WatchStatusPlanToWatch, WatchStatusWatching, WatchStatusWatched:
		return true
	}
	return false
}

type Movie struct {
	ID          uint        `gorm:"primaryKey" json:"id" example:"1"`
	UserID      uint        `gorm:"index;not null" json:"user_id" example:"1"`
	Title       string      `gorm:"size:255;not null;index" json:"title" example:"Inception"`
	Year        string      `gorm:"size:4;index" json:"year" example:"2010"`
	Genre       string      `gorm:"size:100" json:"genre" example:"Sci-Fi"`
	Director    string      `gorm:"size:255" json:"director" example:"Christopher Nolan"`
	Duration    string      `gorm:"size:50" json:"duration" example:"148 min"`
	PosterURL   string      `gorm:"column:poster_url;type:text" json:"poster_url" example:"http://localhost:8010/uploads/movie_1700000000_a1b2c3d4e5f60718.jpg"`
	Description string      `gorm:"type:text" json:"description"`
	WatchStatus WatchStatus `gorm:"size:20;not null;default:plan_to_watch;index" json:"watch_status" example:"plan_to_watch"`
	IsFavorite  bool        `gorm:"not null;default:false" json:"is_favorite" example:"false"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieWithStats is a movie joined with its owner and derived review aggregates.
type MovieWithStats struct {
	Movie
	UserUsername  string  `json:"user_username" example:"sandi"`
	UserFullName  string  `json:"user_full_name" example:"Sandi Yudha"`
	UserEmail     string  `json:"user_email,omitempty"`
	AverageRating float64 `json:"average_rating" example:"4.5"`
	TotalReviews  int64   `json:"total_reviews" example:"2"`
}

// MovieDetail extends MovieWithStats with the per-star histogram.
type MovieDetail struct {
	MovieWithStats
	Rating1 int64 `gorm:"column:rating_1" json:"-"`
	Rating2 int64 `gorm:"column:rating_2" json:"-"`
	Rating3 int64 `gorm:"column:rating_3" json:"-"`
	Rating4 int64 `gorm:"column:rating_4" json:"-"`
	Rating5 int64 `gorm:"column:rating_5" json:"-"`
}

// Distribution returns the histogram keyed by star value.
func (d *MovieDetail) Distribution() RatingDistribution {
	return RatingDistribution{
		1: d.Rating1,
		2: d.Rating2,
		3: d.Rating3,
		4: d.Rating4,
		5: d.Rating5,
	}
}

// MovieDeleteSummary is the snapshot taken before a movie is removed.
type MovieDeleteSummary struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	TotalReviews int64  `json:"-"`
}

// UserMovieStats counts a user's collection by state.
type UserMovieStats struct {
	TotalMovies    int64 `json:"total_movies"`
	FavoriteMovies int64 `json:"favorite_movies"`
	PlanToWatch    int64 `json:"plan_to_watch"`
	Watching       int64 `json:"watching"`
	Watched        int64 `json:"watched"`
}
