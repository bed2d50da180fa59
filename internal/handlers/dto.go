package handlers

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"movie-collection/internal/models"

	"github.com/goccy/go-json"
)

// FlexInt decodes a JSON number, numeric string or boolean into an int.
// Unparsable strings decode to zero, so range checks report them.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	v, err := flexNumber(b)
	if err != nil {
		return err
	}
	*f = FlexInt(math.Trunc(v))
	return nil
}

func (f *FlexInt) Int() int {
	if f == nil {
		return 0
	}
	return int(*f)
}

// Uint maps non-positive values to zero.
func (f *FlexInt) Uint() uint {
	if f == nil || *f <= 0 {
		return 0
	}
	return uint(*f)
}

// FlexFloat is FlexInt without truncation.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	v, err := flexNumber(b)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// FlexString accepts a JSON string or number, so "2010" and 2010 read the same.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	*f = FlexString(b)
	return nil
}

func (f *FlexString) Ptr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

func flexNumber(b []byte) (float64, error) {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("true")):
		return 1, nil
	case bytes.Equal(b, []byte("false")), bytes.Equal(b, []byte("null")):
		return 0, nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, nil
		}
		return v, nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Requests

type AddMovieRequest struct {
	UserID      *FlexInt   `json:"user_id" example:"1"`
	Title       string     `json:"title" example:"Inception"`
	Year        FlexString `json:"year" swaggertype:"string" example:"2010"`
	Genre       string     `json:"genre" example:"Sci-Fi"`
	Director    string     `json:"director" example:"Christopher Nolan"`
	Duration    string     `json:"duration" example:"148 min"`
	PosterURL   string     `json:"poster_url"`
	Description string     `json:"description"`
	WatchStatus string     `json:"watch_status" example:"plan_to_watch"`
	IsFavorite  *FlexInt   `json:"is_favorite" swaggertype:"integer" example:"0"`
	Rating      *FlexFloat `json:"rating" swaggertype:"number" example:"8.5"`
}

type UpdateMovieRequest struct {
	ID          *FlexInt    `json:"id" swaggertype:"integer" example:"1"`
	Title       *string     `json:"title"`
	Year        *FlexString `json:"year" swaggertype:"string"`
	Genre       *string     `json:"genre"`
	Director    *string     `json:"director"`
	Duration    *string     `json:"duration"`
	PosterURL   *string     `json:"poster_url"`
	Description *string     `json:"description"`
	WatchStatus *string     `json:"watch_status"`
	IsFavorite  *FlexInt    `json:"is_favorite" swaggertype:"integer"`
}

type DeleteMovieRequest struct {
	MovieID *FlexInt `json:"movie_id" swaggertype:"integer" example:"1"`
	UserID  *FlexInt `json:"user_id" swaggertype:"integer" example:"1"`
}

type FavoriteRequest struct {
	MovieID    *FlexInt `json:"movie_id" swaggertype:"integer" example:"1"`
	IsFavorite *FlexInt `json:"is_favorite" swaggertype:"integer" example:"1"`
}

type AddReviewRequest struct {
	UserID  *FlexInt `json:"user_id" swaggertype:"integer" example:"1"`
	MovieID *FlexInt `json:"movie_id" swaggertype:"integer" example:"1"`
	Rating  *FlexInt `json:"rating" swaggertype:"integer" example:"5"`
	Comment string   `json:"comment" example:"Mind-bending and beautiful"`
}

// Response views

// ratingDistributionView renders the histogram with string keys "1".."5".
func ratingDistributionView(d models.RatingDistribution) map[string]int64 {
	out := make(map[string]int64, models.MaxRating)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		out[strconv.Itoa(r)] = d[r]
	}
	return out
}
