package client

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"movie-collection/internal/models"
)

const (
	MinYear       = 1900
	MaxPosterSize = 3 * 1024 * 1024
)

var (
	yearPattern      = regexp.MustCompile(`^\d{4}$`)
	posterExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}
)

// FormError names the first invalid field of a form.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string {
	return e.Message
}

// Poster is an image picked for upload alongside a new movie.
type Poster struct {
	Name string
	Data []byte
}

// AddMovieForm holds the fields of the add-movie screen.
type AddMovieForm struct {
	UserID      uint
	Title       string
	Year        string
	Genre       string
	Director    string
	Duration    string
	Description string
	WatchStatus models.WatchStatus
	IsFavorite  bool
	Rating      float64
	PosterURL   string
	Poster      *Poster
}

// Validate runs the same checks as the form screen and returns the first failure.
func (f *AddMovieForm) Validate(now time.Time) error {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return &FormError{Field: "title", Message: "Judul film wajib diisi"}
	}
	if utf8.RuneCountInString(title) < 2 {
		return &FormError{Field: "title", Message: "Judul minimal 2 karakter"}
	}

	year := strings.TrimSpace(f.Year)
	if year == "" {
		return &FormError{Field: "year", Message: "Tahun rilis wajib diisi"}
	}
	if !yearPattern.MatchString(year) {
		return &FormError{Field: "year", Message: "Tahun harus berupa 4 digit angka (contoh: 2024)"}
	}
	y, _ := strconv.Atoi(year)
	if y < MinYear {
		return &FormError{Field: "year", Message: fmt.Sprintf("Tahun tidak boleh kurang dari %d", MinYear)}
	}
	if maxYear := now.Year() + 5; y > maxYear {
		return &FormError{Field: "year", Message: fmt.Sprintf("Tahun tidak boleh lebih dari %d", maxYear)}
	}

	if f.WatchStatus != "" && !f.WatchStatus.Valid() {
		return &FormError{Field: "watch_status", Message: "Status tonton tidak valid"}
	}
	if f.Rating < 0 || f.Rating > 10 {
		return &FormError{Field: "rating", Message: "Rating harus antara 0-10"}
	}

	if f.Poster != nil {
		if !posterExtensions[strings.ToLower(filepath.Ext(f.Poster.Name))] {
			return &FormError{Field: "poster", Message: "Format gambar harus JPG, PNG, GIF, atau WebP"}
		}
		if len(f.Poster.Data) > MaxPosterSize {
			return &FormError{Field: "poster", Message: "Ukuran gambar maksimal 3MB"}
		}
	}
	return nil
}

func (f *AddMovieForm) payload() map[string]interface{} {
	status := f.WatchStatus
	if status == "" {
		status = models.WatchStatusPlanToWatch
	}
	favorite := 0
	if f.IsFavorite {
		favorite = 1
	}
	return map[string]interface{}{
		"user_id":      f.UserID,
		"title":        strings.TrimSpace(f.Title),
		"year":         strings.TrimSpace(f.Year),
		"genre":        strings.TrimSpace(f.Genre),
		"director":     strings.TrimSpace(f.Director),
		"duration":     strings.TrimSpace(f.Duration),
		"poster_url":   f.PosterURL,
		"description":  strings.TrimSpace(f.Description),
		"watch_status": string(status),
		"is_favorite":  favorite,
		"rating":       f.Rating,
	}
}

// SubmitResult reports what Submit did. UploadErr is set when the poster
// could not be uploaded and the movie was saved without it.
type SubmitResult struct {
	Movie     *models.MovieWithStats
	Image     *UploadedImage
	UploadErr error
}

// Submit validates the form, uploads the poster if one is attached, and adds
// the movie. A failed upload does not abort the submission.
func (c *Client) Submit(ctx context.Context, form AddMovieForm, now time.Time) (*SubmitResult, error) {
	if err := form.Validate(now); err != nil {
		return nil, err
	}
	if form.UserID == 0 {
		return nil, &FormError{Field: "user_id", Message: "Anda harus login terlebih dahulu"}
	}

	res := &SubmitResult{}
	if form.Poster != nil {
		img, err := c.UploadImage(ctx, form.Poster.Name, form.Poster.Data, form.UserID)
		if err != nil {
			res.UploadErr = err
		} else {
			res.Image = img
			form.PosterURL = img.ImageURL
		}
	}

	movie, err := c.AddMovie(ctx, form)
	if err != nil {
		return nil, err
	}
	res.Movie = movie
	return res, nil
}
