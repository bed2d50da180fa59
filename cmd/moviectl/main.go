package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"movie-collection/internal/client"
	"movie-collection/internal/models"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const usage = `Usage: moviectl add [flags]

Adds a movie to the collection, uploading an optional poster first.

Flags:
`

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if len(os.Args) < 2 || os.Args[1] != "add" {
		fmt.Fprint(os.Stderr, usage)
		addFlags(new(addOptions)).PrintDefaults()
		os.Exit(2)
	}

	opts := new(addOptions)
	fs := addFlags(opts)
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	if err := runAdd(context.Background(), opts, log); err != nil {
		var formErr *client.FormError
		var apiErr *client.APIError
		switch {
		case errors.As(err, &formErr):
			log.WithField("field", formErr.Field).Error(formErr.Message)
		case errors.As(err, &apiErr):
			log.WithField("status", apiErr.Status).Errorf("Gagal menambahkan film: %s", apiErr.Message)
		default:
			log.WithError(err).Error("Gagal menambahkan film")
		}
		os.Exit(1)
	}
}

type addOptions struct {
	apiURL      string
	timeout     time.Duration
	username    string
	password    string
	userID      uint
	title       string
	year        string
	genre       string
	director    string
	duration    string
	description string
	watchStatus string
	favorite    bool
	rating      float64
	poster      string
}

func addFlags(o *addOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringVar(&o.apiURL, "api", envOr("MOVIE_API_URL", "http://localhost:8010/api/v1"), "API base URL")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "request timeout")
	fs.StringVar(&o.username, "username", os.Getenv("MOVIE_API_USERNAME"), "log in as this user (username or email)")
	fs.StringVar(&o.password, "password", os.Getenv("MOVIE_API_PASSWORD"), "password for -username")
	fs.UintVar(&o.userID, "user-id", 0, "owner id; taken from the login when omitted")
	fs.StringVar(&o.title, "title", "", "movie title (required)")
	fs.StringVar(&o.year, "year", "", "release year, 4 digits (required)")
	fs.StringVar(&o.genre, "genre", "", "genre")
	fs.StringVar(&o.director, "director", "", "director")
	fs.StringVar(&o.duration, "duration", "", "duration, e.g. \"148 min\"")
	fs.StringVar(&o.description, "description", "", "synopsis")
	fs.StringVar(&o.watchStatus, "status", string(models.WatchStatusPlanToWatch), "plan_to_watch, watching or watched")
	fs.BoolVar(&o.favorite, "favorite", false, "mark as favorite")
	fs.Float64Var(&o.rating, "rating", 0, "your rating from 0 to 10")
	fs.StringVar(&o.poster, "poster", "", "path to a poster image (JPG, PNG, GIF or WebP, max 3MB)")
	return fs
}

func runAdd(ctx context.Context, o *addOptions, log *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	c := client.New(o.apiURL, o.timeout)

	userID := o.userID
	if o.username != "" {
		session, err := c.Login(ctx, o.username, o.password)
		if err != nil {
			return err
		}
		log.WithField("username", session.User.Username).Info("Logged in")
		if userID == 0 {
			userID = session.User.ID
		}
	}

	form := client.AddMovieForm{
		UserID:      userID,
		Title:       o.title,
		Year:        o.year,
		Genre:       o.genre,
		Director:    o.director,
		Duration:    o.duration,
		Description: o.description,
		WatchStatus: models.WatchStatus(o.watchStatus),
		IsFavorite:  o.favorite,
		Rating:      o.rating,
	}
	if o.poster != "" {
		data, err := os.ReadFile(o.poster)
		if err != nil {
			return fmt.Errorf("failed to read poster: %w", err)
		}
		form.Poster = &client.Poster{Name: filepath.Base(o.poster), Data: data}
	}

	res, err := c.Submit(ctx, form, time.Now())
	if err != nil {
		return err
	}
	if res.UploadErr != nil {
		log.WithError(res.UploadErr).Warn("Gagal upload gambar, lanjut tanpa gambar")
	}

	log.WithFields(logrus.Fields{
		"movie_id": res.Movie.ID,
		"title":    res.Movie.Title,
	}).Info("Film berhasil ditambahkan!")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Movie)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
