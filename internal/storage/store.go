// Package storage persists uploaded poster images on the local filesystem
// or in a MinIO bucket.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// NamePrefix is shared by every stored poster; cleanup only touches names carrying it.
const NamePrefix = "movie_"

var namePattern = regexp.MustCompile(`^movie_\d+_[0-9a-f]{16}\.(jpg|png|gif|webp)$`)

// ImageStore is the backend an upload is written to.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, data []byte) error
	// URL builds the public address of name. baseURL is the scheme, host and
	// base path of the current request; backends with their own public
	// endpoint ignore it.
	URL(baseURL, name string) string
	// Sweep removes stored posters last modified before cutoff. Posters are
	// never removed on movie update or delete; a file may back several movies.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}

// NewImageName returns movie_<unix>_<16 hex>.<ext>.
func NewImageName(ext string, now time.Time) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random name: %w", err)
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return fmt.Sprintf("%s%d_%s.%s", NamePrefix, now.Unix(), hex.EncodeToString(buf), ext), nil
}

// ValidName reports whether name has the exact shape NewImageName produces.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}
