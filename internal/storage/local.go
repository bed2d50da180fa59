package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// accessRules is written next to the uploads so an Apache front end serving
// the directory directly keeps it image-only and unlisted.
const accessRules = `Options -Indexes
<FilesMatch "\.(jpg|jpeg|png|gif|webp)$">
    Require all granted
</FilesMatch>
<FilesMatch "^(?!.*\.(jpg|jpeg|png|gif|webp)$)">
    Require all denied
</FilesMatch>
`

type LocalStore struct {
	dir       string
	urlPrefix string
	logger    *logrus.Logger

	initOnce sync.Once
	initErr  error
}

func NewLocalStore(dir, urlPrefix string, logger *logrus.Logger) *LocalStore {
	return &LocalStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		logger:    logger,
	}
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// ensureDir creates the directory and its access rules on first use.
func (s *LocalStore) ensureDir() error {
	s.initOnce.Do(func() {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			s.initErr = fmt.Errorf("failed to create upload dir: %w", err)
			return
		}
		rules := filepath.Join(s.dir, ".htaccess")
		if _, err := os.Stat(rules); errors.Is(err, os.ErrNotExist) {
			if err := os.WriteFile(rules, []byte(accessRules), 0644); err != nil {
				s.logger.WithError(err).Warn("Failed to write upload access rules")
			}
		}
	})
	return s.initErr
}

func (s *LocalStore) Save(ctx context.Context, name, contentType string, data []byte) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid image name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close image: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set image permissions: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move image into place: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename":    name,
		"contentType": contentType,
		"size":        len(data),
	}).Debug("Image stored on local filesystem")
	return nil
}

func (s *LocalStore) URL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + s.urlPrefix + "/" + name
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid image name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *LocalStore) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read upload dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), NamePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := s.Delete(ctx, entry.Name()); err != nil {
			s.logger.WithError(err).WithField("filename", entry.Name()).Warn("Failed to remove expired image")
			continue
		}
		removed++
	}
	return removed, nil
}
