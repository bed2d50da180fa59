package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"time"

	"movie-collection/internal/config"
	"movie-collection/internal/metrics"
	"movie-collection/internal/models"
	"movie-collection/internal/repository"
	"movie-collection/internal/storage"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

// allowedImageTypes maps a sniffed MIME type onto the stored extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// FileTooLargeMessage is the rejection for uploads over maxSize bytes.
func FileTooLargeMessage(maxSize int64) string {
	return fmt.Sprintf("File size too large. Maximum %dMB", maxSize/(1024*1024))
}

type UploadInput struct {
	OriginalName string
	Data         []byte
	UserID       uint
	// BaseURL is scheme://host[/base] of the incoming request.
	BaseURL      string
}

type UploadResult struct {
	URL          string
	Filename     string
	OriginalName string
	FileType     string
	FileSize     int64
	Width        int
	Height       int
	UploadedAt   time.Time
	ImageID      uint
}

type UploadService interface {
	UploadImage(ctx context.Context, in UploadInput) (*UploadResult, error)
	MaxSize() int64
}

type uploadService struct {
	store  storage.ImageStore
	audit  repository.AuditRepository
	cfg    config.UploadConfig
	logger *logrus.Logger
	now    func() time.Time
}

func NewUploadService(store storage.ImageStore, audit repository.AuditRepository, cfg config.UploadConfig, logger *logrus.Logger) UploadService {
	return &uploadService{
		store:  store,
		audit:  audit,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *uploadService) MaxSize() int64 {
	return s.cfg.MaxSize
}

func (s *uploadService) UploadImage(ctx context.Context, in UploadInput) (*UploadResult, error) {
	res, mimeType, err := s.upload(ctx, in)
	if err != nil {
		metrics.RecordImageUpload(mimeType, 0, err)
		return nil, err
	}
	metrics.RecordImageUpload(mimeType, int(res.FileSize), nil)
	return res, nil
}

func (s *uploadService) upload(ctx context.Context, in UploadInput) (*UploadResult, string, error) {
	if len(in.Data) == 0 {
		return nil, "unknown", invalid("No image uploaded or upload error")
	}

	mimeType := http.DetectContentType(in.Data)
	ext, ok := allowedImageTypes[mimeType]
	if !ok {
		return nil, "unknown", invalid("Invalid file type. Allowed: JPG, PNG, GIF, WebP")
	}

	if int64(len(in.Data)) > s.cfg.MaxSize {
		return nil, mimeType, invalid(FileTooLargeMessage(s.cfg.MaxSize))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Data))
	if err != nil {
		return nil, mimeType, invalid("Invalid image file")
	}
	if cfg.Width > s.cfg.MaxWidth || cfg.Height > s.cfg.MaxHeight {
		return nil, mimeType, invalid(fmt.Sprintf("Image dimensions too large. Maximum: %dx%dpx", s.cfg.MaxWidth, s.cfg.MaxHeight))
	}

	data := s.compress(mimeType, in.Data)

	uploadedAt := s.now()
	name, err := storage.NewImageName(ext, uploadedAt)
	if err != nil {
		return nil, mimeType, err
	}

	if err := s.store.Save(ctx, name, mimeType, data); err != nil {
		return nil, mimeType, fmt.Errorf("failed to save uploaded file: %w", err)
	}

	result := &UploadResult{
		URL:          s.store.URL(in.BaseURL, name),
		Filename:     name,
		OriginalName: in.OriginalName,
		FileType:     mimeType,
		FileSize:     int64(len(data)),
		Width:        cfg.Width,
		Height:       cfg.Height,
		UploadedAt:   uploadedAt,
	}

	if s.audit != nil {
		record := &models.UploadedImage{
			Filename:     name,
			OriginalName: in.OriginalName,
			FileType:     mimeType,
			FileSize:     result.FileSize,
			UserID:       in.UserID,
		}
		if err := s.audit.RecordImage(ctx, record); err != nil {
			s.logger.WithError(err).WithField("filename", name).Warn("Failed to record uploaded image")
		} else {
			result.ImageID = record.ID
		}
	}

	s.logger.WithFields(logrus.Fields{
		"filename":      name,
		"original_name": in.OriginalName,
		"type":          mimeType,
		"size":          result.FileSize,
		"original_size": len(in.Data),
	}).Info("Image uploaded")

	return result, mimeType, nil
}

// compress re-encodes JPEG and PNG images and keeps the result only when it is smaller.
func (s *uploadService) compress(mimeType string, data []byte) []byte {
	var buf bytes.Buffer

	switch mimeType {
	case "image/jpeg":
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return data
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.cfg.JPEGQuality}); err != nil {
			return data
		}
	case "image/png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return data
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return data
		}
	default:
		return data
	}

	if buf.Len() > 0 && buf.Len() < len(data) {
		return buf.Bytes()
	}
	return data
}
