package repository

import (
	"context"
	"time"

	"movie-collection/internal/database"
	"movie-collection/internal/models"
)

// AuditRepository holds the write-only side tables.
type AuditRepository interface {
	LogActivity(ctx context.Context, entry *models.ActivityLog) error
	RecordImage(ctx context.Context, image *models.UploadedImage) error
}

type auditRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewAuditRepository(db *database.Database) AuditRepository {
	return &auditRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *auditRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *auditRepository) LogActivity(ctx context.Context, entry *models.ActivityLog) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) RecordImage(ctx context.Context, image *models.UploadedImage) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(image).Error
}
