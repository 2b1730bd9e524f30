package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pantrify/internal/domain"
	"pantrify/internal/port"
)

type scanRepo struct {
	db *sqlx.DB
}

// NewScanRepo creates a new PostgreSQL-backed ScanRepository.
func NewScanRepo(db *sqlx.DB) port.ScanRepository {
	return &scanRepo{db: db}
}

func (r *scanRepo) Create(ctx context.Context, scan *domain.Scan) error {
	scan.ID = uuid.New()
	scan.CreatedAt = time.Now().UTC()

	query := `INSERT INTO scans (id, user_id, s3_bucket, s3_key, content_type, file_size,
		detected_items, confidence, total_detections, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		scan.ID, scan.UserID, scan.S3Bucket, scan.S3Key, scan.ContentType, scan.FileSize,
		scan.DetectedItems, scan.Confidence, scan.TotalDetections, scan.CreatedAt)
	if err != nil {
		return fmt.Errorf("scanRepo.Create: %w", err)
	}
	return nil
}

func (r *scanRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Scan, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM scans WHERE user_id = $1", userID); err != nil {
		return nil, 0, fmt.Errorf("scanRepo.ListByUser count: %w", err)
	}

	var scans []domain.Scan
	err := r.db.SelectContext(ctx, &scans,
		"SELECT * FROM scans WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.ListByUser: %w", err)
	}
	return scans, total, nil
}
