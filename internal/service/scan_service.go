package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pantrify/internal/annotator"
	"pantrify/internal/domain"
	"pantrify/internal/port"
	"pantrify/internal/reconciler"
)

// AnalyzeInput is the DTO for a scan request.
type AnalyzeInput struct {
	UserID   uuid.UUID
	Image    io.Reader
	Filename string
}

// AnalyzeOutput is the reconciled result of a scan plus the raw classifier output.
type AnalyzeOutput struct {
	ScanID          uuid.UUID                  `json:"scan_id"`
	DetectedItems   []string                   `json:"detected_items"`
	Candidates      []reconciler.CandidateItem `json:"candidates"`
	Confidence      reconciler.Confidence      `json:"confidence"`
	LabelConfidence reconciler.Confidence      `json:"label_confidence"`
	TotalDetections int                        `json:"total_detections"`
	RawLabels       []port.Label               `json:"raw_labels"`
	RawObjects      []port.LocalizedObject     `json:"raw_objects"`
}

// ScanWithURL is a scan history entry with an optional presigned image link.
type ScanWithURL struct {
	domain.Scan
	ImageURL string `json:"image_url,omitempty"`
}

// ScanConfig holds the scan service settings.
type ScanConfig struct {
	MaxImageBytes int64
	StoreImages   bool
	Bucket        string
	PresignExpiry int64
}

// ScanService defines the photo scan contract.
type ScanService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]ScanWithURL, int, error)
}

type scanService struct {
	annotator  port.ImageAnnotator
	reconciler *reconciler.Reconciler
	scanRepo   port.ScanRepository
	storage    port.ObjectStorage
	cfg        ScanConfig
}

// NewScanService creates a new ScanService. storage may be nil when image
// archival is disabled.
func NewScanService(
	imageAnnotator port.ImageAnnotator,
	rec *reconciler.Reconciler,
	scanRepo port.ScanRepository,
	storage port.ObjectStorage,
	cfg ScanConfig,
) ScanService {
	return &scanService{
		annotator:  imageAnnotator,
		reconciler: rec,
		scanRepo:   scanRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

func (s *scanService) Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error) {
	if input.Image == nil {
		return nil, domain.ErrNoImage
	}

	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Filename), ".")); ext != "" {
		if _, ok := domain.AllowedExtensions[ext]; !ok {
			return nil, domain.ErrUnsupportedFileType
		}
	}

	// Read one byte past the limit to detect oversized uploads.
	data, err := io.ReadAll(io.LimitReader(input.Image, s.cfg.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("scan.Analyze: reading image: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.ErrNoImage
	}
	if int64(len(data)) > s.cfg.MaxImageBytes {
		return nil, domain.ErrFileTooLarge
	}

	contentType := http.DetectContentType(data)
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	log.Printf("scanService.Analyze: annotating %s image (%d bytes) for user %s",
		contentType, len(data), input.UserID)

	ann, err := s.annotator.Annotate(ctx, port.AnnotateInput{ImageBytes: data, ContentType: contentType})
	if err != nil {
		log.Printf("scanService.Analyze: annotation failed for user %s: %v", input.UserID, err)
		var rlErr *annotator.RateLimitError
		if errors.As(err, &rlErr) {
			return nil, fmt.Errorf("%w: %w", domain.ErrVisionRateLimited, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrVisionUnavailable, err)
	}

	res := s.reconciler.Reconcile(toDetections(ann))

	scan := &domain.Scan{
		UserID:          input.UserID,
		ContentType:     contentType,
		FileSize:        int64(len(data)),
		DetectedItems:   domain.StringSlice(res.Items),
		Confidence:      string(res.Confidence),
		TotalDetections: res.TotalDetections,
	}
	if s.cfg.StoreImages && s.storage != nil {
		s.archive(ctx, scan, data)
	}
	if err := s.scanRepo.Create(ctx, scan); err != nil {
		// History is best effort.
		log.Printf("scanService.Analyze: failed to record scan for user %s: %v", input.UserID, err)
		if scan.S3Key != "" {
			if delErr := s.storage.Delete(ctx, scan.S3Bucket, scan.S3Key); delErr != nil {
				log.Printf("scanService.Analyze: failed to remove orphaned image %s: %v", scan.S3Key, delErr)
			}
		}
	}

	return &AnalyzeOutput{
		ScanID:          scan.ID,
		DetectedItems:   res.Items,
		Candidates:      res.Candidates,
		Confidence:      res.Confidence,
		LabelConfidence: res.LabelConfidence,
		TotalDetections: res.TotalDetections,
		RawLabels:       ann.Labels,
		RawObjects:      ann.Objects,
	}, nil
}

// archive uploads the image and records its location on scan. Failures are
// logged and leave the location empty.
func (s *scanService) archive(ctx context.Context, scan *domain.Scan, data []byte) {
	ext := string(domain.AllowedContentTypes[scan.ContentType])
	key := fmt.Sprintf("users/%s/scans/%s.%s", scan.UserID, uuid.New(), ext)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: scan.ContentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("scanService.archive: S3 upload failed for user %s: %v", scan.UserID, err)
		return
	}
	scan.S3Bucket = s.cfg.Bucket
	scan.S3Key = key
}

func (s *scanService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]ScanWithURL, int, error) {
	scans, total, err := s.scanRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ScanWithURL, 0, len(scans))
	for _, sc := range scans {
		entry := ScanWithURL{Scan: sc}
		if sc.S3Key != "" && s.storage != nil {
			url, err := s.storage.GetPresignedURL(ctx, sc.S3Bucket, sc.S3Key, s.cfg.PresignExpiry)
			if err != nil {
				log.Printf("scanService.List: presign failed for scan %s: %v", sc.ID, err)
			} else {
				entry.ImageURL = url
			}
		}
		out = append(out, entry)
	}
	return out, total, nil
}

func toDetections(ann *port.Annotation) (labels, objects []reconciler.Detection) {
	labels = make([]reconciler.Detection, 0, len(ann.Labels))
	for _, l := range ann.Labels {
		labels = append(labels, reconciler.Detection{Text: l.Description, Score: l.Score})
	}
	objects = make([]reconciler.Detection, 0, len(ann.Objects))
	for _, o := range ann.Objects {
		objects = append(objects, reconciler.Detection{Text: o.Name, Score: o.Score})
	}
	return labels, objects
}
