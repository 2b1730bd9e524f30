package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"pantrify/internal/domain"
	"pantrify/internal/port"
)

// UpsertSuggestionInput is the DTO for creating or replacing a pantry suggestion.
type UpsertSuggestionInput struct {
	Name        string `json:"name" binding:"required"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// SuggestionService defines the pantry suggestion contract.
type SuggestionService interface {
	List(ctx context.Context) ([]domain.PantrySuggestion, error)
	Upsert(ctx context.Context, input UpsertSuggestionInput) (*domain.PantrySuggestion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type suggestionService struct {
	repo port.SuggestionRepository
}

// NewSuggestionService creates a new SuggestionService implementation.
func NewSuggestionService(repo port.SuggestionRepository) SuggestionService {
	return &suggestionService{repo: repo}
}

func (s *suggestionService) List(ctx context.Context) ([]domain.PantrySuggestion, error) {
	return s.repo.List(ctx)
}

// Upsert inserts a suggestion or replaces the one with the same name.
func (s *suggestionService) Upsert(ctx context.Context, input UpsertSuggestionInput) (*domain.PantrySuggestion, error) {
	name, err := cleanItemName(input.Name)
	if err != nil {
		return nil, err
	}
	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL != "" && !isImageURL(imageURL) {
		return nil, fmt.Errorf("%w: image_url must be an http(s) URL or a site path", domain.ErrInvalidInput)
	}

	sugg := &domain.PantrySuggestion{
		Name:        name,
		ImageURL:    imageURL,
		Description: SanitizeInput(input.Description),
	}
	if err := s.repo.Upsert(ctx, sugg); err != nil {
		return nil, fmt.Errorf("suggestion.Upsert: %w", err)
	}
	log.Printf("suggestionService.Upsert: saved suggestion %q (%s)", sugg.Name, sugg.ID)
	return sugg, nil
}

func (s *suggestionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// isImageURL accepts absolute http(s) URLs and root-relative paths such as
// /images/pantry/rice.png. Protocol-relative //host links are rejected.
func isImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return u.Host != ""
	}
	return u.Scheme == "" && u.Host == "" && strings.HasPrefix(u.Path, "/")
}
