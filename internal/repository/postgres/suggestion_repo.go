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

type suggestionRepo struct {
	db *sqlx.DB
}

// NewSuggestionRepo creates a new PostgreSQL-backed SuggestionRepository.
func NewSuggestionRepo(db *sqlx.DB) port.SuggestionRepository {
	return &suggestionRepo{db: db}
}

func (r *suggestionRepo) List(ctx context.Context) ([]domain.PantrySuggestion, error) {
	var out []domain.PantrySuggestion
	if err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM pantry_suggestions ORDER BY name"); err != nil {
		return nil, fmt.Errorf("suggestionRepo.List: %w", err)
	}
	return out, nil
}

// Upsert inserts s or, when a suggestion with the same name exists, updates
// its image and description. s is refreshed with the stored row.
func (r *suggestionRepo) Upsert(ctx context.Context, s *domain.PantrySuggestion) error {
	query := `INSERT INTO pantry_suggestions (id, name, image_url, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET image_url = EXCLUDED.image_url, description = EXCLUDED.description
		RETURNING *`
	err := r.db.GetContext(ctx, s, query,
		uuid.New(), s.Name, s.ImageURL, s.Description, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("suggestionRepo.Upsert: %w", err)
	}
	return nil
}

func (r *suggestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM pantry_suggestions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("suggestionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
