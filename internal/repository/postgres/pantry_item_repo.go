package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pantrify/internal/domain"
	"pantrify/internal/port"
)

type pantryItemRepo struct {
	db *sqlx.DB
}

// NewPantryItemRepo creates a new PostgreSQL-backed PantryItemRepository.
func NewPantryItemRepo(db *sqlx.DB) port.PantryItemRepository {
	return &pantryItemRepo{db: db}
}

func (r *pantryItemRepo) Create(ctx context.Context, item *domain.PantryItem) error {
	item.ID = uuid.New()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO pantry_items (id, user_id, name, qty, expiration_date, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.Name, item.Qty, item.ExpirationDate, item.Source,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pantryItemRepo.Create: %w", err)
	}
	return nil
}

// CreateBatch inserts all items in one statement. IDs and timestamps are
// assigned in place.
func (r *pantryItemRepo) CreateBatch(ctx context.Context, items []domain.PantryItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	valueStrings := make([]string, 0, len(items))
	valueArgs := make([]interface{}, 0, len(items)*8)

	for i := range items {
		item := &items[i]
		item.ID = uuid.New()
		item.CreatedAt = now
		item.UpdatedAt = now
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		valueArgs = append(valueArgs, item.ID, item.UserID, item.Name, item.Qty,
			item.ExpirationDate, item.Source, item.CreatedAt, item.UpdatedAt)
	}

	query := fmt.Sprintf(
		`INSERT INTO pantry_items (id, user_id, name, qty, expiration_date, source, created_at, updated_at) VALUES %s`,
		strings.Join(valueStrings, ", "))

	if _, err := r.db.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("pantryItemRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *pantryItemRepo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.PantryItem, error) {
	var item domain.PantryItem
	err := r.db.GetContext(ctx, &item,
		"SELECT * FROM pantry_items WHERE id = $1 AND user_id = $2", itemID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("pantryItemRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *pantryItemRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PantryItem, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM pantry_items WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("pantryItemRepo.ListByUser count: %w", err)
	}

	var items []domain.PantryItem
	err = r.db.SelectContext(ctx, &items,
		"SELECT * FROM pantry_items WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pantryItemRepo.ListByUser: %w", err)
	}
	return items, total, nil
}

func (r *pantryItemRepo) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.PantryItem, error) {
	var items []domain.PantryItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM pantry_items WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("pantryItemRepo.ListAllByUser: %w", err)
	}
	return items, nil
}

func (r *pantryItemRepo) Update(ctx context.Context, item *domain.PantryItem) error {
	item.UpdatedAt = time.Now().UTC()
	query := `UPDATE pantry_items SET name = $1, qty = $2, expiration_date = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6`
	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Qty, item.ExpirationDate, item.UpdatedAt, item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("pantryItemRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *pantryItemRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM pantry_items WHERE id = $1 AND user_id = $2", itemID, userID)
	if err != nil {
		return fmt.Errorf("pantryItemRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
