package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"pantrify/internal/domain"
	"pantrify/internal/export"
	"pantrify/internal/port"
)

const (
	maxItemNameLength = 255
	// MaxBulkItems bounds a single bulk confirmation request.
	MaxBulkItems = 50
)

// CreateItemInput is the DTO for adding a pantry item.
type CreateItemInput struct {
	Name           string     `json:"name" binding:"required"`
	Qty            *int       `json:"qty"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// BulkItemInput is one confirmed detection from a scan.
type BulkItemInput struct {
	Name string `json:"name" binding:"required"`
	Qty  *int   `json:"qty"`
}

// BulkCreateInput is the DTO for confirming scan selections.
type BulkCreateInput struct {
	Items []BulkItemInput `json:"items" binding:"required"`
}

// UpdateItemInput is the DTO for a partial pantry item update. Nil fields are
// left unchanged; ClearExpiration removes the expiration date.
type UpdateItemInput struct {
	Name            *string    `json:"name"`
	Qty             *int       `json:"qty"`
	ExpirationDate  *time.Time `json:"expiration_date"`
	ClearExpiration bool       `json:"clear_expiration"`
}

// PantryService defines the pantry management contract.
type PantryService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateItemInput) (*domain.PantryItem, error)
	BulkCreate(ctx context.Context, userID uuid.UUID, input BulkCreateInput) ([]domain.PantryItem, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PantryItem, int, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, input UpdateItemInput) (*domain.PantryItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	IngredientNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	Export(ctx context.Context, userID uuid.UUID, format domain.ExportFormat, w io.Writer) error
}

type pantryService struct {
	itemRepo port.PantryItemRepository
}

// NewPantryService creates a new PantryService implementation.
func NewPantryService(itemRepo port.PantryItemRepository) PantryService {
	return &pantryService{itemRepo: itemRepo}
}

func (s *pantryService) Create(ctx context.Context, userID uuid.UUID, input CreateItemInput) (*domain.PantryItem, error) {
	name, err := cleanItemName(input.Name)
	if err != nil {
		return nil, err
	}
	qty, err := resolveQty(input.Qty)
	if err != nil {
		return nil, err
	}

	item := &domain.PantryItem{
		UserID:         userID,
		Name:           name,
		Qty:            qty,
		ExpirationDate: input.ExpirationDate,
		Source:         domain.ItemSourceManual,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("pantry.Create: %w", err)
	}
	return item, nil
}

func (s *pantryService) BulkCreate(ctx context.Context, userID uuid.UUID, input BulkCreateInput) ([]domain.PantryItem, error) {
	if len(input.Items) == 0 || len(input.Items) > MaxBulkItems {
		return nil, fmt.Errorf("%w: between 1 and %d items required", domain.ErrInvalidInput, MaxBulkItems)
	}

	items := make([]domain.PantryItem, 0, len(input.Items))
	for _, in := range input.Items {
		name, err := cleanItemName(in.Name)
		if err != nil {
			return nil, err
		}
		qty, err := resolveQty(in.Qty)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.PantryItem{
			UserID: userID,
			Name:   name,
			Qty:    qty,
			Source: domain.ItemSourceScan,
		})
	}

	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("pantry.BulkCreate: %w", err)
	}
	log.Printf("pantryService.BulkCreate: added %d items for user %s", len(items), userID)
	return items, nil
}

func (s *pantryService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PantryItem, int, error) {
	return s.itemRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *pantryService) Update(ctx context.Context, userID, itemID uuid.UUID, input UpdateItemInput) (*domain.PantryItem, error) {
	item, err := s.itemRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := cleanItemName(*input.Name)
		if err != nil {
			return nil, err
		}
		item.Name = name
	}
	if input.Qty != nil {
		if *input.Qty < 1 {
			return nil, fmt.Errorf("%w: qty must be at least 1", domain.ErrInvalidInput)
		}
		item.Qty = *input.Qty
	}
	switch {
	case input.ClearExpiration:
		item.ExpirationDate = nil
	case input.ExpirationDate != nil:
		item.ExpirationDate = input.ExpirationDate
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *pantryService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.itemRepo.Delete(ctx, userID, itemID)
}

// IngredientNames returns the distinct item names in the user's pantry,
// newest first, compared case-insensitively.
func (s *pantryService) IngredientNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	items, err := s.itemRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pantry.IngredientNames: %w", err)
	}
	seen := make(map[string]struct{}, len(items))
	names := make([]string, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(it.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, it.Name)
	}
	return names, nil
}

func (s *pantryService) Export(ctx context.Context, userID uuid.UUID, format domain.ExportFormat, w io.Writer) error {
	items, err := s.itemRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("pantry.Export: %w", err)
	}
	log.Printf("pantryService.Export: exporting %d items as %s for user %s", len(items), format, userID)
	return export.Write(w, format, items)
}

func cleanItemName(name string) (string, error) {
	name = SanitizeInput(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxItemNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", domain.ErrInvalidInput, maxItemNameLength)
	}
	return name, nil
}

// resolveQty applies the default quantity of 1.
func resolveQty(qty *int) (int, error) {
	if qty == nil {
		return 1, nil
	}
	if *qty < 1 {
		return 0, fmt.Errorf("%w: qty must be at least 1", domain.ErrInvalidInput)
	}
	return *qty, nil
}
