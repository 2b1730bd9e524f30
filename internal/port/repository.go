package port

import (
	"context"

	"github.com/google/uuid"

	"pantrify/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// PantryItemRepository defines the contract for pantry item persistence.
// All query methods include userID so one user can never reach another's items.
type PantryItemRepository interface {
	Create(ctx context.Context, item *domain.PantryItem) error
	CreateBatch(ctx context.Context, items []domain.PantryItem) error
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.PantryItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PantryItem, int, error)
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.PantryItem, error)
	Update(ctx context.Context, item *domain.PantryItem) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

// SuggestionRepository defines the contract for pantry suggestion persistence.
type SuggestionRepository interface {
	List(ctx context.Context) ([]domain.PantrySuggestion, error)
	Upsert(ctx context.Context, s *domain.PantrySuggestion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScanRepository defines the contract for scan history persistence.
type ScanRepository interface {
	Create(ctx context.Context, scan *domain.Scan) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Scan, int, error)
}
