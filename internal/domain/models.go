package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents an account holder.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// PantryItem is a single entry in a user's pantry.
type PantryItem struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	Name           string     `db:"name" json:"name"`
	Qty            int        `db:"qty" json:"qty"`
	ExpirationDate *time.Time `db:"expiration_date" json:"expiration_date"`
	Source         ItemSource `db:"source" json:"source"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// PantrySuggestion is a shared, admin-curated item offered for quick entry.
type PantrySuggestion struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Scan records one analyzed photo and what was detected in it.
type Scan struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	UserID          uuid.UUID   `db:"user_id" json:"user_id"`
	S3Bucket        string      `db:"s3_bucket" json:"-"`
	S3Key           string      `db:"s3_key" json:"-"`
	ContentType     string      `db:"content_type" json:"content_type"`
	FileSize        int64       `db:"file_size" json:"file_size"`
	DetectedItems   StringSlice `db:"detected_items" json:"detected_items"`
	Confidence      string      `db:"confidence" json:"confidence"`
	TotalDetections int         `db:"total_detections" json:"total_detections"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
}

// StringSlice is a []string stored as a JSONB array.
type StringSlice []string

// Value implements driver.Valuer.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner.
func (s *StringSlice) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = StringSlice{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StringSlice.Scan: unsupported type %T", src)
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("StringSlice.Scan: %w", err)
	}
	*s = out
	return nil
}
