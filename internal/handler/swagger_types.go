package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"cook@pantrify.com"`
	Password string `json:"password" binding:"required" example:"Str0ng!pass"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"cook@pantrify.com"`
	Password string `json:"password" binding:"required" example:"Str0ng!pass"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreatePantryItemRequest represents the add pantry item request body.
type CreatePantryItemRequest struct {
	Name           string  `json:"name" binding:"required" example:"Greek yogurt"`
	Qty            *int    `json:"qty" example:"2"`
	ExpirationDate *string `json:"expiration_date" example:"2026-11-01"`
}

// UpdatePantryItemRequest represents the partial pantry item update body.
// An empty expiration_date clears the date.
type UpdatePantryItemRequest struct {
	Name           *string `json:"name" example:"Oat milk"`
	Qty            *int    `json:"qty" example:"3"`
	ExpirationDate *string `json:"expiration_date" example:"2026-11-15"`
}

// --- Response Types ---

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
