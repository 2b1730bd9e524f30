package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("an account with this email already exists")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrWeakPassword        = errors.New("password must be at least 8 characters and contain upper and lower case letters, a digit and one of @$!%*?&")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsecureOrigin      = errors.New("request origin is not allowed")
	ErrRateLimited         = errors.New("too many requests")
	ErrNoImage             = errors.New("no image provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrVisionUnavailable   = errors.New("vision service unavailable")
	ErrVisionRateLimited   = errors.New("vision service rate limit exceeded")
	ErrRecipesUnavailable  = errors.New("recipe service unavailable")
	ErrInvalidExportFormat = errors.New("unsupported export format")
)
