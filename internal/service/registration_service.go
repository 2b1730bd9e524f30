package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"pantrify/internal/domain"
	"pantrify/internal/port"
)

// BcryptCost is the work factor used for password hashes.
const BcryptCost = 12

// RegisterInput is the DTO for self-registration.
type RegisterInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterOutput contains the results of a successful registration.
type RegisterOutput struct {
	User   *domain.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// RegistrationService defines the self-registration contract.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
}

type registrationService struct {
	userRepo port.UserRepository
	authSvc  AuthService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(userRepo port.UserRepository, authSvc AuthService) RegistrationService {
	return &registrationService{
		userRepo: userRepo,
		authSvc:  authSvc,
	}
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	email := NormalizeEmail(input.Email)
	if !IsValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if !IsStrongPassword(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrDuplicateEmail propagates naturally
	}
	log.Printf("registrationService.Register: created user %s", user.ID)

	tokens, err := s.authSvc.IssueTokens(user)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	return &RegisterOutput{
		User:   user,
		Tokens: tokens,
	}, nil
}
