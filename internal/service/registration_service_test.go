package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pantrify/internal/domain"
	"pantrify/internal/service"
	"pantrify/mocks"
)

func TestRegistrationService_Register_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	authSvc := new(mocks.MockAuthService)
	svc := service.NewRegistrationService(userRepo, authSvc)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new.cook@example.com" && u.Role == domain.RoleUser && u.IsActive
	})).Return(nil)
	authSvc.On("IssueTokens", mock.AnythingOfType("*domain.User")).
		Return(&service.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    " New.Cook@Example.com ",
		Password: "Str0ng!pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "new.cook@example.com", out.User.Email)
	assert.Equal(t, "a", out.Tokens.AccessToken)

	cost, err := bcrypt.Cost([]byte(out.User.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, service.BcryptCost, cost)

	userRepo.AssertExpectations(t)
	authSvc.AssertExpectations(t)
}

func TestRegistrationService_Register_InvalidEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewRegistrationService(userRepo, new(mocks.MockAuthService))

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "not-an-email",
		Password: "Str0ng!pass",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_WeakPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewRegistrationService(userRepo, new(mocks.MockAuthService))

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "cook@example.com",
		Password: "password",
	})

	assert.ErrorIs(t, err, domain.ErrWeakPassword)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	authSvc := new(mocks.MockAuthService)
	svc := service.NewRegistrationService(userRepo, authSvc)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "cook@example.com",
		Password: "Str0ng!pass",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	authSvc.AssertNotCalled(t, "IssueTokens", mock.Anything)
}

func TestRegistrationService_Register_TokenFailure(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	authSvc := new(mocks.MockAuthService)
	svc := service.NewRegistrationService(userRepo, authSvc)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	authSvc.On("IssueTokens", mock.Anything).Return(nil, errors.New("signing failed"))

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "cook@example.com",
		Password: "Str0ng!pass",
	})

	assert.Nil(t, out)
	assert.Error(t, err)
}
