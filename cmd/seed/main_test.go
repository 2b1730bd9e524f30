package main

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pantrify/internal/domain"
	"pantrify/internal/service"
	"pantrify/mocks"
)

func newSeeder() (*seeder, *mocks.MockUserRepo, *mocks.MockSuggestionService) {
	users := new(mocks.MockUserRepo)
	suggestions := new(mocks.MockSuggestionService)
	return &seeder{users: users, suggestions: suggestions, hashCost: bcrypt.MinCost}, users, suggestions
}

func TestDefaultSuggestionsAreValid(t *testing.T) {
	assert.Len(t, defaultSuggestions, 15)
	seen := map[string]bool{}
	for _, s := range defaultSuggestions {
		assert.False(t, seen[s.Name], "duplicate %s", s.Name)
		seen[s.Name] = true
		assert.Regexp(t, `^/images/pantry/[a-z-]+\.png$`, s.ImageURL)
	}
}

func TestSeedSuggestions_SkipsInvalid(t *testing.T) {
	s, _, suggestions := newSeeder()
	good := service.UpsertSuggestionInput{Name: "Rice"}
	bad := service.UpsertSuggestionInput{Name: " "}

	suggestions.On("Upsert", mock.Anything, good).Return(&domain.PantrySuggestion{ID: uuid.New(), Name: "Rice"}, nil)
	suggestions.On("Upsert", mock.Anything, bad).Return(nil, domain.ErrInvalidInput)

	n, err := s.seedSuggestions(context.Background(), []service.UpsertSuggestionInput{good, bad})

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSeedSuggestions_StopsOnStoreError(t *testing.T) {
	s, _, suggestions := newSeeder()
	suggestions.On("Upsert", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	n, err := s.seedSuggestions(context.Background(), defaultSuggestions)

	assert.Error(t, err)
	assert.Equal(t, 0, n)
	suggestions.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestSeedDemoUser_Creates(t *testing.T) {
	s, users, _ := newSeeder()
	users.On("GetByEmail", mock.Anything, demoEmail).Return(nil, domain.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == demoEmail && u.IsActive && u.Role == domain.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Demo!pass1")) == nil
	})).Return(nil)

	require.NoError(t, s.seedDemoUser(context.Background(), demoEmail, "Demo!pass1"))
	users.AssertExpectations(t)
}

func TestSeedDemoUser_ResetsExisting(t *testing.T) {
	s, users, _ := newSeeder()
	existing := &domain.User{ID: uuid.New(), Email: demoEmail, PasswordHash: "old", Role: domain.RoleUser}
	users.On("GetByEmail", mock.Anything, demoEmail).Return(existing, nil)
	users.On("Update", mock.Anything, existing).Return(nil)

	require.NoError(t, s.seedDemoUser(context.Background(), demoEmail, "Demo!pass1"))

	assert.True(t, existing.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte("Demo!pass1")))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeedDemoUser_WeakPassword(t *testing.T) {
	s, users, _ := newSeeder()

	err := s.seedDemoUser(context.Background(), demoEmail, "password")

	assert.ErrorIs(t, err, domain.ErrWeakPassword)
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
