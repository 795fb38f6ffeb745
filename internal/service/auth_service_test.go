package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		svc := NewAuthService(repo)
		user, err := svc.Register(ctx, "New User", "new@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		// Stored as a bcrypt hash, never plaintext
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateEmailCreatesNothing", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "taken@example.com").
			Return(&models.User{ID: 1, Email: "taken@example.com"}, nil)

		svc := NewAuthService(repo)
		_, err := svc.Register(ctx, "Dup", "taken@example.com", "secret")
		assert.ErrorIs(t, err, ErrEmailInUse)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("LookupErrorStopsRegistration", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, dbErr)

		svc := NewAuthService(repo)
		_, err := svc.Register(ctx, "New User", "new@example.com", "secret")
		assert.ErrorIs(t, err, dbErr)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RacingDuplicateMapsToEmailInUse", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Return(gorm.ErrDuplicatedKey)

		svc := NewAuthService(repo)
		_, err := svc.Register(ctx, "New User", "new@example.com", "secret")
		assert.ErrorIs(t, err, ErrEmailInUse)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 7, Email: "user@example.com", Password: string(hash)}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)

		svc := NewAuthService(repo)
		user, err := svc.Login(ctx, "user@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)

		svc := NewAuthService(repo)
		_, err := svc.Login(ctx, "user@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(repo)
		_, err := svc.Login(ctx, "ghost@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
