package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asmelnikov/docgen-backend/internal/auth"
	"github.com/asmelnikov/docgen-backend/internal/domain"
)

type mockUserRepo struct {
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	CreateFunc        func(ctx context.Context, user *domain.User) error
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

type mockJWT struct {
	GenerateFunc func(id auth.Identity) (string, error)
}

func (m *mockJWT) GenerateAccessToken(id auth.Identity) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(id)
	}
	return "token-" + id.UserID.String(), nil
}

func newTestService(users *mockUserRepo) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), users, &mockJWT{})
}

func seededUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		ExecutorID:   uuid.New(),
		Username:     "petrov",
		PasswordHash: hash,
	}
}

func TestLogin_Success(t *testing.T) {
	user := seededUser(t, "correct-password")
	users := &mockUserRepo{
		GetByUsernameFunc: func(_ context.Context, username string) (*domain.User, error) {
			if username != user.Username {
				return nil, domain.ErrNotFound
			}
			return user, nil
		},
	}
	svc := newTestService(users)

	res, err := svc.Login(context.Background(), LoginInput{Username: " petrov ", Password: "correct-password"})

	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, user.ID, res.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := seededUser(t, "correct-password")
	users := &mockUserRepo{
		GetByUsernameFunc: func(context.Context, string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := newTestService(users)

	_, err := svc.Login(context.Background(), LoginInput{Username: "petrov", Password: "wrong"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownUsername(t *testing.T) {
	users := &mockUserRepo{
		GetByUsernameFunc: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(users)

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmptyInput(t *testing.T) {
	svc := newTestService(&mockUserRepo{})

	_, err := svc.Login(context.Background(), LoginInput{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_RepoFailurePropagates(t *testing.T) {
	boom := errors.New("connection refused")
	users := &mockUserRepo{
		GetByUsernameFunc: func(context.Context, string) (*domain.User, error) {
			return nil, boom
		},
	}
	svc := newTestService(users)

	_, err := svc.Login(context.Background(), LoginInput{Username: "petrov", Password: "pass"})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_Success(t *testing.T) {
	var created *domain.User
	users := &mockUserRepo{
		CreateFunc: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	svc := newTestService(users)

	execID := uuid.New()
	user, err := svc.Register(context.Background(), RegisterInput{
		ExecutorID: execID,
		Username:   "smirnova",
		Password:   "long-enough-password",
		FirstName:  "Анна",
		LastName:   "Смирнова",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, execID, user.ExecutorID)
	assert.NotEqual(t, "long-enough-password", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "long-enough-password"))
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestService(&mockUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{
		ExecutorID: uuid.New(),
		Username:   "smirnova",
		Password:   "short",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := &mockUserRepo{
		CreateFunc: func(context.Context, *domain.User) error {
			return domain.ErrAlreadyExists
		},
	}
	svc := newTestService(users)

	_, err := svc.Register(context.Background(), RegisterInput{
		ExecutorID: uuid.New(),
		Username:   "petrov",
		Password:   "long-enough-password",
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
