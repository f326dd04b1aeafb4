package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kampuskitap/internal/logging"
	"kampuskitap/internal/model"
	"kampuskitap/internal/repository"
	"kampuskitap/internal/repository/memory"
	"kampuskitap/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *memory.Store, *utils.JWTUtil) {
	t.Helper()
	store := memory.NewStore()
	jwtUtil := utils.NewJWTUtil("test-secret", 7*24*time.Hour)
	return NewAuthService(store.Users(), jwtUtil, logging.Discard()), store, jwtUtil
}

func TestAuthService_Register(t *testing.T) {
	svc, store, _ := newAuthService(t)

	user, err := svc.Register(context.Background(), " ayse ", " ayse@kampus.edu.tr ", "kitap123")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "ayse", user.Username)
	assert.Equal(t, "ayse@kampus.edu.tr", user.Email)
	assert.NotEqual(t, "kitap123", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("kitap123", user.PasswordHash))
	assert.Equal(t, 1, store.Writes())
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"missing username", "", "a@b.c", "kitap123"},
		{"blank username", "   ", "a@b.c", "kitap123"},
		{"missing email", "ayse", "", "kitap123"},
		{"missing password", "ayse", "a@b.c", ""},
		{"email without at", "ayse", "ayse.kampus.edu.tr", "kitap123"},
		{"short password", "ayse", "a@b.c", "12345"},
		{"short multi-byte password", "ayse", "a@b.c", "şşşşş"},
		{"password over bcrypt limit", "ayse", "a@b.c", strings.Repeat("a", 73)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newAuthService(t)

			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, store.Writes())
		})
	}
}

func TestAuthService_Register_SixCharacterPasswordAccepted(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "ayse", "a@b.c", "123456")
	assert.NoError(t, err)
}

func TestAuthService_Register_PasswordLengthCountsCharacters(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.Register(context.Background(), "ayse", "a@b.c", "şşşşşş")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("şşşşşş", user.PasswordHash))
}

func TestAuthService_Register_PasswordAtBcryptLimit(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "ayse", "a@b.c", strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, store, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ayse", "ayse@kampus.edu.tr", "kitap123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ayse2", "ayse@kampus.edu.tr", "baska123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Equal(t, 1, store.Writes())
}

// racyUsers hides the existing row from the pre-check, like a concurrent insert would
type racyUsers struct {
	repository.UserRepository
}

func (racyUsers) FindByEmail(context.Context, string) (*model.User, error) { return nil, nil }

func TestAuthService_Register_UniqueViolationIsConflict(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(racyUsers{store.Users()}, utils.NewJWTUtil("s", time.Hour), logging.Discard())
	ctx := context.Background()

	_, err := svc.Register(ctx, "ayse", "ayse@kampus.edu.tr", "kitap123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "ayse", "ayse@kampus.edu.tr", "kitap123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, jwtUtil := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "ayse", "ayse@kampus.edu.tr", "kitap123")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "ayse@kampus.edu.tr", "kitap123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "ayse@kampus.edu.tr", claims.Email)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAuthService_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ayse", "ayse@kampus.edu.tr", "kitap123")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "ayse@kampus.edu.tr", "yanlis123")
	_, _, unknownEmail := svc.Login(ctx, "kimse@kampus.edu.tr", "kitap123")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "", "kitap123")
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = svc.Login(context.Background(), "ayse@kampus.edu.tr", "")
	assert.ErrorIs(t, err, ErrValidation)
}

type failingUsers struct {
	repository.UserRepository
}

func (failingUsers) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	svc := NewAuthService(failingUsers{}, utils.NewJWTUtil("s", time.Hour), logging.Discard())

	_, _, err := svc.Login(context.Background(), "ayse@kampus.edu.tr", "kitap123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
