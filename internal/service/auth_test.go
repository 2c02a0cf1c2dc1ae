package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lexmx/config"
	"lexmx/internal/domain"
	"lexmx/pkg/auth"
)

var testJWTConfig = config.JWTConfig{
	SigningKey:      "clave-de-prueba",
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 168 * time.Hour,
}

func TestLoginAndParseToken(t *testing.T) {
	hash, err := auth.HashPassword("secreto123")
	require.NoError(t, err)

	users := &stubUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{
				ID:           "u1",
				Email:        email,
				PasswordHash: hash,
				Role:         domain.UserRoleClient,
			}, nil
		},
	}

	svc := NewAuthService(newStubAuthRepo(), users, testJWTConfig, zap.NewNop())

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "cliente@example.com",
		Password: "secreto123",
	}, "test-agent", "127.0.0.1")

	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	userID, role, err := svc.ParseToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, domain.UserRoleClient, role)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("secreto123")
	require.NoError(t, err)

	users := &stubUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", PasswordHash: hash, Role: domain.UserRoleClient}, nil
		},
	}

	svc := NewAuthService(newStubAuthRepo(), users, testJWTConfig, zap.NewNop())

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "cliente@example.com",
		Password: "incorrecta",
	}, "test-agent", "127.0.0.1")

	assert.Error(t, err)
}

func TestRefreshTokensRotatesSession(t *testing.T) {
	hash, err := auth.HashPassword("secreto123")
	require.NoError(t, err)

	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.UserRoleClient}, nil
		},
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", PasswordHash: hash, Role: domain.UserRoleClient}, nil
		},
	}

	sessions := newStubAuthRepo()
	svc := NewAuthService(sessions, users, testJWTConfig, zap.NewNop())

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "cliente@example.com",
		Password: "secreto123",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	renewed, err := svc.RefreshTokens(context.Background(), tokens.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	// La sesión anterior se sustituye por la nueva, nunca se acumulan.
	assert.Len(t, sessions.sessions, 1)
	_, ok := sessions.sessions[renewed.RefreshToken]
	assert.True(t, ok)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), &stubUserRepo{}, testJWTConfig, zap.NewNop())

	_, _, err := svc.ParseToken(context.Background(), "no-es-un-token")
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := &stubUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email}, nil
		},
	}

	svc := NewAuthService(newStubAuthRepo(), users, testJWTConfig, zap.NewNop())

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:       "cliente@example.com",
		Password:    "secreto123",
		DisplayName: "Ana Cliente",
		Role:        domain.UserRoleClient,
	})

	assert.Error(t, err)
}
