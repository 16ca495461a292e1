package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/18Abhinav07/SuavePay/internal/database"
	"github.com/18Abhinav07/SuavePay/internal/repository"
	"github.com/18Abhinav07/SuavePay/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupImport(t *testing.T) (*repository.UserRepository, *services.AuthService) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	userRepo := repository.NewUserRepository(db)
	tokenService := services.NewTokenService("test-secret", time.Hour)
	return userRepo, services.NewAuthService(userRepo, tokenService, bcrypt.MinCost)
}

const importFixture = `[
  {"email": "a@x.com", "password": "p1", "walletAddress": "0xA"},
  {"email": "b@x.com", "password": "p2", "walletAddress": "0xA"},
  {"email": "not-an-email", "password": "p3", "walletAddress": "0xC"},
  {"email": "d@x.com", "password": "", "walletAddress": "0xD"},
  {"email": "e@x.com", "password": "p5", "walletAddress": "0xE"}
]`

func TestImportUsers_SkipsRejected(t *testing.T) {
	userRepo, authService := setupImport(t)
	ctx := context.Background()

	result, err := importUsers(ctx, strings.NewReader(importFixture), authService, zap.NewNop().Sugar(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 3, result.Skipped)

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = authService.Login(ctx, "0xE", "p5")
	assert.NoError(t, err)
}

func TestImportUsers_Strict(t *testing.T) {
	userRepo, authService := setupImport(t)
	ctx := context.Background()

	result, err := importUsers(ctx, strings.NewReader(importFixture), authService, zap.NewNop().Sugar(), true)
	assert.ErrorIs(t, err, services.ErrWalletTaken)
	assert.Equal(t, 1, result.Imported)

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestImportUsers_InvalidJSON(t *testing.T) {
	_, authService := setupImport(t)

	_, err := importUsers(context.Background(), strings.NewReader(`{"email":`), authService, zap.NewNop().Sugar(), false)
	assert.Error(t, err)
}
