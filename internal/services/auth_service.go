package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/18Abhinav07/SuavePay/internal/models"
	"github.com/18Abhinav07/SuavePay/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWalletTaken        = errors.New("wallet address already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type RegisterInput struct {
	Email         string
	Password      string
	WalletAddress string
}

type LoginResult struct {
	Token string
	User  *models.User
}

type AuthService struct {
	userRepo     *repository.UserRepository
	tokenService *TokenService
	bcryptCost   int
}

func NewAuthService(userRepo *repository.UserRepository, tokenService *TokenService, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
		bcryptCost:   bcryptCost,
	}
}

// Register creates a user with a bcrypt-hashed password. Wallet addresses and
// emails are unique; a concurrent registration that loses the race on the
// unique index gets the same conflict error as the pre-check.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.checkAvailable(ctx, in.WalletAddress, in.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:         in.Email,
		Password:      string(hash),
		WalletAddress: in.WalletAddress,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			if conflict := s.checkAvailable(ctx, in.WalletAddress, in.Email); conflict != nil {
				return nil, conflict
			}
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) checkAvailable(ctx context.Context, walletAddress, email string) error {
	existing, err := s.userRepo.FindByWalletAddress(ctx, walletAddress)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrWalletTaken
	}

	existing, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}
	return nil
}

// Login verifies the password of the user owning walletAddress and issues an
// access token for them.
func (s *AuthService) Login(ctx context.Context, walletAddress, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), passwordKey(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) WalletExists(ctx context.Context, walletAddress string) (bool, error) {
	user, err := s.userRepo.FindByWalletAddress(ctx, walletAddress)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// bcryptMaxPasswordLen is the input limit of bcrypt.GenerateFromPassword.
const bcryptMaxPasswordLen = 72

// passwordKey is the bcrypt input for password. Passwords over the bcrypt limit
// are reduced to their base64 SHA-256 digest so every byte still counts.
func passwordKey(password string) []byte {
	if len(password) <= bcryptMaxPasswordLen {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
