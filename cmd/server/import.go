package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/18Abhinav07/SuavePay/internal/database"
	"github.com/18Abhinav07/SuavePay/internal/repository"
	"github.com/18Abhinav07/SuavePay/internal/services"
	"github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type UserImport struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	WalletAddress string `json:"walletAddress"`
}

func (u UserImport) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Password, validation.Required),
		validation.Field(&u.WalletAddress, validation.Required),
	)
}

type importResult struct {
	Imported int
	Skipped  int
}

var (
	importFile string
	strictMode bool
)

var importCmd = &cobra.Command{
	Use:   "import-users",
	Short: "Register users from a JSON file",
	Long: `Register users in bulk from a JSON file.

Expected JSON format:
[
  {"email": "a@x.com", "password": "p1", "walletAddress": "0xA"},
  {"email": "b@x.com", "password": "p2", "walletAddress": "0xB"}
]

Passwords are hashed exactly as on registration. By default invalid entries
and already registered wallets or emails are skipped.
Use --strict to fail on the first rejected entry instead.`,
	Example: `  suavepay import-users -f users.json
  suavepay import-users -f users.json --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context())
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import (required)")
	importCmd.Flags().BoolVar(&strictMode, "strict", false, "Fail on any rejected entry")
	importCmd.MarkFlagRequired("file")
}

func runImport(ctx context.Context) error {
	if importFile == "" {
		return errors.New("file path is required")
	}

	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close(db)

	userRepo := repository.NewUserRepository(db)
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := services.NewAuthService(userRepo, tokenService, cfg.Auth.BcryptCost)

	logger.Infow("starting user import", "file", importFile, "strict", strictMode)

	result, err := importUsers(ctx, f, authService, logger, strictMode)
	if err != nil {
		return err
	}

	total, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}

	logger.Infow("import complete",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"total_users", total,
	)
	return nil
}

func importUsers(ctx context.Context, r io.Reader, authService *services.AuthService, logger *zap.SugaredLogger, strict bool) (importResult, error) {
	var result importResult

	var users []UserImport
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return result, fmt.Errorf("failed to parse JSON: %w", err)
	}

	for i, u := range users {
		if err := importUser(ctx, u, authService); err != nil {
			if strict {
				return result, fmt.Errorf("import failed for entry %d (%s): %w", i, u.WalletAddress, err)
			}
			logger.Warnw("skipped user", "entry", i, "wallet", u.WalletAddress, "reason", err)
			result.Skipped++
			continue
		}
		logger.Infow("imported user", "wallet", u.WalletAddress)
		result.Imported++
	}

	return result, nil
}

func importUser(ctx context.Context, u UserImport, authService *services.AuthService) error {
	if err := u.Validate(); err != nil {
		return err
	}

	_, err := authService.Register(ctx, services.RegisterInput{
		Email:         u.Email,
		Password:      u.Password,
		WalletAddress: u.WalletAddress,
	})
	return err
}
