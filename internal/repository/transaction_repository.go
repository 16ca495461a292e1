package repository

import (
	"context"
	"fmt"

	"github.com/18Abhinav07/SuavePay/internal/models"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// FindByWalletAddress returns every transaction where walletAddress is the sender
// or the receiver, oldest first.
func (r *TransactionRepository) FindByWalletAddress(ctx context.Context, walletAddress string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := r.db.WithContext(ctx).
		Where("sender_wallet_address = ? OR receiver_wallet_address = ?", walletAddress, walletAddress).
		Order("date ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	return transactions, nil
}
