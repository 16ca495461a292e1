package services

import (
	"context"

	"github.com/18Abhinav07/SuavePay/internal/models"
	"github.com/18Abhinav07/SuavePay/internal/repository"
	"github.com/shopspring/decimal"
)

type PaymentInput struct {
	UserID                string
	Amount                decimal.Decimal
	SenderWalletAddress   string
	ReceiverWalletAddress string
	SenderEmail           string
	ReceiverEmail         string
}

type PaymentService struct {
	transactionRepo *repository.TransactionRepository
}

func NewPaymentService(transactionRepo *repository.TransactionRepository) *PaymentService {
	return &PaymentService{transactionRepo: transactionRepo}
}

// ProcessPayment records the payment as submitted. Nothing is checked against
// balances, existing wallets or the submitting user.
func (s *PaymentService) ProcessPayment(ctx context.Context, in PaymentInput) (*models.Transaction, error) {
	transaction := &models.Transaction{
		UserID:                in.UserID,
		Amount:                in.Amount,
		SenderWalletAddress:   in.SenderWalletAddress,
		ReceiverWalletAddress: in.ReceiverWalletAddress,
		SenderEmail:           in.SenderEmail,
		ReceiverEmail:         in.ReceiverEmail,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *PaymentService) GetTransactions(ctx context.Context, walletAddress string) ([]models.Transaction, error) {
	return s.transactionRepo.FindByWalletAddress(ctx, walletAddress)
}
