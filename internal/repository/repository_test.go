package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/18Abhinav07/SuavePay/internal/database"
	"github.com/18Abhinav07/SuavePay/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*UserRepository, *TransactionRepository) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	return NewUserRepository(db), NewTransactionRepository(db)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func newTransaction(sender, receiver string, amount int64) *models.Transaction {
	return &models.Transaction{
		UserID:                "user-1",
		Amount:                decimal.NewFromInt(amount),
		SenderWalletAddress:   sender,
		ReceiverWalletAddress: receiver,
		SenderEmail:           sender + "@x.com",
		ReceiverEmail:         receiver + "@x.com",
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	userRepo, _ := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{Email: "a@x.com", Password: "hash", WalletAddress: "0xA"}
	require.NoError(t, userRepo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byWallet, err := userRepo.FindByWalletAddress(ctx, "0xA")
	require.NoError(t, err)
	require.NotNil(t, byWallet)
	assert.Equal(t, user.ID, byWallet.ID)
	assert.Equal(t, "hash", byWallet.Password)

	byEmail, err := userRepo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_NotFound(t *testing.T) {
	userRepo, _ := setupTestDB(t)

	user, err := userRepo.FindByWalletAddress(context.Background(), "0xnope")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_DuplicateWallet(t *testing.T) {
	userRepo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, userRepo.Create(ctx, &models.User{Email: "a@x.com", Password: "hash", WalletAddress: "0xA"}))

	err := userRepo.Create(ctx, &models.User{Email: "b@x.com", Password: "hash", WalletAddress: "0xA"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = userRepo.Create(ctx, &models.User{Email: "a@x.com", Password: "hash", WalletAddress: "0xB"})
	assert.ErrorIs(t, err, ErrDuplicate)

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTransactionRepository_FindByWalletAddress(t *testing.T) {
	_, txRepo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, txRepo.Create(ctx, newTransaction("0xA", "0xB", 10)))
	require.NoError(t, txRepo.Create(ctx, newTransaction("0xC", "0xA", 5)))
	require.NoError(t, txRepo.Create(ctx, newTransaction("0xB", "0xC", 7)))

	transactions, err := txRepo.FindByWalletAddress(ctx, "0xA")
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	for _, tx := range transactions {
		assert.True(t, tx.SenderWalletAddress == "0xA" || tx.ReceiverWalletAddress == "0xA")
		assert.NotEmpty(t, tx.ID)
		assert.False(t, tx.Date.IsZero())
	}
	assert.True(t, decimal.NewFromInt(10).Equal(transactions[0].Amount))
	assert.True(t, decimal.NewFromInt(5).Equal(transactions[1].Amount))

	none, err := txRepo.FindByWalletAddress(ctx, "0xZ")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTransactionRepository_FractionalAmount(t *testing.T) {
	_, txRepo := setupTestDB(t)
	ctx := context.Background()

	tx := newTransaction("0xA", "0xB", 0)
	tx.Amount = decimal.RequireFromString("-12.5")
	require.NoError(t, txRepo.Create(ctx, tx))

	transactions, err := txRepo.FindByWalletAddress(ctx, "0xB")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "-12.5", transactions[0].Amount.String())
}

func TestUserRepository_QueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	userRepo := NewUserRepository(db)
	errBoom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errBoom)

	user, err := userRepo.FindByWalletAddress(context.Background(), "0xA")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, errBoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Failures(t *testing.T) {
	db, mock := setupMockDB(t)
	txRepo := NewTransactionRepository(db)
	errBoom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnError(errBoom)

	transactions, err := txRepo.FindByWalletAddress(context.Background(), "0xA")
	assert.Nil(t, transactions)
	assert.ErrorIs(t, err, errBoom)

	err = txRepo.Create(context.Background(), newTransaction("0xA", "0xB", 1))
	assert.Error(t, err)
}

func TestTransactionRepository_AmountStoredExactly(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	txRepo := NewTransactionRepository(db)
	ctx := context.Background()

	amounts := []string{"1e400", "-1e400", "0.123456789012345678", "12345678901234567890123.5"}
	for _, amount := range amounts {
		tx := newTransaction("0xA", "0xB", 0)
		tx.Amount = decimal.RequireFromString(amount)
		require.NoError(t, txRepo.Create(ctx, tx))
	}

	var storageTypes []string
	require.NoError(t, db.Raw("SELECT DISTINCT typeof(amount) FROM transactions").Scan(&storageTypes).Error)
	assert.Equal(t, []string{"text"}, storageTypes)

	transactions, err := txRepo.FindByWalletAddress(ctx, "0xA")
	require.NoError(t, err)
	require.Len(t, transactions, len(amounts))
	for _, tx := range transactions {
		found := false
		for _, amount := range amounts {
			if tx.Amount.Equal(decimal.RequireFromString(amount)) {
				found = true
			}
		}
		assert.True(t, found, tx.Amount.String())
	}
}
