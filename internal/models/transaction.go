package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// amounts go over the wire as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is an immutable audit record of one submitted payment. It carries
// no balance effect. Amount is stored as its decimal text so any accepted value
// reads back unchanged.
type Transaction struct {
	ID                    string          `gorm:"primaryKey;size:36" json:"id"`
	UserID                string          `gorm:"size:36;not null;index" json:"userId"`
	Amount                decimal.Decimal `gorm:"type:text;not null" json:"amount" swaggertype:"number"`
	SenderWalletAddress   string          `gorm:"not null;index" json:"senderWalletAddress"`
	ReceiverWalletAddress string          `gorm:"not null;index" json:"receiverWalletAddress"`
	SenderEmail           string          `gorm:"not null" json:"senderEmail"`
	ReceiverEmail         string          `gorm:"not null" json:"receiverEmail"`
	Date                  time.Time       `gorm:"autoCreateTime;index" json:"date"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
