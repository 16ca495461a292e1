package handlers

import (
	"github.com/jellydator/validation"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email         string `json:"email" example:"a@x.com"`
	Password      string `json:"password" example:"p1"`
	WalletAddress string `json:"walletAddress" example:"0xA"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.WalletAddress, validation.Required),
	)
}

type LoginRequest struct {
	WalletAddress string `json:"walletAddress" example:"0xA"`
	Password      string `json:"password" example:"p1"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.WalletAddress, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type CheckWalletRequest struct {
	WalletAddress string `json:"walletAddress" example:"0xA"`
}

func (r CheckWalletRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.WalletAddress, validation.Required),
	)
}

// PaymentRequest keeps Amount as a pointer so that an explicit 0 is told
// apart from a missing field.
type PaymentRequest struct {
	Amount                *decimal.Decimal `json:"amount" swaggertype:"number" example:"10"`
	SenderWalletAddress   string           `json:"senderWalletAddress" example:"0xA"`
	ReceiverWalletAddress string           `json:"receiverWalletAddress" example:"0xB"`
	SenderEmail           string           `json:"senderEmail" example:"a@x.com"`
	ReceiverEmail         string           `json:"receiverEmail" example:"b@x.com"`
}

func (r PaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.NotNil),
		validation.Field(&r.SenderWalletAddress, validation.Required),
		validation.Field(&r.ReceiverWalletAddress, validation.Required),
		validation.Field(&r.SenderEmail, validation.Required),
		validation.Field(&r.ReceiverEmail, validation.Required),
	)
}

type validatable interface {
	Validate() error
}
