package handlers

import (
	"net/http"

	"github.com/18Abhinav07/SuavePay/internal/middleware"
	"github.com/18Abhinav07/SuavePay/internal/models"
	"github.com/18Abhinav07/SuavePay/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	logger         *zap.SugaredLogger
	paymentService *services.PaymentService
}

func NewPaymentHandler(logger *zap.SugaredLogger, paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		logger:         logger,
		paymentService: paymentService,
	}
}

type PaymentResponse struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
}

// ProcessPayment godoc
// @Summary Record a payment
// @Description Store a payment record between two wallet addresses. The submitting user is taken from the token.
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentRequest true "Payment details"
// @Success 201 {object} PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payment/pay [post]
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req PaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	userID := middleware.GetUserID(c)

	transaction, err := h.paymentService.ProcessPayment(c.Request.Context(), services.PaymentInput{
		UserID:                userID,
		Amount:                *req.Amount,
		SenderWalletAddress:   req.SenderWalletAddress,
		ReceiverWalletAddress: req.ReceiverWalletAddress,
		SenderEmail:           req.SenderEmail,
		ReceiverEmail:         req.ReceiverEmail,
	})
	if err != nil {
		h.logger.Errorw("failed to process payment", "user_id", userID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Error processing payment", err)
		return
	}

	h.logger.Infow("payment processed",
		"transaction_id", transaction.ID,
		"user_id", userID,
		"sender", transaction.SenderWalletAddress,
		"receiver", transaction.ReceiverWalletAddress,
		"amount", transaction.Amount.String(),
	)
	c.JSON(http.StatusCreated, PaymentResponse{
		Message:     "Payment processed",
		Transaction: transaction,
	})
}

// GetTransactions godoc
// @Summary Transaction history
// @Description List every transaction the wallet sent or received, oldest first
// @Tags payment
// @Produce json
// @Security BearerAuth
// @Param walletAddress path string true "Wallet address"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payment/transactions/{walletAddress} [get]
func (h *PaymentHandler) GetTransactions(c *gin.Context) {
	walletAddress := c.Param("walletAddress")

	transactions, err := h.paymentService.GetTransactions(c.Request.Context(), walletAddress)
	if err != nil {
		h.logger.Errorw("failed to fetch transactions", "wallet", walletAddress, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Error fetching transactions", err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}
