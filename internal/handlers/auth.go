package handlers

import (
	"errors"
	"net/http"

	"github.com/18Abhinav07/SuavePay/internal/models"
	"github.com/18Abhinav07/SuavePay/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	logger      *zap.SugaredLogger
	authService *services.AuthService
}

func NewAuthHandler(logger *zap.SugaredLogger, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		authService: authService,
	}
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type LoginResponse struct {
	Token         string `json:"token"`
	UserID        string `json:"userId"`
	WalletAddress string `json:"walletAddress"`
}

type CheckWalletResponse struct {
	Exists bool `json:"exists"`
}

// Register godoc
// @Summary Register a user
// @Description Create a user identified by a wallet address. Email and wallet address must be unused.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWalletTaken):
			abortWithMessage(c, http.StatusBadRequest, "Wallet address already registered")
		case errors.Is(err, services.ErrEmailTaken):
			abortWithMessage(c, http.StatusBadRequest, "Email already registered")
		default:
			h.logger.Errorw("failed to register user", "wallet", req.WalletAddress, "error", err)
			abortWithError(c, http.StatusInternalServerError, "Error registering user", err)
		}
		return
	}

	h.logger.Infow("user registered", "user_id", user.ID, "wallet", user.WalletAddress)
	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User registered",
		User:    user,
	})
}

// Login godoc
// @Summary Log in
// @Description Verify wallet address and password and issue a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.WalletAddress, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			abortWithMessage(c, http.StatusBadRequest, "User not found")
		case errors.Is(err, services.ErrInvalidCredentials):
			abortWithMessage(c, http.StatusBadRequest, "Invalid credentials")
		default:
			h.logger.Errorw("failed to log in", "wallet", req.WalletAddress, "error", err)
			abortWithError(c, http.StatusInternalServerError, "Error logging in", err)
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:         result.Token,
		UserID:        result.User.ID,
		WalletAddress: result.User.WalletAddress,
	})
}

// CheckWallet godoc
// @Summary Check wallet registration
// @Description Report whether a user with the wallet address exists
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CheckWalletRequest true "Wallet address"
// @Success 200 {object} CheckWalletResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/check-wallet [post]
func (h *AuthHandler) CheckWallet(c *gin.Context) {
	var req CheckWalletRequest
	if err := bindAndValidate(c, &req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	exists, err := h.authService.WalletExists(c.Request.Context(), req.WalletAddress)
	if err != nil {
		h.logger.Errorw("failed to check wallet", "wallet", req.WalletAddress, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Error checking wallet", err)
		return
	}

	c.JSON(http.StatusOK, CheckWalletResponse{Exists: exists})
}
