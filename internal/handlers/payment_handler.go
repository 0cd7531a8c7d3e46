// Package handlers contains the HTTP handlers for the payment service.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/fitstack/momo-payments/internal/core/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler handles HTTP requests for payments and account lookups.
type PaymentHandler struct {
	service     *service.PaymentService
	environment domain.Environment
	logger      *zap.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(svc *service.PaymentService, environment domain.Environment, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{service: svc, environment: environment, logger: logger}
}

// CreatePaymentRequest is the body of POST /api/v1/payments.
type CreatePaymentRequest struct {
	Amount       json.Number `json:"amount" binding:"required"`
	Currency     string      `json:"currency"`
	ExternalID   string      `json:"external_id"`
	PayerPhone   string      `json:"payer_phone" binding:"required"`
	PayerMessage string      `json:"payer_message"`
	PayeeNote    string      `json:"payee_note"`
	CallbackURL  string      `json:"callback_url"`
}

// ResultResponse is the common part of every gateway result returned over HTTP.
type ResultResponse struct {
	Success bool   `json:"success"`
	Outcome string `json:"outcome"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PaymentResponse is returned by POST /api/v1/payments.
type PaymentResponse struct {
	ResultResponse
	TransactionReference string `json:"transaction_reference,omitempty"`
	ExternalID           string `json:"external_id,omitempty"`
}

// PaymentStatusResponse is returned by GET /api/v1/payments/:reference.
type PaymentStatusResponse struct {
	ResultResponse
	Status                 string        `json:"status,omitempty"`
	TransactionReference   string        `json:"transaction_reference,omitempty"`
	FinancialTransactionID string        `json:"financial_transaction_id,omitempty"`
	ExternalID             string        `json:"external_id,omitempty"`
	Amount                 string        `json:"amount,omitempty"`
	Currency               string        `json:"currency,omitempty"`
	Payer                  *domain.Party `json:"payer,omitempty"`
	Reason                 string        `json:"reason,omitempty"`
}

// BalanceResponse is returned by GET /api/v1/accounts/:type/:id/balance.
type BalanceResponse struct {
	ResultResponse
	AvailableBalance string `json:"available_balance,omitempty"`
	Currency         string `json:"currency,omitempty"`
}

// AccountActiveResponse is returned by GET /api/v1/accounts/:type/:id/active.
type AccountActiveResponse struct {
	ResultResponse
	Active bool `json:"active"`
}

// ErrorResponse is returned when a request is rejected before reaching MTN.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// CreatePayment handles POST /api/v1/payments
// Sends a RequestToPay prompt to the payer's phone.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request: " + err.Error(),
			Code:    domain.CodeValidation,
		})
		return
	}

	result, err := h.service.Purchase(c.Request.Context(), domain.PurchaseRequest{
		Amount:       req.Amount.String(),
		Currency:     req.Currency,
		ExternalID:   req.ExternalID,
		PayerPhone:   req.PayerPhone,
		PayerMessage: req.PayerMessage,
		PayeeNote:    req.PayeeNote,
		CallbackURL:  req.CallbackURL,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	status := http.StatusAccepted
	if !result.Successful() {
		status = failureStatus(result.Response)
	}
	c.JSON(status, PaymentResponse{
		ResultResponse:       toResultResponse(result.Response),
		TransactionReference: result.TransactionReference,
		ExternalID:           result.ExternalID,
	})
}

// GetPaymentStatus handles GET /api/v1/payments/:reference
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	result, err := h.service.CompletePurchase(c.Request.Context(), domain.CompletePurchaseRequest{
		TransactionReference: c.Param("reference"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(resultStatus(result.Response), PaymentStatusResponse{
		ResultResponse:         toResultResponse(result.Response),
		Status:                 string(result.Status),
		TransactionReference:   result.TransactionReference,
		FinancialTransactionID: result.FinancialTransactionID,
		ExternalID:             result.ExternalID,
		Amount:                 result.Amount,
		Currency:               result.Currency,
		Payer:                  result.Payer,
		Reason:                 result.Reason,
	})
}

// GetBalance handles GET /api/v1/accounts/:type/:id/balance
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	result, err := h.service.CheckBalance(c.Request.Context(), accountRequest(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(resultStatus(result.Response), BalanceResponse{
		ResultResponse:   toResultResponse(result.Response),
		AvailableBalance: result.AvailableBalance,
		Currency:         result.Currency,
	})
}

// GetAccountActive handles GET /api/v1/accounts/:type/:id/active
func (h *PaymentHandler) GetAccountActive(c *gin.Context) {
	result, err := h.service.CheckAccountActive(c.Request.Context(), accountRequest(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(resultStatus(result.Response), AccountActiveResponse{
		ResultResponse: toResultResponse(result.Response),
		Active:         result.Active,
	})
}

// Health handles GET /health
func (h *PaymentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"service":     "momo-payments",
		"version":     "1.0.0",
		"environment": h.environment,
	})
}

func accountRequest(c *gin.Context) domain.AccountRequest {
	return domain.AccountRequest{
		AccountHolderType: c.Param("type"),
		AccountHolderID:   c.Param("id"),
	}
}

func (h *PaymentHandler) writeError(c *gin.Context, err error) {
	var svcErr *domain.ServiceError
	if errors.As(err, &svcErr) && errors.Is(err, domain.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   svcErr.Message,
			Code:    svcErr.Code,
		})
		return
	}

	h.logger.Error("unexpected service error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   "Internal server error",
		Code:    "INTERNAL_ERROR",
	})
}

// resultStatus maps a lookup result onto an HTTP status: MTN answered (success,
// pending or rejected) is 200, anything else is a gateway failure.
func resultStatus(resp domain.Response) int {
	if resp.Outcome != domain.OutcomeFailed {
		return http.StatusOK
	}
	return failureStatus(resp)
}

func failureStatus(resp domain.Response) int {
	if resp.Code == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func toResultResponse(resp domain.Response) ResultResponse {
	return ResultResponse{
		Success: resp.Successful(),
		Outcome: resp.Outcome.String(),
		Code:    resp.Code,
		Message: resp.Message,
	}
}
