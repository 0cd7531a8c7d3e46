package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/fitstack/momo-payments/internal/core/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxCallbackBody = 1 << 20

var requiredCallbackFields = []string{"referenceId", "status"}

// CallbackHandler receives RequestToPay notifications posted by MTN to the X-Callback-Url.
type CallbackHandler struct {
	service      *service.PaymentService
	requireHTTPS bool
	logger       *zap.Logger
}

// NewCallbackHandler creates a new callback handler.
func NewCallbackHandler(svc *service.PaymentService, requireHTTPS bool, logger *zap.Logger) *CallbackHandler {
	return &CallbackHandler{service: svc, requireHTTPS: requireHTTPS, logger: logger}
}

// HandleMoMo handles /callbacks/momo
func (h *CallbackHandler) HandleMoMo(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		callbackError(c, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.requireHTTPS && !isHTTPS(c.Request) {
		h.logger.Warn("rejected plain HTTP callback", zap.String("remote_addr", c.ClientIP()))
		callbackError(c, http.StatusForbidden, "HTTPS required in production")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCallbackBody))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		callbackError(c, http.StatusBadRequest, "Empty payload")
		return
	}

	payload, err := decodeCallback(body)
	if err != nil {
		h.logger.Warn("invalid callback JSON", zap.Error(err))
		callbackError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for _, field := range requiredCallbackFields {
		if fieldText(payload[field]) == "" {
			callbackError(c, http.StatusBadRequest, "Missing required field: "+field)
			return
		}
	}

	notification := domain.CallbackNotification{
		ReferenceID:            fieldText(payload["referenceId"]),
		Status:                 fieldText(payload["status"]),
		Amount:                 fieldText(payload["amount"]),
		Currency:               fieldText(payload["currency"]),
		FinancialTransactionID: fieldText(payload["financialTransactionId"]),
		ExternalID:             fieldText(payload["externalId"]),
		Reason:                 fieldText(payload["reason"]),
	}

	if _, err := h.service.ProcessCallback(c.Request.Context(), notification); err != nil {
		h.logger.Error("callback processing failed",
			zap.String("reference_id", notification.ReferenceID),
			zap.Error(err))
		callbackError(c, http.StatusInternalServerError, "Processing failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Callback processed successfully",
	})
}

func callbackError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// decodeCallback accepts only a JSON object.
func decodeCallback(body []byte) (map[string]any, error) {
	var payload map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.New("payload is not a JSON object")
	}
	return payload, nil
}

// fieldText renders scalars as text; for objects such as reason it prefers message, then code.
func fieldText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		if msg := fieldText(t["message"]); msg != "" {
			return msg
		}
		return fieldText(t["code"])
	default:
		return ""
	}
}
