// Package service implements the core business logic.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/fitstack/momo-payments/internal/core/ports"
	"github.com/fitstack/momo-payments/internal/observability"
	"go.uber.org/zap"
)

// Operation names used for logs and metrics.
const (
	OpPurchase         = "purchase"
	OpCompletePurchase = "complete_purchase"
	OpCheckBalance     = "check_balance"
	OpAccountActive    = "check_account_active"
	OpCreateAPIUser    = "create_api_user"
	OpCreateAPIKey     = "create_api_key"
	OpCreateToken      = "create_token"
)

// PaymentService orchestrates MTN MoMo operations and callback processing.
type PaymentService struct {
	gateway     ports.PaymentGateway
	notifier    ports.PaymentNotifier
	logger      *zap.Logger
	callbackURL string
	now         func() time.Time
}

// NewPaymentService creates a new payment service.
// callbackURL is sent as X-Callback-Url on purchases that do not set their own.
func NewPaymentService(
	gateway ports.PaymentGateway,
	notifier ports.PaymentNotifier,
	logger *zap.Logger,
	callbackURL string,
) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		notifier:    notifier,
		logger:      logger,
		callbackURL: callbackURL,
		now:         time.Now,
	}
}

// Purchase sends a RequestToPay to the payer's phone.
func (s *PaymentService) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	if req.CallbackURL == "" {
		req.CallbackURL = s.callbackURL
	}
	return observe(s, OpPurchase, func() (*domain.PurchaseResult, error) {
		return s.gateway.Purchase(ctx, req)
	}, zap.String("external_id", req.ExternalID), zap.String("currency", req.Currency))
}

// CompletePurchase checks the status of a RequestToPay.
func (s *PaymentService) CompletePurchase(ctx context.Context, req domain.CompletePurchaseRequest) (*domain.StatusResult, error) {
	return observe(s, OpCompletePurchase, func() (*domain.StatusResult, error) {
		return s.gateway.CompletePurchase(ctx, req)
	}, zap.String("reference_id", req.TransactionReference))
}

// CheckBalance returns the collection account balance.
func (s *PaymentService) CheckBalance(ctx context.Context, req domain.AccountRequest) (*domain.BalanceResult, error) {
	return observe(s, OpCheckBalance, func() (*domain.BalanceResult, error) {
		return s.gateway.CheckBalance(ctx, req)
	}, zap.String("account_holder_type", req.AccountHolderType))
}

// CheckAccountActive reports whether an account holder is active.
func (s *PaymentService) CheckAccountActive(ctx context.Context, req domain.AccountRequest) (*domain.AccountActiveResult, error) {
	return observe(s, OpAccountActive, func() (*domain.AccountActiveResult, error) {
		return s.gateway.CheckAccountActive(ctx, req)
	}, zap.String("account_holder_type", req.AccountHolderType))
}

func (s *PaymentService) CreateAPIUser(ctx context.Context, req domain.CreateAPIUserRequest) (*domain.APIUserResult, error) {
	return observe(s, OpCreateAPIUser, func() (*domain.APIUserResult, error) {
		return s.gateway.CreateAPIUser(ctx, req)
	})
}

func (s *PaymentService) CreateAPIKey(ctx context.Context, req domain.CreateAPIKeyRequest) (*domain.APIKeyResult, error) {
	return observe(s, OpCreateAPIKey, func() (*domain.APIKeyResult, error) {
		return s.gateway.CreateAPIKey(ctx, req)
	}, zap.String("api_user_id", req.APIUserID))
}

func (s *PaymentService) CreateToken(ctx context.Context, req domain.CreateTokenRequest) (*domain.TokenResult, error) {
	return observe(s, OpCreateToken, func() (*domain.TokenResult, error) {
		return s.gateway.CreateToken(ctx, req)
	})
}

// SandboxUser is an API user provisioned together with its key.
type SandboxUser struct {
	User *domain.APIUserResult
	Key  *domain.APIKeyResult // nil when the user could not be created
}

// Ready reports whether both steps succeeded.
func (u *SandboxUser) Ready() bool {
	return u.User != nil && u.User.Successful() && u.Key != nil && u.Key.Successful()
}

// ProvisionSandboxUser creates an API user and then a key for it.
func (s *PaymentService) ProvisionSandboxUser(ctx context.Context, req domain.CreateAPIUserRequest) (*SandboxUser, error) {
	user, err := s.CreateAPIUser(ctx, req)
	if err != nil {
		return nil, err
	}

	provisioned := &SandboxUser{User: user}
	if !user.Successful() {
		return provisioned, nil
	}

	keyReq := domain.CreateAPIKeyRequest{Credentials: req.Credentials}
	keyReq.APIUserID = user.APIUserID
	key, err := s.CreateAPIKey(ctx, keyReq)
	if err != nil {
		return provisioned, err
	}
	provisioned.Key = key
	return provisioned, nil
}

// ProcessCallback routes an MTN callback by status and forwards the outcome
// to the merchant backend.
func (s *PaymentService) ProcessCallback(ctx context.Context, notification domain.CallbackNotification) (domain.CallbackAction, error) {
	log := s.logger.With(
		zap.String("reference_id", notification.ReferenceID),
		zap.String("status", notification.Status))

	// Step 1: Map status to action
	action, err := callbackAction(notification.Status)
	if err != nil {
		observability.CallbacksTotal.WithLabelValues("unknown").Inc()
		log.Warn("unknown payment status in callback")
		return "", err
	}

	// Step 2: Notify merchant backend
	update := domain.PaymentStatusUpdate{
		Event:                  string(action),
		ReferenceID:            notification.ReferenceID,
		Status:                 strings.ToUpper(strings.TrimSpace(notification.Status)),
		Amount:                 notification.Amount,
		Currency:               notification.Currency,
		FinancialTransactionID: notification.FinancialTransactionID,
		ExternalID:             notification.ExternalID,
		Reason:                 notification.Reason,
		Timestamp:              s.now().UTC().Format(time.RFC3339),
	}
	if err := s.notifier.NotifyPaymentStatus(ctx, update); err != nil {
		observability.CallbacksTotal.WithLabelValues("notify_failed").Inc()
		log.Error("failed to notify backend", zap.String("action", string(action)), zap.Error(err))
		return action, err
	}

	observability.CallbacksTotal.WithLabelValues(string(action)).Inc()
	log.Info("callback processed", zap.String("action", string(action)))
	return action, nil
}

func callbackAction(status string) (domain.CallbackAction, error) {
	switch domain.ParseDomainStatus(status) {
	case domain.StatusSuccessful:
		return domain.ActionPaymentCompleted, nil
	case domain.StatusFailed, domain.StatusRejected:
		return domain.ActionPaymentFailed, nil
	case domain.StatusPending:
		return domain.ActionPaymentPending, nil
	case domain.StatusTimeout:
		return domain.ActionPaymentTimeout, nil
	default:
		return "", domain.NewServiceError(domain.ErrUnknownCallbackStatus,
			"unknown payment status "+status, domain.CodeCallback)
	}
}

type result interface {
	Base() domain.Response
}

// observe runs one gateway call and records its outcome.
func observe[R result](s *PaymentService, operation string, call func() (R, error), fields ...zap.Field) (R, error) {
	started := time.Now()
	log := s.logger.With(zap.String("operation", operation))

	res, err := call()
	if err != nil {
		observability.ObserveGateway(operation, observability.OutcomeInvalid, started)
		log.Info("momo request rejected", append(fields, zap.Error(err))...)
		return res, err
	}

	base := res.Base()
	observability.ObserveGateway(operation, base.Outcome.String(), started)

	fields = append(fields,
		zap.String("outcome", base.Outcome.String()),
		zap.Int("code", base.Code),
		zap.String("message", base.Message),
		zap.Duration("elapsed", time.Since(started)))
	switch {
	case base.Err != nil:
		log.Error("momo request failed", append(fields, zap.Error(base.Err))...)
	case base.Outcome == domain.OutcomeFailed:
		log.Warn("momo request unsuccessful", fields...)
	default:
		log.Info("momo request completed", fields...)
	}
	return res, nil
}
