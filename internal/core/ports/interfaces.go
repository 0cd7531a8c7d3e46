// Package ports defines the interfaces (ports) for the payment service.
// These are contracts that adapters must implement.
package ports

import (
	"context"
	"net/http"

	"github.com/fitstack/momo-payments/internal/core/domain"
)

// PaymentGateway defines the operations exposed by the MTN Mobile Money collection API.
//
// A returned error is always a validation failure (domain.ErrInvalidRequest) raised
// before any request is sent. Authentication and transport failures are reported
// through the result's Response instead.
type PaymentGateway interface {
	// Purchase initiates a RequestToPay and returns the generated transaction reference.
	Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error)

	// CompletePurchase looks up the status of a RequestToPay by transaction reference.
	CompletePurchase(ctx context.Context, req domain.CompletePurchaseRequest) (*domain.StatusResult, error)

	// CheckBalance retrieves the available balance of the collection account.
	CheckBalance(ctx context.Context, req domain.AccountRequest) (*domain.BalanceResult, error)

	// CheckAccountActive reports whether an account holder is active.
	CheckAccountActive(ctx context.Context, req domain.AccountRequest) (*domain.AccountActiveResult, error)

	// CreateAPIUser provisions a sandbox API user.
	CreateAPIUser(ctx context.Context, req domain.CreateAPIUserRequest) (*domain.APIUserResult, error)

	// CreateAPIKey provisions a key for a sandbox API user.
	CreateAPIKey(ctx context.Context, req domain.CreateAPIKeyRequest) (*domain.APIKeyResult, error)

	// CreateToken exchanges API user credentials for a bearer token.
	CreateToken(ctx context.Context, req domain.CreateTokenRequest) (*domain.TokenResult, error)
}

// HTTPDoer sends HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// PaymentNotifier forwards processed callbacks to the merchant backend.
type PaymentNotifier interface {
	NotifyPaymentStatus(ctx context.Context, update domain.PaymentStatusUpdate) error
}
