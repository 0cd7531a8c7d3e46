// Package domain contains the core business entities for the MTN Mobile Money gateway.
// This is the innermost layer - no external dependencies.
package domain

import (
	"fmt"
	"strings"
)

// Environment is the MTN target environment, sent as X-Target-Environment.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// ParseEnvironment maps a configuration value onto an Environment.
// An empty value defaults to sandbox.
func ParseEnvironment(value string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(EnvironmentSandbox):
		return EnvironmentSandbox, nil
	case string(EnvironmentProduction):
		return EnvironmentProduction, nil
	default:
		return "", fmt.Errorf("unknown target environment %q", value)
	}
}

// Credentials identifies the caller against the MTN API gateway.
// Request structs embed it so a single call can override the gateway defaults.
type Credentials struct {
	APIUserID       string
	APIKey          string
	SubscriptionKey string
}

// GatewayConfig holds the settings shared by every request of a gateway instance.
type GatewayConfig struct {
	Credentials
	TargetEnvironment Environment
	CallbackHost      string // providerCallbackHost used when provisioning API users

	// BaseURL replaces the sandbox/live host derived from TargetEnvironment.
	// Left empty outside of tests.
	BaseURL string
}

// TestMode reports whether requests go to the sandbox.
func (c GatewayConfig) TestMode() bool {
	return c.TargetEnvironment == EnvironmentSandbox
}

// WithCredentials returns a copy of the config with the non-empty fields of creds applied.
func (c GatewayConfig) WithCredentials(creds Credentials) GatewayConfig {
	if creds.APIUserID != "" {
		c.APIUserID = creds.APIUserID
	}
	if creds.APIKey != "" {
		c.APIKey = creds.APIKey
	}
	if creds.SubscriptionKey != "" {
		c.SubscriptionKey = creds.SubscriptionKey
	}
	return c
}

// AccessToken is a short-lived bearer token. It is fetched per request and never stored.
type AccessToken struct {
	Value     string `json:"access_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// Party identifies a mobile money account holder.
type Party struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

// PurchaseRequest initiates a RequestToPay.
type PurchaseRequest struct {
	Credentials
	Amount       string // decimal string, sent as given
	Currency     string // defaults to EUR
	ExternalID   string // generated when empty
	PayerPhone   string
	PayerMessage string
	PayeeNote    string
	CallbackURL  string // optional X-Callback-Url
}

// CompletePurchaseRequest looks up the status of a RequestToPay.
type CompletePurchaseRequest struct {
	Credentials
	TransactionReference string
}

// AccountRequest addresses an account holder for balance and activity lookups.
type AccountRequest struct {
	Credentials
	AccountHolderType string // defaults to MSISDN
	AccountHolderID   string
}

// CreateAPIUserRequest provisions a sandbox API user.
type CreateAPIUserRequest struct {
	Credentials
	CallbackHost string
}

// CreateAPIKeyRequest provisions a key for an existing sandbox API user (Credentials.APIUserID).
type CreateAPIKeyRequest struct {
	Credentials
}

// CreateTokenRequest exchanges API user credentials for a bearer token.
type CreateTokenRequest struct {
	Credentials
}

// CallbackNotification is the payload MTN posts to the X-Callback-Url.
type CallbackNotification struct {
	ReferenceID            string `json:"referenceId"`
	Status                 string `json:"status"`
	Amount                 string `json:"amount,omitempty"`
	Currency               string `json:"currency,omitempty"`
	FinancialTransactionID string `json:"financialTransactionId,omitempty"`
	ExternalID             string `json:"externalId,omitempty"`
	Reason                 string `json:"reason,omitempty"`
}

// CallbackAction is what processing a callback did with the payment.
type CallbackAction string

const (
	ActionPaymentCompleted CallbackAction = "payment_completed"
	ActionPaymentFailed    CallbackAction = "payment_failed"
	ActionPaymentPending   CallbackAction = "payment_pending"
	ActionPaymentTimeout   CallbackAction = "payment_timeout"
)

// PaymentStatusUpdate is sent to the merchant backend after a callback is processed.
type PaymentStatusUpdate struct {
	Event                  string `json:"event"`
	ReferenceID            string `json:"reference_id"`
	Status                 string `json:"status"`
	Amount                 string `json:"amount,omitempty"`
	Currency               string `json:"currency,omitempty"`
	FinancialTransactionID string `json:"financial_transaction_id,omitempty"`
	ExternalID             string `json:"external_id,omitempty"`
	Reason                 string `json:"reason,omitempty"`
	Timestamp              string `json:"timestamp"`
}
