package domain

import "strings"

// Outcome tags how an operation ended.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSuccess
	OutcomePending
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePending:
		return "pending"
	case OutcomeRejected:
		return "rejected"
	default:
		return "failed"
	}
}

// DomainStatus is the RequestToPay status reported by MTN.
type DomainStatus string

const (
	StatusSuccessful DomainStatus = "SUCCESSFUL"
	StatusPending    DomainStatus = "PENDING"
	StatusFailed     DomainStatus = "FAILED"
	StatusRejected   DomainStatus = "REJECTED"
	StatusTimeout    DomainStatus = "TIMEOUT"
	StatusUnknown    DomainStatus = ""
)

// ParseDomainStatus upper-cases value and maps it onto a known status.
func ParseDomainStatus(value string) DomainStatus {
	switch s := DomainStatus(strings.ToUpper(strings.TrimSpace(value))); s {
	case StatusSuccessful, StatusPending, StatusFailed, StatusRejected, StatusTimeout:
		return s
	default:
		return StatusUnknown
	}
}

// Terminal reports whether the payment ended without being completed.
func (s DomainStatus) Terminal() bool {
	return s == StatusFailed || s == StatusRejected || s == StatusTimeout
}

// Response is the part shared by every operation result.
type Response struct {
	Outcome Outcome
	// Code is the HTTP status returned by MTN, or 401/500 when the token
	// exchange or the transport failed before a response was received.
	Code    int
	Message string
	// Err is set when the call failed locally (ErrAuth, ErrTransport).
	Err error
}

// Base returns the shared part of any result embedding Response.
func (r Response) Base() Response { return r }

func (r Response) Successful() bool { return r.Outcome == OutcomeSuccess }
func (r Response) Pending() bool    { return r.Outcome == OutcomePending }
func (r Response) Rejected() bool   { return r.Outcome == OutcomeRejected }

// PurchaseResult is the outcome of a RequestToPay initiation.
type PurchaseResult struct {
	Response
	// TransactionReference is the X-Reference-Id generated for the request.
	TransactionReference string
	ExternalID           string
}

// Pending is true once MTN accepted the request: the payer still has to approve it.
func (r PurchaseResult) Pending() bool { return r.Successful() }

// StatusResult is the outcome of a RequestToPay status lookup.
type StatusResult struct {
	Response
	Status DomainStatus
	// TransactionReference prefers financialTransactionId and falls back to externalId.
	TransactionReference   string
	FinancialTransactionID string
	ExternalID             string
	Amount                 string
	Currency               string
	Payer                  *Party
	Reason                 string
}

// BalanceResult is the outcome of a balance lookup.
type BalanceResult struct {
	Response
	AvailableBalance string
	Currency         string
}

// AccountActiveResult is the outcome of an account-holder activity lookup.
type AccountActiveResult struct {
	Response
	Active bool
}

// APIUserResult is the outcome of sandbox API user provisioning.
type APIUserResult struct {
	Response
	// APIUserID is the id generated client-side and sent as X-Reference-Id.
	APIUserID string
}

// APIKeyResult is the outcome of sandbox API key provisioning.
type APIKeyResult struct {
	Response
	APIKey string
}

// TokenResult is the outcome of a token exchange exposed as an operation.
type TokenResult struct {
	Response
	Token AccessToken
}
