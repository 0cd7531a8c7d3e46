package momo

import "github.com/fitstack/momo-payments/internal/core/domain"

// operationClass groups operations that share an error-message table.
type operationClass int

const (
	classPurchase operationClass = iota
	classStatus
	classAccount
	classProvisioning // token, API user and API key: no table
)

type messageKey struct {
	class operationClass
	code  int
}

const (
	msgBadRequest   = "Bad Request - Invalid request data"
	msgUnauthorized = "Unauthorized - Invalid credentials"
	msgForbidden    = "Forbidden - Access denied"
	msgServerError  = "Server Error - Please try again later"
)

var statusMessages = map[messageKey]string{
	{classPurchase, 400}: msgBadRequest,
	{classPurchase, 401}: msgUnauthorized,
	{classPurchase, 403}: msgForbidden,
	{classPurchase, 409}: "Conflict - Duplicate reference ID",
	{classPurchase, 500}: msgServerError,

	{classStatus, 400}: msgBadRequest,
	{classStatus, 401}: msgUnauthorized,
	{classStatus, 404}: "Not Found - Invalid reference ID",
	{classStatus, 500}: msgServerError,

	{classAccount, 400}: "Bad Request - Invalid account holder information",
	{classAccount, 401}: msgUnauthorized,
	{classAccount, 403}: msgForbidden,
	{classAccount, 404}: "Not Found - Invalid target environment",
	{classAccount, 500}: msgServerError,
}

// Success and fallback texts per operation.
const (
	msgPurchaseAccepted = "Payment request sent successfully. Please check your phone for the payment prompt."
	msgPurchaseFailed   = "Payment request failed"

	msgPaymentCompleted = "Payment completed successfully"
	msgPaymentPending   = "Payment is still pending user approval"
	msgStatusFailed     = "Payment status check failed"

	msgBalanceFailed       = "Balance check failed"
	msgAccountActive       = "Account is active"
	msgAccountInactive     = "Account is not active"
	msgAccountActiveFailed = "Account active check failed"

	msgAPIUserCreated = "API User created successfully"
	msgAPIUserFailed  = "API User creation failed"
	msgAPIKeyCreated  = "API Key created successfully"
	msgAPIKeyFailed   = "API Key creation failed"
	msgTokenCreated   = "OAuth token created successfully"
	msgTokenFailed    = "Token creation failed"
)

var rejectionMessages = map[domain.DomainStatus]string{
	domain.StatusFailed:   "Payment failed",
	domain.StatusRejected: "Payment was rejected by user",
	domain.StatusTimeout:  "Payment timed out",
}

// failureMessage maps a non-successful response onto its human-readable text.
func failureMessage(class operationClass, env *envelope, fallback string) string {
	if msg, ok := statusMessages[messageKey{class, env.StatusCode}]; ok {
		return msg
	}
	return env.errorText(fallback)
}
