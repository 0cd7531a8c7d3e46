package momo

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fitstack/momo-payments/internal/core/domain"
)

// CompletePurchase fetches the current status of a RequestToPay.
func (g *Gateway) CompletePurchase(ctx context.Context, req domain.CompletePurchaseRequest) (*domain.StatusResult, error) {
	cfg := g.cfg.WithCredentials(req.Credentials)
	required := append([]field{{"transactionReference", req.TransactionReference}}, credentialFields(cfg)...)
	if err := requireFields(required...); err != nil {
		return nil, err
	}

	token, err := g.fetchToken(ctx, cfg)
	if err != nil {
		return &domain.StatusResult{Response: localFailure(err)}, nil
	}

	endpoint := baseURL(cfg) + requestToPayPath + "/" + url.PathEscape(req.TransactionReference)
	env, err := g.send(ctx, http.MethodGet, endpoint, bearerHeaders(cfg, token), nil)
	if err != nil {
		return &domain.StatusResult{Response: localFailure(err)}, nil
	}
	return classifyStatus(env), nil
}

// classifyStatus maps a status response onto an outcome. FAILED, REJECTED and
// TIMEOUT are rejections whatever the HTTP code.
func classifyStatus(env *envelope) *domain.StatusResult {
	result := &domain.StatusResult{
		Status:                 domain.ParseDomainStatus(env.String("status")),
		FinancialTransactionID: env.String("financialTransactionId"),
		ExternalID:             env.String("externalId"),
		Amount:                 env.String("amount"),
		Currency:               env.String("currency"),
		Payer:                  env.Party("payer"),
		Reason:                 env.Text("reason"),
	}
	result.TransactionReference = valueOr(result.FinancialTransactionID, result.ExternalID)
	result.Code = env.StatusCode

	ok := env.StatusCode == http.StatusOK
	switch {
	case ok && result.Status == domain.StatusSuccessful:
		result.Outcome = domain.OutcomeSuccess
		result.Message = msgPaymentCompleted
	case ok && result.Status == domain.StatusPending:
		result.Outcome = domain.OutcomePending
		result.Message = msgPaymentPending
	case result.Status.Terminal():
		result.Outcome = domain.OutcomeRejected
		result.Message = rejectionMessages[result.Status]
	default:
		result.Message = failureMessage(classStatus, env, msgStatusFailed)
	}
	return result
}
