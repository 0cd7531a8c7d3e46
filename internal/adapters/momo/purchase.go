package momo

import (
	"context"
	"net/http"

	"github.com/fitstack/momo-payments/internal/core/domain"
)

const (
	defaultCurrency     = "EUR"
	defaultPayerMessage = "Payment request"
	defaultPayeeNote    = "Payment for order"
	partyTypeMSISDN     = "MSISDN"
)

type requestToPayBody struct {
	Amount       string       `json:"amount"`
	Currency     string       `json:"currency"`
	ExternalID   string       `json:"externalId"`
	Payer        domain.Party `json:"payer"`
	PayerMessage string       `json:"payerMessage"`
	PayeeNote    string       `json:"payeeNote"`
}

// Purchase initiates a RequestToPay. On acceptance (202) the payer receives a prompt
// on their phone and the result carries the generated X-Reference-Id.
func (g *Gateway) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	cfg := g.cfg.WithCredentials(req.Credentials)
	body, err := g.buildRequestToPay(cfg, req)
	if err != nil {
		return nil, err
	}

	result := &domain.PurchaseResult{ExternalID: body.ExternalID}
	token, err := g.fetchToken(ctx, cfg)
	if err != nil {
		result.Response = localFailure(err)
		return result, nil
	}

	referenceID := g.newID()
	headers := bearerHeaders(cfg, token)
	headers["X-Reference-Id"] = referenceID
	headers["Content-Type"] = "application/json"
	if req.CallbackURL != "" {
		headers["X-Callback-Url"] = req.CallbackURL
	}

	env, err := g.send(ctx, http.MethodPost, baseURL(cfg)+requestToPayPath, headers, body)
	if err != nil {
		result.Response = localFailure(err)
		return result, nil
	}

	result.TransactionReference = referenceID
	result.Code = env.StatusCode
	if env.StatusCode == http.StatusAccepted {
		result.Outcome = domain.OutcomeSuccess
		result.Message = msgPurchaseAccepted
	} else {
		result.Message = failureMessage(classPurchase, env, msgPurchaseFailed)
	}
	return result, nil
}

func (g *Gateway) buildRequestToPay(cfg domain.GatewayConfig, req domain.PurchaseRequest) (*requestToPayBody, error) {
	required := append([]field{{"amount", req.Amount}, {"payerPhone", req.PayerPhone}}, credentialFields(cfg)...)
	if err := requireFields(required...); err != nil {
		return nil, err
	}

	phone, err := normalizePhone(req.PayerPhone)
	if err != nil {
		return nil, err
	}
	amount, err := normalizeAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	body := &requestToPayBody{
		Amount:       amount,
		Currency:     valueOr(req.Currency, defaultCurrency),
		ExternalID:   req.ExternalID,
		Payer:        domain.Party{PartyIDType: partyTypeMSISDN, PartyID: phone},
		PayerMessage: valueOr(req.PayerMessage, defaultPayerMessage),
		PayeeNote:    valueOr(req.PayeeNote, defaultPayeeNote),
	}
	if body.ExternalID == "" {
		body.ExternalID = g.newID()
	}
	return body, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
