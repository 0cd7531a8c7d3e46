package momo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fitstack/momo-payments/internal/core/domain"
)

type accountTarget struct {
	cfg        domain.GatewayConfig
	holderType string
	holderID   string
}

// resolveAccount validates an account request. MSISDN holder ids are normalized
// like payer phones; other id types are used verbatim.
func (g *Gateway) resolveAccount(req domain.AccountRequest) (*accountTarget, error) {
	cfg := g.cfg.WithCredentials(req.Credentials)
	required := append([]field{{"accountHolderId", req.AccountHolderID}}, credentialFields(cfg)...)
	if err := requireFields(required...); err != nil {
		return nil, err
	}

	target := &accountTarget{
		cfg:        cfg,
		holderType: valueOr(strings.TrimSpace(req.AccountHolderType), partyTypeMSISDN),
		holderID:   strings.TrimSpace(req.AccountHolderID),
	}
	if strings.EqualFold(target.holderType, partyTypeMSISDN) {
		phone, err := normalizePhone(target.holderID)
		if err != nil {
			return nil, err
		}
		target.holderType = partyTypeMSISDN
		target.holderID = phone
	}
	return target, nil
}

// CheckBalance retrieves the available balance of the collection account.
func (g *Gateway) CheckBalance(ctx context.Context, req domain.AccountRequest) (*domain.BalanceResult, error) {
	target, err := g.resolveAccount(req)
	if err != nil {
		return nil, err
	}

	token, err := g.fetchToken(ctx, target.cfg)
	if err != nil {
		return &domain.BalanceResult{Response: localFailure(err)}, nil
	}

	query := url.Values{}
	query.Set("accountHolderIdType", target.holderType)
	query.Set("accountHolderId", target.holderID)
	endpoint := baseURL(target.cfg) + balancePath + "?" + query.Encode()

	env, err := g.send(ctx, http.MethodGet, endpoint, bearerHeaders(target.cfg, token), nil)
	if err != nil {
		return &domain.BalanceResult{Response: localFailure(err)}, nil
	}

	result := &domain.BalanceResult{
		AvailableBalance: env.String("availableBalance"),
		Currency:         env.String("currency"),
	}
	result.Code = env.StatusCode
	if env.StatusCode == http.StatusOK {
		result.Outcome = domain.OutcomeSuccess
		result.Message = fmt.Sprintf("Available balance: %s %s", result.AvailableBalance, result.Currency)
	} else {
		result.Message = failureMessage(classAccount, env, msgBalanceFailed)
	}
	return result, nil
}

// CheckAccountActive reports whether the account holder can transact.
func (g *Gateway) CheckAccountActive(ctx context.Context, req domain.AccountRequest) (*domain.AccountActiveResult, error) {
	target, err := g.resolveAccount(req)
	if err != nil {
		return nil, err
	}

	token, err := g.fetchToken(ctx, target.cfg)
	if err != nil {
		return &domain.AccountActiveResult{Response: localFailure(err)}, nil
	}

	endpoint := baseURL(target.cfg) + fmt.Sprintf(accountHolderPath,
		url.PathEscape(target.holderType), url.PathEscape(target.holderID))
	env, err := g.send(ctx, http.MethodGet, endpoint, bearerHeaders(target.cfg, token), nil)
	if err != nil {
		return &domain.AccountActiveResult{Response: localFailure(err)}, nil
	}

	result := &domain.AccountActiveResult{Active: env.Bool("result")}
	result.Code = env.StatusCode
	switch {
	case env.StatusCode != http.StatusOK:
		result.Message = failureMessage(classAccount, env, msgAccountActiveFailed)
	case result.Active:
		result.Outcome = domain.OutcomeSuccess
		result.Message = msgAccountActive
	default:
		result.Outcome = domain.OutcomeSuccess
		result.Message = msgAccountInactive
	}
	return result, nil
}
