package momo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fitstack/momo-payments/internal/core/domain"
)

const defaultCallbackHost = "webhook.site"

type apiUserBody struct {
	ProviderCallbackHost string `json:"providerCallbackHost"`
}

func (g *Gateway) requireSandbox(cfg domain.GatewayConfig, operation string) error {
	if cfg.TestMode() {
		return nil
	}
	return domain.NewServiceError(domain.ErrSandboxOnly, operation+" is only available in sandbox environment", domain.CodeSandbox)
}

// CreateAPIUser provisions a sandbox API user under a freshly generated id.
func (g *Gateway) CreateAPIUser(ctx context.Context, req domain.CreateAPIUserRequest) (*domain.APIUserResult, error) {
	cfg := g.cfg.WithCredentials(req.Credentials)
	if err := g.requireSandbox(cfg, "API User creation"); err != nil {
		return nil, err
	}
	if err := requireFields(field{"subscriptionKey", cfg.SubscriptionKey}); err != nil {
		return nil, err
	}

	apiUserID := g.newID()
	headers := map[string]string{
		"Content-Type":              "application/json",
		"X-Reference-Id":            apiUserID,
		"Ocp-Apim-Subscription-Key": cfg.SubscriptionKey,
	}
	body := apiUserBody{ProviderCallbackHost: valueOr(req.CallbackHost, cfg.CallbackHost)}

	env, err := g.send(ctx, http.MethodPost, baseURL(cfg)+apiUserPath, headers, body)
	if err != nil {
		return &domain.APIUserResult{Response: localFailure(err)}, nil
	}

	result := &domain.APIUserResult{APIUserID: apiUserID}
	result.Code = env.StatusCode
	if env.StatusCode == http.StatusCreated {
		result.Outcome = domain.OutcomeSuccess
		result.Message = msgAPIUserCreated
	} else {
		result.Message = failureMessage(classProvisioning, env, msgAPIUserFailed)
	}
	return result, nil
}

// CreateAPIKey provisions a key for an existing sandbox API user.
func (g *Gateway) CreateAPIKey(ctx context.Context, req domain.CreateAPIKeyRequest) (*domain.APIKeyResult, error) {
	cfg := g.cfg.WithCredentials(req.Credentials)
	if err := g.requireSandbox(cfg, "API Key creation"); err != nil {
		return nil, err
	}
	if err := requireFields(field{"apiUserId", cfg.APIUserID}, field{"subscriptionKey", cfg.SubscriptionKey}); err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Ocp-Apim-Subscription-Key": cfg.SubscriptionKey,
	}
	endpoint := baseURL(cfg) + fmt.Sprintf(apiKeyPath, url.PathEscape(cfg.APIUserID))

	env, err := g.send(ctx, http.MethodPost, endpoint, headers, nil)
	if err != nil {
		return &domain.APIKeyResult{Response: localFailure(err)}, nil
	}

	result := &domain.APIKeyResult{APIKey: env.String("apiKey")}
	result.Code = env.StatusCode
	if env.StatusCode == http.StatusCreated {
		result.Outcome = domain.OutcomeSuccess
		result.Message = msgAPIKeyCreated
	} else {
		result.Message = failureMessage(classProvisioning, env, msgAPIKeyFailed)
	}
	return result, nil
}
