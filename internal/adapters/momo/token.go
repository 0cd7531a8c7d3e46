package momo

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/fitstack/momo-payments/internal/core/domain"
)

// GetAccessToken exchanges API user credentials for a bearer token.
// Every call performs a fresh exchange; tokens are never cached.
func (g *Gateway) GetAccessToken(ctx context.Context, creds domain.Credentials) (*domain.AccessToken, error) {
	return g.fetchToken(ctx, g.cfg.WithCredentials(creds))
}

func (g *Gateway) fetchToken(ctx context.Context, cfg domain.GatewayConfig) (*domain.AccessToken, error) {
	if err := requireFields(credentialFields(cfg)...); err != nil {
		return nil, err
	}

	env, err := g.requestToken(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuth, err)
	}

	token := tokenFromEnvelope(env)
	if env.StatusCode != http.StatusOK || token.Value == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrAuth, env.errorText("Failed to obtain access token"))
	}
	return &token, nil
}

func (g *Gateway) requestToken(ctx context.Context, cfg domain.GatewayConfig) (*envelope, error) {
	basic := base64.StdEncoding.EncodeToString([]byte(cfg.APIUserID + ":" + cfg.APIKey))
	headers := map[string]string{
		"Authorization":             "Basic " + basic,
		"Ocp-Apim-Subscription-Key": cfg.SubscriptionKey,
	}
	return g.send(ctx, http.MethodPost, baseURL(cfg)+tokenPath, headers, nil)
}

// CreateToken exposes the token exchange as an operation with its own result.
func (g *Gateway) CreateToken(ctx context.Context, req domain.CreateTokenRequest) (*domain.TokenResult, error) {
	cfg := g.cfg.WithCredentials(req.Credentials)
	if err := requireFields(credentialFields(cfg)...); err != nil {
		return nil, err
	}

	env, err := g.requestToken(ctx, cfg)
	if err != nil {
		return &domain.TokenResult{Response: localFailure(err)}, nil
	}
	return classifyToken(env), nil
}

func classifyToken(env *envelope) *domain.TokenResult {
	result := &domain.TokenResult{Token: tokenFromEnvelope(env)}
	result.Code = env.StatusCode

	if env.StatusCode == http.StatusOK && result.Token.Value != "" {
		result.Outcome = domain.OutcomeSuccess
		result.Message = msgTokenCreated
		return result
	}
	result.Message = failureMessage(classProvisioning, env, msgTokenFailed)
	return result
}

func tokenFromEnvelope(env *envelope) domain.AccessToken {
	return domain.AccessToken{
		Value:     env.String("access_token"),
		TokenType: env.String("token_type"),
		ExpiresIn: env.Int("expires_in"),
	}
}
