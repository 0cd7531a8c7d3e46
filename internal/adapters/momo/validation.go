package momo

import (
	"regexp"
	"strings"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/shopspring/decimal"
)

const minPhoneDigits = 10

var nonDigits = regexp.MustCompile(`[^0-9]`)

type field struct {
	name  string
	value string
}

// requireFields reports the first empty field.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.NewValidationError("The " + f.name + " parameter is required")
		}
	}
	return nil
}

func credentialFields(cfg domain.GatewayConfig) []field {
	return []field{
		{"apiUserId", cfg.APIUserID},
		{"apiKey", cfg.APIKey},
		{"subscriptionKey", cfg.SubscriptionKey},
	}
}

// normalizePhone strips every non-digit and requires an international-length number.
func normalizePhone(phone string) (string, error) {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) < minPhoneDigits {
		return "", domain.NewValidationError("Phone number too short. Must be in international format.")
	}
	return digits, nil
}

// normalizeAmount requires a positive decimal and returns it as given.
// No rounding is applied.
func normalizeAmount(amount string) (string, error) {
	amount = strings.TrimSpace(amount)
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return "", domain.NewValidationError("Amount must be a decimal number")
	}
	if !value.IsPositive() {
		return "", domain.NewValidationError("Amount must be positive")
	}
	return amount, nil
}
