package momo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEnvelope_BodyShapes(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"string", `{"status":"PENDING","amount":100}`},
		{"bytes", []byte(`{"status":"PENDING","amount":100}`)},
		{"raw message", json.RawMessage(`{"status":"PENDING","amount":100}`)},
		{"reader", strings.NewReader(`{"status":"PENDING","amount":100}`)},
		{"mapping", map[string]any{"status": "PENDING", "amount": json.Number("100")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnvelope(200, tt.body)

			assert.Equal(t, 200, env.StatusCode)
			assert.Equal(t, "PENDING", env.String("status"))
			assert.Equal(t, "100", env.String("amount"))
			assert.Equal(t, 100, env.Int("amount"))
		})
	}
}

func TestNewEnvelope_DegradesToEmptyMapping(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"nil", nil},
		{"empty", ""},
		{"invalid json", "{oops"},
		{"array", "[1,2,3]"},
		{"null", "null"},
		{"unsupported type", 42},
		{"nil mapping", map[string]any(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnvelope(500, tt.body)

			assert.NotNil(t, env.Fields)
			assert.Empty(t, env.Fields)
			assert.Empty(t, env.String("message"))
		})
	}
}

func TestEnvelope_Accessors(t *testing.T) {
	env := newEnvelope(200, `{
		"result": true,
		"flag": "true",
		"expires_in": "3600",
		"ratio": 1.5,
		"payer": {"partyIdType": "MSISDN", "partyId": 256733123453},
		"reason": {"code": "APPROVAL_REJECTED"}
	}`)

	assert.True(t, env.Bool("result"))
	assert.False(t, env.Bool("flag"))
	assert.False(t, env.Bool("missing"))
	assert.Equal(t, 3600, env.Int("expires_in"))
	assert.Equal(t, 1, env.Int("ratio"))
	assert.Equal(t, "1.5", env.String("ratio"))
	assert.Equal(t, "MSISDN", env.Party("payer").PartyIDType)
	assert.Equal(t, "256733123453", env.Party("payer").PartyID)
	assert.Nil(t, env.Party("reason.code"))
	assert.Equal(t, "APPROVAL_REJECTED", env.Text("reason"))
	assert.Equal(t, "true", env.Text("flag"))
}

func TestEnvelope_ErrorText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json message", `{"message":"Request body is invalid"}`, "Request body is invalid"},
		{"json without message", `{"code":"INTERNAL_ERROR"}`, "fallback"},
		{"plain text", "  upstream timeout \n", "upstream timeout"},
		{"empty", "", "fallback"},
		{"json scalar", `"quoted"`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newEnvelope(502, tt.body).errorText("fallback"))
		})
	}
}
