package momo

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/fitstack/momo-payments/internal/core/domain"
)

// envelope is one HTTP response from MTN. It is read-only once built.
type envelope struct {
	StatusCode int
	Raw        []byte
	Fields     map[string]any
}

// newEnvelope accepts the body as a string, bytes, a reader or an already
// decoded mapping. A body that is not a JSON object yields empty Fields.
func newEnvelope(statusCode int, body any) *envelope {
	env := &envelope{StatusCode: statusCode, Fields: map[string]any{}}

	switch b := body.(type) {
	case map[string]any:
		if b != nil {
			env.Fields = b
		}
		env.Raw, _ = json.Marshal(b)
		return env
	case json.RawMessage:
		env.Raw = b
	case []byte:
		env.Raw = b
	case string:
		env.Raw = []byte(b)
	case io.Reader:
		if data, err := io.ReadAll(b); err == nil {
			env.Raw = data
		}
	}

	env.Fields = decodeObject(env.Raw)
	return env
}

func decodeObject(raw []byte) map[string]any {
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return map[string]any{}
	}
	return fields
}

// String returns a scalar field as text, or "" when absent.
func (e *envelope) String(key string) string {
	return scalarText(e.Fields[key])
}

// Bool is true only when the field is the JSON literal true.
func (e *envelope) Bool(key string) bool {
	v, ok := e.Fields[key].(bool)
	return ok && v
}

// Int returns a numeric field, accepting numbers and numeric strings.
func (e *envelope) Int(key string) int {
	switch v := e.Fields[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// Party returns a nested party object such as payer.
func (e *envelope) Party(key string) *domain.Party {
	obj, ok := e.Fields[key].(map[string]any)
	if !ok {
		return nil
	}
	return &domain.Party{
		PartyIDType: scalarText(obj["partyIdType"]),
		PartyID:     scalarText(obj["partyId"]),
	}
}

// Text returns a field that may be a plain value or an object with a message/code.
func (e *envelope) Text(key string) string {
	if obj, ok := e.Fields[key].(map[string]any); ok {
		if msg := scalarText(obj["message"]); msg != "" {
			return msg
		}
		return scalarText(obj["code"])
	}
	return e.String(key)
}

// errorText is used when no status-specific message applies: the JSON message
// field, else the raw body when it is plain text, else fallback.
func (e *envelope) errorText(fallback string) string {
	if msg := e.String("message"); msg != "" {
		return msg
	}
	if len(e.Fields) == 0 && !json.Valid(e.Raw) {
		if text := strings.TrimSpace(string(e.Raw)); text != "" {
			return text
		}
	}
	return fallback
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
