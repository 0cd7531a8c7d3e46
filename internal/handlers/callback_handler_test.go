package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleMoMo(t *testing.T) {
	mkReq := func(method, body string) *http.Request {
		req := httptest.NewRequest(method, "/callbacks/momo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	var tests = []struct {
		name         string
		req          func() *http.Request
		requireHTTPS bool
		notifier     func() *notifierMock
		wantCode     int
		wantStatus   string
		wantMessage  string
	}{
		{
			name:        "wrong method",
			req:         func() *http.Request { return mkReq(http.MethodGet, "") },
			wantCode:    http.StatusMethodNotAllowed,
			wantStatus:  "error",
			wantMessage: "Method not allowed",
		},
		{
			name:         "plain http in production",
			req:          func() *http.Request { return mkReq(http.MethodPost, `{"referenceId":"ref-1","status":"SUCCESSFUL"}`) },
			requireHTTPS: true,
			wantCode:     http.StatusForbidden,
			wantStatus:   "error",
			wantMessage:  "HTTPS required in production",
		},
		{
			name:        "empty payload",
			req:         func() *http.Request { return mkReq(http.MethodPost, "  ") },
			wantCode:    http.StatusBadRequest,
			wantStatus:  "error",
			wantMessage: "Empty payload",
		},
		{
			name:        "invalid json",
			req:         func() *http.Request { return mkReq(http.MethodPost, `{"referenceId":`) },
			wantCode:    http.StatusBadRequest,
			wantStatus:  "error",
			wantMessage: "Invalid JSON",
		},
		{
			name:        "json array",
			req:         func() *http.Request { return mkReq(http.MethodPost, `["SUCCESSFUL"]`) },
			wantCode:    http.StatusBadRequest,
			wantStatus:  "error",
			wantMessage: "Invalid JSON",
		},
		{
			name:        "missing reference",
			req:         func() *http.Request { return mkReq(http.MethodPost, `{"status":"SUCCESSFUL"}`) },
			wantCode:    http.StatusBadRequest,
			wantStatus:  "error",
			wantMessage: "Missing required field: referenceId",
		},
		{
			name:        "missing status",
			req:         func() *http.Request { return mkReq(http.MethodPost, `{"referenceId":"ref-1","status":""}`) },
			wantCode:    http.StatusBadRequest,
			wantStatus:  "error",
			wantMessage: "Missing required field: status",
		},
		{
			name:        "unknown status",
			req:         func() *http.Request { return mkReq(http.MethodPost, `{"referenceId":"ref-1","status":"EXPIRED"}`) },
			wantCode:    http.StatusInternalServerError,
			wantStatus:  "error",
			wantMessage: "Processing failed",
		},
		{
			name: "backend unavailable",
			req:  func() *http.Request { return mkReq(http.MethodPost, `{"referenceId":"ref-1","status":"FAILED"}`) },
			notifier: func() *notifierMock {
				n := &notifierMock{}
				n.On("NotifyPaymentStatus", mock.Anything, mock.Anything).Return(domain.ErrNotifyFailed)
				return n
			},
			wantCode:    http.StatusInternalServerError,
			wantStatus:  "error",
			wantMessage: "Processing failed",
		},
		{
			name: "https behind proxy",
			req: func() *http.Request {
				req := mkReq(http.MethodPost, `{"referenceId":"ref-1","status":"PENDING"}`)
				req.Header.Set("X-Forwarded-Proto", "https")
				return req
			},
			requireHTTPS: true,
			notifier: func() *notifierMock {
				n := &notifierMock{}
				n.On("NotifyPaymentStatus", mock.Anything, mock.MatchedBy(func(u domain.PaymentStatusUpdate) bool {
					return u.Event == string(domain.ActionPaymentPending)
				})).Return(nil)
				return n
			},
			wantCode:    http.StatusOK,
			wantStatus:  "success",
			wantMessage: "Callback processed successfully",
		},
		{
			name: "successful payment",
			req: func() *http.Request {
				return mkReq(http.MethodPost, `{
					"referenceId": "ref-1",
					"status": "SUCCESSFUL",
					"amount": 100,
					"currency": "EUR",
					"financialTransactionId": "555",
					"externalId": "order-1"
				}`)
			},
			notifier: func() *notifierMock {
				n := &notifierMock{}
				n.On("NotifyPaymentStatus", mock.Anything, mock.MatchedBy(func(u domain.PaymentStatusUpdate) bool {
					return u.Event == string(domain.ActionPaymentCompleted) &&
						u.ReferenceID == "ref-1" &&
						u.Amount == "100" &&
						u.FinancialTransactionID == "555" &&
						u.ExternalID == "order-1"
				})).Return(nil)
				return n
			},
			wantCode:    http.StatusOK,
			wantStatus:  "success",
			wantMessage: "Callback processed successfully",
		},
		{
			name: "rejected with reason object",
			req: func() *http.Request {
				return mkReq(http.MethodPost, `{"referenceId":"ref-2","status":"REJECTED","reason":{"code":"APPROVAL_REJECTED"}}`)
			},
			notifier: func() *notifierMock {
				n := &notifierMock{}
				n.On("NotifyPaymentStatus", mock.Anything, mock.MatchedBy(func(u domain.PaymentStatusUpdate) bool {
					return u.Event == string(domain.ActionPaymentFailed) && u.Reason == "APPROVAL_REJECTED"
				})).Return(nil)
				return n
			},
			wantCode:    http.StatusOK,
			wantStatus:  "success",
			wantMessage: "Callback processed successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &notifierMock{}
			if tt.notifier != nil {
				notifier = tt.notifier()
			}
			router := newTestRouter(&gatewayMock{}, notifier, tt.requireHTTPS)

			rr := serve(router, tt.req())

			require.Equal(t, tt.wantCode, rr.Code)
			body := decode[map[string]string](t, rr)
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, tt.wantMessage, body["message"])
			notifier.AssertExpectations(t)
		})
	}
}
