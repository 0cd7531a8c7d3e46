package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/fitstack/momo-payments/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(gw *GatewayMock, n *NotifierMock) *PaymentService {
	svc := NewPaymentService(gw, n, zap.NewNop(), "https://merchant.example/callbacks/momo")
	svc.now = func() time.Time { return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC) }
	return svc
}

func accepted(reference string) *domain.PurchaseResult {
	return &domain.PurchaseResult{
		Response:             domain.Response{Outcome: domain.OutcomeSuccess, Code: 202, Message: "accepted"},
		TransactionReference: reference,
	}
}

func TestPaymentService_Purchase(t *testing.T) {
	var tests = []struct {
		name            string
		req             domain.PurchaseRequest
		wantCallbackURL string
	}{
		{
			name:            "default callback url",
			req:             domain.PurchaseRequest{Amount: "100", PayerPhone: "256733123453"},
			wantCallbackURL: "https://merchant.example/callbacks/momo",
		},
		{
			name:            "caller callback url wins",
			req:             domain.PurchaseRequest{Amount: "100", PayerPhone: "256733123453", CallbackURL: "https://other.example/cb"},
			wantCallbackURL: "https://other.example/cb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &GatewayMock{}
			gw.On("Purchase", mock.Anything, mock.MatchedBy(func(req domain.PurchaseRequest) bool {
				return req.CallbackURL == tt.wantCallbackURL && req.Amount == tt.req.Amount
			})).Return(accepted("ref-1"), nil).Once()
			svc := newService(gw, &NotifierMock{})

			res, err := svc.Purchase(context.Background(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, "ref-1", res.TransactionReference)
			gw.AssertExpectations(t)
		})
	}
}

func TestPaymentService_RecordsOutcomeMetrics(t *testing.T) {
	counter := func(op, outcome string) float64 {
		return testutil.ToFloat64(observability.GatewayRequestsTotal.WithLabelValues(op, outcome))
	}
	gw := &GatewayMock{}
	gw.On("CompletePurchase", mock.Anything, domain.CompletePurchaseRequest{TransactionReference: "ref-1"}).
		Return(&domain.StatusResult{Response: domain.Response{Outcome: domain.OutcomePending, Code: 200}}, nil)
	gw.On("CompletePurchase", mock.Anything, domain.CompletePurchaseRequest{}).
		Return(nil, domain.NewValidationError("The transactionReference parameter is required"))
	svc := newService(gw, &NotifierMock{})
	pendingBefore := counter(OpCompletePurchase, "pending")
	invalidBefore := counter(OpCompletePurchase, observability.OutcomeInvalid)

	res, err := svc.CompletePurchase(context.Background(), domain.CompletePurchaseRequest{TransactionReference: "ref-1"})
	require.NoError(t, err)
	assert.True(t, res.Pending())

	res, err = svc.CompletePurchase(context.Background(), domain.CompletePurchaseRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Nil(t, res)

	assert.Equal(t, pendingBefore+1, counter(OpCompletePurchase, "pending"))
	assert.Equal(t, invalidBefore+1, counter(OpCompletePurchase, observability.OutcomeInvalid))
}

func TestPaymentService_PassesThroughLocalFailures(t *testing.T) {
	authErr := fmt.Errorf("%w: Failed to obtain access token", domain.ErrAuth)
	gw := &GatewayMock{}
	gw.On("CheckBalance", mock.Anything, mock.Anything).Return(&domain.BalanceResult{
		Response: domain.Response{Outcome: domain.OutcomeFailed, Code: 401, Message: authErr.Error(), Err: authErr},
	}, nil)
	gw.On("CheckAccountActive", mock.Anything, mock.Anything).Return(&domain.AccountActiveResult{
		Response: domain.Response{Outcome: domain.OutcomeSuccess, Code: 200},
		Active:   true,
	}, nil)
	svc := newService(gw, &NotifierMock{})
	req := domain.AccountRequest{AccountHolderID: "256733123453"}

	balance, err := svc.CheckBalance(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 401, balance.Code)
	assert.ErrorIs(t, balance.Err, domain.ErrAuth)

	active, err := svc.CheckAccountActive(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, active.Active)
}

func TestPaymentService_ProvisionSandboxUser(t *testing.T) {
	created := &domain.APIUserResult{Response: domain.Response{Outcome: domain.OutcomeSuccess, Code: 201}, APIUserID: "new-user"}
	failedUser := &domain.APIUserResult{Response: domain.Response{Outcome: domain.OutcomeFailed, Code: 409}, APIUserID: "new-user"}
	key := &domain.APIKeyResult{Response: domain.Response{Outcome: domain.OutcomeSuccess, Code: 201}, APIKey: "secret"}

	var tests = []struct {
		name      string
		gateway   func() *GatewayMock
		wantErr   error
		wantReady bool
		wantKey   bool
	}{
		{
			name: "user and key created",
			gateway: func() *GatewayMock {
				gw := &GatewayMock{}
				gw.On("CreateAPIUser", mock.Anything, mock.Anything).Return(created, nil)
				gw.On("CreateAPIKey", mock.Anything, domain.CreateAPIKeyRequest{
					Credentials: domain.Credentials{APIUserID: "new-user", SubscriptionKey: "sub-1"},
				}).Return(key, nil)
				return gw
			},
			wantReady: true,
			wantKey:   true,
		},
		{
			name: "user creation failed",
			gateway: func() *GatewayMock {
				gw := &GatewayMock{}
				gw.On("CreateAPIUser", mock.Anything, mock.Anything).Return(failedUser, nil)
				return gw
			},
		},
		{
			name: "production",
			gateway: func() *GatewayMock {
				gw := &GatewayMock{}
				gw.On("CreateAPIUser", mock.Anything, mock.Anything).Return(nil, domain.ErrSandboxOnly)
				return gw
			},
			wantErr: domain.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := tt.gateway()
			svc := newService(gw, &NotifierMock{})

			user, err := svc.ProvisionSandboxUser(context.Background(), domain.CreateAPIUserRequest{
				Credentials: domain.Credentials{SubscriptionKey: "sub-1"},
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReady, user.Ready())
			assert.Equal(t, tt.wantKey, user.Key != nil)
			gw.AssertExpectations(t)
		})
	}
}

func TestPaymentService_ProcessCallback(t *testing.T) {
	var tests = []struct {
		name       string
		status     string
		wantAction domain.CallbackAction
	}{
		{"successful", "SUCCESSFUL", domain.ActionPaymentCompleted},
		{"successful lower case", "successful", domain.ActionPaymentCompleted},
		{"failed", "FAILED", domain.ActionPaymentFailed},
		{"rejected", "REJECTED", domain.ActionPaymentFailed},
		{"pending", "PENDING", domain.ActionPaymentPending},
		{"timeout", "TIMEOUT", domain.ActionPaymentTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &NotifierMock{}
			notifier.On("NotifyPaymentStatus", mock.Anything, domain.PaymentStatusUpdate{
				Event:       string(tt.wantAction),
				ReferenceID: "ref-1",
				Status:      string(domain.ParseDomainStatus(tt.status)),
				Amount:      "100",
				Currency:    "EUR",
				Timestamp:   "2026-10-16T10:00:00Z",
			}).Return(nil).Once()
			svc := newService(&GatewayMock{}, notifier)

			action, err := svc.ProcessCallback(context.Background(), domain.CallbackNotification{
				ReferenceID: "ref-1",
				Status:      tt.status,
				Amount:      "100",
				Currency:    "EUR",
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, action)
			notifier.AssertExpectations(t)
		})
	}
}

func TestPaymentService_ProcessCallback_UnknownStatus(t *testing.T) {
	notifier := &NotifierMock{}
	svc := newService(&GatewayMock{}, notifier)

	action, err := svc.ProcessCallback(context.Background(), domain.CallbackNotification{ReferenceID: "ref-1", Status: "EXPIRED"})

	require.ErrorIs(t, err, domain.ErrUnknownCallbackStatus)
	assert.Empty(t, action)
	notifier.AssertNotCalled(t, "NotifyPaymentStatus", mock.Anything, mock.Anything)
}

func TestPaymentService_ProcessCallback_NotifyFailure(t *testing.T) {
	notifier := &NotifierMock{}
	notifier.On("NotifyPaymentStatus", mock.Anything, mock.Anything).
		Return(domain.NewServiceError(domain.ErrNotifyFailed, "backend returned status 500", domain.CodeNotify))
	svc := newService(&GatewayMock{}, notifier)

	action, err := svc.ProcessCallback(context.Background(), domain.CallbackNotification{ReferenceID: "ref-1", Status: "SUCCESSFUL"})

	require.True(t, errors.Is(err, domain.ErrNotifyFailed))
	assert.Equal(t, domain.ActionPaymentCompleted, action)
}
