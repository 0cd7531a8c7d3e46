package handlers

import (
	"context"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type gatewayMock struct{ mock.Mock }

func (m *gatewayMock) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.PurchaseResult)
	return res, args.Error(1)
}

func (m *gatewayMock) CompletePurchase(ctx context.Context, req domain.CompletePurchaseRequest) (*domain.StatusResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.StatusResult)
	return res, args.Error(1)
}

func (m *gatewayMock) CheckBalance(ctx context.Context, req domain.AccountRequest) (*domain.BalanceResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.BalanceResult)
	return res, args.Error(1)
}

func (m *gatewayMock) CheckAccountActive(ctx context.Context, req domain.AccountRequest) (*domain.AccountActiveResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.AccountActiveResult)
	return res, args.Error(1)
}

func (m *gatewayMock) CreateAPIUser(ctx context.Context, req domain.CreateAPIUserRequest) (*domain.APIUserResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.APIUserResult)
	return res, args.Error(1)
}

func (m *gatewayMock) CreateAPIKey(ctx context.Context, req domain.CreateAPIKeyRequest) (*domain.APIKeyResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.APIKeyResult)
	return res, args.Error(1)
}

func (m *gatewayMock) CreateToken(ctx context.Context, req domain.CreateTokenRequest) (*domain.TokenResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.TokenResult)
	return res, args.Error(1)
}

type notifierMock struct{ mock.Mock }

func (m *notifierMock) NotifyPaymentStatus(ctx context.Context, update domain.PaymentStatusUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}
