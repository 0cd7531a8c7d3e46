package service

import (
	"context"

	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.PurchaseResult)
	return res, args.Error(1)
}

func (m *GatewayMock) CompletePurchase(ctx context.Context, req domain.CompletePurchaseRequest) (*domain.StatusResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.StatusResult)
	return res, args.Error(1)
}

func (m *GatewayMock) CheckBalance(ctx context.Context, req domain.AccountRequest) (*domain.BalanceResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.BalanceResult)
	return res, args.Error(1)
}

func (m *GatewayMock) CheckAccountActive(ctx context.Context, req domain.AccountRequest) (*domain.AccountActiveResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.AccountActiveResult)
	return res, args.Error(1)
}

func (m *GatewayMock) CreateAPIUser(ctx context.Context, req domain.CreateAPIUserRequest) (*domain.APIUserResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.APIUserResult)
	return res, args.Error(1)
}

func (m *GatewayMock) CreateAPIKey(ctx context.Context, req domain.CreateAPIKeyRequest) (*domain.APIKeyResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.APIKeyResult)
	return res, args.Error(1)
}

func (m *GatewayMock) CreateToken(ctx context.Context, req domain.CreateTokenRequest) (*domain.TokenResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.TokenResult)
	return res, args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) NotifyPaymentStatus(ctx context.Context, update domain.PaymentStatusUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}
