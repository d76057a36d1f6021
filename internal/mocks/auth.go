package mocks

import (
	"context"

	"github.com/chefcommunity/client/internal/types"
)

// Login mocks the Login method
func (m *MockAPI) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthResponse), args.Error(1)
}

// Register mocks the Register method
func (m *MockAPI) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthResponse), args.Error(1)
}
