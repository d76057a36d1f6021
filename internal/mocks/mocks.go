// Package mocks provides testify mocks of the REST client surface.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chefcommunity/client/internal/types"
)

// MockAPI is a mock implementation of the whole REST client
type MockAPI struct {
	mock.Mock
}

// MockAuthenticator is a mock implementation of the view router's
// Authenticated hook
type MockAuthenticator struct {
	mock.Mock
}

// Authenticated mocks the Authenticated method
func (m *MockAuthenticator) Authenticated(ctx context.Context, s types.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
