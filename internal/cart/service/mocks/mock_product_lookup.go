package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	catalogDomain "github.com/ridloal/clothing-storefront/internal/catalog/domain"
)

// MockProductLookup implements service.ProductLookup.
type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) GetProduct(ctx context.Context, productID int) (*catalogDomain.Product, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*catalogDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}
