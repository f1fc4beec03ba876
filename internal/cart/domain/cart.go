package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/ridloal/clothing-storefront/internal/catalog/domain"
)

// CartLine is a product snapshot taken when the line was first added,
// plus the quantity. JSON flattens the product fields next to quantity.
type CartLine struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums price × quantity over lines.
func Total(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// MutationResponse is the body of the add/update/remove endpoints.
type MutationResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Cart    []CartLine `json:"cart"`
}
