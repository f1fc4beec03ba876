package domain

import (
	"time"

	"github.com/shopspring/decimal"

	cartDomain "github.com/ridloal/clothing-storefront/internal/cart/domain"
)

// Order is immutable once appended to the ledger. JSON keys follow the
// storefront API (nombre, direccion, pago).
type Order struct {
	ID        int64                 `json:"id"`
	Nombre    string                `json:"nombre"`
	Email     string                `json:"email"`
	Direccion string                `json:"direccion"`
	Pago      string                `json:"pago"`
	Items     []cartDomain.CartLine `json:"items"`
	Total     decimal.Decimal       `json:"total"`
	Date      time.Time             `json:"date"`
}

type Customer struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
	Pago      string `json:"pago"`
}

// Untuk request pembuatan order
type SubmitOrderRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Direccion string `json:"direccion" binding:"required"`
	Pago      string `json:"pago"`
}

func (r SubmitOrderRequest) Customer() Customer {
	return Customer{Nombre: r.Nombre, Email: r.Email, Direccion: r.Direccion, Pago: r.Pago}
}

type SubmitOrderResponse struct {
	Success bool                  `json:"success"`
	OrderID int64                 `json:"orderId"`
	Message string                `json:"message"`
	Cart    []cartDomain.CartLine `json:"cart"`
}
