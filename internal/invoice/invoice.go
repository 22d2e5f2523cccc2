package invoice

import (
	"errors"
	"time"

	"github.com/elitekitchen/invoicer/internal/money"
)

// ErrNotFound is returned when an invoice id does not exist in the backend.
var ErrNotFound = errors.New("invoice not found")

// LineItem is one billable row on an invoice.
type LineItem struct {
	Description string
	Quantity    int
	UnitPrice   money.Amount
}

// Subtotal returns quantity times unit price in minor units.
func (li LineItem) Subtotal() money.Amount {
	return li.UnitPrice.MulQuantity(li.Quantity)
}

// Invoice is a billing document for one customer. TotalAmount is a derived
// cache of the item subtotals; the service recomputes it before every write.
type Invoice struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	DueDate       time.Time
	Items         []LineItem
	TotalAmount   money.Amount
	CreatedAt     time.Time // assigned by the record backend
}

// ComputeTotal sums the item subtotals. Negative quantities or prices are
// rejected here as a backstop; the form layer should never produce them.
func ComputeTotal(items []LineItem) (money.Amount, error) {
	var total money.Amount

	for _, item := range items {
		if item.Quantity < 0 {
			return 0, &FieldError{Field: "quantity", Message: "quantity cannot be negative"}
		}

		if item.UnitPrice < 0 {
			return 0, &FieldError{Field: "price", Message: "price cannot be negative"}
		}

		total += item.Subtotal()
	}

	return total, nil
}
