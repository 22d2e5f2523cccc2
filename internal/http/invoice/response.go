package invoice

import (
	"time"

	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/money"
)

type lineItemResponse struct {
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	Price       money.Amount `json:"price"`
}

type invoiceResponse struct {
	ID            string             `json:"_id"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	DueDate       time.Time          `json:"dueDate"`
	Items         []lineItemResponse `json:"items"`
	TotalAmount   money.Amount       `json:"totalAmount"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := make([]lineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = lineItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
		}
	}

	return invoiceResponse{
		ID:            inv.ID,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		DueDate:       inv.DueDate,
		Items:         items,
		TotalAmount:   inv.TotalAmount,
		CreatedAt:     inv.CreatedAt,
	}
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}
