package invoice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/money"
)

func validInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		DueDate:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{Description: "Jollof rice (pck)", Quantity: 2, UnitPrice: money.FromMajor(2000)},
		},
	}
}

func fields(errs []invoice.FieldError) []string {
	if len(errs) == 0 {
		return nil
	}

	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}

	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(inv *invoice.Invoice)
		wantFields []string
	}{
		{
			name:   "Valid",
			mutate: func(inv *invoice.Invoice) {},
		},
		{
			name:       "MissingName",
			mutate:     func(inv *invoice.Invoice) { inv.CustomerName = "" },
			wantFields: []string{"customerName"},
		},
		{
			name:       "BadEmail",
			mutate:     func(inv *invoice.Invoice) { inv.CustomerEmail = "ada@@" },
			wantFields: []string{"customerEmail"},
		},
		{
			name:       "MissingEmail",
			mutate:     func(inv *invoice.Invoice) { inv.CustomerEmail = "" },
			wantFields: []string{"customerEmail"},
		},
		{
			name:       "ZeroDueDate",
			mutate:     func(inv *invoice.Invoice) { inv.DueDate = time.Time{} },
			wantFields: []string{"dueDate"},
		},
		{
			name:       "NoItems",
			mutate:     func(inv *invoice.Invoice) { inv.Items = nil },
			wantFields: []string{"items"},
		},
		{
			name:       "BlankItemDescription",
			mutate:     func(inv *invoice.Invoice) { inv.Items[0].Description = "" },
			wantFields: []string{"items[0].description"},
		},
		{
			name:       "ZeroQuantity",
			mutate:     func(inv *invoice.Invoice) { inv.Items[0].Quantity = 0 },
			wantFields: []string{"items[0].quantity"},
		},
		{
			name: "MultipleProblems",
			mutate: func(inv *invoice.Invoice) {
				inv.CustomerName = ""
				inv.Items[0].Quantity = 0
			},
			wantFields: []string{"customerName", "items[0].quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvoice()
			tt.mutate(inv)

			errs := invoice.Validate(inv)
			assert.Equal(t, tt.wantFields, fields(errs))
		})
	}
}
