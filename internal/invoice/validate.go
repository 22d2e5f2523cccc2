package invoice

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

// FieldError describes one invalid field, suitable for inline form feedback.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks an invoice before submission or rendering. It returns one
// entry per invalid field; an empty slice means the invoice is well-formed.
func Validate(inv *Invoice) []FieldError {
	var errs []FieldError

	if err := fieldValidator.Var(inv.CustomerName, "required"); err != nil {
		errs = append(errs, FieldError{Field: "customerName", Message: "customer name is required"})
	}

	if err := fieldValidator.Var(inv.CustomerEmail, "required,email"); err != nil {
		errs = append(errs, FieldError{Field: "customerEmail", Message: "a valid email address is required"})
	}

	if inv.DueDate.IsZero() {
		errs = append(errs, FieldError{Field: "dueDate", Message: "due date is required"})
	}

	if len(inv.Items) == 0 {
		errs = append(errs, FieldError{Field: "items", Message: "at least one item is required"})
	}

	for i, item := range inv.Items {
		if err := fieldValidator.Var(item.Description, "required"); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("items[%d].description", i),
				Message: "description is required",
			})
		}

		if item.Quantity < 1 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			})
		}

		if item.UnitPrice < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("items[%d].price", i),
				Message: "price cannot be negative",
			})
		}
	}

	return errs
}
