package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
}

// ValidationError aggregates per-field problems found before a write.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}

	return "invalid invoice: " + strings.Join(msgs, "; ")
}

// Service owns invoice lifecycle operations against a Repository. The
// repository's read-modify-write cycle is last-writer-wins: two editors
// updating the same invoice id concurrently will silently overwrite each
// other. Resolving that is out of scope here.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	CustomerName  string
	CustomerEmail string
	DueDate       time.Time
	Items         []LineItem
}

// Create validates the draft, derives its total and submits it. The backend
// assigns ID and CreatedAt on the returned invoice.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	inv := &Invoice{
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		DueDate:       params.DueDate,
		Items:         params.Items,
	}

	if err := s.finalize(inv); err != nil {
		return nil, err
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

// Update revalidates, recomputes the total and full-replaces the stored record.
func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	if err := s.finalize(inv); err != nil {
		return err
	}

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return fmt.Errorf("updating invoice %s: %w", inv.ID, err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteInvoice(ctx, id)
}

// finalize enforces the invariant that TotalAmount always equals the sum of
// the item subtotals at write time.
func (s *Service) finalize(inv *Invoice) error {
	if errs := Validate(inv); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	total, err := ComputeTotal(inv.Items)
	if err != nil {
		return err
	}

	inv.TotalAmount = total

	return nil
}
