// Package memstore is an in-memory invoice.Repository used by the local
// development server. Nothing survives a restart.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elitekitchen/invoicer/internal/invoice"
)

type Store struct {
	mu       sync.RWMutex
	invoices map[string]invoice.Invoice
}

func New() *Store {
	return &Store{invoices: make(map[string]invoice.Invoice)}
}

func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv.ID = uuid.NewString()
	inv.CreatedAt = time.Now().UTC()
	s.invoices[inv.ID] = clone(inv)

	return nil
}

func (s *Store) GetInvoice(_ context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.invoices[id]
	if !ok {
		return nil, invoice.ErrNotFound
	}

	out := clone(&stored)

	return &out, nil
}

func (s *Store) ListInvoices(_ context.Context) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]*invoice.Invoice, 0, len(s.invoices))

	for id := range s.invoices {
		stored := s.invoices[id]
		out := clone(&stored)
		invoices = append(invoices, &out)
	}

	// Oldest first, for a stable listing.
	sort.Slice(invoices, func(i, j int) bool {
		if invoices[i].CreatedAt.Equal(invoices[j].CreatedAt) {
			return invoices[i].ID < invoices[j].ID
		}

		return invoices[i].CreatedAt.Before(invoices[j].CreatedAt)
	})

	return invoices, nil
}

func (s *Store) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.invoices[inv.ID]
	if !ok {
		return invoice.ErrNotFound
	}

	inv.CreatedAt = stored.CreatedAt
	s.invoices[inv.ID] = clone(inv)

	return nil
}

func (s *Store) DeleteInvoice(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[id]; !ok {
		return invoice.ErrNotFound
	}

	delete(s.invoices, id)

	return nil
}

// clone deep-copies the item slice so callers cannot mutate stored state.
func clone(inv *invoice.Invoice) invoice.Invoice {
	out := *inv
	out.Items = make([]invoice.LineItem, len(inv.Items))
	copy(out.Items, inv.Items)

	return out
}
