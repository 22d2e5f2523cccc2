package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/invoice/memstore"
	"github.com/elitekitchen/invoicer/internal/money"
)

func newInvoice(name string) *invoice.Invoice {
	return &invoice.Invoice{
		CustomerName:  name,
		CustomerEmail: "ada@example.com",
		DueDate:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{Description: "Egg (pcs)", Quantity: 3, UnitPrice: money.FromMajor(300)},
		},
		TotalAmount: money.FromMajor(900),
	}
}

func TestCreateAssignsIDAndCreatedAt(t *testing.T) {
	s := memstore.New()
	inv := newInvoice("Ada Obi")

	require.NoError(t, s.CreateInvoice(context.Background(), inv))
	assert.NotEmpty(t, inv.ID)
	assert.False(t, inv.CreatedAt.IsZero())
}

func TestGetReturnsACopy(t *testing.T) {
	s := memstore.New()
	inv := newInvoice("Ada Obi")
	require.NoError(t, s.CreateInvoice(context.Background(), inv))

	got, err := s.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	got.Items[0].Quantity = 99

	again, err := s.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Items[0].Quantity)
}

func TestGetMissing(t *testing.T) {
	s := memstore.New()

	_, err := s.GetInvoice(context.Background(), "nope")
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	s := memstore.New()
	inv := newInvoice("Ada Obi")
	require.NoError(t, s.CreateInvoice(context.Background(), inv))

	created := inv.CreatedAt

	inv.CustomerName = "Ngozi Eze"
	inv.CreatedAt = time.Time{}
	require.NoError(t, s.UpdateInvoice(context.Background(), inv))
	assert.Equal(t, created, inv.CreatedAt)

	got, err := s.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ngozi Eze", got.CustomerName)
}

func TestUpdateMissing(t *testing.T) {
	s := memstore.New()
	inv := newInvoice("Ada Obi")
	inv.ID = "ghost"

	assert.ErrorIs(t, s.UpdateInvoice(context.Background(), inv), invoice.ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := memstore.New()
	inv := newInvoice("Ada Obi")
	require.NoError(t, s.CreateInvoice(context.Background(), inv))

	require.NoError(t, s.DeleteInvoice(context.Background(), inv.ID))

	_, err := s.GetInvoice(context.Background(), inv.ID)
	assert.ErrorIs(t, err, invoice.ErrNotFound)

	assert.ErrorIs(t, s.DeleteInvoice(context.Background(), inv.ID), invoice.ErrNotFound)
}

func TestListOrderedByCreation(t *testing.T) {
	s := memstore.New()

	first := newInvoice("First")
	require.NoError(t, s.CreateInvoice(context.Background(), first))

	second := newInvoice("Second")
	require.NoError(t, s.CreateInvoice(context.Background(), second))

	invoices, err := s.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	assert.False(t, invoices[1].CreatedAt.Before(invoices[0].CreatedAt))
}
