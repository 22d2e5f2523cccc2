package email_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elitekitchen/invoicer/internal/delivery"
	ekHttp "github.com/elitekitchen/invoicer/internal/http"
	emailHandler "github.com/elitekitchen/invoicer/internal/http/email"
	invoiceHandler "github.com/elitekitchen/invoicer/internal/http/invoice"
	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/invoice/memstore"
	"github.com/elitekitchen/invoicer/internal/money"
)

func TestSendLandsInOutbox(t *testing.T) {
	outbox := t.TempDir()

	svc := invoice.NewService(memstore.New())
	router := ekHttp.New(
		invoiceHandler.NewHandler(svc),
		emailHandler.NewHandler(svc, outbox),
	)

	server := httptest.NewServer(router)
	defer server.Close()

	inv, err := svc.Create(context.Background(), invoice.CreateParams{
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		DueDate:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Items: []invoice.LineItem{
			{Description: "Egg (pcs)", Quantity: 3, UnitPrice: money.FromMajor(300)},
		},
	})
	require.NoError(t, err)

	sender := delivery.NewService(server.URL + "/api")
	doc := []byte("%PDF-rendered")

	require.NoError(t, sender.Send(context.Background(), inv.ID, doc))

	saved, err := os.ReadFile(filepath.Join(outbox, delivery.Filename(inv.ID)))
	require.NoError(t, err)
	assert.Equal(t, doc, saved)
}

func TestSendUnknownInvoiceRejected(t *testing.T) {
	svc := invoice.NewService(memstore.New())
	router := ekHttp.New(
		invoiceHandler.NewHandler(svc),
		emailHandler.NewHandler(svc, t.TempDir()),
	)

	server := httptest.NewServer(router)
	defer server.Close()

	sender := delivery.NewService(server.URL + "/api")

	err := sender.Send(context.Background(), "ghost", []byte("%PDF-doc"))

	var rejected *delivery.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "invoice not found", rejected.Message)
}
