package invoice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ekHttp "github.com/elitekitchen/invoicer/internal/http"
	emailHandler "github.com/elitekitchen/invoicer/internal/http/email"
	invoiceHandler "github.com/elitekitchen/invoicer/internal/http/invoice"
	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/invoice/memstore"
	"github.com/elitekitchen/invoicer/internal/invoice/store"
	"github.com/elitekitchen/invoicer/internal/money"
)

// newTestServer wires the full dev server stack so the REST client store
// can be exercised against it end to end.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc := invoice.NewService(memstore.New())
	router := ekHttp.New(
		invoiceHandler.NewHandler(svc),
		emailHandler.NewHandler(svc, t.TempDir()),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

const createBody = `{
	"customerName": "Ada Obi",
	"customerEmail": "ada@example.com",
	"dueDate": "2025-06-30T00:00:00Z",
	"items": [
		{"description": "Jollof rice (pck)", "quantity": 2, "price": 2000},
		{"description": "Egg (pcs)", "quantity": 3, "price": 300}
	],
	"totalAmount": 1
}`

func TestCreateThenFetchRoundTrip(t *testing.T) {
	server := newTestServer(t)
	client := store.New(server.URL + "/api")

	resp, err := http.Post(server.URL+"/api/invoices", "application/json", strings.NewReader(createBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	invoices, err := client.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	got, err := client.GetInvoice(context.Background(), invoices[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", got.CustomerName)
	require.Len(t, got.Items, 2)

	// The client-sent totalAmount (1) is ignored; the server rederives it.
	assert.Equal(t, money.FromMajor(4900), got.TotalAmount)
}

func TestCreateRejectsInvalidInvoice(t *testing.T) {
	server := newTestServer(t)

	body := `{"customerName": "", "customerEmail": "bad", "items": []}`

	resp, err := http.Post(server.URL+"/api/invoices", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateFullReplace(t *testing.T) {
	server := newTestServer(t)
	client := store.New(server.URL + "/api")

	resp, err := http.Post(server.URL+"/api/invoices", "application/json", strings.NewReader(createBody))
	require.NoError(t, err)
	resp.Body.Close()

	invoices, err := client.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	inv.Items = []invoice.LineItem{
		{Description: "Fish (pcs)", Quantity: 1, UnitPrice: money.FromMajor(900)},
	}

	require.NoError(t, client.UpdateInvoice(context.Background(), inv))
	assert.Equal(t, money.FromMajor(900), inv.TotalAmount)
	require.Len(t, inv.Items, 1)
}

func TestGetMissingReturns404(t *testing.T) {
	server := newTestServer(t)
	client := store.New(server.URL + "/api")

	_, err := client.GetInvoice(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestDeleteRemovesInvoice(t *testing.T) {
	server := newTestServer(t)
	client := store.New(server.URL + "/api")

	resp, err := http.Post(server.URL+"/api/invoices", "application/json", strings.NewReader(createBody))
	require.NoError(t, err)
	resp.Body.Close()

	invoices, err := client.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	require.NoError(t, client.DeleteInvoice(context.Background(), invoices[0].ID))

	invoices, err = client.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, invoices)
}
