// Package store implements invoice.Repository against the external record
// backend's REST interface.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/money"
)

type Store struct {
	client  *http.Client
	baseURL string
}

func New(baseURL string) *Store {
	return &Store{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

// Wire shapes. The backend uses Mongo-style "_id" and calls the unit price
// "price".
type lineItemDTO struct {
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	Price       money.Amount `json:"price"`
}

type invoiceDTO struct {
	ID            string        `json:"_id"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	DueDate       time.Time     `json:"dueDate"`
	Items         []lineItemDTO `json:"items"`
	TotalAmount   money.Amount  `json:"totalAmount"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// writePayload is the create/update body: id and createdAt belong to the
// backend.
type writePayload struct {
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	DueDate       time.Time     `json:"dueDate"`
	Items         []lineItemDTO `json:"items"`
	TotalAmount   money.Amount  `json:"totalAmount"`
}

func toWritePayload(inv *invoice.Invoice) writePayload {
	return writePayload{
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		DueDate:       inv.DueDate,
		Items:         toItemDTOs(inv.Items),
		TotalAmount:   inv.TotalAmount,
	}
}

func toItemDTOs(items []invoice.LineItem) []lineItemDTO {
	dtos := make([]lineItemDTO, len(items))
	for i, item := range items {
		dtos[i] = lineItemDTO{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
		}
	}

	return dtos
}

func fromDTO(dto invoiceDTO) *invoice.Invoice {
	items := make([]invoice.LineItem, len(dto.Items))
	for i, it := range dto.Items {
		items[i] = invoice.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		}
	}

	return &invoice.Invoice{
		ID:            dto.ID,
		CustomerName:  dto.CustomerName,
		CustomerEmail: dto.CustomerEmail,
		DueDate:       dto.DueDate,
		Items:         items,
		TotalAmount:   dto.TotalAmount,
		CreatedAt:     dto.CreatedAt,
	}
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	var created invoiceDTO
	if err := s.do(ctx, http.MethodPost, "/invoices", toWritePayload(inv), &created); err != nil {
		return err
	}

	*inv = *fromDTO(created)

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	var dto invoiceDTO
	if err := s.do(ctx, http.MethodGet, "/invoices/"+id, nil, &dto); err != nil {
		return nil, err
	}

	return fromDTO(dto), nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]*invoice.Invoice, error) {
	var dtos []invoiceDTO
	if err := s.do(ctx, http.MethodGet, "/invoices", nil, &dtos); err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, len(dtos))
	for i, dto := range dtos {
		invoices[i] = fromDTO(dto)
	}

	return invoices, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	var updated invoiceDTO
	if err := s.do(ctx, http.MethodPut, "/invoices/"+inv.ID, toWritePayload(inv), &updated); err != nil {
		return err
	}

	*inv = *fromDTO(updated)

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/invoices/"+id, nil, nil)
}

// do runs one request against the backend, decoding a JSON response into
// out when out is non-nil. Backend failures keep the server's message where
// one is provided.
func (s *Store) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling record service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return invoice.ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("record service: %s (status %d)", readMessage(resp.Body), resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func readMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&payload); err != nil || payload.Message == "" {
		return "request failed"
	}

	return payload.Message
}
