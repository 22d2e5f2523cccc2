package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/money"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type lineItemRequest struct {
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	Price       money.Amount `json:"price"`
}

type writeInvoiceRequest struct {
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	DueDate       time.Time         `json:"dueDate"`
	Items         []lineItemRequest `json:"items"`
	// TotalAmount is accepted but not trusted; the service rederives it
	// from the items before the write.
	TotalAmount money.Amount `json:"totalAmount"`
}

func toLineItems(reqs []lineItemRequest) []invoice.LineItem {
	items := make([]invoice.LineItem, len(reqs))
	for i, r := range reqs {
		items[i] = invoice.LineItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.Price,
		}
	}

	return items
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req writeInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		DueDate:       req.DueDate,
		Items:         toLineItems(req.Items),
	})
	if err != nil {
		var vErr *invoice.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}

		writeError(w, http.StatusInternalServerError, "could not create invoice")

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list invoices")
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(invoices))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req writeInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	// Full-replace update: every editable field comes from the payload.
	inv.CustomerName = req.CustomerName
	inv.CustomerEmail = req.CustomerEmail
	inv.DueDate = req.DueDate
	inv.Items = toLineItems(req.Items)

	if err := h.svc.Update(r.Context(), inv); err != nil {
		var vErr *invoice.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}

		writeError(w, http.StatusInternalServerError, "could not update invoice")

		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "could not delete invoice")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
