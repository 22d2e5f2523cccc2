// Package email implements the development stand-in for the mail
// transmission endpoint: uploaded attachments land in an outbox directory
// instead of anyone's inbox.
package email

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/elitekitchen/invoicer/internal/delivery"
	"github.com/elitekitchen/invoicer/internal/invoice"
)

const maxAttachmentSize = 10 << 20 // 10MB

type Handler struct {
	svc       *invoice.Service
	outboxDir string
}

func NewHandler(svc *invoice.Service, outboxDir string) *Handler {
	return &Handler{svc: svc, outboxDir: outboxDir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{id}/send", h.send)
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "invoice not found")
			return
		}

		writeMessage(w, http.StatusInternalServerError, "internal error")

		return
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, _, err := r.FormFile("pdf")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "missing pdf attachment")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.outboxDir, 0o755); err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not store attachment")
		return
	}

	path := filepath.Join(h.outboxDir, delivery.Filename(id))

	out, err := os.Create(path)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not store attachment")
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not store attachment")
		return
	}

	slog.Info("invoice emailed", "id", id, "to", inv.CustomerEmail, "outbox", path)

	writeMessage(w, http.StatusOK, "invoice sent")
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
