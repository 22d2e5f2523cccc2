// Package delivery moves a rendered invoice document to its destination:
// a file on disk, or the remote mailer as a multipart attachment.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrUnreachable is returned when the mailer gives no response at all.
var ErrUnreachable = errors.New("email service unreachable")

// RejectedError carries the mailer's own failure message from a non-2xx
// response.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("email service rejected delivery (status %d): %s", e.StatusCode, e.Message)
}

// Service delivers rendered invoice documents. Neither path retries:
// failures are reported to the caller for a manual re-attempt.
type Service struct {
	client  *http.Client
	baseURL string
}

func NewService(baseURL string) *Service {
	return &Service{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

// Filename returns the canonical attachment/download name for an invoice.
func Filename(id string) string {
	return "invoice-" + id + ".pdf"
}

// SaveLocal writes the document into dir using the canonical filename and
// returns the full path. Failures are surfaced as-is.
func (s *Service) SaveLocal(doc []byte, id, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(id))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

// Send submits the document to the mailer as a multipart file part named
// "pdf". A non-success response becomes a *RejectedError with the server's
// message; a transport failure becomes ErrUnreachable.
func (s *Service) Send(ctx context.Context, id string, doc []byte) error {
	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("pdf", Filename(id))
	if err != nil {
		return fmt.Errorf("creating form file: %w", err)
	}

	if _, err := part.Write(doc); err != nil {
		return fmt.Errorf("writing attachment: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/email/%s/send", s.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending invoice %s: %w", id, ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return &RejectedError{
		StatusCode: resp.StatusCode,
		Message:    readMessage(resp.Body),
	}
}

// readMessage pulls the {message} field from an error body, falling back to
// a generic message when the body is not the expected JSON.
func readMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&payload); err != nil || payload.Message == "" {
		return "delivery failed"
	}

	return payload.Message
}
