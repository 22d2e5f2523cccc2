// devserver is a local stand-in for the external record backend and mail
// service. It keeps invoices in memory and writes "sent" emails to an
// outbox directory, so the TUI can be developed against localhost:4000.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/elitekitchen/invoicer/internal/config"
	ekHttp "github.com/elitekitchen/invoicer/internal/http"
	emailHandler "github.com/elitekitchen/invoicer/internal/http/email"
	invoiceHandler "github.com/elitekitchen/invoicer/internal/http/invoice"
	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/invoice/memstore"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	invoiceService := invoice.NewService(memstore.New())

	var (
		invoicesH = invoiceHandler.NewHandler(invoiceService)
		emailsH   = emailHandler.NewHandler(invoiceService, cfg.Server.OutboxDir)
	)

	router := ekHttp.New(invoicesH, emailsH)

	port := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting dev server", "port", port, "outbox", cfg.Server.OutboxDir)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
