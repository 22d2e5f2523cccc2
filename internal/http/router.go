package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/elitekitchen/invoicer/internal/http/email"
	"github.com/elitekitchen/invoicer/internal/http/invoice"
)

func New(invoices *invoice.Handler, emails *email.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Browser clients call this API from another origin during development.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoices.Routes(r)
		})

		r.Route("/email", emails.Routes)
	})

	return router
}
