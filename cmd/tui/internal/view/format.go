package view

import (
	"context"
	"time"
)

const (
	apiTimeout = 10 * time.Second
	dateLayout = "2006-01-02"
)

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ApiCtx returns a context with the standard timeout for backend calls.
func ApiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
