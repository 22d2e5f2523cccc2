package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elitekitchen/invoicer/internal/invoice"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg asks the root model to return to the previous screen.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenNewMsg asks the root model to open a blank invoice form.
type OpenNewMsg struct{}

// OpenEditMsg asks the root model to open the form pre-filled with inv.
type OpenEditMsg struct {
	Invoice *invoice.Invoice
}

// OpenDetailMsg asks the root model to show one invoice.
type OpenDetailMsg struct {
	ID string
}
