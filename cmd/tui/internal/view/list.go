package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elitekitchen/invoicer/internal/invoice"
)

type ListModel struct {
	CommonModel
	invoiceService *invoice.Service

	table    table.Model
	invoices []*invoice.Invoice

	loading bool
	err     error
	status  string
}

func NewListModel(invoiceSvc *invoice.Service) ListModel {
	columns := []table.Column{
		{Title: "Customer", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Due Date", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Created", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("205")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		invoiceService: invoiceSvc,
		table:          t,
		loading:        true,
	}
}

func (m ListModel) Title() string { return "Invoices" }
func (m ListModel) ShortHelp() string {
	return "Esc: back | Enter: view | n: new | e: edit | x: delete | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadInvoicesCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.invoices = msg.invoices
		m.refreshTable()

		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Invoice deleted."

		return m, m.loadInvoicesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadInvoicesCmd()
		case "n":
			return m, func() tea.Msg { return OpenNewMsg{} }
		case "enter":
			if inv := m.selected(); inv != nil {
				return m, func() tea.Msg { return OpenDetailMsg{ID: inv.ID} }
			}
		case "e":
			if inv := m.selected(); inv != nil {
				return m, func() tea.Msg { return OpenEditMsg{Invoice: inv} }
			}
		case "x":
			if inv := m.selected(); inv != nil {
				return m, m.deleteCmd(inv.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(r to retry, Esc to back)", m.err))
	}

	if len(m.invoices) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No invoices found.\n\n(n to create one, Esc to back)")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ListModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return m.invoices[idx]
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			inv.CustomerName,
			inv.CustomerEmail,
			FormatDate(inv.DueDate),
			inv.TotalAmount.Display(),
			FormatDate(inv.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

func (m ListModel) loadInvoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		invoices, err := m.invoiceService.List(ctx)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

type deleteDoneMsg struct {
	err error
}

func (m ListModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return deleteDoneMsg{err: m.invoiceService.Delete(ctx, id)}
	}
}
