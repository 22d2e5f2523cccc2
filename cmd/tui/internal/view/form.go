package view

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/elitekitchen/invoicer/internal/catalog"
	"github.com/elitekitchen/invoicer/internal/invoice"
)

type formState int

const (
	formStateDetails formState = iota
	formStateItem
	formStateSaving
	formStateResult
)

// FormModel drives invoice creation and editing: customer details first,
// then a repeating catalog-backed line item picker.
type FormModel struct {
	CommonModel
	invoiceService *invoice.Service

	state formState
	err   error

	editing  *invoice.Invoice
	saved    *invoice.Invoice
	form     *huh.Form
	itemForm *huh.Form
	spinner  spinner.Model

	customerName  string
	customerEmail string
	dueDate       string
	replaceItems  bool

	items      []invoice.LineItem
	itemChoice string
	itemQty    string
	addAnother bool
}

func NewFormModel(invoiceSvc *invoice.Service, editing *invoice.Invoice) FormModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := FormModel{
		invoiceService: invoiceSvc,
		state:          formStateDetails,
		editing:        editing,
		spinner:        s,
		replaceItems:   editing == nil,
	}

	if editing != nil {
		m.customerName = editing.CustomerName
		m.customerEmail = editing.CustomerEmail
		m.dueDate = FormatDate(editing.DueDate)
	}

	m.form = m.buildDetailsForm()

	return m
}

func (m FormModel) Title() string {
	if m.editing != nil {
		return "Edit Invoice"
	}
	return "New Invoice"
}

func (m FormModel) ShortHelp() string {
	switch m.state {
	case formStateSaving:
		return "Saving..."
	case formStateResult:
		return "Esc: back"
	}
	return "Esc: back | Enter: confirm"
}

func (m FormModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case formStateDetails:
		return m.updateDetails(msg)
	case formStateItem:
		return m.updateItem(msg)
	case formStateSaving:
		return m.updateSaving(msg)
	case formStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m FormModel) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.customerName = m.form.GetString("name")
	m.customerEmail = m.form.GetString("email")
	m.dueDate = m.form.GetString("due")
	if m.editing != nil {
		m.replaceItems = m.form.GetBool("replace")
	}

	if !m.replaceItems {
		m.items = m.editing.Items
		m.state = formStateSaving
		return m, tea.Batch(m.spinner.Tick, m.saveCmd())
	}

	m.items = nil
	m.itemForm = m.buildItemForm()
	m.state = formStateItem

	return m, m.itemForm.Init()
}

func (m FormModel) updateItem(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.form = m.buildDetailsForm()
			m.state = formStateDetails
			return m, m.form.Init()
		}
	}

	form, cmd := m.itemForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.itemForm = f
	}

	if m.itemForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.itemChoice = m.itemForm.GetString("item")
	m.itemQty = m.itemForm.GetString("qty")
	m.addAnother = m.itemForm.GetBool("another")

	qty, _ := strconv.Atoi(m.itemQty)
	item := invoice.LineItem{Quantity: qty}
	if err := catalog.Apply(&item, m.itemChoice); err != nil {
		m.err = err
		m.state = formStateResult
		return m, nil
	}

	m.items = append(m.items, item)

	if m.addAnother {
		m.itemForm = m.buildItemForm()
		return m, m.itemForm.Init()
	}

	m.state = formStateSaving

	return m, tea.Batch(m.spinner.Tick, m.saveCmd())
}

func (m FormModel) updateSaving(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(formSavedMsg); ok {
		m.state = formStateResult
		m.err = result.err
		m.saved = result.invoice
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m FormModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			if m.err == nil && m.saved != nil {
				id := m.saved.ID
				return m, func() tea.Msg { return OpenDetailMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m *FormModel) buildDetailsForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Customer Name").
			Placeholder("Ada Eze").
			Value(&m.customerName).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("customer name is required")
				}
				return nil
			}),
		huh.NewInput().
			Key("email").
			Title("Customer Email").
			Placeholder("ada@example.com").
			Value(&m.customerEmail).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("customer email is required")
				}
				return nil
			}),
		huh.NewInput().
			Key("due").
			Title("Due Date").
			Description("Format: YYYY-MM-DD").
			Placeholder("2026-09-30").
			Value(&m.dueDate).
			Validate(func(s string) error {
				if _, err := time.Parse(dateLayout, s); err != nil {
					return errors.New("use YYYY-MM-DD")
				}
				return nil
			}),
	}

	if m.editing != nil {
		fields = append(fields, huh.NewConfirm().
			Key("replace").
			Title("Replace line items?").
			Description("No keeps the current items").
			Affirmative("Yes").
			Negative("No").
			Value(&m.replaceItems))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(60).WithShowHelp(false)
}

func (m *FormModel) buildItemForm() *huh.Form {
	entries := catalog.Entries()
	options := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		label := fmt.Sprintf("%s - %s", e.Description, e.UnitPrice.Display())
		options = append(options, huh.NewOption(label, e.Description))
	}

	m.itemChoice = entries[0].Description
	m.itemQty = "1"
	m.addAnother = false

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("item").
				Title("Item").
				Options(options...).
				Value(&m.itemChoice),
			huh.NewInput().
				Key("qty").
				Title("Quantity").
				Value(&m.itemQty).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return errors.New("quantity must be a whole number of at least 1")
					}
					return nil
				}),
			huh.NewConfirm().
				Key("another").
				Title("Add another item?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.addAnother),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m FormModel) View() string {
	switch m.state {
	case formStateDetails:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case formStateItem:
		header := fmt.Sprintf("Line items so far: %d", len(m.items))
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Faint(true).Render(header),
				"",
				m.itemForm.View(),
			),
		)

	case formStateSaving:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Saving invoice...", m.spinner.View()),
		)

	case formStateResult:
		return m.viewResult()
	}

	return ""
}

func (m FormModel) viewResult() string {
	if m.err != nil {
		var vErr *invoice.ValidationError
		body := fmt.Sprintf("Error: %v", m.err)
		if errors.As(m.err, &vErr) {
			lines := make([]string, 0, len(vErr.Fields)+1)
			lines = append(lines, "Please fix the following:")
			for _, f := range vErr.Fields {
				lines = append(lines, "  - "+f.Error())
			}
			body = lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(body) +
				"\n\n(Esc to go back)",
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Invoice Saved!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("Total: %s", m.saved.TotalAmount.Display()),
			"",
			"Enter: view invoice | Esc: back",
		),
	)
}

type formSavedMsg struct {
	invoice *invoice.Invoice
	err     error
}

func (m FormModel) saveCmd() tea.Cmd {
	name, email := m.customerName, m.customerEmail
	due, _ := time.Parse(dateLayout, m.dueDate)
	items := m.items
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		if editing == nil {
			inv, err := m.invoiceService.Create(ctx, invoice.CreateParams{
				CustomerName:  name,
				CustomerEmail: email,
				DueDate:       due,
				Items:         items,
			})
			return formSavedMsg{invoice: inv, err: err}
		}

		updated := *editing
		updated.CustomerName = name
		updated.CustomerEmail = email
		updated.DueDate = due
		updated.Items = items

		if err := m.invoiceService.Update(ctx, &updated); err != nil {
			return formSavedMsg{err: err}
		}

		return formSavedMsg{invoice: &updated}
	}
}
