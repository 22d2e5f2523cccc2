package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elitekitchen/invoicer/internal/delivery"
	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/pdf"
)

var (
	detailLabelStyle = lipgloss.NewStyle().Bold(true).Width(10)
	detailOkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	detailErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// DetailModel shows a single invoice and offers the two delivery paths:
// download the PDF to disk or email it to the customer.
type DetailModel struct {
	CommonModel
	invoiceService  *invoice.Service
	renderer        *pdf.Renderer
	deliveryService *delivery.Service
	outputDir       string

	id      string
	inv     *invoice.Invoice
	loading bool
	sending bool
	err     error
	status  string
	spinner spinner.Model
}

func NewDetailModel(
	invoiceSvc *invoice.Service,
	renderer *pdf.Renderer,
	deliverySvc *delivery.Service,
	outputDir string,
	id string,
) DetailModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DetailModel{
		invoiceService:  invoiceSvc,
		renderer:        renderer,
		deliveryService: deliverySvc,
		outputDir:       outputDir,
		id:              id,
		loading:         true,
		spinner:         s,
	}
}

func (m DetailModel) Title() string { return "Invoice" }

func (m DetailModel) ShortHelp() string {
	if m.sending {
		return "Sending..."
	}
	return "Esc: back | d: download PDF | m: email to customer | e: edit"
}

func (m DetailModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoiceMsg:
		m.loading = false
		m.inv = msg.invoice
		m.err = msg.err
		return m, nil

	case downloadDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, pdf.ErrNoItems) {
				m.status = detailErrStyle.Render("Failed to generate the PDF.")
			} else {
				m.status = detailErrStyle.Render(fmt.Sprintf("Error saving PDF: %v", msg.err))
			}
			return m, nil
		}

		m.status = detailOkStyle.Render("Saved " + msg.path)

		return m, nil

	case sendDoneMsg:
		m.sending = false
		m.status = m.sendStatus(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.sending {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "d":
			if m.inv != nil {
				return m, m.downloadCmd()
			}
		case "m":
			if m.inv != nil {
				m.sending = true
				m.status = ""
				return m, tea.Batch(m.spinner.Tick, m.sendCmd())
			}
		case "e":
			if m.inv != nil {
				inv := m.inv
				return m, func() tea.Msg { return OpenEditMsg{Invoice: inv} }
			}
		}
	}

	if m.sending {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m DetailModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoice...")
	}

	if m.err != nil {
		body := fmt.Sprintf("Error: %v", m.err)
		if errors.Is(m.err, invoice.ErrNotFound) {
			body = "Invoice not found."
		}
		return lipgloss.NewStyle().Padding(2).Render(body + "\n\n(Esc to back)")
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		detailLabelStyle.Render("Billed To:")+m.inv.CustomerName,
		detailLabelStyle.Render("Email:")+m.inv.CustomerEmail,
		detailLabelStyle.Render("Due:")+FormatDate(m.inv.DueDate),
	)

	items := make([]string, 0, len(m.inv.Items)+1)
	items = append(items, lipgloss.NewStyle().Bold(true).Render("Items"))
	for _, it := range m.inv.Items {
		items = append(items, fmt.Sprintf("  %dx %s @ %s = %s",
			it.Quantity, it.Description, it.UnitPrice.Display(), it.Subtotal().Display()))
	}

	total := lipgloss.NewStyle().Bold(true).Render("Total: " + m.inv.TotalAmount.Display())

	sections := []string{header, "", lipgloss.JoinVertical(lipgloss.Left, items...), "", total}

	if m.sending {
		sections = append(sections, "", fmt.Sprintf("%s Sending email...", m.spinner.View()))
	} else if m.status != "" {
		sections = append(sections, "", m.status)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m DetailModel) sendStatus(err error) string {
	if err == nil {
		return detailOkStyle.Render("Email sent to " + m.inv.CustomerEmail)
	}

	if errors.Is(err, pdf.ErrNoItems) {
		return detailErrStyle.Render("Failed to generate the PDF.")
	}

	var rejected *delivery.RejectedError
	if errors.As(err, &rejected) {
		return detailErrStyle.Render("Error sending email: " + rejected.Message)
	}

	return detailErrStyle.Render("Something went wrong while sending the email.")
}

// Messages

type loadInvoiceMsg struct {
	invoice *invoice.Invoice
	err     error
}

func (m DetailModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		inv, err := m.invoiceService.Get(ctx, m.id)

		return loadInvoiceMsg{invoice: inv, err: err}
	}
}

type downloadDoneMsg struct {
	path string
	err  error
}

func (m DetailModel) downloadCmd() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.renderer.Render(m.inv, time.Now())
		if err != nil {
			return downloadDoneMsg{err: err}
		}

		path, err := m.deliveryService.SaveLocal(doc, m.inv.ID, m.outputDir)
		if err != nil {
			return downloadDoneMsg{err: err}
		}

		return downloadDoneMsg{path: path}
	}
}

type sendDoneMsg struct {
	err error
}

func (m DetailModel) sendCmd() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.renderer.Render(m.inv, time.Now())
		if err != nil {
			return sendDoneMsg{err: err}
		}

		ctx, cancel := ApiCtx()
		defer cancel()

		return sendDoneMsg{err: m.deliveryService.Send(ctx, m.inv.ID, doc)}
	}
}
