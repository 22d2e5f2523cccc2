package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/elitekitchen/invoicer/cmd/tui/internal/view"
	"github.com/elitekitchen/invoicer/internal/config"
	"github.com/elitekitchen/invoicer/internal/delivery"
	"github.com/elitekitchen/invoicer/internal/invoice"
	invoiceStore "github.com/elitekitchen/invoicer/internal/invoice/store"
	"github.com/elitekitchen/invoicer/internal/pdf"
)

type model struct {
	invoiceService  *invoice.Service
	renderer        *pdf.Renderer
	deliveryService *delivery.Service
	outputDir       string

	currentView View

	listView   view.ListModel
	formView   view.FormModel
	detailView view.DetailModel
}

type View int

const (
	ViewMenu   View = 0
	ViewList   View = 1
	ViewForm   View = 2
	ViewDetail View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	invoiceSvc := invoice.NewService(invoiceStore.New(cfg.API.BaseURL))

	return model{
		invoiceService:  invoiceSvc,
		renderer:        pdf.NewRenderer(cfg.Invoice.Issuer),
		deliveryService: delivery.NewService(cfg.API.BaseURL),
		outputDir:       cfg.Invoice.OutputDir,
		currentView:     ViewMenu,
		listView:        view.NewListModel(invoiceSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.invoiceService)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewForm
				m.formView = view.NewFormModel(m.invoiceService, nil)

				return m, m.formView.Init()
			}
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case view.OpenNewMsg:
		m.currentView = ViewForm
		m.formView = view.NewFormModel(m.invoiceService, nil)

		return m, m.formView.Init()

	case view.OpenEditMsg:
		m.currentView = ViewForm
		m.formView = view.NewFormModel(m.invoiceService, msg.Invoice)

		return m, m.formView.Init()

	case view.OpenDetailMsg:
		m.currentView = ViewDetail
		m.detailView = view.NewDetailModel(m.invoiceService, m.renderer, m.deliveryService, m.outputDir, msg.ID)

		return m, m.detailView.Init()
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewForm:
		var newModel tea.Model
		newModel, cmd = m.formView.Update(msg)
		m.formView = newModel.(view.FormModel)
	case ViewDetail:
		var newModel tea.Model
		newModel, cmd = m.detailView.Update(msg)
		m.detailView = newModel.(view.DetailModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Elite Kitchen Invoicer\n\n" +
				"1. Invoices\n" +
				"2. New Invoice\n\n" +
				"q. Quit",
		)
	case ViewList:
		return m.withHeader(m.listView)
	case ViewForm:
		return m.withHeader(m.formView)
	case ViewDetail:
		return m.withHeader(m.detailView)
	}

	return "Unknown View"
}

type titled interface {
	Title() string
	ShortHelp() string
	View() string
}

func (m model) withHeader(v titled) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 2).Render(v.Title())
	help := lipgloss.NewStyle().Faint(true).Padding(0, 2).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, header, v.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
