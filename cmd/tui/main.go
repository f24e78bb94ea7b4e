package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketbank/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pocketbank/internal/bootstrap"
	"github.com/MrJamesThe3rd/pocketbank/internal/config"
	"github.com/MrJamesThe3rd/pocketbank/internal/export"
	"github.com/MrJamesThe3rd/pocketbank/internal/importer"
	"github.com/MrJamesThe3rd/pocketbank/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbank/internal/logger"
)

type model struct {
	appName       string
	common        view.CommonModel
	importParser  *importer.Parser
	exportService *export.Service

	currentView View
	returnTo    View

	dashboardView view.DashboardModel
	listView      view.ListModel
	transferView  view.TransferModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewList      View = 2
	ViewTransfer  View = 3
	ViewImport    View = 4
	ViewExport    View = 5
)

func initialModel(appName string, svc *ledger.Service, currency string) model {
	return model{
		appName:       appName,
		common:        view.NewCommon(svc, currency),
		importParser:  importer.NewParser(),
		exportService: export.NewService(svc),
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) openDashboard() (tea.Model, tea.Cmd) {
	m.currentView = ViewDashboard
	m.dashboardView = view.NewDashboardModel(m.common)

	return m, m.dashboardView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.openDashboard()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.common)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewTransfer
				m.returnTo = ViewMenu
				m.transferView = view.NewTransferModel(m.common, "")

				return m, m.transferView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.common, m.importParser)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.common, m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.OpenTransferMsg:
		m.returnTo = m.currentView
		m.currentView = ViewTransfer
		m.transferView = view.NewTransferModel(m.common, msg.From)

		return m, m.transferView.Init()
	case view.BackMsg:
		// A transfer opened from the dashboard returns there.
		if m.currentView == ViewTransfer && m.returnTo == ViewDashboard {
			m.returnTo = ViewMenu
			return m.openDashboard()
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewTransfer:
		var newModel tea.Model
		newModel, cmd = m.transferView.Update(msg)
		m.transferView = newModel.(view.TransferModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Transfer Funds\n" +
				"4. Import Statement\n" +
				"5. Export Transactions\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewList:
		return m.listView.View()
	case ViewTransfer:
		return m.transferView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	log, closer, err := logger.NewFile(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeQuietly(closer)

	slog.SetDefault(log)

	session, err := bootstrap.Session(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer session.Close()

	svc, err := session.Ledger()
	if err != nil {
		return err
	}

	p := tea.NewProgram(initialModel(cfg.App.Name, svc, cfg.App.Currency), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close log file", "error", err)
	}
}

func main() {
	if err := run(); err != nil {
		slog.Error("tui failed", "error", err)
		os.Exit(1)
	}
}
