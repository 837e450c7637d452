package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kritchanat/dormdesk/cmd/tui/internal/view"
	"github.com/kritchanat/dormdesk/internal/billing"
	billingStore "github.com/kritchanat/dormdesk/internal/billing/store"
	"github.com/kritchanat/dormdesk/internal/config"
	"github.com/kritchanat/dormdesk/internal/database"
	"github.com/kritchanat/dormdesk/internal/occupancy"
	occupancyStore "github.com/kritchanat/dormdesk/internal/occupancy/store"
	"github.com/kritchanat/dormdesk/internal/room"
	roomStore "github.com/kritchanat/dormdesk/internal/room/store"
	"github.com/kritchanat/dormdesk/internal/settings"
	settingsStore "github.com/kritchanat/dormdesk/internal/settings/store"
	"github.com/kritchanat/dormdesk/internal/tenant"
	tenantStore "github.com/kritchanat/dormdesk/internal/tenant/store"
)

type model struct {
	roomService    *room.Service
	tenantService  *tenant.Service
	billingService *billing.Service

	currentView View

	roomsView      view.RoomsModel
	tenantsView    view.TenantsModel
	billingRunView view.BillingRunModel
	billingsView   view.BillingsModel
}

type View int

const (
	ViewMenu       View = 0
	ViewRooms      View = 1
	ViewTenants    View = 2
	ViewBillingRun View = 3
	ViewBillings   View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	settingsSvc := settings.NewService(settingsStore.New(db))
	roomSvc := room.NewService(roomStore.New(db))
	occupancySvc := occupancy.NewService(occupancyStore.New(db))
	tenantSvc := tenant.NewService(tenantStore.New(db), occupancySvc, roomSvc)
	billingSvc := billing.NewService(billingStore.New(db), settingsSvc, cfg.Billing.DueDay)

	return model{
		roomService:    roomSvc,
		tenantService:  tenantSvc,
		billingService: billingSvc,
		currentView:    ViewMenu,
		roomsView:      view.NewRoomsModel(roomSvc),
		tenantsView:    view.NewTenantsModel(tenantSvc),
		billingRunView: view.NewBillingRunModel(billingSvc),
		billingsView:   view.NewBillingsModel(billingSvc),
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
				m.currentView = ViewRooms
				m.roomsView = view.NewRoomsModel(m.roomService)

				return m, m.roomsView.Init()
			case "2":
				m.currentView = ViewTenants
				m.tenantsView = view.NewTenantsModel(m.tenantService)

				return m, m.tenantsView.Init()
			case "3":
				m.currentView = ViewBillingRun
				m.billingRunView = view.NewBillingRunModel(m.billingService)

				return m, m.billingRunView.Init()
			case "4":
				m.currentView = ViewBillings
				m.billingsView = view.NewBillingsModel(m.billingService)

				return m, m.billingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRooms:
		var newModel tea.Model
		newModel, cmd = m.roomsView.Update(msg)
		m.roomsView = newModel.(view.RoomsModel)
	case ViewTenants:
		var newModel tea.Model
		newModel, cmd = m.tenantsView.Update(msg)
		m.tenantsView = newModel.(view.TenantsModel)
	case ViewBillingRun:
		var newModel tea.Model
		newModel, cmd = m.billingRunView.Update(msg)
		m.billingRunView = newModel.(view.BillingRunModel)
	case ViewBillings:
		var newModel tea.Model
		newModel, cmd = m.billingsView.Update(msg)
		m.billingsView = newModel.(view.BillingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"DormDesk TUI\n\n" +
				"1. Rooms\n" +
				"2. Tenants\n" +
				"3. Monthly Billing Run\n" +
				"4. Bills\n\n" +
				"q. Quit",
		)
	case ViewRooms:
		return m.roomsView.View()
	case ViewTenants:
		return m.tenantsView.View()
	case ViewBillingRun:
		return m.billingRunView.View()
	case ViewBillings:
		return m.billingsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
