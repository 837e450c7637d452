package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kritchanat/dormdesk/internal/room"
)

type RoomsModel struct {
	CommonModel
	roomService *room.Service

	table  table.Model
	rooms  []*room.Room
	filter room.ListFilter

	statusFilterIdx int

	loading bool
	err     error
	status  string
}

func NewRoomsModel(roomSvc *room.Service) RoomsModel {
	columns := []table.Column{
		{Title: "Room", Width: 8},
		{Title: "Floor", Width: 6},
		{Title: "Type", Width: 12},
		{Title: "Capacity", Width: 9},
		{Title: "Status", Width: 12},
		{Title: "Meter", Width: 10},
		{Title: "Rent", Width: 10},
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
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return RoomsModel{
		roomService: roomSvc,
		table:       t,
	}
}

func (m RoomsModel) Title() string { return "Rooms" }
func (m RoomsModel) ShortHelp() string {
	return "Esc: back | s: status filter | m: toggle maintenance | r: refresh"
}

func (m RoomsModel) Init() tea.Cmd {
	return m.loadRoomsCmd()
}

func (m RoomsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRoomsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rooms = msg.rooms
		m.refreshTable()
		return m, nil

	case roomStatusMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = ""
		return m, m.loadRoomsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadRoomsCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 4
			m.applyFilter()
			return m, m.loadRoomsCmd()
		case "m":
			return m, m.toggleMaintenanceCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RoomsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading rooms...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Vacant", "Occupied", "Maintenance"}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *RoomsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = new(room.StatusVacant)
	case 2:
		m.filter.Status = new(room.StatusOccupied)
	case 3:
		m.filter.Status = new(room.StatusMaintenance)
	default:
		m.filter.Status = nil
	}
}

func (m *RoomsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rooms))
	for _, rm := range m.rooms {
		rent := "-"
		if rm.MonthlyRent != nil {
			rent = FormatAmount(*rm.MonthlyRent)
		}

		rows = append(rows, table.Row{
			rm.RoomNumber,
			fmt.Sprintf("%d", rm.Floor),
			rm.RoomType,
			fmt.Sprintf("%d", rm.Capacity),
			string(rm.Status),
			fmt.Sprintf("%d", rm.LatestMeterReading),
			rent,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadRoomsMsg struct {
	rooms []*room.Room
	err   error
}

func (m RoomsModel) loadRoomsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rooms, err := m.roomService.List(ctx, m.filter)
		return loadRoomsMsg{rooms: rooms, err: err}
	}
}

type roomStatusMsg struct {
	err error
}

// toggleMaintenanceCmd flips the selected room in and out of maintenance.
func (m RoomsModel) toggleMaintenanceCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rooms) {
		return nil
	}

	rm := m.rooms[idx]

	target := room.StatusMaintenance
	if rm.Status == room.StatusMaintenance {
		target = room.StatusVacant
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return roomStatusMsg{err: m.roomService.SetStatus(ctx, rm.ID, target)}
	}
}
