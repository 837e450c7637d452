package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/billing"
)

type runState int

const (
	runStateEnter runState = iota
	runStateReading
	runStateConfirm
	runStateDone
)

// BillingRunModel walks the operator through a monthly billing batch:
// load the occupancy snapshot, key in this month's meter readings, then
// execute the run and show per-room results.
type BillingRunModel struct {
	CommonModel
	billingService *billing.Service

	state    runState
	table    table.Model
	snapshot []billing.RoomOccupancy
	readings map[uuid.UUID]int64
	form     *huh.Form

	month   string
	result  *billing.RunResult
	loading bool
	err     error
	status  string

	formReading string
}

func NewBillingRunModel(billingSvc *billing.Service) BillingRunModel {
	columns := []table.Column{
		{Title: "Room", Width: 8},
		{Title: "Occupants", Width: 10},
		{Title: "Prev meter", Width: 12},
		{Title: "New meter", Width: 12},
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

	return BillingRunModel{
		billingService: billingSvc,
		table:          t,
		readings:       make(map[uuid.UUID]int64),
		month:          time.Now().Format("2006-01"),
	}
}

func (m BillingRunModel) Title() string { return "Monthly Billing Run" }
func (m BillingRunModel) ShortHelp() string {
	switch m.state {
	case runStateReading:
		return "Enter reading | Esc: cancel"
	case runStateDone:
		return "Esc: back"
	}
	return "Esc: back | e: enter reading | R: run batch | r: refresh"
}

func (m BillingRunModel) Init() tea.Cmd {
	return m.loadSnapshotCmd()
}

func (m BillingRunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSnapshotMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.refreshTable()
		return m, nil

	case runDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Run failed: %v", msg.err)
			m.state = runStateEnter
			return m, nil
		}
		m.result = msg.result
		m.state = runStateDone
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case runStateEnter:
		return m.updateEnter(msg)
	case runStateReading:
		return m.updateReading(msg)
	case runStateDone:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			return m, Back
		}
		return m, nil
	}

	return m, nil
}

func (m BillingRunModel) updateEnter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSnapshotCmd()
		case "e":
			return m.enterReadingMode()
		case "R":
			m.loading = true
			m.status = ""
			return m, m.runCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BillingRunModel) enterReadingMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snapshot) {
		return m, nil
	}

	room := m.snapshot[idx]

	m.formReading = ""
	if v, ok := m.readings[room.RoomID]; ok {
		m.formReading = strconv.FormatInt(v, 10)
	}

	previous := room.PreviousReading

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("reading").
				Title(fmt.Sprintf("Meter reading for room %s (previous %d)", room.RoomNumber, previous)).
				Value(&m.formReading).
				Validate(func(s string) error {
					v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil {
						return fmt.Errorf("must be a whole number")
					}
					if v < previous {
						return fmt.Errorf("reading must not be below %d", previous)
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = runStateReading
	m.table.Blur()
	return m, m.form.Init()
}

func (m BillingRunModel) updateReading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = runStateEnter
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	idx := m.table.Cursor()
	if idx >= 0 && idx < len(m.snapshot) {
		if v, err := strconv.ParseInt(strings.TrimSpace(m.formReading), 10, 64); err == nil {
			m.readings[m.snapshot[idx].RoomID] = v
		}
	}

	m.state = runStateEnter
	m.form = nil
	m.table.Focus()
	m.refreshTable()

	return m, nil
}

func (m BillingRunModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Working...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == runStateDone && m.result != nil {
		var b strings.Builder

		fmt.Fprintf(&b, "Billing run for %s\n\n", m.month)
		fmt.Fprintf(&b, "Created: %d bills\n", len(m.result.Created))

		if len(m.result.Failures) > 0 {
			fmt.Fprintf(&b, "Skipped: %d rooms\n\n", len(m.result.Failures))
			for _, f := range m.result.Failures {
				fmt.Fprintf(&b, "  %s\n", f.Message())
			}
		}

		return lipgloss.NewStyle().Padding(2).Render(b.String())
	}

	header := fmt.Sprintf("Billing month: %s | readings entered: %d/%d",
		activeStyle(m.month), len(m.readings), len(m.snapshot))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == runStateReading && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render("Enter Reading\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BillingRunModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.snapshot))
	for _, room := range m.snapshot {
		newReading := "-"
		if v, ok := m.readings[room.RoomID]; ok {
			newReading = strconv.FormatInt(v, 10)
		}

		rows = append(rows, table.Row{
			room.RoomNumber,
			fmt.Sprintf("%d", room.OccupantCount),
			strconv.FormatInt(room.PreviousReading, 10),
			newReading,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadSnapshotMsg struct {
	snapshot []billing.RoomOccupancy
	err      error
}

func (m BillingRunModel) loadSnapshotCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snapshot, err := m.billingService.Snapshot(ctx)
		return loadSnapshotMsg{snapshot: snapshot, err: err}
	}
}

type runDoneMsg struct {
	result *billing.RunResult
	err    error
}

func (m BillingRunModel) runCmd() tea.Cmd {
	month, err := time.Parse("2006-01", m.month)
	if err != nil {
		return func() tea.Msg { return runDoneMsg{err: err} }
	}

	readings := make(map[uuid.UUID]int64, len(m.readings))
	for id, v := range m.readings {
		readings[id] = v
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.billingService.Run(ctx, billing.RunParams{
			Month:    month,
			Readings: readings,
		})

		return runDoneMsg{result: result, err: err}
	}
}
