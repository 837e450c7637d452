package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kritchanat/dormdesk/internal/billing"
)

type BillingsModel struct {
	CommonModel
	billingService *billing.Service

	table   table.Model
	records []*billing.Record
	filter  billing.ListFilter

	statusFilterIdx int
	monthFilterIdx  int

	loading bool
	err     error
	status  string
}

func NewBillingsModel(billingSvc *billing.Service) BillingsModel {
	columns := []table.Column{
		{Title: "Receipt", Width: 14},
		{Title: "Room", Width: 8},
		{Title: "Month", Width: 9},
		{Title: "Rent", Width: 10},
		{Title: "Water", Width: 10},
		{Title: "Electric", Width: 10},
		{Title: "Total", Width: 11},
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 9},
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

	return BillingsModel{
		billingService: billingSvc,
		table:          t,
	}
}

func (m BillingsModel) Title() string { return "Bills" }
func (m BillingsModel) ShortHelp() string {
	return "Esc: back | p: mark paid | s: status filter | d: month filter | r: refresh"
}

func (m BillingsModel) Init() tea.Cmd {
	return m.loadRecordsCmd()
}

func (m BillingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBillingsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.records = msg.records
		m.refreshTable()
		return m, nil

	case markPaidMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = ""
		return m, m.loadRecordsCmd()

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
			return m, m.loadRecordsCmd()
		case "p":
			return m, m.markPaidCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadRecordsCmd()
		case "d":
			m.monthFilterIdx = (m.monthFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadRecordsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BillingsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Paid"}
	monthLabels := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [d] Month: %s",
		activeStyle(statusLabels[m.statusFilterIdx]),
		activeStyle(monthLabels[m.monthFilterIdx]),
	)

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

func (m *BillingsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = new(billing.StatusPending)
	case 2:
		m.filter.Status = new(billing.StatusPaid)
	default:
		m.filter.Status = nil
	}

	now := time.Now()
	switch m.monthFilterIdx {
	case 1:
		month := billing.NormalizeMonth(now)
		m.filter.MonthFrom = &month
		m.filter.MonthTo = &month
	case 2:
		month := billing.NormalizeMonth(now.AddDate(0, -1, 0))
		m.filter.MonthFrom = &month
		m.filter.MonthTo = &month
	default:
		m.filter.MonthFrom = nil
		m.filter.MonthTo = nil
	}
}

func (m *BillingsModel) refreshTable() {
	now := time.Now()

	rows := make([]table.Row, 0, len(m.records))
	for _, rec := range m.records {
		rows = append(rows, table.Row{
			rec.ReceiptNumber,
			rec.RoomNumber,
			FormatMonth(rec.Month),
			FormatAmount(rec.RoomRent),
			FormatAmount(rec.WaterCost),
			FormatAmount(rec.ElectricityCost),
			FormatAmount(rec.Total),
			FormatDate(rec.DueDate),
			string(rec.EffectiveStatus(now)),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadBillingsMsg struct {
	records []*billing.Record
	err     error
}

func (m BillingsModel) loadRecordsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		records, err := m.billingService.List(ctx, m.filter)
		return loadBillingsMsg{records: records, err: err}
	}
}

type markPaidMsg struct {
	err error
}

func (m BillingsModel) markPaidCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return nil
	}

	rec := m.records[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return markPaidMsg{err: m.billingService.MarkPaid(ctx, rec.ID, time.Now())}
	}
}
