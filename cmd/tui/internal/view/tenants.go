package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kritchanat/dormdesk/internal/tenant"
)

type tenantsState int

const (
	tenantsStateBrowse tenantsState = iota
	tenantsStateEdit
)

type TenantsModel struct {
	CommonModel
	tenantService *tenant.Service

	state   tenantsState
	table   table.Model
	tenants []*tenant.Tenant
	form    *huh.Form

	filter  tenant.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formFirstName string
	formLastName  string
	formPhone     string
	formEmail     string
}

func NewTenantsModel(tenantSvc *tenant.Service) TenantsModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Room", Width: 8},
		{Title: "Phone", Width: 14},
		{Title: "Email", Width: 28},
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

	return TenantsModel{
		tenantService: tenantSvc,
		table:         t,
	}
}

func (m TenantsModel) Title() string { return "Tenants" }
func (m TenantsModel) ShortHelp() string {
	if m.state == tenantsStateEdit {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | e: edit | r: refresh"
}

func (m TenantsModel) Init() tea.Cmd {
	return m.loadTenantsCmd()
}

func (m TenantsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTenantsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tenants = msg.tenants
		m.refreshTable()
		return m, nil

	case tenantSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}
		m.state = tenantsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadTenantsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case tenantsStateBrowse:
		return m.updateBrowse(msg)
	case tenantsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m TenantsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTenantsCmd()
		case "e":
			return m.enterEditMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TenantsModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tenants) {
		return m, nil
	}

	t := m.tenants[idx]
	m.formFirstName = t.FirstName
	m.formLastName = t.LastName
	m.formPhone = t.Phone
	m.formEmail = t.Email

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("first_name").
				Title("First name").
				Value(&m.formFirstName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("first name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("last_name").
				Title("Last name").
				Value(&m.formLastName),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = tenantsStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m TenantsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = tenantsStateBrowse
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

	return m, m.saveCmd()
}

func (m TenantsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading tenants...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == tenantsStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Tenant\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TenantsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.tenants))
	for _, t := range m.tenants {
		roomNo := t.RoomNumber
		if roomNo == "" {
			roomNo = "-"
		}

		rows = append(rows, table.Row{
			t.FullName(),
			roomNo,
			t.Phone,
			t.Email,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadTenantsMsg struct {
	tenants []*tenant.Tenant
	err     error
}

func (m TenantsModel) loadTenantsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tenants, err := m.tenantService.List(ctx, m.filter)
		return loadTenantsMsg{tenants: tenants, err: err}
	}
}

type tenantSaveMsg struct {
	err error
}

func (m TenantsModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tenants) {
		return nil
	}

	t := m.tenants[idx]
	firstName := m.formFirstName
	lastName := m.formLastName
	phone := m.formPhone
	email := m.formEmail

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t.FirstName = firstName
		t.LastName = lastName
		t.Phone = phone
		t.Email = email

		return tenantSaveMsg{err: m.tenantService.Update(ctx, t)}
	}
}
