package tui

import (
	"strings"

	"itworks-go/pkg/cli/tui/adminjobs"

	tea "github.com/charmbracelet/bubbletea"
)

// rootModel is the Bubble Tea model that acts as an app shell for multiple flows.
// It presents a simple menu and then hands control to a specific flow model.
type rootModel struct {
	// Shared dependencies
	api                 adminjobs.API
	pollIntervalSeconds int

	// Current active flow (when nil, we are in the main menu)
	current tea.Model
}

// NewRootModel constructs the root app-shell model that can launch multiple flows.
func NewRootModel(api adminjobs.API, pollIntervalSeconds int) tea.Model {
	if pollIntervalSeconds <= 0 {
		pollIntervalSeconds = 3
	}

	return &rootModel{
		api:                 api,
		pollIntervalSeconds: pollIntervalSeconds,
	}
}

func (m *rootModel) Init() tea.Cmd {
	// No async work on start; just render the menu.
	return nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If we have an active flow, delegate all messages to it.
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "1":
			// Full scrape console: submit, poll, history, modal.
			m.current = NewAdminModel(m.api, m.pollIntervalSeconds)
			return m, m.current.Init()

		case "2":
			// Read-only history browser.
			m.current = NewListJobsModel(m.api)
			return m, m.current.Init()
		}
	}

	return m, nil
}

func (m *rootModel) View() string {
	// When a flow is active, defer to its view.
	if m.current != nil {
		return m.current.View()
	}

	var b strings.Builder

	b.WriteString(renderTitle("ITWORKS — Bảng điều khiển"))
	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Chọn thao tác:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " Cào dữ liệu việc làm (console)\n")
	b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Xem lịch sử cào dữ liệu\n")
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Nhấn số tương ứng, hoặc 'q' / Esc để thoát.") + "\n")

	return b.String()
}
