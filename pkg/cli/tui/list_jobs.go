package tui

import (
	"fmt"
	"strings"

	"itworks-go/pkg/cli/tui/adminjobs"
	"itworks-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

// listJobsModel is a simple read-only Bubble Tea model that loads and displays
// the scrape-job history. It follows the same dependency-injection pattern as
// the admin console.
type listJobsModel struct {
	api adminjobs.API

	jobs  []models.ScrapeJob
	err   error
	ready bool
}

// NewListJobsModel creates a new history listing flow.
func NewListJobsModel(api adminjobs.API) tea.Model {
	return &listJobsModel{
		api: api,
	}
}

func (m *listJobsModel) Init() tea.Cmd {
	return func() tea.Msg {
		jobs, err := m.api.ListJobs()
		return adminjobs.JobsLoadedMsg{Jobs: jobs, Err: err}
	}
}

func (m *listJobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case adminjobs.JobsLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.jobs = msg.Jobs
		}
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *listJobsModel) View() string {
	if !m.ready {
		return renderLoadingState("Đang tải lịch sử cào dữ liệu...")
	}

	if m.err != nil {
		return renderErrorView(m.err)
	}

	if len(m.jobs) == 0 {
		return renderEmptyState("Chưa có lịch sử cào dữ liệu.")
	}

	var b strings.Builder
	b.WriteString(renderTitle("Lịch sử cào dữ liệu"))
	b.WriteString(renderDivider(40) + "\n\n")

	for i := range m.jobs {
		job := &m.jobs[i]
		b.WriteString(fmt.Sprintf("%s  %s\n", renderStatusBadge(job), urlStyle.Render(urlCellText(job, 60))))
		b.WriteString(fmt.Sprintf("    %s   %s\n",
			mutedStyle.Render(progressCellText(job)),
			mutedStyle.Render(formatTimestamp(job.CreatedAt)),
		))
	}

	b.WriteString("\n" + helpStyle.Render("Press Enter, Esc, or q to exit.") + "\n")
	return b.String()
}
