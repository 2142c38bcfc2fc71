package tui

import (
	"fmt"
	"strings"
	"time"

	"itworks-go/pkg/cli/logger"
	"itworks-go/pkg/cli/tui/adminjobs"
	"itworks-go/pkg/models"
	"itworks-go/pkg/utils"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// trackingHandle is the console's ownership record for the currently polled
// scrape job: the id plus the generation its timer chain is armed with. The
// handle is replaced or cleared as a unit, never field by field.
type trackingHandle struct {
	jobID string
	gen   int
}

// inlineMessage is the message area under the submit form.
type inlineMessage struct {
	kind string // info | success | error
	text string
}

// toastState is the single-occupancy transient notification slot.
type toastState struct {
	kind string // success | error
	text string
	gen  int
}

// modalState is the URL-inspection overlay for one completed job. The job is
// a snapshot captured at open time; later history updates do not reach it.
type modalState struct {
	job      models.ScrapeJob
	selected int
	resolved map[string]string // source URL -> local posting id
}

// adminModel is the scrape console: URL submission, job status polling, the
// job history table, toasts and the URL-inspection modal. All state mutation
// happens inside Update; async work runs in tea.Cmds whose results come back
// as adminjobs messages.
type adminModel struct {
	api adminjobs.API

	// Submission
	input      textarea.Model
	submitting bool
	message    *inlineMessage

	// Polling. pollGen increments on every handle install and halt, so a
	// timer armed for an older handle is dropped the moment it fires.
	tracking     *trackingHandle
	pollGen      int
	pollInterval time.Duration

	// History
	jobs     []models.ScrapeJob
	selected int
	ready    bool

	// Toast
	toast    *toastState
	toastGen int
	toastTTL time.Duration

	modal *modalState

	focus int
	width int
}

// NewAdminModel creates the scrape console. pollIntervalSeconds controls the
// status polling cadence; values <= 0 fall back to the 3-second default.
func NewAdminModel(api adminjobs.API, pollIntervalSeconds int) tea.Model {
	input := textarea.New()
	input.Placeholder = "Nhập các URL, mỗi URL trên một dòng\nVí dụ:\nhttps://www.topcv.vn/tim-viec-lam\nhttps://www.vietnamworks.com/tim-viec-lam"
	input.SetWidth(70)
	input.SetHeight(6)
	input.CharLimit = 20000
	input.Focus()

	pollInterval := adminjobs.DefaultPollInterval
	if pollIntervalSeconds > 0 {
		pollInterval = time.Duration(pollIntervalSeconds) * time.Second
	}

	return &adminModel{
		api:          api,
		input:        input,
		pollInterval: pollInterval,
		toastTTL:     adminjobs.ToastLifetime,
		focus:        adminjobs.FocusInput,
	}
}

func (m *adminModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadJobsCmd())
}

func (m *adminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case adminjobs.JobsLoadedMsg:
		if msg.Err != nil {
			// Initial load is fire-and-forget; an empty history is fine.
			logger.LogError(msg.Err, "loading job history")
		} else {
			m.jobs = msg.Jobs
		}
		m.ready = true
		return m, nil

	case adminjobs.SubmitResultMsg:
		return m.handleSubmitResult(msg)

	case adminjobs.PollTickMsg:
		if m.tracking == nil || msg.Gen != m.tracking.gen {
			return m, nil
		}
		return m, m.pollCmd()

	case adminjobs.PollResultMsg:
		return m.handlePollResult(msg)

	case adminjobs.ToastExpiredMsg:
		if m.toast != nil && msg.Gen == m.toast.gen {
			m.toast = nil
		}
		return m, nil

	case adminjobs.DeleteResultMsg:
		return m.handleDeleteResult(msg)

	case adminjobs.DetailResolvedMsg:
		return m.handleDetailResolved(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != nil {
			return m.handleModalKeys(msg)
		}
		switch m.focus {
		case adminjobs.FocusInput:
			return m.handleInputKeys(msg)
		case adminjobs.FocusHistory:
			return m.handleHistoryKeys(msg)
		}
	}

	return m, nil
}

// --- Submission handler ---

func (m *adminModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.focus = adminjobs.FocusHistory
		m.input.Blur()
		return m, nil
	case "ctrl+s":
		return m, m.handleSubmit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit validates the textarea and dispatches the batch upload. An
// empty parsed URL list never issues a request and keeps the form enabled.
func (m *adminModel) handleSubmit() tea.Cmd {
	if m.submitting {
		return nil
	}

	urls := utils.ParseURLLines(m.input.Value())
	if len(urls) == 0 {
		m.message = &inlineMessage{kind: "error", text: "Vui lòng nhập ít nhất một URL hợp lệ!"}
		return nil
	}

	m.submitting = true
	m.message = nil
	return m.submitCmd(urls)
}

func (m *adminModel) submitCmd(urls []string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		jobID, err := api.UploadURLs(urls)
		return adminjobs.SubmitResultMsg{JobID: jobID, URLCount: len(urls), Err: err}
	}
}

func (m *adminModel) handleSubmitResult(msg adminjobs.SubmitResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.LogError(msg.Err, "submitting scrape batch")
		m.submitting = false
		m.message = &inlineMessage{kind: "error", text: "Có lỗi xảy ra khi gửi yêu cầu!"}
		return m, nil
	}

	// Install the tracking handle. Bumping the generation first invalidates
	// any timer still armed for a superseded handle.
	m.pollGen++
	m.tracking = &trackingHandle{jobID: msg.JobID, gen: m.pollGen}
	m.message = &inlineMessage{kind: "info", text: fmt.Sprintf("Đang xử lý %d URL...", msg.URLCount)}

	// Immediate reconciliation request; the 3-second cadence starts after it.
	return m, m.pollCmd()
}

// --- Status poller ---

func (m *adminModel) pollCmd() tea.Cmd {
	api, id, gen := m.api, m.tracking.jobID, m.tracking.gen
	return func() tea.Msg {
		job, err := api.JobStatus(id)
		return adminjobs.PollResultMsg{Gen: gen, JobID: id, Job: job, Err: err}
	}
}

func (m *adminModel) scheduleTick() tea.Cmd {
	gen := m.tracking.gen
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return adminjobs.PollTickMsg{Gen: gen}
	})
}

// haltTracking cancels the timer chain, then clears the handle, in that
// order: the generation bump kills any armed tick before the handle goes away.
func (m *adminModel) haltTracking() {
	m.pollGen++
	m.tracking = nil
}

func (m *adminModel) handlePollResult(msg adminjobs.PollResultMsg) (tea.Model, tea.Cmd) {
	current := m.tracking != nil && msg.Gen == m.tracking.gen

	if msg.Err != nil {
		// Transient errors never halt the loop.
		logger.LogError(msg.Err, "polling job %s", msg.JobID)
		if current {
			return m, m.scheduleTick()
		}
		return m, nil
	}

	// Snapshots reconcile into history even when the handle has been
	// superseded; only the current handle may create a new entry, so a late
	// snapshot cannot resurrect a deleted row.
	m.reconcile(msg.Job, current)

	if !current {
		return m, nil
	}

	job := msg.Job
	switch job.NormalizedStatus() {
	case models.JobStatusProcessing:
		if job.TotalURLs > 0 {
			m.message = &inlineMessage{
				kind: "info",
				text: fmt.Sprintf("Đang xử lý... %d/%d URL (%d%%)", job.ProcessedURLs, job.TotalURLs, job.Progress),
			}
		}
		return m, m.scheduleTick()

	case models.JobStatusCompleted:
		m.haltTracking()
		m.submitting = false
		m.input.Reset()
		summary := fmt.Sprintf("Đã thu thập %d công việc từ %d URL.", job.JobCount, job.TotalURLs)
		m.message = &inlineMessage{kind: "success", text: "Hoàn thành! " + summary}
		return m, m.showToast("success", "Cào dữ liệu thành công! "+summary)

	case models.JobStatusFailed:
		m.haltTracking()
		m.submitting = false
		reason := job.ErrorMessage
		if reason == "" {
			reason = "Lỗi không xác định"
		}
		inline := job.ErrorMessage
		if inline == "" {
			inline = "Có lỗi xảy ra khi cào dữ liệu!"
		}
		m.message = &inlineMessage{kind: "error", text: inline}
		return m, m.showToast("error", "Cào dữ liệu thất bại: "+reason)

	default: // pending, keep polling
		return m, m.scheduleTick()
	}
}

// --- History store ---

func (m *adminModel) loadJobsCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		jobs, err := api.ListJobs()
		return adminjobs.JobsLoadedMsg{Jobs: jobs, Err: err}
	}
}

// reconcile replaces the history entry with the same id in place, or prepends
// the snapshot when allowed. Reconciliation never removes an entry.
func (m *adminModel) reconcile(job *models.ScrapeJob, allowInsert bool) {
	if job == nil {
		return
	}
	for i := range m.jobs {
		if m.jobs[i].ID == job.ID {
			m.jobs[i] = *job
			return
		}
	}
	if !allowInsert {
		return
	}
	m.jobs = append([]models.ScrapeJob{*job}, m.jobs...)
}

func (m *adminModel) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "tab":
		m.focus = adminjobs.FocusInput
		m.input.Focus()
		return m, textarea.Blink
	case "r":
		return m, m.loadJobsCmd()
	case "enter", "v":
		m.openModal()
		return m, nil
	case "d", "x":
		return m, m.deleteSelectedCmd()
	}

	if newSelected, handled := handleListNavigation(key, m.selected, len(m.jobs)); handled {
		m.selected = newSelected
	}
	return m, nil
}

func (m *adminModel) deleteSelectedCmd() tea.Cmd {
	if m.selected < 0 || m.selected >= len(m.jobs) {
		return nil
	}
	api, id := m.api, m.jobs[m.selected].ID
	return func() tea.Msg {
		return adminjobs.DeleteResultMsg{JobID: id, Err: api.DeleteJob(id)}
	}
}

func (m *adminModel) handleDeleteResult(msg adminjobs.DeleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.LogError(msg.Err, "deleting job %s", msg.JobID)
		return m, m.showToast("error", "Lỗi khi xóa lịch sử")
	}
	m.removeJob(msg.JobID)
	return m, m.showToast("success", "Xóa lịch sử thành công")
}

func (m *adminModel) removeJob(id string) {
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			m.jobs = append(m.jobs[:i], m.jobs[i+1:]...)
			break
		}
	}
	if m.selected >= len(m.jobs) && m.selected > 0 {
		m.selected = len(m.jobs) - 1
	}
}

// --- Toast channel ---

// showToast fills the single toast slot and arms its dismissal timer. A newer
// toast takes the slot over; the superseded timer expires into a stale
// generation and does nothing.
func (m *adminModel) showToast(kind, text string) tea.Cmd {
	m.toastGen++
	m.toast = &toastState{kind: kind, text: text, gen: m.toastGen}
	gen := m.toastGen
	return tea.Tick(m.toastTTL, func(time.Time) tea.Msg {
		return adminjobs.ToastExpiredMsg{Gen: gen}
	})
}

// --- Modal ---

// openModal captures the selected job for URL inspection. Only completed jobs
// that actually extracted postings are inspectable.
func (m *adminModel) openModal() {
	if m.selected < 0 || m.selected >= len(m.jobs) {
		return
	}
	job := m.jobs[m.selected]
	if job.Status != models.JobStatusCompleted || job.JobCount <= 0 {
		return
	}
	m.modal = &modalState{job: job, resolved: map[string]string{}}
}

func (m *adminModel) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	urls := m.modal.job.AllURLs()

	switch key {
	case "esc", "q", "b":
		m.modal = nil
		return m, nil
	case "enter", "v":
		if m.modal.selected >= 0 && m.modal.selected < len(urls) {
			return m, m.resolveDetailCmd(urls[m.modal.selected])
		}
		return m, nil
	}

	if newSelected, handled := handleListNavigation(key, m.modal.selected, len(urls)); handled {
		m.modal.selected = newSelected
	}
	return m, nil
}

func (m *adminModel) resolveDetailCmd(rawURL string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		id, err := api.LookupJobURL(rawURL)
		return adminjobs.DetailResolvedMsg{SourceURL: rawURL, LocalID: id, Err: err}
	}
}

func (m *adminModel) handleDetailResolved(msg adminjobs.DetailResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.LogError(msg.Err, "resolving job detail for %s", msg.SourceURL)
		return m, m.showToast("error", "Lỗi khi tải thông tin công việc")
	}
	if msg.LocalID == "" {
		return m, m.showToast("error", "Không tìm thấy công việc")
	}
	if m.modal != nil {
		m.modal.resolved[msg.SourceURL] = msg.LocalID
	}
	return m, nil
}

// --- View ---

func (m *adminModel) View() string {
	if !m.ready {
		return renderLoadingState("Đang tải lịch sử cào dữ liệu...")
	}

	if m.modal != nil {
		return m.renderModal()
	}

	var b strings.Builder

	if m.toast != nil {
		b.WriteString("\n" + m.renderToast() + "\n")
	}

	b.WriteString(renderTitle("Crawl thông tin việc làm"))
	b.WriteString(mutedStyle.Render("Nhập URL để cào dữ liệu việc làm mới") + "\n")
	b.WriteString(renderDivider(m.maxWidth()) + "\n\n")

	if m.message != nil {
		b.WriteString(m.renderMessage() + "\n\n")
	}

	b.WriteString(boldStyle.Render("URLs cần cào dữ liệu (mỗi URL một dòng):") + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.submitting {
		b.WriteString(infoStyle.Render("Đang cào...") + "\n")
	} else {
		b.WriteString(helpStyle.Render("(Ctrl+S để bắt đầu cào, Tab để chuyển sang lịch sử)") + "\n")
	}

	b.WriteString(m.renderHistory())

	b.WriteString("\n" + helpStyle.Render("(Tab chuyển vùng, ↑/↓ chọn, Enter/v xem URL, d xóa, r tải lại, Ctrl+C thoát)") + "\n")

	return b.String()
}

func (m *adminModel) renderToast() string {
	if m.toast.kind == "success" {
		return toastSuccessStyle.Render("✓ " + m.toast.text)
	}
	return toastErrorStyle.Render("✗ " + m.toast.text)
}

func (m *adminModel) renderMessage() string {
	switch m.message.kind {
	case "success":
		return renderSuccess(m.message.text)
	case "error":
		return renderError(m.message.text)
	default:
		return infoStyle.Render(m.message.text)
	}
}

func (m *adminModel) renderHistory() string {
	var b strings.Builder

	b.WriteString("\n" + boldStyle.Render("Lịch sử cào dữ liệu") + "\n")
	b.WriteString(renderDivider(m.maxWidth()) + "\n")

	if len(m.jobs) == 0 {
		b.WriteString(mutedStyle.Render("Chưa có lịch sử cào dữ liệu.") + "\n")
		return b.String()
	}

	urlWidth := m.maxWidth() - 40
	if urlWidth < 30 {
		urlWidth = 30
	}

	for i := range m.jobs {
		job := &m.jobs[i]

		marker := " "
		urlLine := urlCellText(job, urlWidth)
		if m.focus == adminjobs.FocusHistory && i == m.selected {
			marker = selectedMarkerStyle.Render("→")
			urlLine = selectedStyle.Render(urlLine)
		} else {
			urlLine = urlStyle.Render(urlLine)
		}

		b.WriteString(fmt.Sprintf("%s %s  %s\n", marker, renderStatusBadge(job), urlLine))
		b.WriteString(fmt.Sprintf("    %s", mutedStyle.Render(progressCellText(job))))
		if job.Status == models.JobStatusProcessing && job.TotalURLs > 0 {
			b.WriteString("  " + renderProgressBar(job.Progress, 20))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("    %s %s   %s %s\n",
			fieldLabelStyle.Render("Tạo:"), formatTimestamp(job.CreatedAt),
			fieldLabelStyle.Render("Hoàn thành:"), formatTimestamp(job.CompletedAt),
		))
	}

	return b.String()
}

func (m *adminModel) renderModal() string {
	var b strings.Builder

	if m.toast != nil {
		b.WriteString("\n" + m.renderToast() + "\n")
	}

	job := &m.modal.job
	b.WriteString(renderTitle(fmt.Sprintf("Danh sách URL đã cào (%d công việc)", job.JobCount)))
	b.WriteString(fmt.Sprintf("%s %s\n", fieldLabelStyle.Render("Thời gian hoàn thành:"), formatTimestamp(job.CompletedAt)))
	b.WriteString(renderDivider(m.maxWidth()) + "\n\n")

	urls := job.AllURLs()
	for i, u := range urls {
		marker := " "
		line := u
		if i == m.modal.selected {
			marker = selectedMarkerStyle.Render("→")
			line = selectedStyle.Render(line)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", marker, line))
		b.WriteString(fmt.Sprintf("    %s", mutedStyle.Render(fmt.Sprintf("URL %d", i+1))))
		if localID, ok := m.modal.resolved[u]; ok {
			b.WriteString("  " + successStyle.Render("/job/"+localID))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render("(↑/↓ chọn, Enter/v xem công việc, Esc đóng)") + "\n")
	return b.String()
}

func (m *adminModel) maxWidth() int {
	if m.width > 0 {
		return m.width
	}
	return adminjobs.DefaultWidth
}
