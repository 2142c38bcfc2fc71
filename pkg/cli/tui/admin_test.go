package tui

import (
	"errors"
	"testing"
	"time"

	"itworks-go/pkg/cli/tui/adminjobs"
	"itworks-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fakeAPI implements adminjobs.API for driving the console model in tests.
type fakeAPI struct {
	uploadCalls [][]string
	uploadID    string
	uploadErr   error

	statusCalls []string
	statusJob   *models.ScrapeJob
	statusErr   error

	listJobs []models.ScrapeJob
	listErr  error

	deleteCalls []string
	deleteErr   error

	lookupCalls []string
	lookupID    string
	lookupErr   error
}

func (f *fakeAPI) UploadURLs(urls []string) (string, error) {
	f.uploadCalls = append(f.uploadCalls, urls)
	return f.uploadID, f.uploadErr
}

func (f *fakeAPI) JobStatus(jobID string) (*models.ScrapeJob, error) {
	f.statusCalls = append(f.statusCalls, jobID)
	return f.statusJob, f.statusErr
}

func (f *fakeAPI) ListJobs() ([]models.ScrapeJob, error) {
	return f.listJobs, f.listErr
}

func (f *fakeAPI) DeleteJob(jobID string) error {
	f.deleteCalls = append(f.deleteCalls, jobID)
	return f.deleteErr
}

func (f *fakeAPI) LookupJobURL(rawURL string) (string, error) {
	f.lookupCalls = append(f.lookupCalls, rawURL)
	return f.lookupID, f.lookupErr
}

func newTestAdmin(api *fakeAPI) *adminModel {
	m := NewAdminModel(api, 3).(*adminModel)
	m.ready = true
	return m
}

func TestSubmitEmptyInputIssuesNoRequest(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)
	m.input.SetValue("   \n\n")

	cmd := m.handleSubmit()

	if cmd != nil {
		t.Fatal("expected no command for empty URL list")
	}
	if len(api.uploadCalls) != 0 {
		t.Fatalf("expected no upload request, got %d", len(api.uploadCalls))
	}
	if m.submitting {
		t.Error("submit must stay enabled after validation failure")
	}
	if m.message == nil || m.message.kind != "error" {
		t.Fatal("expected inline error message")
	}
	if m.message.text != "Vui lòng nhập ít nhất một URL hợp lệ!" {
		t.Errorf("unexpected message: %q", m.message.text)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	api := &fakeAPI{uploadID: "J1"}
	m := newTestAdmin(api)
	m.input.SetValue("https://a.example\nhttps://b.example\n")

	cmd := m.handleSubmit()
	if cmd == nil {
		t.Fatal("expected upload command")
	}
	if !m.submitting {
		t.Error("submit should be disabled while the upload is in flight")
	}

	// Resolve the upload.
	msg := cmd()
	if len(api.uploadCalls) != 1 || len(api.uploadCalls[0]) != 2 {
		t.Fatalf("unexpected upload calls: %v", api.uploadCalls)
	}

	_, pollCmd := m.Update(msg)
	if m.tracking == nil || m.tracking.jobID != "J1" {
		t.Fatal("tracking handle not installed")
	}
	if m.message == nil || m.message.text != "Đang xử lý 2 URL..." {
		t.Errorf("unexpected inline message: %+v", m.message)
	}
	if pollCmd == nil {
		t.Fatal("expected immediate poll command")
	}

	// First snapshot: processing 1/2.
	api.statusJob = &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusProcessing,
		TotalURLs: 2, ProcessedURLs: 1, Progress: 50,
	}
	_, tickCmd := m.Update(pollCmd())
	if m.message == nil || m.message.text != "Đang xử lý... 1/2 URL (50%)" {
		t.Errorf("unexpected progress message: %+v", m.message)
	}
	if len(m.jobs) != 1 || m.jobs[0].ID != "J1" {
		t.Fatalf("expected J1 at history index 0, got %+v", m.jobs)
	}
	if tickCmd == nil {
		t.Error("expected the poller to stay scheduled")
	}

	// Terminal snapshot: completed.
	now := time.Now()
	gen := m.tracking.gen
	_, toastCmd := m.Update(adminjobs.PollResultMsg{
		Gen:   gen,
		JobID: "J1",
		Job: &models.ScrapeJob{
			ID: "J1", Status: models.JobStatusCompleted,
			TotalURLs: 2, ProcessedURLs: 2, Progress: 100,
			JobCount: 7, CompletedAt: &now,
		},
	})

	if m.tracking != nil {
		t.Error("tracking handle must be cleared on terminal state")
	}
	if m.submitting {
		t.Error("submit must be re-enabled on completion")
	}
	if m.input.Value() != "" {
		t.Error("textarea must be cleared on success")
	}
	if m.toast == nil || m.toast.kind != "success" {
		t.Fatal("expected success toast")
	}
	want := "Cào dữ liệu thành công! Đã thu thập 7 công việc từ 2 URL."
	if m.toast.text != want {
		t.Errorf("toast = %q, want %q", m.toast.text, want)
	}
	if toastCmd == nil {
		t.Error("expected toast dismissal timer")
	}
	if len(m.jobs) != 1 || m.jobs[0].Status != models.JobStatusCompleted {
		t.Errorf("history entry not updated in place: %+v", m.jobs)
	}
}

func TestSubmitTransportError(t *testing.T) {
	api := &fakeAPI{uploadErr: errors.New("boom")}
	m := newTestAdmin(api)
	m.input.SetValue("https://a.example")

	cmd := m.handleSubmit()
	m.Update(cmd())

	if m.submitting {
		t.Error("submit must be re-enabled after transport error")
	}
	if m.tracking != nil {
		t.Error("no tracking handle may be installed on failure")
	}
	if m.message == nil || m.message.text != "Có lỗi xảy ra khi gửi yêu cầu!" {
		t.Errorf("unexpected message: %+v", m.message)
	}
}

func TestTransientPollFailureKeepsPolling(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)
	m.Update(adminjobs.SubmitResultMsg{JobID: "J1", URLCount: 1})
	gen := m.tracking.gen

	// Tick 1 fails.
	_, tickCmd := m.Update(adminjobs.PollResultMsg{Gen: gen, JobID: "J1", Err: errors.New("503")})
	if tickCmd == nil {
		t.Fatal("transient error must not halt the poller")
	}
	if m.tracking == nil {
		t.Fatal("tracking handle must survive transient errors")
	}
	if m.toast != nil {
		t.Error("no toast before a terminal snapshot")
	}

	// Tick 2 returns processing, tick 3 completes.
	m.Update(adminjobs.PollResultMsg{Gen: gen, JobID: "J1", Job: &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusProcessing, TotalURLs: 1,
	}})
	m.Update(adminjobs.PollResultMsg{Gen: gen, JobID: "J1", Job: &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusCompleted, TotalURLs: 1, JobCount: 2,
	}})

	if m.tracking != nil {
		t.Error("tracking handle must be cleared after terminal snapshot")
	}
	firstToastGen := m.toastGen

	// A late duplicate terminal snapshot must not fire side effects again.
	m.input.SetValue("kept")
	m.Update(adminjobs.PollResultMsg{Gen: gen, JobID: "J1", Job: &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusCompleted, TotalURLs: 1, JobCount: 2,
	}})
	if m.toastGen != firstToastGen {
		t.Error("terminal side effects fired twice for the same job")
	}
	if m.input.Value() != "kept" {
		t.Error("late snapshot must not clear the textarea")
	}
}

func TestFailedJob(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)
	m.input.SetValue("https://a.example")
	m.Update(adminjobs.SubmitResultMsg{JobID: "J1", URLCount: 1})
	gen := m.tracking.gen

	m.Update(adminjobs.PollResultMsg{Gen: gen, JobID: "J1", Job: &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusFailed, ErrorMessage: "Timeout",
	}})

	if m.toast == nil || m.toast.kind != "error" {
		t.Fatal("expected error toast")
	}
	if m.toast.text != "Cào dữ liệu thất bại: Timeout" {
		t.Errorf("toast = %q", m.toast.text)
	}
	if m.message == nil || m.message.text != "Timeout" {
		t.Errorf("inline message = %+v", m.message)
	}
	if m.submitting {
		t.Error("submit must be re-enabled on failure")
	}
	if m.input.Value() != "https://a.example" {
		t.Error("textarea must be preserved on failure")
	}
}

func TestFailedJobDefaultMessage(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)
	m.Update(adminjobs.SubmitResultMsg{JobID: "J1", URLCount: 1})
	gen := m.tracking.gen

	m.Update(adminjobs.PollResultMsg{Gen: gen, JobID: "J1", Job: &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusFailed,
	}})

	if m.toast == nil || m.toast.text != "Cào dữ liệu thất bại: Lỗi không xác định" {
		t.Errorf("toast = %+v", m.toast)
	}
	if m.message == nil || m.message.text != "Có lỗi xảy ra khi cào dữ liệu!" {
		t.Errorf("inline message = %+v", m.message)
	}
}

func TestSupersedingSubmission(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)

	m.Update(adminjobs.SubmitResultMsg{JobID: "J1", URLCount: 1})
	j1Gen := m.tracking.gen

	// Seed J1 into history via a normal poll.
	m.Update(adminjobs.PollResultMsg{Gen: j1Gen, JobID: "J1", Job: &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusProcessing, TotalURLs: 1,
	}})

	// Second submission supersedes the first before it finishes.
	m.submitting = true
	m.input.SetValue("https://second.example")
	m.Update(adminjobs.SubmitResultMsg{JobID: "J2", URLCount: 1})

	if m.tracking == nil || m.tracking.jobID != "J2" {
		t.Fatal("tracking handle must point at the newest submission")
	}
	if m.tracking.gen == j1Gen {
		t.Fatal("superseding submission must use a fresh generation")
	}

	// A tick armed for J1's chain is a no-op.
	_, cmd := m.Update(adminjobs.PollTickMsg{Gen: j1Gen})
	if cmd != nil {
		t.Error("stale tick must not issue a request")
	}

	// A late J1 terminal snapshot must not touch submission state, but it
	// still reconciles into history.
	m.Update(adminjobs.PollResultMsg{Gen: j1Gen, JobID: "J1", Job: &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusCompleted, TotalURLs: 1, JobCount: 3,
	}})

	if !m.submitting {
		t.Error("late snapshot of superseded job must not re-enable submit")
	}
	if m.input.Value() != "https://second.example" {
		t.Error("late snapshot of superseded job must not clear the textarea")
	}
	found := false
	for _, job := range m.jobs {
		if job.ID == "J1" && job.Status == models.JobStatusCompleted {
			found = true
		}
	}
	if !found {
		t.Error("late snapshot must still reconcile into history")
	}
}

func TestReconcileRetainsPosition(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)
	m.jobs = []models.ScrapeJob{
		{ID: "J3", Status: models.JobStatusCompleted},
		{ID: "J2", Status: models.JobStatusProcessing},
		{ID: "J1", Status: models.JobStatusCompleted},
	}
	m.Update(adminjobs.SubmitResultMsg{JobID: "J2", URLCount: 1})

	m.Update(adminjobs.PollResultMsg{Gen: m.tracking.gen, JobID: "J2", Job: &models.ScrapeJob{
		ID: "J2", Status: models.JobStatusProcessing, TotalURLs: 4, ProcessedURLs: 2, Progress: 50,
	}})

	if len(m.jobs) != 3 {
		t.Fatalf("history length changed: %d", len(m.jobs))
	}
	if m.jobs[1].ID != "J2" || m.jobs[1].Progress != 50 {
		t.Errorf("entry not updated in place: %+v", m.jobs[1])
	}
}

func TestDeleteJob(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)
	m.jobs = []models.ScrapeJob{{ID: "J1", Status: models.JobStatusCompleted}}
	m.selected = 0

	cmd := m.deleteSelectedCmd()
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	m.Update(cmd())

	if len(api.deleteCalls) != 1 || api.deleteCalls[0] != "J1" {
		t.Fatalf("unexpected delete calls: %v", api.deleteCalls)
	}
	if len(m.jobs) != 0 {
		t.Error("entry must be removed locally after server delete")
	}
	if m.toast == nil || m.toast.text != "Xóa lịch sử thành công" {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestDeleteFailureKeepsEntry(t *testing.T) {
	api := &fakeAPI{deleteErr: errors.New("500")}
	m := newTestAdmin(api)
	m.jobs = []models.ScrapeJob{{ID: "J1", Status: models.JobStatusCompleted}}

	cmd := m.deleteSelectedCmd()
	m.Update(cmd())

	if len(m.jobs) != 1 {
		t.Error("entry must be kept when the server delete fails")
	}
	if m.toast == nil || m.toast.kind != "error" {
		t.Errorf("expected error toast, got %+v", m.toast)
	}
}

func TestLateSnapshotDoesNotResurrectDeletedEntry(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)
	m.jobs = []models.ScrapeJob{{ID: "J1", Status: models.JobStatusCompleted}}

	m.Update(adminjobs.DeleteResultMsg{JobID: "J1"})
	if len(m.jobs) != 0 {
		t.Fatal("delete did not remove the entry")
	}

	// Snapshot from a long-dead poll chain.
	m.Update(adminjobs.PollResultMsg{Gen: 0, JobID: "J1", Job: &models.ScrapeJob{
		ID: "J1", Status: models.JobStatusCompleted,
	}})
	if len(m.jobs) != 0 {
		t.Error("stale snapshot must not re-insert a deleted entry")
	}
}

func TestToastReplacementRestartsTimer(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)

	m.showToast("success", "first")
	firstGen := m.toast.gen
	m.showToast("error", "second")

	// The first toast's timer expiring must not dismiss the second toast.
	m.Update(adminjobs.ToastExpiredMsg{Gen: firstGen})
	if m.toast == nil || m.toast.text != "second" {
		t.Fatalf("stale expiry dismissed the active toast: %+v", m.toast)
	}

	m.Update(adminjobs.ToastExpiredMsg{Gen: m.toast.gen})
	if m.toast != nil {
		t.Error("toast must clear when its own timer expires")
	}
}

func TestModalLifecycle(t *testing.T) {
	api := &fakeAPI{lookupID: "abc123"}
	m := newTestAdmin(api)
	m.jobs = []models.ScrapeJob{{
		ID:       "J1",
		Status:   models.JobStatusCompleted,
		JobCount: 5,
		URLs:     []string{"https://a.example", "https://b.example"},
	}}
	m.focus = adminjobs.FocusHistory

	m.openModal()
	if m.modal == nil {
		t.Fatal("modal did not open for a completed job with postings")
	}

	// The modal holds a snapshot; later history updates do not reach it.
	m.jobs[0].JobCount = 99
	if m.modal.job.JobCount != 5 {
		t.Error("modal must capture the snapshot at open time")
	}

	// Resolve the selected URL to a local posting.
	cmd := m.resolveDetailCmd(m.modal.job.AllURLs()[0])
	m.Update(cmd())
	if got := m.modal.resolved["https://a.example"]; got != "abc123" {
		t.Errorf("resolved id = %q", got)
	}

	// Escape closes; controller state is otherwise unchanged.
	model, _ := m.handleModalKeys(keyMsg("esc"))
	m = model.(*adminModel)
	if m.modal != nil {
		t.Error("escape must close the modal")
	}
	if len(m.jobs) != 1 || m.submitting {
		t.Error("open/close must leave controller state unchanged")
	}
}

func TestModalRejectsIneligibleJobs(t *testing.T) {
	api := &fakeAPI{}
	m := newTestAdmin(api)
	m.jobs = []models.ScrapeJob{{ID: "J1", Status: models.JobStatusProcessing, JobCount: 0}}

	m.openModal()
	if m.modal != nil {
		t.Error("modal must only open for completed jobs with postings")
	}
}

func TestDetailLookupMiss(t *testing.T) {
	api := &fakeAPI{lookupID: ""}
	m := newTestAdmin(api)

	cmd := m.resolveDetailCmd("https://a.example")
	m.Update(cmd())

	if m.toast == nil || m.toast.text != "Không tìm thấy công việc" {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestDetailLookupError(t *testing.T) {
	api := &fakeAPI{lookupErr: errors.New("boom")}
	m := newTestAdmin(api)

	cmd := m.resolveDetailCmd("https://a.example")
	m.Update(cmd())

	if m.toast == nil || m.toast.text != "Lỗi khi tải thông tin công việc" {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestInitialHistoryLoadErrorTolerated(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("down")}
	m := NewAdminModel(api, 3).(*adminModel)

	m.Update(adminjobs.JobsLoadedMsg{Err: api.listErr})

	if !m.ready {
		t.Error("console must become ready even when the history load fails")
	}
	if len(m.jobs) != 0 {
		t.Error("history must stay empty on load failure")
	}
}
