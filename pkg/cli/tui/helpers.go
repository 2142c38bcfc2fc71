package tui

import (
	"fmt"
	"strings"
	"time"

	"itworks-go/pkg/models"
)

// statusBadgeLabel returns the fixed Vietnamese label for a job status.
// Unrecognized values render as pending.
func statusBadgeLabel(status models.JobStatus) string {
	switch status {
	case models.JobStatusProcessing:
		return "Đang xử lý"
	case models.JobStatusCompleted:
		return "Hoàn thành"
	case models.JobStatusFailed:
		return "Thất bại"
	default:
		return "Đang chờ"
	}
}

// renderStatusBadge renders the styled badge for a job.
func renderStatusBadge(job *models.ScrapeJob) string {
	status := job.NormalizedStatus()
	return statusBadgeStyles[status].Render(statusBadgeLabel(status))
}

// progressCellText returns the textual progress cell of a history row:
// processed/total plus percent while processing, the posting count when
// completed, a dash otherwise.
func progressCellText(job *models.ScrapeJob) string {
	switch {
	case job.Status == models.JobStatusProcessing && job.TotalURLs > 0:
		return fmt.Sprintf("%d/%d URL (%d%%)", job.ProcessedURLs, job.TotalURLs, job.Progress)
	case job.Status == models.JobStatusCompleted:
		return fmt.Sprintf("%d công việc", job.JobCount)
	default:
		return "-"
	}
}

// renderProgressBar renders a fixed-width bar filled to percent. Values
// outside [0,100] are clamped for display only; the underlying snapshot is
// rendered as received.
func renderProgressBar(percent, width int) string {
	if width <= 0 {
		width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	bar := progressBarStyle.Render(strings.Repeat("█", filled)) +
		progressTrackStyle.Render(strings.Repeat("░", width-filled))
	return bar
}

// urlCellText returns the URL column of a history row: the first URL with an
// overflow suffix, or the legacy scalar for old entries.
func urlCellText(job *models.ScrapeJob, maxLen int) string {
	primary := job.PrimaryURL()
	if primary == "" {
		return "-"
	}
	cell := truncateURL(primary, maxLen)
	if n := job.URLOverflow(); n > 0 {
		cell += fmt.Sprintf(" +%d more", n)
	}
	return cell
}

// formatTimestamp renders a timestamp the way the portal does (vi-VN order,
// time before date); nil renders as "N/A".
func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("15:04:05 2/1/2006")
}

// truncateURL truncates a URL to the specified max length
func truncateURL(url string, maxLen int) string {
	if maxLen < 4 || len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}

// renderErrorView renders a standard error view with exit message
func renderErrorView(err error) string {
	return "\n" + renderError(fmt.Sprintf("Error: %v", err)) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderEmptyState renders a standard empty state message
func renderEmptyState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	}
	return selected, false
}
