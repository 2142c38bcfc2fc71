package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"itworks-go/pkg/models"
)

// Define a consistent color palette
var (
	// Colors
	colorPrimary   = lipgloss.Color("62")  // Purple/blue
	colorSecondary = lipgloss.Color("244") // Gray
	colorSuccess   = lipgloss.Color("42")  // Green
	colorError     = lipgloss.Color("196") // Red
	colorWarning   = lipgloss.Color("214") // Orange/Yellow
	colorInfo      = lipgloss.Color("39")  // Cyan
	colorMuted     = lipgloss.Color("240") // Dark gray
	colorBorder    = lipgloss.Color("238") // Border gray
)

// Reusable style definitions
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	boldStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	urlStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginRight(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	selectedMarkerStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	dividerStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	idStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	progressBarStyle = lipgloss.NewStyle().
				Foreground(colorInfo)

	progressTrackStyle = lipgloss.NewStyle().
				Foreground(colorBorder)
)

// Toast styles, one per kind
var (
	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("231")).
				Background(colorSuccess).
				Bold(true).
				Padding(0, 1)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(colorError).
			Bold(true).
			Padding(0, 1)
)

// Status badge styles keyed by normalized job status
var statusBadgeStyles = map[models.JobStatus]lipgloss.Style{
	models.JobStatusPending:    lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
	models.JobStatusProcessing: lipgloss.NewStyle().Foreground(colorInfo).Bold(true),
	models.JobStatusCompleted:  lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
	models.JobStatusFailed:     lipgloss.NewStyle().Foreground(colorError).Bold(true),
}

// Helper functions for common formatting patterns
func renderTitle(title string) string {
	return "\n" + titleStyle.Render(title) + "\n"
}

func renderSuccess(msg string) string {
	return successStyle.Render("✓ " + msg)
}

func renderError(msg string) string {
	return errorStyle.Render("❌ " + msg)
}

func renderDivider(length int) string {
	return dividerStyle.Render(strings.Repeat("─", length))
}
