package cli

import (
	"fmt"
	"time"

	"itworks-go/pkg/cli/client"
	"itworks-go/pkg/cli/tui"
	"itworks-go/pkg/config"

	tea "github.com/charmbracelet/bubbletea"
)

type App struct {
	cfg    *config.Config
	client *client.Client
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg: cfg,
	}
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.cfg.CLI.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}

	timeout := time.Duration(a.cfg.CLI.RequestTimeout) * time.Second
	a.client = client.NewClient(a.cfg.CLI.BaseURL, timeout)
	return a.client, nil
}

// Run starts the interactive console.
func (a *App) Run() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	model := tui.NewRootModel(apiClient, a.cfg.CLI.PollInterval)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console exited with error: %w", err)
	}
	return nil
}
