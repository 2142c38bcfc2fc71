package cli

import (
	"fmt"
	"strings"

	"itworks-go/pkg/config"

	"github.com/pelletier/go-toml/v2"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		fmt.Printf("Error marshaling config: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// SetConfig sets a configuration value
// Format: section.key=value (e.g., "cli.base_url=http://localhost:8080")
func (a *App) SetConfig(setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	keyPath := strings.Split(parts[0], ".")
	value := parts[1]

	if len(keyPath) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}

	section := keyPath[0]
	key := keyPath[1]

	switch section {
	case "cli":
		switch key {
		case "base_url":
			a.cfg.CLI.BaseURL = value
		case "poll_interval":
			var interval int
			if _, err := fmt.Sscanf(value, "%d", &interval); err != nil {
				return fmt.Errorf("invalid poll_interval value: %s", value)
			}
			a.cfg.CLI.PollInterval = interval
		case "request_timeout":
			var timeout int
			if _, err := fmt.Sscanf(value, "%d", &timeout); err != nil {
				return fmt.Errorf("invalid request_timeout value: %s", value)
			}
			a.cfg.CLI.RequestTimeout = timeout
		default:
			return fmt.Errorf("unknown cli key: %s", key)
		}
	case "api":
		switch key {
		case "host":
			a.cfg.API.Host = value
		case "port":
			var port int
			if _, err := fmt.Sscanf(value, "%d", &port); err != nil {
				return fmt.Errorf("invalid port value: %s", value)
			}
			a.cfg.API.Port = port
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	case "pipeline":
		switch key {
		case "step_delay_ms":
			var delay int
			if _, err := fmt.Sscanf(value, "%d", &delay); err != nil {
				return fmt.Errorf("invalid step_delay_ms value: %s", value)
			}
			a.cfg.Pipeline.StepDelayMs = delay
		case "postings_per_url":
			var n int
			if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
				return fmt.Errorf("invalid postings_per_url value: %s", value)
			}
			a.cfg.Pipeline.PostingsPerURL = n
		default:
			return fmt.Errorf("unknown pipeline key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	return config.Save(a.cfg)
}
