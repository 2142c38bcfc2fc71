package adminjobs

import "time"

// Focus constants for the admin console state machine
const (
	FocusInput = iota
	FocusHistory
)

// DefaultPollInterval is the cadence of the job status poller.
const DefaultPollInterval = 3 * time.Second

// ToastLifetime is how long a toast stays visible before auto-dismissal.
const ToastLifetime = 5 * time.Second

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 100
