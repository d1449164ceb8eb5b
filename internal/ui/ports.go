package ui

import (
	"context"

	"hoax-detector/client/internal/hoaxapi"
	"hoax-detector/client/internal/present"
)

// Predictor calls the classification endpoint.
type Predictor interface {
	Predict(ctx context.Context, text string) (hoaxapi.Payload, error)
}

// HealthChecker probes the backend at startup.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// StatusLevel styles a status line.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusError
)

func (l StatusLevel) String() string {
	switch l {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "info"
	}
}

// Display is the surface the orchestrator writes to. Implementations must not
// block; the orchestrator may call them while holding its lock.
type Display interface {
	SetStatus(message string, level StatusLevel)
	ClearStatus()
	ShowResult(state present.RenderState)
	HideResult()
	SetBusy(busy bool)
	SetSubmitEnabled(enabled bool)
	SetTheme(theme Theme)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Sharer hands text to a native share facility.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, title, text string) error
}

// PreferenceStore persists user preferences by key.
type PreferenceStore interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
}
