// Package ui wires user actions to the prediction pipeline and owns the
// per-session state.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"hoax-detector/client/internal/apperr"
	"hoax-detector/client/internal/config"
	"hoax-detector/client/internal/prediction"
	"hoax-detector/client/internal/present"
)

// Phase is the submit state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Session is the state that lives for one UI session. Success and Failed
// accept a new submit just like Idle.
type Session struct {
	LastShareText string
	Loading       bool
	Phase         Phase
}

var (
	// ErrBusy rejects a submit while another one is pending.
	ErrBusy = errors.New("submit already in progress")
	// ErrNoResult rejects copy/share before any successful prediction.
	ErrNoResult = errors.New("no prediction to share yet")
)

// Deps collects the orchestrator collaborators. Clipboard, Sharer and
// Preferences are optional.
type Deps struct {
	BaseURL     string
	Predictor   Predictor
	Health      HealthChecker
	Display     Display
	Clipboard   Clipboard
	Sharer      Sharer
	Preferences PreferenceStore
}

// Orchestrator drives the submit state machine and the copy/share/theme actions.
type Orchestrator struct {
	deps    Deps
	baseURL string

	mu             sync.Mutex
	session        Session
	submitDisabled bool
	theme          Theme
}

// New constructs an Orchestrator. Display must be non-nil.
func New(deps Deps) *Orchestrator {
	return &Orchestrator{
		deps:    deps,
		baseURL: config.Resolve(deps.BaseURL),
		theme:   DefaultTheme,
	}
}

// Session returns a snapshot of the session state.
func (o *Orchestrator) Session() Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session
}

// Theme returns the active theme.
func (o *Orchestrator) Theme() Theme {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.theme
}

// SubmitEnabled reports whether startup left submission available.
func (o *Orchestrator) SubmitEnabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return !o.submitDisabled
}

// Startup restores the theme, validates configuration and probes the backend.
// A missing base URL disables submission for the rest of the session.
func (o *Orchestrator) Startup(ctx context.Context) error {
	o.RestoreTheme(ctx)

	if o.baseURL == "" {
		o.mu.Lock()
		o.submitDisabled = true
		o.deps.Display.SetSubmitEnabled(false)
		o.deps.Display.SetStatus(MsgMissingConfig, StatusError)
		o.mu.Unlock()
		logrus.Error("backend base URL is not configured")
		return apperr.Configuration(MsgMissingConfig)
	}

	o.mu.Lock()
	o.deps.Display.SetSubmitEnabled(true)
	o.deps.Display.SetStatus(fmt.Sprintf(MsgUsingBackend, o.baseURL), StatusInfo)
	o.mu.Unlock()

	if o.deps.Health == nil {
		return nil
	}
	if err := o.deps.Health.CheckHealth(ctx); err != nil {
		o.mu.Lock()
		o.deps.Display.SetStatus(apperr.Message(err, MsgUnexpected), StatusError)
		o.mu.Unlock()
		return err
	}

	o.mu.Lock()
	o.deps.Display.SetStatus(fmt.Sprintf(MsgConnected, o.baseURL), StatusSuccess)
	o.mu.Unlock()
	logrus.WithField("base_url", o.baseURL).Info("backend reachable")
	return nil
}

// Submit runs one prediction for text. Empty input is rejected before any
// network call and a second submit while one is pending returns ErrBusy.
func (o *Orchestrator) Submit(ctx context.Context, text string) error {
	o.mu.Lock()
	if o.session.Loading {
		o.mu.Unlock()
		return ErrBusy
	}
	display := o.deps.Display
	if o.submitDisabled {
		display.SetStatus(MsgMissingConfig, StatusError)
		o.mu.Unlock()
		return apperr.Configuration(MsgMissingConfig)
	}

	display.ClearStatus()
	display.HideResult()
	o.session = Session{Phase: PhaseIdle}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		display.SetStatus(MsgEmptyInput, StatusError)
		o.mu.Unlock()
		return apperr.Validation(MsgEmptyInput)
	}

	o.session.Loading = true
	o.session.Phase = PhaseSubmitting
	display.SetStatus(MsgProcessing, StatusInfo)
	display.SetBusy(true)
	o.mu.Unlock()

	state, err := o.run(ctx, trimmed)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.session.Loading = false
	display.SetBusy(false)
	if err != nil {
		o.session.Phase = PhaseFailed
		display.SetStatus(apperr.Message(err, MsgUnexpected), StatusError)
		logrus.WithError(err).WithField("kind", apperr.KindOf(err).String()).Warn("prediction failed")
		return err
	}

	o.session.Phase = PhaseSuccess
	o.session.LastShareText = state.ShareText
	display.ShowResult(state)
	display.SetStatus(MsgSuccess, StatusSuccess)
	logrus.WithFields(logrus.Fields{
		"verdict": state.Verdict.String(),
		"badge":   string(state.Badge.Class),
	}).Info("prediction rendered")
	return nil
}

func (o *Orchestrator) run(ctx context.Context, text string) (present.RenderState, error) {
	if o.deps.Predictor == nil {
		return present.RenderState{}, apperr.Configuration(MsgMissingConfig)
	}
	payload, err := o.deps.Predictor.Predict(ctx, text)
	if err != nil {
		return present.RenderState{}, err
	}
	p, err := prediction.Normalize(payload)
	if err != nil {
		return present.RenderState{}, err
	}
	return present.Present(p, text), nil
}

// Copy writes the last share text to the clipboard.
func (o *Orchestrator) Copy(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.copyLocked(MsgNothingToCopy)
}

func (o *Orchestrator) copyLocked(emptyMessage string) error {
	display := o.deps.Display
	text := o.session.LastShareText
	if text == "" {
		display.SetStatus(emptyMessage, StatusError)
		return ErrNoResult
	}
	if o.deps.Clipboard == nil {
		display.SetStatus(MsgCopyFailed, StatusError)
		return errors.New("clipboard unavailable")
	}
	if err := o.deps.Clipboard.WriteText(text); err != nil {
		logrus.WithError(err).Warn("copy to clipboard failed")
		display.SetStatus(MsgCopyFailed, StatusError)
		return fmt.Errorf("copy: %w", err)
	}
	display.SetStatus(MsgCopied, StatusSuccess)
	return nil
}

// Share hands the last share text to the native sharer, falling back to the
// clipboard when no sharer is available.
func (o *Orchestrator) Share(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	display := o.deps.Display
	text := o.session.LastShareText
	if text == "" {
		display.SetStatus(MsgNothingToShare, StatusError)
		return ErrNoResult
	}
	if o.deps.Sharer == nil || !o.deps.Sharer.Available() {
		return o.copyLocked(MsgNothingToShare)
	}
	if err := o.deps.Sharer.Share(ctx, present.ShareTitle, text); err != nil {
		logrus.WithError(err).Warn("share failed")
		display.SetStatus(MsgShareFailed, StatusError)
		return fmt.Errorf("share: %w", err)
	}
	display.SetStatus(MsgShared, StatusSuccess)
	return nil
}

// ToggleTheme flips and persists the theme.
func (o *Orchestrator) ToggleTheme(ctx context.Context) (Theme, error) {
	next := o.Theme().Toggle()
	return next, o.SetTheme(ctx, next)
}

// SetTheme applies and persists theme. The theme is applied even when the
// preference cannot be saved.
func (o *Orchestrator) SetTheme(ctx context.Context, theme Theme) error {
	o.mu.Lock()
	o.theme = theme
	o.deps.Display.SetTheme(theme)
	o.mu.Unlock()

	if o.deps.Preferences == nil {
		return nil
	}
	if err := o.deps.Preferences.SetPreference(ctx, themePreferenceKey, string(theme)); err != nil {
		logrus.WithError(err).WithField("theme", theme).Warn("persist theme preference")
		o.mu.Lock()
		o.deps.Display.SetStatus(MsgThemeSaveFail, StatusError)
		o.mu.Unlock()
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// RestoreTheme applies the saved theme preference, or the default theme when
// none is stored or it cannot be read.
func (o *Orchestrator) RestoreTheme(ctx context.Context) Theme {
	theme := DefaultTheme
	if o.deps.Preferences != nil {
		value, ok, err := o.deps.Preferences.GetPreference(ctx, themePreferenceKey)
		switch {
		case err != nil:
			logrus.WithError(err).Warn("load theme preference")
		case ok:
			if parsed, valid := ParseTheme(value); valid {
				theme = parsed
			} else {
				logrus.WithField("value", value).Warn("ignore unknown theme preference")
			}
		}
	}
	o.mu.Lock()
	o.theme = theme
	o.deps.Display.SetTheme(theme)
	o.mu.Unlock()
	return theme
}
