package editor

import (
	"context"
	"log/slog"
	"time"
)

type (
	// Alerts is the queue of messages shown to the user. Alerts with the same
	// non-empty name replace each other; the rest stack up until they expire.
	Alerts struct {
		alerts []Alert
		logger *slog.Logger
	}

	Alert struct {
		Name      string
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const (
	defaultAlertDuration = 3 * time.Second
	fadeTime             = 250 * time.Millisecond
)

func (p AlertPriority) level() slog.Level {
	switch p {
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (p AlertPriority) String() string {
	switch p {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Update advances the alerts by d, dropping the expired ones. FadeLevel
// rises from 0 to 1 during the first fadeTime of an alert and falls back to
// 0 during its last. It reports whether anything is still animating.
func (m *Alerts) Update(d time.Duration) (animating bool) {
	kept := m.alerts[:0]
	for _, a := range m.alerts {
		a.Duration -= d
		if a.Duration <= 0 {
			continue
		}
		level := min(a.FadeLevel+d.Seconds()/fadeTime.Seconds(), 1, a.Duration.Seconds()/fadeTime.Seconds())
		if level != a.FadeLevel {
			a.FadeLevel = level
			animating = true
		}
		kept = append(kept, a)
	}
	clear(m.alerts[len(kept):])
	m.alerts = kept
	return animating || len(m.alerts) > 0
}

// Iterate yields the alerts, oldest first.
func (m *Alerts) Iterate(yield func(index int, alert Alert) bool) {
	for i, a := range m.alerts {
		if !yield(i, a) {
			return
		}
	}
}

func (m *Alerts) Len() int { return len(m.alerts) }

// Last returns the most recent alert.
func (m *Alerts) Last() (Alert, bool) {
	if len(m.alerts) == 0 {
		return Alert{}, false
	}
	return m.alerts[len(m.alerts)-1], true
}

func (m *Alerts) Add(message string, priority AlertPriority) {
	m.AddAlert(Alert{
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	m.AddAlert(Alert{
		Name:     name,
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

func (m *Alerts) AddAlert(a Alert) {
	if m.logger != nil {
		m.logger.Log(context.Background(), a.Priority.level(), a.Message, "alert", a.Name)
	}
	if a.Name != "" {
		for i := range m.alerts {
			if m.alerts[i].Name == a.Name {
				a.FadeLevel = m.alerts[i].FadeLevel
				m.alerts[i] = a
				return
			}
		}
	}
	m.alerts = append(m.alerts, a)
}

func (m *Alerts) Clear() {
	clear(m.alerts)
	m.alerts = m.alerts[:0]
}
