// Package notify implements the schedule notification scheduler: a polling
// scan over the session user's schedules that fires at most one alert per
// schedule, ever.
package notify

import (
	"context"

	"github.com/arvo-app/arvo/internal/logging"
)

// Severity classifies an alert for the delivery mechanism.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Alerter delivers a single alert to the user. Implementations may show a
// desktop notification, an in-app banner, play a sound, or simply log.
type Alerter interface {
	Alert(ctx context.Context, title, body string, severity Severity)
}

// LogAlerter delivers alerts through the structured logger. It is the
// default in-process delivery for the CLI surface.
type LogAlerter struct {
	log logging.Logger
}

// NewLogAlerter returns an Alerter writing to log.
func NewLogAlerter(log logging.Logger) *LogAlerter {
	return &LogAlerter{log: log}
}

func (a *LogAlerter) Alert(ctx context.Context, title, body string, severity Severity) {
	if severity == SeverityWarning {
		a.log.Warn(ctx, title, "alert", body)
		return
	}
	a.log.Info(ctx, title, "alert", body)
}
