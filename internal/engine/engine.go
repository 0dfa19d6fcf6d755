// Package engine computes derived form fields (age, gender, visit duration,
// conditional detail visibility, identifier formatting) from the values the
// user has entered. Every operation is synchronous, idempotent and never
// fails: invalid input clears the offending fields and raises a notice.
package engine

import (
	"time"

	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/types"
)

// Sentinel values stored in the forms.
const (
	GenderMale        = "ชาย"
	GenderFemale      = "หญิง"
	GenderUnspecified = "ไม่ระบุ"
	OtherOption       = "อื่นๆ"
)

// Engine applies derived-field rules to FieldRecords.
type Engine struct {
	notifier notify.Notifier
	logger   *logger.Logger
	now      func() time.Time
}

// New creates an Engine reporting notices to n.
func New(n notify.Notifier, log *logger.Logger) *Engine {
	if n == nil {
		n = notify.Discard
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Engine{
		notifier: n,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock replaces the engine's clock. It returns e for chaining.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Today returns the current calendar date.
func (e *Engine) Today() time.Time {
	return types.DateOf(e.now())
}

func (e *Engine) warn(w notify.Warning) {
	e.logger.Debugw("form notice", "kind", string(w.Kind), "message", w.Message)
	e.notifier.Warn(w)
}
