// Package notify carries user-visible, non-fatal notices from the form
// engine and the report generator to whoever is presenting them.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/gookit/color"

	"github.com/scango/visitorgate/internal/logger"
)

// Kind classifies a notice.
type Kind string

const (
	KindNone           Kind = ""
	InvalidDate        Kind = "InvalidDate"
	InvalidFormat      Kind = "InvalidFormat"
	DataSourceNotFound Kind = "DataSourceNotFound"
	RemoteFailure      Kind = "RemoteFailure"
)

// Severity is the indicator colour a notice is shown with.
type Severity string

const (
	Red    Severity = "red"
	Orange Severity = "orange"
	Blue   Severity = "blue"
	Green  Severity = "green"
)

// Warning is one user-facing notice.
type Warning struct {
	Kind     Kind
	Title    string
	Message  string
	Severity Severity
}

func (w Warning) Error() string {
	if w.Title == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Title, w.Message)
}

// Notifier shows notices to the user. Warn must never block.
type Notifier interface {
	Warn(w Warning)
}

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Warn(Warning) {}

// LogNotifier writes notices to the structured log.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a LogNotifier; a nil logger uses the default.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewDefault()
	}
	return &LogNotifier{log: log}
}

// Warn implements Notifier.
func (n *LogNotifier) Warn(w Warning) {
	args := []interface{}{"kind", string(w.Kind), "title", w.Title, "severity", string(w.Severity)}
	switch w.Severity {
	case Red, Orange:
		n.log.Warnw(w.Message, args...)
	default:
		n.log.Infow(w.Message, args...)
	}
}

// ConsoleNotifier prints notices to a terminal, coloured by severity.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

var severityStyles = map[Severity]color.Style{
	Red:    color.New(color.FgRed, color.OpBold),
	Orange: color.New(color.FgYellow, color.OpBold),
	Blue:   color.New(color.FgBlue),
	Green:  color.New(color.FgGreen),
}

// Warn implements Notifier.
func (n *ConsoleNotifier) Warn(w Warning) {
	style, ok := severityStyles[w.Severity]
	if !ok {
		style = color.New(color.FgDefault)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if w.Title != "" {
		fmt.Fprintf(n.out, "%s %s\n", style.Sprint("["+w.Title+"]"), w.Message)
		return
	}
	fmt.Fprintln(n.out, style.Sprint(w.Message))
}

// Recorder keeps every notice it receives.
type Recorder struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warn implements Notifier.
func (r *Recorder) Warn(w Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, w)
}

// Warnings returns a copy of the recorded notices.
func (r *Recorder) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Warning(nil), r.warnings...)
}

// Kinds returns the kind of each recorded notice in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kinds []Kind
	for _, w := range r.warnings {
		kinds = append(kinds, w.Kind)
	}
	return kinds
}

// Reset forgets every recorded notice.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = nil
}

// Multi fans a notice out to several notifiers.
func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}

type multi []Notifier

func (m multi) Warn(w Warning) {
	for _, n := range m {
		n.Warn(w)
	}
}
