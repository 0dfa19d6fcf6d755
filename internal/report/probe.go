package report

import (
	"context"
	"fmt"

	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/query"
)

// State is the position of the candidate probe.
type State int

const (
	StateProbing State = iota
	StateFound
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateProbing:
		return "probing"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Discovery is the outcome of probing the candidate record types.
type Discovery struct {
	State   State
	DocType string
	// Probed lists every candidate queried, in order.
	Probed []string
}

// Prober finds the first candidate record type that answers a list query.
type Prober struct {
	querier    query.Querier
	candidates []string
	logger     *logger.Logger
}

// NewProber creates a Prober over candidates, tried in order.
func NewProber(q query.Querier, candidates []string, log *logger.Logger) *Prober {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Prober{
		querier:    q,
		candidates: append([]string(nil), candidates...),
		logger:     log,
	}
}

// Discover probes candidates one at a time with a one-row list query.
// A candidate is found when the query succeeds with a defined response; an
// error or an undefined response moves on to the next one. Candidates after
// the first hit are never queried.
//
// The returned error is non-nil only when ctx ends.
func (p *Prober) Discover(ctx context.Context) (Discovery, error) {
	d := Discovery{State: StateProbing}
	index := 0

	for d.State == StateProbing {
		if index >= len(p.candidates) {
			d.State = StateExhausted
			break
		}
		if err := ctx.Err(); err != nil {
			return d, fmt.Errorf("probe interrupted: %w", err)
		}

		name := p.candidates[index]
		d.Probed = append(d.Probed, name)

		rows, err := p.querier.List(ctx, query.ListRequest{
			DocType: name,
			Fields:  []string{"name"},
			Limit:   1,
		})
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return d, fmt.Errorf("probe interrupted: %w", ctxErr)
			}
			if query.IsMissingTable(err) {
				p.logger.Debugf("Candidate %q has no table", name)
			} else {
				p.logger.Debugf("Candidate %q failed: %v", name, err)
			}
			index++
		case rows == nil:
			p.logger.Debugf("Candidate %q returned no response", name)
			index++
		default:
			d.State = StateFound
			d.DocType = name
		}
	}

	if d.State == StateFound {
		p.logger.Infof("Found visitor record type %q after %d probe(s)", d.DocType, len(d.Probed))
	} else {
		p.logger.Warnf("No visitor record type among %d candidate(s)", len(d.Probed))
	}
	return d, nil
}
