package report

import (
	"context"
	"fmt"
	"time"

	"github.com/scango/visitorgate/internal/config"
	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/query"
	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/types"
)

// Saver persists fields of a form record.
type Saver interface {
	Save(ctx context.Context, rec *record.FieldRecord, fields []string) error
}

// Result summarises one Generate call.
type Result struct {
	Discovery Discovery
	Visitors  []VisitorRecord
	Total     int
	// Status is the report_status written, "" when none was.
	Status string
	HTML   string
	Saved  bool
	// Generated is the time stamped into the rendered table.
	Generated time.Time
	// FetchError is the fetch failure rendered into the report, if any.
	FetchError error
}

// Generator fills a report form from the visitor data of the site.
type Generator struct {
	querier  query.Querier
	saver    Saver
	notifier notify.Notifier
	cfg      config.ReportConfig
	logger   *logger.Logger
	now      func() time.Time
}

// NewGenerator creates a Generator. A nil saver leaves the form unsaved.
func NewGenerator(q query.Querier, s Saver, n notify.Notifier, cfg config.ReportConfig, log *logger.Logger) *Generator {
	if n == nil {
		n = notify.Discard
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if len(cfg.Candidates) == 0 {
		cfg.Candidates = config.DefaultCandidates()
	}
	return &Generator{
		querier:  q,
		saver:    s,
		notifier: n,
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
	}
}

// Generate runs the report for rec: probe, fetch, render, save.
// Missing data sources and fetch failures are rendered into report_data and
// do not return an error. Errors are returned only when ctx ends or the
// form cannot be saved.
func (g *Generator) Generate(ctx context.Context, rec *record.FieldRecord) (*Result, error) {
	log := g.logger.WithDocument(rec.Name)

	rec.Set(FieldReportData, RenderLoading())
	rec.Refresh(FieldReportData)

	disc, err := NewProber(g.querier, g.cfg.Candidates, log).Discover(ctx)
	if err != nil {
		return nil, err
	}
	res := &Result{Discovery: disc}

	if disc.State != StateFound {
		res.HTML = RenderNotFound(disc.Probed)
		rec.Set(FieldReportData, res.HTML)
		rec.Refresh(FieldReportData)
		g.notifier.Warn(notify.Warning{
			Kind:     notify.DataSourceNotFound,
			Title:    "ไม่พบ DocType!",
			Message:  "ไม่พบ DocType สำหรับข้อมูลผู้เยี่ยม",
			Severity: notify.Red,
		})
		return res, nil
	}

	fs := FilterSetFromRecord(rec)
	filters := BuildFilters(fs, g.cfg.StatusAll)
	limit := g.cfg.EffectiveRowLimit()
	log.WithFields(map[string]interface{}{
		"date_from": logDate(fs.DateFrom),
		"date_to":   logDate(fs.DateTo),
		"status":    fs.Status,
		"building":  fs.Building,
		"approver":  fs.Approver,
	}).Debugf("Fetching %s with filters on %v (limit %d)", disc.DocType, filters.Fields(), limit)

	rows, err := g.querier.List(ctx, query.ListRequest{
		DocType: disc.DocType,
		Filters: filters,
		Fields:  VisitorFields,
		OrderBy: []query.Order{{Field: "creation", Descending: true}},
		Limit:   limit,
	})

	switch {
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch interrupted: %w", ctxErr)
		}
		log.Errorf("Failed to fetch visitors from %s: %v", disc.DocType, err)
		res.FetchError = err
		res.Status = StatusError
		res.HTML = RenderError(disc.DocType, err.Error())
		rec.Set(FieldReportData, res.HTML)
		rec.Set(FieldReportStatus, StatusError)
		g.notifier.Warn(notify.Warning{
			Kind:     notify.RemoteFailure,
			Title:    "เกิดข้อผิดพลาด!",
			Message:  fmt.Sprintf("ไม่สามารถดึงข้อมูลจาก %s", disc.DocType),
			Severity: notify.Red,
		})

	case rows == nil:
		res.Status = StatusGenerated
		res.HTML = RenderUndefined(disc.DocType)
		rec.Set(FieldReportData, res.HTML)
		rec.Set(FieldTotalVisitors, 0)
		rec.Set(FieldReportStatus, StatusGenerated)

	default:
		res.Visitors = VisitorsFromRows(rows)
		res.Total = len(res.Visitors)
		res.Status = StatusGenerated
		res.Generated = g.now()
		res.HTML = Render(Table{
			DocType:   disc.DocType,
			Visitors:  res.Visitors,
			Generated: res.Generated,
			Limit:     limit,
		})
		rec.Set(FieldTotalVisitors, res.Total)
		rec.Set(FieldReportData, res.HTML)
		rec.Set(FieldReportStatus, StatusGenerated)
		g.notifier.Warn(notify.Warning{
			Message:  fmt.Sprintf("สร้างรายงานสำเร็จ! DocType: %s, พบ %d รายการ", disc.DocType, res.Total),
			Severity: notify.Green,
		})

		if g.saver != nil {
			if err := g.saver.Save(ctx, rec, outputFields); err != nil {
				return res, fmt.Errorf("failed to save report %s: %w", rec.Name, err)
			}
			res.Saved = true
		}
	}

	rec.Refresh(FieldReportData)
	log.Infof("Report %s: %s, %d visitor(s) from %s", rec.Name, res.Status, res.Total, disc.DocType)
	return res, nil
}

func logDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(types.DateLayout)
}
