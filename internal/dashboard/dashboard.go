// Package dashboard computes the security status counts shown on the
// Security Status Dashboard form.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/query"
	"github.com/scango/visitorgate/internal/record"
)

// Record types the counts are taken from.
const (
	PersonnelDocType = "SecurityPersonnel"
	BuildingDocType  = "Building Management"
)

// Dashboard form fields.
const (
	FieldActive      = "active_count"
	FieldInactive    = "inactive_count"
	FieldTotal       = "total_count"
	FieldAccessible  = "accessible_buildings_count"
	FieldLastUpdated = "last_updated"
)

// Employment and building statuses the counts filter on.
const (
	StatusOnDuty    = "ปฏิบัติงาน"
	StatusSuspended = "พักงาน"
	StatusOnLeave   = "ลางาน"
	BuildingOpen    = "เปิดใช้งาน"
)

// counter is one count shown on the dashboard.
type counter struct {
	field   string
	docType string
	filters func() *query.Filters
}

var counters = []counter{
	{FieldActive, PersonnelDocType, func() *query.Filters {
		return query.NewFilters().Set("employment_status", query.Equals(StatusOnDuty))
	}},
	{FieldInactive, PersonnelDocType, func() *query.Filters {
		return query.NewFilters().Set("employment_status", query.OneOf(StatusSuspended, StatusOnLeave))
	}},
	{FieldTotal, PersonnelDocType, func() *query.Filters { return nil }},
	{FieldAccessible, BuildingDocType, func() *query.Filters {
		return query.NewFilters().
			Set("is_visitor_accessible", query.Equals(1)).
			Set("status", query.Equals(BuildingOpen))
	}},
}

// Counts is the result of one Update.
type Counts struct {
	Active              int64
	Inactive            int64
	Total               int64
	AccessibleBuildings int64
	Updated             time.Time
	// Failed lists the fields whose count could not be read.
	Failed []string
}

// Dashboard fills the dashboard form from the site database.
type Dashboard struct {
	querier  query.Querier
	notifier notify.Notifier
	logger   *logger.Logger
	now      func() time.Time
}

// New creates a Dashboard.
func New(q query.Querier, n notify.Notifier, log *logger.Logger) *Dashboard {
	if n == nil {
		n = notify.Discard
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Dashboard{querier: q, notifier: n, logger: log, now: time.Now}
}

// Update recounts every dashboard figure and writes it into rec.
// A count that fails leaves its field untouched and is reported as a
// RemoteFailure notice; the other counts still run. An error is returned
// only when ctx ends.
func (d *Dashboard) Update(ctx context.Context, rec *record.FieldRecord) (Counts, error) {
	var counts Counts

	for _, c := range counters {
		n, err := d.querier.Count(ctx, c.docType, c.filters())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return counts, fmt.Errorf("dashboard update interrupted: %w", ctxErr)
			}
			d.logger.Warnf("Failed to count %s for %s: %v", c.docType, c.field, err)
			counts.Failed = append(counts.Failed, c.field)
			d.notifier.Warn(notify.Warning{
				Kind:     notify.RemoteFailure,
				Title:    "เกิดข้อผิดพลาด!",
				Message:  fmt.Sprintf("ไม่สามารถนับข้อมูลจาก %s", c.docType),
				Severity: notify.Red,
			})
			continue
		}

		rec.Set(c.field, n)
		switch c.field {
		case FieldActive:
			counts.Active = n
		case FieldInactive:
			counts.Inactive = n
		case FieldTotal:
			counts.Total = n
		case FieldAccessible:
			counts.AccessibleBuildings = n
		}
	}

	counts.Updated = d.now()
	rec.Set(FieldLastUpdated, counts.Updated)
	d.logger.Debugf("Dashboard: %d on duty, %d inactive, %d total, %d open buildings",
		counts.Active, counts.Inactive, counts.Total, counts.AccessibleBuildings)
	return counts, nil
}
