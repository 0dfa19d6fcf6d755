// Package report builds the visitor report: it locates the record type that
// holds visitor data, fetches the filtered rows and renders them as HTML.
package report

import (
	"strings"
	"time"

	"github.com/scango/visitorgate/internal/query"
	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/types"
)

// Fields of the report form.
const (
	FieldDateFrom        = "date_from"
	FieldDateTo          = "date_to"
	FieldStatusFilter    = "status_filter"
	FieldBuildingFilter  = "building_filter"
	FieldPersonnelFilter = "security_personnel_filter"
	FieldReportData      = "report_data"
	FieldTotalVisitors   = "total_visitors"
	FieldReportStatus    = "report_status"
)

// Values of the report_status field.
const (
	StatusGenerated = "Generated"
	StatusError     = "Error"
)

// FormFields lists every report form field read or written by Generate.
var FormFields = []string{
	FieldDateFrom, FieldDateTo, FieldStatusFilter, FieldBuildingFilter, FieldPersonnelFilter,
	FieldReportData, FieldTotalVisitors, FieldReportStatus,
}

// outputFields are persisted after a successful report.
var outputFields = []string{FieldReportData, FieldTotalVisitors, FieldReportStatus}

// FilterSet narrows the visitor rows. Zero values mean "not set".
type FilterSet struct {
	DateFrom time.Time
	DateTo   time.Time
	Status   string
	Building string
	Approver string
}

// FilterSetFromRecord reads the filter fields of a report form.
func FilterSetFromRecord(rec *record.FieldRecord) FilterSet {
	fs := FilterSet{
		Status:   strings.TrimSpace(rec.String(FieldStatusFilter)),
		Building: strings.TrimSpace(rec.String(FieldBuildingFilter)),
		Approver: strings.TrimSpace(rec.String(FieldPersonnelFilter)),
	}
	if d, ok := rec.Date(FieldDateFrom); ok {
		fs.DateFrom = d
	}
	if d, ok := rec.Date(FieldDateTo); ok {
		fs.DateTo = d
	}
	return fs
}

// BuildFilters turns fs into query filters on the visitor record type.
// The date range is inclusive; a status equal to statusAll is ignored.
func BuildFilters(fs FilterSet, statusAll string) *query.Filters {
	f := query.NewFilters()

	from, to := !fs.DateFrom.IsZero(), !fs.DateTo.IsZero()
	switch {
	case from && to:
		f.Set("visit_date", query.Between(fs.DateFrom.Format(types.DateLayout), fs.DateTo.Format(types.DateLayout)))
	case from:
		f.Set("visit_date", query.AtLeast(fs.DateFrom.Format(types.DateLayout)))
	case to:
		f.Set("visit_date", query.AtMost(fs.DateTo.Format(types.DateLayout)))
	}

	if fs.Status != "" && fs.Status != statusAll {
		f.Set("status", query.Equals(fs.Status))
	}
	if fs.Building != "" {
		f.Set("building", query.Equals(fs.Building))
	}
	if fs.Approver != "" {
		f.Set("approved_by", query.Equals(fs.Approver))
	}
	return f
}
