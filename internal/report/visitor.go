package report

import (
	"github.com/scango/visitorgate/internal/types"
)

// VisitorFields is the fixed projection fetched for each visitor.
var VisitorFields = []string{
	"name", "visitor_name", "visitor_phone", "company",
	"visit_date", "visit_time", "purpose", "building",
	"status", "approved_by", "check_in_time", "check_out_time",
	"creation",
}

// VisitorRecord is one visitor row as displayed. Absent values are "".
type VisitorRecord struct {
	Name         string
	VisitorName  string
	Phone        string
	Company      string
	VisitDate    string
	VisitTime    string
	Purpose      string
	Building     string
	Status       string
	ApprovedBy   string
	CheckInTime  string
	CheckOutTime string
	Creation     string
}

// VisitorFromRow converts a query row.
func VisitorFromRow(row types.Row) VisitorRecord {
	return VisitorRecord{
		Name:         row.String("name"),
		VisitorName:  row.String("visitor_name"),
		Phone:        row.String("visitor_phone"),
		Company:      row.String("company"),
		VisitDate:    row.String("visit_date"),
		VisitTime:    row.String("visit_time"),
		Purpose:      row.String("purpose"),
		Building:     row.String("building"),
		Status:       row.String("status"),
		ApprovedBy:   row.String("approved_by"),
		CheckInTime:  row.String("check_in_time"),
		CheckOutTime: row.String("check_out_time"),
		Creation:     row.String("creation"),
	}
}

// VisitorsFromRows converts every row, keeping order.
func VisitorsFromRows(rows []types.Row) []VisitorRecord {
	visitors := make([]VisitorRecord, len(rows))
	for i, row := range rows {
		visitors[i] = VisitorFromRow(row)
	}
	return visitors
}
