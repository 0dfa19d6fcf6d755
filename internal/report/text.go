package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// textColumns are the columns of the terminal report, with a display width cap.
var textColumns = []struct {
	title string
	max   int
	value func(v VisitorRecord) string
}{
	{"รหัส", 16, func(v VisitorRecord) string { return v.Name }},
	{"ชื่อผู้เยี่ยม", 24, func(v VisitorRecord) string { return v.VisitorName }},
	{"วันที่เยี่ยม", 10, func(v VisitorRecord) string { return v.VisitDate }},
	{"อาคาร", 16, func(v VisitorRecord) string { return v.Building }},
	{"สถานะ", 12, func(v VisitorRecord) string { return v.Status }},
	{"อนุมัติโดย", 16, func(v VisitorRecord) string { return v.ApprovedBy }},
}

var statusColors = map[string]color.Style{
	"bg-warning text-dark": color.New(color.FgYellow),
	"bg-success":           color.New(color.FgGreen),
	"bg-danger":            color.New(color.FgRed),
	"bg-info":              color.New(color.FgCyan),
	"bg-secondary":         color.New(color.FgGray),
	"bg-light text-dark":   color.New(color.FgDefault),
}

// RenderText writes the report as an aligned terminal table. Widths are
// measured in display cells so Thai combining marks do not skew columns.
func RenderText(w io.Writer, t Table) error {
	if len(t.Visitors) == 0 {
		_, err := fmt.Fprintf(w, "ไม่พบข้อมูลผู้เยี่ยมตามเงื่อนไขที่กำหนด (DocType: %s)\n", t.DocType)
		return err
	}

	widths := make([]int, len(textColumns))
	for i, col := range textColumns {
		widths[i] = runewidth.StringWidth(col.title)
		for _, v := range t.Visitors {
			if cw := runewidth.StringWidth(clip(col.value(v), col.max)); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DocType: %s | จำนวน: %d รายการ | %s\n", t.DocType, len(t.Visitors), ThaiTimestamp(t.Generated))

	cells := make([]string, len(textColumns))
	for i, col := range textColumns {
		cells[i] = color.OpBold.Sprint(runewidth.FillRight(col.title, widths[i]))
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteByte('\n')

	for i := range textColumns {
		cells[i] = strings.Repeat("-", widths[i])
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteByte('\n')

	for _, v := range t.Visitors {
		for i, col := range textColumns {
			cell := runewidth.FillRight(clip(col.value(v), col.max), widths[i])
			if col.title == "สถานะ" {
				cell = statusStyle(v.Status).Sprint(cell)
			}
			cells[i] = cell
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func statusStyle(status string) color.Style {
	class, ok := badgeClasses[status]
	if !ok {
		class = unknownBadgeClass
	}
	return statusColors[class]
}

func clip(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "…")
}
