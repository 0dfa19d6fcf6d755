package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// badgeClasses maps known statuses, Thai and English, to badge classes.
var badgeClasses = map[string]string{
	"รออนุมัติ": "bg-warning text-dark",
	"อนุมัติ":   "bg-success",
	"ปฏิเสธ":   "bg-danger",
	"เข้าแล้ว":  "bg-info",
	"ออกแล้ว":  "bg-secondary",

	"Draft":       "bg-light text-dark",
	"Pending":     "bg-warning text-dark",
	"Approved":    "bg-success",
	"Rejected":    "bg-danger",
	"Checked In":  "bg-info",
	"Checked Out": "bg-secondary",
}

const unknownBadgeClass = "bg-light text-dark"

// StatusBadge renders status as a badge. Unknown statuses keep their text on
// a neutral badge; an empty status renders a dash.
func StatusBadge(status string) template.HTML {
	if status == "" {
		return template.HTML("<span class='badge bg-secondary'>-</span>")
	}
	class, ok := badgeClasses[status]
	if !ok {
		class = unknownBadgeClass
	}
	return template.HTML(fmt.Sprintf("<span class='badge %s'>%s</span>", class, template.HTMLEscapeString(status)))
}

// ThaiTimestamp formats t like a th-TH locale clock: day/month/Buddhist year.
func ThaiTimestamp(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %02d:%02d:%02d",
		t.Day(), int(t.Month()), t.Year()+543, t.Hour(), t.Minute(), t.Second())
}

// groupThousands renders n with comma separators.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var templates = template.Must(template.New("report").Funcs(template.FuncMap{
	"badge":    StatusBadge,
	"thousand": groupThousands,
}).Parse(`
{{- define "loading" -}}
<div class="text-center"><i class="fa fa-spinner fa-spin"></i> กำลังสร้างรายงาน...</div>
{{- end -}}

{{- define "notfound" -}}
<div class="alert alert-danger">
    <h5>ไม่พบ DocType!</h5>
    <p>ไม่พบ DocType สำหรับข้อมูลผู้เยี่ยม</p>
    <small>ตรวจสอบแล้ว: {{ .Probed }}</small>
</div>
{{- end -}}

{{- define "error" -}}
<div class="alert alert-danger">
    <h5>เกิดข้อผิดพลาด!</h5>
    <p>ไม่สามารถดึงข้อมูลจาก {{ .DocType }}</p>
    <pre>{{ .Detail }}</pre>
</div>
{{- end -}}

{{- define "undefined" -}}
<div class="alert alert-info">
    <p>ไม่พบข้อมูลผู้เยี่ยมในระบบ</p>
    <small>DocType: {{ .DocType }}</small>
</div>
{{- end -}}

{{- define "nodata" -}}
<div class="alert alert-info">
    <h5>ไม่พบข้อมูลผู้เยี่ยม</h5>
    <p>ไม่พบข้อมูลผู้เยี่ยมตามเงื่อนไขที่กำหนด</p>
    <small>DocType: {{ .DocType }}</small>
</div>
{{- end -}}

{{- define "table" -}}
<div class="mb-2">
    <small class="text-muted">
        📋 DocType: <strong>{{ .DocType }}</strong> |
        📊 จำนวน: <strong>{{ len .Visitors }}</strong> รายการ |
        🕐 {{ .Timestamp }}
    </small>
</div>
<table class="table table-bordered table-striped table-hover">
    <thead class="table-dark">
        <tr>
            <th>รหัส</th>
            <th>ชื่อผู้เยี่ยม</th>
            <th>โทรศัพท์</th>
            <th>บริษัท</th>
            <th>วันที่เยี่ยม</th>
            <th>เวลา</th>
            <th>วัตถุประสงค์</th>
            <th>อาคาร</th>
            <th>สถานะ</th>
            <th>อนุมัติโดย</th>
            <th>เวลาเข้า</th>
            <th>เวลาออก</th>
        </tr>
    </thead>
    <tbody>
{{- range .Visitors }}
        <tr>
            <td><small>{{ .Name }}</small></td>
            <td><strong>{{ .VisitorName }}</strong></td>
            <td>{{ .Phone }}</td>
            <td><small>{{ .Company }}</small></td>
            <td><small>{{ .VisitDate }}</small></td>
            <td><small>{{ .VisitTime }}</small></td>
            <td><small>{{ .Purpose }}</small></td>
            <td><small>{{ .Building }}</small></td>
            <td>{{ badge .Status }}</td>
            <td><small>{{ .ApprovedBy }}</small></td>
            <td><small>{{ .CheckInTime }}</small></td>
            <td><small>{{ .CheckOutTime }}</small></td>
        </tr>
{{- end }}
    </tbody>
</table>
<div class="mt-2">
    <small class="text-muted">
        📈 แสดงข้อมูลล่าสุด {{ len .Visitors }} รายการ (จำกัดไม่เกิน {{ thousand .Limit }} รายการ)
    </small>
</div>
{{- end -}}
`))

func execute(name string, data interface{}) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are fixed and their data is plain strings.
		panic(fmt.Sprintf("report template %s: %v", name, err))
	}
	return buf.String()
}

// RenderLoading is shown while the report is being generated.
func RenderLoading() string {
	return execute("loading", nil)
}

// RenderNotFound reports that no candidate record type answered.
func RenderNotFound(probed []string) string {
	return execute("notfound", struct{ Probed string }{strings.Join(probed, ", ")})
}

// RenderError reports a failed fetch with its raw detail.
func RenderError(docType, detail string) string {
	if detail == "" {
		detail = "Unknown error"
	}
	return execute("error", struct{ DocType, Detail string }{docType, detail})
}

// RenderUndefined reports a fetch that returned no response at all.
func RenderUndefined(docType string) string {
	return execute("undefined", struct{ DocType string }{docType})
}

// Table is the data of a rendered report.
type Table struct {
	DocType   string
	Visitors  []VisitorRecord
	Generated time.Time
	Limit     int
}

// Render renders the summary line and the visitor table. With no visitors
// it renders the "no data" message instead and builds no table.
func Render(t Table) string {
	if len(t.Visitors) == 0 {
		return execute("nodata", struct{ DocType string }{t.DocType})
	}
	return execute("table", struct {
		Table
		Timestamp string
	}{t, ThaiTimestamp(t.Generated)})
}
