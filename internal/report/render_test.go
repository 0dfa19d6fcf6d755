package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/types"
)

func TestStatusBadgeKnown(t *testing.T) {
	tests := map[string]string{
		"รออนุมัติ":    "<span class='badge bg-warning text-dark'>รออนุมัติ</span>",
		"อนุมัติ":      "<span class='badge bg-success'>อนุมัติ</span>",
		"ปฏิเสธ":      "<span class='badge bg-danger'>ปฏิเสธ</span>",
		"เข้าแล้ว":     "<span class='badge bg-info'>เข้าแล้ว</span>",
		"ออกแล้ว":     "<span class='badge bg-secondary'>ออกแล้ว</span>",
		"Draft":       "<span class='badge bg-light text-dark'>Draft</span>",
		"Pending":     "<span class='badge bg-warning text-dark'>Pending</span>",
		"Approved":    "<span class='badge bg-success'>Approved</span>",
		"Rejected":    "<span class='badge bg-danger'>Rejected</span>",
		"Checked In":  "<span class='badge bg-info'>Checked In</span>",
		"Checked Out": "<span class='badge bg-secondary'>Checked Out</span>",
	}
	for status, want := range tests {
		assert.Equal(t, want, string(StatusBadge(status)), status)
	}
}

func TestStatusBadgeFallbacks(t *testing.T) {
	assert.Equal(t, "<span class='badge bg-secondary'>-</span>", string(StatusBadge("")))
	assert.Equal(t, "<span class='badge bg-light text-dark'>Cancelled</span>", string(StatusBadge("Cancelled")))
	assert.Equal(t, "<span class='badge bg-light text-dark'>a&lt;b&gt;</span>", string(StatusBadge("a<b>")))

	for _, s := range []string{" ", "approved", "อนุมัติแล้ว", "0", "Checked  In"} {
		badge := string(StatusBadge(s))
		assert.NotEmpty(t, badge)
		assert.True(t, strings.HasPrefix(badge, "<span class='badge bg-light text-dark'>"), s)
	}
}

func TestThaiTimestamp(t *testing.T) {
	ts := time.Date(2025, time.June, 5, 9, 3, 7, 0, time.UTC)
	assert.Equal(t, "5/6/2568 09:03:07", ThaiTimestamp(ts))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0", groupThousands(0))
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "1,000", groupThousands(1000))
	assert.Equal(t, "1,234,567", groupThousands(1234567))
	assert.Equal(t, "-1,000", groupThousands(-1000))
}

func TestRenderNoRows(t *testing.T) {
	html := Render(Table{DocType: "Visitor", Generated: time.Now(), Limit: 1000})

	assert.Contains(t, html, "ไม่พบข้อมูลผู้เยี่ยมตามเงื่อนไขที่กำหนด")
	assert.Contains(t, html, "DocType: Visitor")
	assert.NotContains(t, html, "<table")
}

func TestRenderTable(t *testing.T) {
	visitors := VisitorsFromRows([]types.Row{
		{
			"name":         "VM-0002",
			"visitor_name": "สมหญิง <รักดี>",
			"visit_date":   time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
			"visit_time":   "09:30:00",
			"status":       "อนุมัติ",
			"approved_by":  "รปภ. สมศักดิ์",
		},
		{"name": "VM-0001", "status": "Unknown"},
	})

	html := Render(Table{
		DocType:   "Visitor Management",
		Visitors:  visitors,
		Generated: time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC),
		Limit:     1000,
	})

	assert.Contains(t, html, "📋 DocType: <strong>Visitor Management</strong>")
	assert.Contains(t, html, "📊 จำนวน: <strong>2</strong> รายการ")
	assert.Contains(t, html, "🕐 6/1/2568 08:00:00")
	assert.Contains(t, html, "<td><small>VM-0002</small></td>")
	assert.Contains(t, html, "<strong>สมหญิง &lt;รักดี&gt;</strong>")
	assert.Contains(t, html, "<td><small>2025-01-05</small></td>")
	assert.Contains(t, html, "<span class='badge bg-success'>อนุมัติ</span>")
	assert.Contains(t, html, "<span class='badge bg-light text-dark'>Unknown</span>")
	assert.Contains(t, html, "จำกัดไม่เกิน 1,000 รายการ")
	assert.Equal(t, 2, strings.Count(html, "<tr>\n            <td>"))
	assert.Less(t, strings.Index(html, "VM-0002"), strings.Index(html, "VM-0001"), "row order is kept")
	// absent fields render as empty cells
	assert.Contains(t, html, "<td></td>")
}

func TestRenderFragments(t *testing.T) {
	assert.Contains(t, RenderLoading(), "fa-spinner")
	assert.Contains(t, RenderLoading(), "กำลังสร้างรายงาน...")

	nf := RenderNotFound([]string{"Visitor Management", "Visitor"})
	assert.Contains(t, nf, "ไม่พบ DocType!")
	assert.Contains(t, nf, "ตรวจสอบแล้ว: Visitor Management, Visitor")

	e := RenderError("Visitor", "Error 1054: Unknown column 'building'")
	assert.Contains(t, e, "ไม่สามารถดึงข้อมูลจาก Visitor")
	assert.Contains(t, e, "<pre>Error 1054: Unknown column &#39;building&#39;</pre>")
	assert.Contains(t, RenderError("Visitor", ""), "<pre>Unknown error</pre>")

	u := RenderUndefined("Visitor")
	assert.Contains(t, u, "ไม่พบข้อมูลผู้เยี่ยมในระบบ")
	assert.Contains(t, u, "DocType: Visitor")
}

func TestRenderText(t *testing.T) {
	visitors := []VisitorRecord{
		{Name: "VM-0001", VisitorName: "สมชาย ใจดี", VisitDate: "2025-01-05", Status: "อนุมัติ"},
		{Name: "VM-0002", VisitorName: "John Smith", VisitDate: "2025-01-04", Status: ""},
	}

	var buf bytes.Buffer
	err := RenderText(&buf, Table{DocType: "Visitor", Visitors: visitors, Generated: time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "DocType: Visitor | จำนวน: 2 รายการ | 6/1/2568 08:00:00")
	assert.Contains(t, out, "สมชาย ใจดี")
	assert.Contains(t, out, "John Smith")
	assert.Contains(t, out, "อนุมัติ")
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestRenderTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, Table{DocType: "Visitor"}))
	assert.Contains(t, buf.String(), "ไม่พบข้อมูลผู้เยี่ยม")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	clipped := clip("a very long visitor name indeed", 10)
	assert.LessOrEqual(t, len([]rune(clipped)), 10)
	assert.True(t, strings.HasSuffix(clipped, "…"))
}

func TestFilterSetFromRecord(t *testing.T) {
	rec := record.New("Visitor Report", "VR-0001")
	rec.Set(FieldDateFrom, "2025-01-01")
	rec.Set(FieldDateTo, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local))
	rec.Set(FieldStatusFilter, " อนุมัติ ")
	rec.Set(FieldBuildingFilter, "อาคาร A")

	fs := FilterSetFromRecord(rec)
	assert.Equal(t, "2025-01-01", fs.DateFrom.Format(types.DateLayout))
	assert.Equal(t, "2025-01-31", fs.DateTo.Format(types.DateLayout))
	assert.Equal(t, "อนุมัติ", fs.Status)
	assert.Equal(t, "อาคาร A", fs.Building)
	assert.Empty(t, fs.Approver)
}

func TestBuildFilters(t *testing.T) {
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		fs        FilterSet
		wantWhere string
		wantArgs  []interface{}
	}{
		{"no filters", FilterSet{}, "", nil},
		{"both dates", FilterSet{DateFrom: from, DateTo: to},
			" WHERE `visit_date` BETWEEN ? AND ?", []interface{}{"2025-01-01", "2025-01-31"}},
		{"from only", FilterSet{DateFrom: from},
			" WHERE `visit_date` >= ?", []interface{}{"2025-01-01"}},
		{"to only", FilterSet{DateTo: to},
			" WHERE `visit_date` <= ?", []interface{}{"2025-01-31"}},
		{"status all ignored", FilterSet{Status: "ทั้งหมด"}, "", nil},
		{"every filter", FilterSet{DateFrom: from, Status: "อนุมัติ", Building: "B1", Approver: "SP-01"},
			" WHERE `visit_date` >= ? AND `status` = ? AND `building` = ? AND `approved_by` = ?",
			[]interface{}{"2025-01-01", "อนุมัติ", "B1", "SP-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args, err := BuildFilters(tt.fs, "ทั้งหมด").Where()
			require.NoError(t, err)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestLogDate(t *testing.T) {
	assert.Empty(t, logDate(time.Time{}))
	assert.Equal(t, "2025-01-31", logDate(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)))
}
