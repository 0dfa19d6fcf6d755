package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scango/visitorgate/internal/types"
)

func TestNew(t *testing.T) {
	rec := New("Visitor Register", "VR-0001")

	assert.Equal(t, "Visitor Register", rec.DocType)
	assert.Equal(t, "VR-0001", rec.Name)
	assert.Empty(t, rec.Fields())
	assert.Equal(t, 0, rec.Writes())
	assert.False(t, rec.Transient.GenderManuallySet)
}

func TestSet_CountsOnlyChanges(t *testing.T) {
	rec := New("Visitor Register", "")

	assert.True(t, rec.Set("age", 30))
	assert.False(t, rec.Set("age", 30))
	assert.False(t, rec.Set("age", int64(30)), "int kinds compare by value")
	assert.True(t, rec.Set("age", 31))
	assert.Equal(t, 2, rec.Writes())
}

func TestSet_EmptyNormalization(t *testing.T) {
	rec := New("Visitor Register", "")

	rec.Set("passport_number", "AB123")
	assert.True(t, rec.Set("passport_number", ""))
	assert.Nil(t, rec.Get("passport_number"))
	assert.True(t, rec.IsEmpty("passport_number"))

	// nil and "" are the same empty value
	assert.False(t, rec.Set("passport_number", nil))
	assert.False(t, rec.Clear("passport_number"))
}

func TestClear_UnknownFieldRegisters(t *testing.T) {
	rec := New("Visitor Register", "")

	assert.False(t, rec.Clear("total_days"))
	assert.Equal(t, []string{"total_days"}, rec.Fields())
	assert.Equal(t, 0, rec.Writes())
}

func TestSet_Times(t *testing.T) {
	rec := New("Visitor Register", "")
	utc := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	same := utc.In(time.FixedZone("ICT", 7*3600))

	assert.True(t, rec.Set("visit_date", utc))
	assert.False(t, rec.Set("visit_date", same), "same instant is not a change")
	assert.True(t, rec.Set("visit_date", time.Time{}), "zero time clears")
	assert.True(t, rec.IsEmpty("visit_date"))
}

func TestFieldsKeepInsertionOrder(t *testing.T) {
	rec := New("Visitor Report", "")
	rec.Set("report_data", "<div/>")
	rec.Set("total_visitors", 3)
	rec.Set("report_status", "Generated")
	rec.Set("report_data", "<p/>")

	assert.Equal(t, []string{"report_data", "total_visitors", "report_status"}, rec.Fields())
}

func TestTypedAccessors(t *testing.T) {
	rec := FromRow("Visitor Register", "VR-1", types.Row{
		"birth_date":     "1990-06-15",
		"age":            []byte("34"),
		"terms_accepted": int64(1),
		"salutation":     "นาย",
	}, []string{"salutation", "birth_date", "age", "terms_accepted", "visitor_photo"})

	d, ok := rec.Date("birth_date")
	require.True(t, ok)
	assert.Equal(t, 1990, d.Year())

	age, ok := rec.Int("age")
	require.True(t, ok)
	assert.Equal(t, int64(34), age)

	assert.True(t, rec.Bool("terms_accepted"))
	assert.Equal(t, "นาย", rec.String("salutation"))
	assert.True(t, rec.IsEmpty("visitor_photo"))
	assert.Equal(t, []string{"salutation", "birth_date", "age", "terms_accepted", "visitor_photo"}, rec.Fields())
	assert.Equal(t, 0, rec.Writes(), "loading is not a write")
}

func TestProperties(t *testing.T) {
	rec := New("Visitor Register", "")

	assert.False(t, rec.Property("other_purpose_details", Hidden))
	assert.True(t, rec.SetProperty("other_purpose_details", Hidden, true))
	assert.False(t, rec.SetProperty("other_purpose_details", Hidden, true))
	assert.True(t, rec.Property("other_purpose_details", Hidden))

	assert.True(t, rec.SetProperty("other_purpose_details", Required, false), "first explicit set counts")
	assert.False(t, rec.SetProperty("other_purpose_details", Required, false))
	assert.Equal(t, 2, rec.Writes())
}

func TestRefresh(t *testing.T) {
	rec := New("Visitor Report", "")
	rec.Refresh("report_data")
	rec.Refresh("total_visitors")

	got := rec.Refreshed()
	assert.Equal(t, []string{"report_data", "total_visitors"}, got)

	got[0] = "mutated"
	assert.Equal(t, "report_data", rec.Refreshed()[0], "Refreshed returns a copy")
}

func TestValues(t *testing.T) {
	rec := New("Visitor Report", "")
	rec.Set("total_visitors", 2)
	rec.Clear("report_data")

	vals := rec.Values()
	assert.Equal(t, 2, vals["total_visitors"])
	v, ok := vals["report_data"]
	assert.True(t, ok)
	assert.Nil(t, v)
}
