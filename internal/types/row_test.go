package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRow_String(t *testing.T) {
	row := Row{
		"name":         "VM-0001",
		"visitor_name": []byte("สมชาย ใจดี"),
		"visit_date":   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		"creation":     time.Date(2025, 3, 14, 8, 30, 5, 0, time.UTC),
		"company":      nil,
	}

	assert.Equal(t, "VM-0001", row.String("name"))
	assert.Equal(t, "สมชาย ใจดี", row.String("visitor_name"))
	assert.Equal(t, "2025-03-14", row.String("visit_date"))
	assert.Equal(t, "2025-03-14 08:30:05", row.String("creation"))
	assert.Equal(t, "", row.String("company"))
	assert.Equal(t, "", row.String("missing"))
}

func TestRow_Has(t *testing.T) {
	row := Row{"name": "VM-0001", "company": nil, "purpose": ""}

	assert.True(t, row.Has("name"))
	assert.False(t, row.Has("company"))
	assert.False(t, row.Has("purpose"))
	assert.False(t, row.Has("missing"))
}

func TestRow_NilRow(t *testing.T) {
	var row Row
	assert.Equal(t, "", row.String("name"))
	assert.False(t, row.Has("name"))
}
