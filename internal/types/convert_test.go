package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected int64
		ok       bool
	}{
		{name: "int64", input: int64(42), expected: 42, ok: true},
		{name: "int", input: 100, expected: 100, ok: true},
		{name: "int8", input: int8(-128), expected: -128, ok: true},
		{name: "uint8", input: uint8(255), expected: 255, ok: true},
		{name: "float64 truncates", input: 42.9, expected: 42, ok: true},
		{name: "float32", input: float32(99.7), expected: 99, ok: true},
		{name: "decimal string", input: " 37 ", expected: 37, ok: true},
		{name: "float string", input: "12.0", expected: 12, ok: true},
		{name: "bytes", input: []byte("1000"), expected: 1000, ok: true},
		{name: "nil", input: nil, expected: 0, ok: false},
		{name: "word", input: "forty", expected: 0, ok: false},
		{name: "bool", input: true, expected: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt64(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{name: "nil", input: nil, expected: ""},
		{name: "string", input: "นาย", expected: "นาย"},
		{name: "bytes", input: []byte("14:30:00"), expected: "14:30:00"},
		{name: "date", input: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), expected: "2024-02-29"},
		{name: "datetime", input: time.Date(2024, 2, 29, 9, 5, 0, 0, time.UTC), expected: "2024-02-29 09:05:00"},
		{name: "zero time", input: time.Time{}, expected: ""},
		{name: "int", input: 7, expected: "7"},
		{name: "true", input: true, expected: "1"},
		{name: "false", input: false, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToString(tt.input))
		})
	}
}

func TestToDate(t *testing.T) {
	want := time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local)

	for _, input := range []interface{}{
		"2025-01-31",
		"2025-01-31 17:45:00",
		"2025-01-31 17:45:00.123456",
		[]byte("2025-01-31"),
		time.Date(2025, 1, 31, 23, 59, 59, 0, time.Local),
	} {
		got, ok := ToDate(input)
		assert.True(t, ok, "input %v", input)
		assert.True(t, want.Equal(got), "input %v: got %v", input, got)
	}

	for _, input := range []interface{}{nil, "", "   ", "31/01/2025", 20250131, time.Time{}} {
		_, ok := ToDate(input)
		assert.False(t, ok, "input %v should not parse", input)
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool(int64(1)))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool([]byte("1")))
	assert.False(t, ToBool(false))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool("false"))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool(nil))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(start, start))
	assert.Equal(t, 5, DaysBetween(start, start.AddDate(0, 0, 5)))
	assert.Equal(t, -2, DaysBetween(start, start.AddDate(0, 0, -2)))
	// Clock parts are ignored
	assert.Equal(t, 1, DaysBetween(start.Add(23*time.Hour), start.AddDate(0, 0, 1)))
	// Leap year
	assert.Equal(t, 366, DaysBetween(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDateOf(t *testing.T) {
	in := time.Date(2025, 7, 4, 18, 22, 1, 5, time.UTC)
	assert.Equal(t, time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), DateOf(in))
}
