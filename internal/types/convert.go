package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted from forms and from the database.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ToInt64 converts an interface{} to int64.
// Supports the Go integer and float kinds, plus decimal strings and the
// []byte values the MySQL driver returns for untyped scans.
// The second result is false when v holds no usable number.
func ToInt64(v interface{}) (int64, bool) {
	switch i := v.(type) {
	case int64:
		return i, true
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int16:
		return int64(i), true
	case int8:
		return int64(i), true
	case uint:
		return int64(i), true
	case uint64:
		return int64(i), true
	case uint32:
		return int64(i), true
	case uint16:
		return int64(i), true
	case uint8:
		return int64(i), true
	case float64:
		return int64(i), true
	case float32:
		return int64(i), true
	case []byte:
		return ToInt64(string(i))
	case string:
		s := strings.TrimSpace(i)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ToString renders a field value the way a form displays it.
// nil becomes "", dates without a clock part use DateLayout.
func ToString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		if s.IsZero() {
			return ""
		}
		if s.Hour() == 0 && s.Minute() == 0 && s.Second() == 0 && s.Nanosecond() == 0 {
			return s.Format(DateLayout)
		}
		return s.Format(DateTimeLayout)
	case bool:
		if s {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(s)
	}
}

// ToDate extracts a calendar date (midnight, local time) from a field value.
// Strings may be a date or a datetime; anything else yields false.
func ToDate(v interface{}) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return DateOf(d), true
	case []byte:
		return ToDate(string(d))
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{DateLayout, DateTimeLayout, time.RFC3339} {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return DateOf(t), true
			}
		}
		// Frappe datetimes may carry microseconds
		if len(s) > len(DateTimeLayout) {
			if t, err := time.ParseInLocation(DateTimeLayout, s[:len(DateTimeLayout)], time.Local); err == nil {
				return DateOf(t), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// ToBool interprets Frappe check fields (0/1) and plain booleans.
func ToBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case nil:
		return false
	case string, []byte:
		s := strings.TrimSpace(ToString(b))
		return s != "" && s != "0" && !strings.EqualFold(s, "false")
	default:
		n, ok := ToInt64(b)
		return ok && n != 0
	}
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b, ignoring the
// clock and daylight-saving shifts. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
