package engine

import (
	"fmt"
	"time"

	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/types"
)

// PassState is the validity of a gate pass on a given day.
type PassState string

const (
	PassNotYet  PassState = "not_yet_valid"
	PassExpired PassState = "expired"
	PassActive  PassState = "active"
)

// PassStatus is a gate pass checked against a day.
// Days counts until the pass opens (NotYet), since it closed (Expired), or
// the days left including today (Active).
type PassStatus struct {
	State PassState
	Days  int
}

// PassValidity checks the visit window [start, end] against today.
func PassValidity(start, end, today time.Time) PassStatus {
	switch {
	case types.DaysBetween(today, start) > 0:
		return PassStatus{State: PassNotYet, Days: types.DaysBetween(today, start)}
	case types.DaysBetween(end, today) > 0:
		return PassStatus{State: PassExpired, Days: types.DaysBetween(end, today)}
	default:
		return PassStatus{State: PassActive, Days: types.DaysBetween(today, end) + 1}
	}
}

// Label returns the status shown at the gate.
func (s PassStatus) Label() string {
	switch s.State {
	case PassNotYet:
		return "ยังไม่ถึงวันเข้า"
	case PassExpired:
		return "หมดอายุแล้ว"
	default:
		return "ใช้งานได้"
	}
}

// DaysText describes the remaining or elapsed days.
func (s PassStatus) DaysText() string {
	switch s.State {
	case PassNotYet:
		return fmt.Sprintf("อีก %d วัน", s.Days)
	case PassExpired:
		return fmt.Sprintf("หมดอายุเมื่อ %d วันที่แล้ว", s.Days)
	default:
		return fmt.Sprintf("เหลืออีก %d วัน", s.Days)
	}
}

// Severity is the colour the status is shown in.
func (s PassStatus) Severity() notify.Severity {
	switch s.State {
	case PassNotYet:
		return notify.Orange
	case PassExpired:
		return notify.Red
	default:
		return notify.Green
	}
}
