package engine

import (
	"time"

	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/types"
)

// AgeOn returns whole years between birth and today, floored at zero.
// The year difference drops by one until the birthday has come round.
func AgeOn(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// ComputeAge derives ageField from birthField. A missing, unreadable or
// future birth date leaves the age empty.
func (e *Engine) ComputeAge(rec *record.FieldRecord, birthField, ageField string) {
	birth, ok := rec.Date(birthField)
	if !ok {
		rec.Clear(ageField)
		return
	}

	today := e.Today()
	if types.DaysBetween(today, birth) > 0 {
		rec.Clear(ageField)
		return
	}

	rec.Set(ageField, AgeOn(birth, today))
}

// ValidateBirthDate rejects a birth date after today by clearing both the
// birth date and the age.
func (e *Engine) ValidateBirthDate(rec *record.FieldRecord, birthField, ageField string, today time.Time) {
	if rec.IsEmpty(birthField) {
		return
	}

	birth, ok := rec.Date(birthField)
	if ok && types.DaysBetween(today, birth) <= 0 {
		return
	}

	e.warn(notify.Warning{
		Kind:     notify.InvalidDate,
		Title:    "วันที่ไม่ถูกต้อง",
		Message:  "ไม่สามารถเลือกวันที่ในอนาคตได้",
		Severity: notify.Red,
	})
	rec.Clear(birthField)
	rec.Clear(ageField)
}
