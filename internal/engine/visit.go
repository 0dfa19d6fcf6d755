package engine

import (
	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/types"
)

// ComputeVisitDuration sets durationField to the inclusive number of days
// from startField to endField. An end before the start is rejected: the end
// date and the duration are both cleared.
func (e *Engine) ComputeVisitDuration(rec *record.FieldRecord, startField, endField, durationField string) {
	start, okStart := rec.Date(startField)
	end, okEnd := rec.Date(endField)
	if !okStart || !okEnd {
		rec.Clear(durationField)
		return
	}

	days := types.DaysBetween(start, end)
	if days < 0 {
		e.warn(notify.Warning{
			Kind:     notify.InvalidDate,
			Title:    "วันที่ไม่ถูกต้อง",
			Message:  "วันที่ออกต้องไม่เป็นวันก่อนวันที่เข้า",
			Severity: notify.Red,
		})
		rec.Clear(endField)
		rec.Clear(durationField)
		return
	}

	rec.Set(durationField, days+1)
}
