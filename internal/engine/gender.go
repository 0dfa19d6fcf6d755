package engine

import (
	"strings"

	"github.com/scango/visitorgate/internal/record"
)

var salutationGender = map[string]string{
	"นาย":     GenderMale,
	"เด็กชาย":  GenderMale,
	"Mr.":     GenderMale,
	"Master":  GenderMale,
	"นาง":     GenderFemale,
	"นางสาว":  GenderFemale,
	"เด็กหญิง": GenderFemale,
	"Ms.":     GenderFemale,
	"Mrs.":    GenderFemale,
	"Miss":    GenderFemale,
}

// GenderFor maps a salutation to a gender value. Unknown or blank
// salutations map to GenderUnspecified.
func GenderFor(salutation string) string {
	if g, ok := salutationGender[strings.TrimSpace(salutation)]; ok {
		return g
	}
	return GenderUnspecified
}

// InferGender sets genderField from salutationField unless the user already
// chose a gender by hand. It reports whether the gender was changed.
func (e *Engine) InferGender(rec *record.FieldRecord, salutationField, genderField string) bool {
	if rec.Transient.GenderManuallySet {
		return false
	}

	gender := GenderFor(rec.String(salutationField))
	if rec.String(genderField) == gender {
		return false
	}
	return rec.Set(genderField, gender)
}

// ToggleConditionalDetail shows and requires detailField only while
// selectorField holds sentinel; otherwise the detail is hidden and emptied.
func (e *Engine) ToggleConditionalDetail(rec *record.FieldRecord, selectorField, sentinel, detailField string) {
	if rec.String(selectorField) == sentinel {
		rec.SetProperty(detailField, record.Required, true)
		rec.SetProperty(detailField, record.Hidden, false)
		return
	}

	rec.SetProperty(detailField, record.Required, false)
	rec.SetProperty(detailField, record.Hidden, true)
	rec.Clear(detailField)
}
