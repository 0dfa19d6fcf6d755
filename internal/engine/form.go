package engine

import (
	"github.com/scango/visitorgate/internal/record"
)

// Profile names the fields of one form type. A blank field name switches
// the corresponding rule off.
type Profile struct {
	DocType string

	Salutation  string
	Gender      string
	OtherGender string
	Birth       string
	Age         string

	VisitStart string
	VisitEnd   string
	Duration   string

	Purpose      string
	OtherPurpose string

	NationalID string
	Passport   string

	// GuardSalutation only infers the gender from a salutation change
	// while the gender is empty or unspecified.
	GuardSalutation bool
	// ValidateBirth rejects future birth dates on change.
	ValidateBirth bool
	// TrackManualGender remembers an explicit gender choice.
	TrackManualGender bool

	// Extra lists fields read only by save-time validation.
	Extra []string
}

// Fields lists every field the form reads or writes, in layout order.
func (p Profile) Fields() []string {
	var fields []string
	for _, f := range []string{
		p.Salutation, p.Gender, p.OtherGender, p.Birth, p.Age,
		p.VisitStart, p.VisitEnd, p.Duration,
		p.Purpose, p.OtherPurpose,
		p.NationalID, p.Passport,
	} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return append(fields, p.Extra...)
}

// Numeric lists the integer fields the form derives. The site stores these
// as 0, never NULL.
func (p Profile) Numeric() []string {
	var fields []string
	for _, f := range []string{p.Age, p.Duration} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// VisitorRegisterProfile returns the field layout of the visitor register form.
func VisitorRegisterProfile(docType string) Profile {
	return Profile{
		DocType:           docType,
		Salutation:        "salutation",
		Gender:            "gender",
		OtherGender:       "other_gender_details",
		Birth:             "birth_date",
		Age:               "age",
		VisitStart:        "visit_date",
		VisitEnd:          "visit_end_date",
		Duration:          "total_days",
		Purpose:           "purpose",
		OtherPurpose:      "other_purpose_details",
		NationalID:        "thai_national_id",
		Passport:          "passport_number",
		GuardSalutation:   true,
		ValidateBirth:     true,
		TrackManualGender: true,
		Extra: []string{
			"first_name", "middle_name", "last_name",
			fieldIDType, fieldVisitorPhoto, fieldTermsAccepted,
		},
	}
}

// RegisterProfile returns the field layout of the staff register form.
func RegisterProfile(docType string) Profile {
	return Profile{
		DocType:     docType,
		Salutation:  "salutation",
		Gender:      "gender",
		OtherGender: "other_gender_details",
		Birth:       "date_of_birth",
		Age:         "calculated_age",
	}
}

// Form dispatches form events to the engine for one profile.
type Form struct {
	engine  *Engine
	profile Profile
}

// NewForm binds e to profile.
func NewForm(e *Engine, profile Profile) *Form {
	return &Form{engine: e, profile: profile}
}

// Profile returns the form's field layout.
func (f *Form) Profile() Profile {
	return f.profile
}

// Refresh recomputes every derived field, as when the form is opened.
func (f *Form) Refresh(rec *record.FieldRecord) {
	p := f.profile
	e := f.engine

	if p.Birth != "" {
		e.ComputeAge(rec, p.Birth, p.Age)
	}
	if p.OtherGender != "" {
		e.ToggleConditionalDetail(rec, p.Gender, OtherOption, p.OtherGender)
	}
	if p.Salutation != "" {
		f.inferGender(rec)
	}
	if p.VisitStart != "" {
		e.ComputeVisitDuration(rec, p.VisitStart, p.VisitEnd, p.Duration)
	}
	if p.Purpose != "" {
		e.ToggleConditionalDetail(rec, p.Purpose, OtherOption, p.OtherPurpose)
	}
	if p.NationalID != "" {
		e.NormalizeIdentifier(rec, p.NationalID, NationalID)
	}
	if p.Passport != "" {
		e.NormalizeIdentifier(rec, p.Passport, Passport)
	}
}

// FieldChanged runs the handlers bound to field. It reports false when the
// form has no handler for that field.
func (f *Form) FieldChanged(rec *record.FieldRecord, field string) bool {
	p := f.profile
	e := f.engine

	switch {
	case field == "":
		return false

	case field == p.Birth:
		e.ComputeAge(rec, p.Birth, p.Age)
		if p.ValidateBirth {
			e.ValidateBirthDate(rec, p.Birth, p.Age, e.Today())
		}

	case field == p.Gender:
		if p.TrackManualGender {
			rec.Transient.GenderManuallySet = true
		}
		if p.OtherGender != "" {
			e.ToggleConditionalDetail(rec, p.Gender, OtherOption, p.OtherGender)
		}

	case field == p.Salutation:
		if p.GuardSalutation {
			if g := rec.String(p.Gender); g != "" && g != GenderUnspecified {
				return true
			}
		}
		f.inferGender(rec)

	case field == p.VisitStart || field == p.VisitEnd:
		e.ComputeVisitDuration(rec, p.VisitStart, p.VisitEnd, p.Duration)

	case field == p.Purpose:
		e.ToggleConditionalDetail(rec, p.Purpose, OtherOption, p.OtherPurpose)

	case field == p.NationalID:
		e.NormalizeIdentifier(rec, p.NationalID, NationalID)

	case field == p.Passport:
		e.NormalizeIdentifier(rec, p.Passport, Passport)

	default:
		return false
	}
	return true
}

// inferGender sets the gender from the salutation. A changed gender re-runs
// the other-gender toggle, as an edit of the gender field would.
func (f *Form) inferGender(rec *record.FieldRecord) {
	p := f.profile
	if f.engine.InferGender(rec, p.Salutation, p.Gender) && p.OtherGender != "" {
		f.engine.ToggleConditionalDetail(rec, p.Gender, OtherOption, p.OtherGender)
	}
}
