package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/types"
)

// ValidationError is a save-time rule violation on one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Fields lists the offending field names in order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, len(e))
	for i, err := range e {
		fields[i] = err.Field
	}
	return fields
}

// Thai consonants through Thai digits, plus Latin letters and whitespace.
var namePattern = regexp.MustCompile(`^[a-zA-Z\x{0E01}-\x{0E59}\s]+$`)

var nameFields = []struct {
	field string
	label string
}{
	{"first_name", "ชื่อ"},
	{"middle_name", "ชื่อกลาง"},
	{"last_name", "นามสกุล"},
}

// Visitor register fields checked at save time.
const (
	fieldIDType        = "id_type"
	fieldVisitorPhoto  = "visitor_photo"
	fieldTermsAccepted = "terms_accepted"
)

// Validate runs the save-time rules of the visitor register form and
// returns ValidationErrors, or nil when the record may be saved.
func (f *Form) Validate(rec *record.FieldRecord) error {
	var errors ValidationErrors

	errors = append(errors, ValidateNames(rec)...)
	errors = append(errors, f.validateIdentity(rec)...)
	errors = append(errors, f.validateDates(rec)...)
	errors = append(errors, ValidateTerms(rec)...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateNames allows Thai and Latin letters in the name fields, with single
// spaces between words only.
func ValidateNames(rec *record.FieldRecord) ValidationErrors {
	var errors ValidationErrors

	for _, nf := range nameFields {
		raw := rec.String(nf.field)
		if raw == "" {
			continue
		}
		value := strings.TrimSpace(raw)
		if !namePattern.MatchString(value) {
			errors = append(errors, ValidationError{
				Field:   nf.field,
				Message: fmt.Sprintf("ช่อง %s สามารถกรอกได้เฉพาะตัวอักษรไทย-อังกฤษเท่านั้น", nf.label),
			})
			continue
		}
		if strings.Contains(raw, "  ") || raw != value {
			errors = append(errors, ValidationError{
				Field:   nf.field,
				Message: fmt.Sprintf("ช่อง %s ไม่ควรมีช่องว่างซ้ำกันหรือเว้นวรรคหน้า-หลัง", nf.label),
			})
		}
	}
	return errors
}

func (f *Form) validateIdentity(rec *record.FieldRecord) ValidationErrors {
	field := f.profile.NationalID
	if field == "" || rec.String(fieldIDType) != IDTypeNationalID {
		return nil
	}
	id := cleanNationalID(rec.String(field))
	// Shorter values are still being typed.
	if len(id) < 10 {
		return nil
	}

	if _, stripped := digitsOnly(id); stripped || len(id) != NationalIDLength {
		return ValidationErrors{{Field: field, Message: "เลขบัตรประชาชนต้องเป็นตัวเลข 13 หลักเท่านั้น"}}
	}
	if !ValidThaiNationalID(id) {
		return ValidationErrors{{Field: field, Message: "เลขบัตรประชาชนไม่ถูกต้องตามหลักการคำนวณ"}}
	}
	return nil
}

func (f *Form) validateDates(rec *record.FieldRecord) ValidationErrors {
	var errors ValidationErrors
	p := f.profile
	today := f.engine.Today()

	if p.Birth != "" {
		if birth, ok := rec.Date(p.Birth); ok && types.DaysBetween(today, birth) > 0 {
			errors = append(errors, ValidationError{
				Field:   p.Birth,
				Message: "วันเกิดไม่สามารถเป็นวันที่ในอนาคตได้",
			})
		}
	}

	if p.VisitStart != "" && p.VisitEnd != "" {
		start, okStart := rec.Date(p.VisitStart)
		end, okEnd := rec.Date(p.VisitEnd)
		if okStart && okEnd && types.DaysBetween(start, end) < 0 {
			errors = append(errors, ValidationError{
				Field:   p.VisitEnd,
				Message: "วันที่ออกต้องไม่เป็นวันก่อนวันที่เข้า",
			})
		}
	}
	return errors
}

// ValidateTerms requires the entry terms to be accepted once a visitor photo
// has been attached.
func ValidateTerms(rec *record.FieldRecord) ValidationErrors {
	if rec.IsEmpty(fieldVisitorPhoto) || rec.Bool(fieldTermsAccepted) {
		return nil
	}
	return ValidationErrors{{Field: fieldTermsAccepted, Message: "กรุณายอมรับเงื่อนไขการเข้า-ออกสถานที่"}}
}

// BeforeSave normalises names and identity numbers the way they are stored.
// Derived fields are recomputed so the saved record is consistent.
func (f *Form) BeforeSave(rec *record.FieldRecord) {
	for _, nf := range nameFields {
		if v := rec.String(nf.field); v != "" {
			rec.Set(nf.field, strings.Join(strings.Fields(v), " "))
		}
	}

	if field := f.profile.NationalID; field != "" {
		if v := rec.String(field); v != "" {
			rec.Set(field, cleanNationalID(v))
		}
	}
	if field := f.profile.Passport; field != "" {
		if v := rec.String(field); v != "" {
			rec.Set(field, strings.ReplaceAll(strings.ToUpper(v), " ", ""))
		}
	}

	p := f.profile
	if p.Birth != "" {
		f.engine.ComputeAge(rec, p.Birth, p.Age)
	}
	if p.VisitStart != "" {
		start, okStart := rec.Date(p.VisitStart)
		end, okEnd := rec.Date(p.VisitEnd)
		if okStart && okEnd && types.DaysBetween(start, end) >= 0 {
			rec.Set(p.Duration, types.DaysBetween(start, end)+1)
		} else {
			rec.Clear(p.Duration)
		}
	}
}

func cleanNationalID(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}
