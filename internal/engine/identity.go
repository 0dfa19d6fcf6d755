package engine

import (
	"strings"

	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/record"
)

// IdentifierKind selects the formatting rule for NormalizeIdentifier.
type IdentifierKind int

const (
	NationalID IdentifierKind = iota
	Passport
)

// NationalIDLength is the number of digits in a Thai national ID.
const NationalIDLength = 13

// ID type option values of the visitor form.
const (
	IDTypeNationalID = "เลขบัตรประชาชน"
	IDTypePassport   = "เลขหนังสือเดินทาง"
)

// NormalizeIdentifier formats an identity number as it is typed.
// National IDs keep digits only, at most NationalIDLength of them.
// Passports are upper-cased; characters outside A-Z and 0-9 are kept but
// raise a notice.
func (e *Engine) NormalizeIdentifier(rec *record.FieldRecord, field string, kind IdentifierKind) {
	value := rec.String(field)
	if value == "" {
		return
	}

	switch kind {
	case NationalID:
		digits, stripped := digitsOnly(value)
		if len(digits) > NationalIDLength {
			digits = digits[:NationalIDLength]
		}
		if stripped {
			e.warn(notify.Warning{
				Kind:     notify.InvalidFormat,
				Title:    "รูปแบบเลขบัตรประชาชนไม่ถูกต้อง",
				Message:  "พบอักขระที่ไม่ใช่ตัวเลข",
				Severity: notify.Orange,
			})
		}
		rec.Set(field, digits)

	case Passport:
		upper := strings.ToUpper(value)
		rec.Set(field, upper)
		if !isUpperAlnum(upper) {
			e.warn(notify.Warning{
				Kind:     notify.InvalidFormat,
				Title:    "รูปแบบเลขหนังสือเดินทางไม่ถูกต้อง",
				Message:  "อนุญาตเฉพาะตัวอักษรอังกฤษ A-Z และตัวเลข 0-9 เท่านั้น",
				Severity: notify.Orange,
			})
		}
	}
}

func digitsOnly(s string) (string, bool) {
	var b strings.Builder
	stripped := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		stripped = true
	}
	return b.String(), stripped
}

func isUpperAlnum(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// ValidThaiNationalID checks the length and mod-11 check digit of a Thai
// national ID.
func ValidThaiNationalID(id string) bool {
	if len(id) != NationalIDLength {
		return false
	}
	sum := 0
	for i := 0; i < NationalIDLength; i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
		if i < NationalIDLength-1 {
			sum += int(id[i]-'0') * (NationalIDLength - i)
		}
	}
	check := (11 - sum%11) % 10
	return int(id[NationalIDLength-1]-'0') == check
}
