// Package record holds the in-memory state of one form: its field values,
// per-field display properties, and transient (never persisted) UI state.
package record

import (
	"reflect"
	"time"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/scango/visitorgate/internal/types"
)

// Property is a per-field display property.
type Property string

const (
	Hidden   Property = "hidden"
	Required Property = "reqd"
)

// Transient is form state that lives only as long as the form is open.
type Transient struct {
	// GenderManuallySet is true once the user picked a gender explicitly;
	// salutation-based inference never overrides it afterwards.
	GenderManuallySet bool
}

// FieldRecord is a mapping from field name to value for one form.
// Fields keep the order they were first set in. A nil value means empty.
type FieldRecord struct {
	DocType   string
	Name      string
	Transient Transient

	fields    *orderedmap.OrderedMap[string, interface{}]
	props     map[string]map[Property]bool
	writes    int
	refreshed []string
}

// New creates an empty FieldRecord.
func New(docType, name string) *FieldRecord {
	return &FieldRecord{
		DocType: docType,
		Name:    name,
		fields:  orderedmap.NewOrderedMap[string, interface{}](),
		props:   make(map[string]map[Property]bool),
	}
}

// FromRow builds a FieldRecord from a query row, taking fields in the given order.
// Loading does not count as a write.
func FromRow(docType, name string, row types.Row, order []string) *FieldRecord {
	rec := New(docType, name)
	for _, field := range order {
		rec.fields.Set(field, normalize(row[field]))
	}
	return rec
}

// Get returns the raw value of field, nil when empty or absent.
func (r *FieldRecord) Get(field string) interface{} {
	v, _ := r.fields.Get(field)
	return v
}

// String returns the display value of field.
func (r *FieldRecord) String(field string) string {
	return types.ToString(r.Get(field))
}

// Date returns field as a calendar date.
func (r *FieldRecord) Date(field string) (time.Time, bool) {
	return types.ToDate(r.Get(field))
}

// Int returns field as an integer.
func (r *FieldRecord) Int(field string) (int64, bool) {
	return types.ToInt64(r.Get(field))
}

// Bool returns field as a check value.
func (r *FieldRecord) Bool(field string) bool {
	return types.ToBool(r.Get(field))
}

// IsEmpty reports whether field has no value.
func (r *FieldRecord) IsEmpty(field string) bool {
	return r.Get(field) == nil
}

// Set writes value to field and reports whether the stored value changed.
// Writing a value equal to the current one is a no-op and is not counted.
func (r *FieldRecord) Set(field string, value interface{}) bool {
	value = normalize(value)
	current, exists := r.fields.Get(field)
	if exists && equal(current, value) {
		return false
	}
	if !exists && value == nil {
		// Clearing an unknown field still registers it so it is persisted.
		r.fields.Set(field, nil)
		return false
	}
	r.fields.Set(field, value)
	r.writes++
	return true
}

// Clear empties field.
func (r *FieldRecord) Clear(field string) bool {
	return r.Set(field, nil)
}

// SetProperty sets a display property and reports whether it changed.
func (r *FieldRecord) SetProperty(field string, prop Property, on bool) bool {
	p, ok := r.props[field]
	if !ok {
		p = make(map[Property]bool)
		r.props[field] = p
	}
	if current, set := p[prop]; set && current == on {
		return false
	}
	p[prop] = on
	r.writes++
	return true
}

// Property returns the value of a display property (false when never set).
func (r *FieldRecord) Property(field string, prop Property) bool {
	return r.props[field][prop]
}

// Refresh asks the host to redraw field.
func (r *FieldRecord) Refresh(field string) {
	r.refreshed = append(r.refreshed, field)
}

// Refreshed lists every refresh request in order.
func (r *FieldRecord) Refreshed() []string {
	return append([]string(nil), r.refreshed...)
}

// Writes counts value and property changes since creation.
func (r *FieldRecord) Writes() int {
	return r.writes
}

// Fields lists field names in insertion order.
func (r *FieldRecord) Fields() []string {
	return r.fields.Keys()
}

// Values returns a copy of the field values.
func (r *FieldRecord) Values() types.Row {
	row := make(types.Row, r.fields.Len())
	for el := r.fields.Front(); el != nil; el = el.Next() {
		row[el.Key] = el.Value
	}
	return row
}

// normalize maps the empty string and []byte to the canonical forms.
func normalize(v interface{}) interface{} {
	switch s := v.(type) {
	case string:
		if s == "" {
			return nil
		}
	case []byte:
		if len(s) == 0 {
			return nil
		}
		return string(s)
	case time.Time:
		if s.IsZero() {
			return nil
		}
	}
	return v
}

func equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if ia, ok := types.ToInt64(a); ok && isNumber(a) {
		ib, ok := types.ToInt64(b)
		return ok && isNumber(b) && ia == ib
	}
	return reflect.DeepEqual(a, b)
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}
