// Package types contains shared types used across multiple packages to avoid import cycles.
package types

// Row is one result row from a site query, keyed by field name.
type Row map[string]interface{}

// String returns the display form of field, "" when absent.
func (r Row) String(field string) string {
	return ToString(r[field])
}

// Has reports whether field is present with a non-empty value.
func (r Row) Has(field string) bool {
	return r.String(field) != ""
}
