// Package sqlutil provides SQL identifier helpers for Frappe site tables.
package sqlutil

import (
	"regexp"
	"strings"
)

// TablePrefix is prepended by Frappe to every record type's table name.
const TablePrefix = "tab"

// QuoteIdentifier quotes a MySQL identifier (table name, column name) with backticks.
// It escapes any existing backticks by doubling them.
// Example: "visit_date" -> "`visit_date`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Record type names are title-cased words that may contain spaces and hyphens
// ("Visitor Management", "Check-In Log").
var validDocTypeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]*$`)

// Field names are Frappe fieldnames: lowercase snake case.
var validFieldRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidDocType reports whether name can be used as a record type name.
func IsValidDocType(name string) bool {
	return len(name) <= 61 && validDocTypeRegex.MatchString(name)
}

// IsValidField reports whether name can be used as a column name.
func IsValidField(name string) bool {
	return len(name) <= 64 && validFieldRegex.MatchString(name)
}

// TableName returns the unquoted table name for a record type.
func TableName(docType string) string {
	return TablePrefix + docType
}

// QuoteTable validates a record type name and returns its quoted table.
// Example: "Visitor Management" -> "`tabVisitor Management`"
func QuoteTable(docType string) (string, error) {
	if !IsValidDocType(docType) {
		return "", &InvalidIdentifierError{Name: docType, Kind: "record type"}
	}
	return QuoteIdentifier(TableName(docType)), nil
}

// QuoteField validates a field name and returns it quoted.
func QuoteField(field string) (string, error) {
	if !IsValidField(field) {
		return "", &InvalidIdentifierError{Name: field, Kind: "field"}
	}
	return QuoteIdentifier(field), nil
}

// QuoteFields validates and quotes every field, joined with ", ".
func QuoteFields(fields []string) (string, error) {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		q, err := QuoteField(f)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}
	return strings.Join(quoted, ", "), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
	Kind string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid " + e.Kind + " identifier: " + e.Name
}
