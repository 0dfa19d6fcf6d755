package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
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

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateDatabase("site", &c.Site)...)
	errors = append(errors, c.validateReport()...)
	errors = append(errors, c.validateForms()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateReport() ValidationErrors {
	var errors ValidationErrors

	if len(c.Report.Candidates) == 0 {
		errors = append(errors, ValidationError{
			Field:   "report.candidates",
			Message: "at least one candidate record type must be listed",
		})
	}

	seen := make(map[string]bool, len(c.Report.Candidates))
	for i, name := range c.Report.Candidates {
		if strings.TrimSpace(name) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("report.candidates[%d]", i),
				Message: "candidate name cannot be blank",
			})
			continue
		}
		if seen[name] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("report.candidates[%d]", i),
				Message: fmt.Sprintf("duplicate candidate %q", name),
			})
		}
		seen[name] = true
	}

	if c.Report.RowLimit < 0 || c.Report.RowLimit > MaxRowLimit {
		errors = append(errors, ValidationError{
			Field:   "report.row_limit",
			Message: fmt.Sprintf("row_limit must be between 0 and %d", MaxRowLimit),
		})
	}

	if c.Report.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "report.timeout_seconds",
			Message: "timeout_seconds cannot be negative",
		})
	}

	if c.Report.LockTimeout < -1 {
		errors = append(errors, ValidationError{
			Field:   "report.lock_timeout",
			Message: "lock_timeout must be -1 (wait forever) or greater",
		})
	}

	return errors
}

func (c *Config) validateForms() ValidationErrors {
	var errors ValidationErrors

	if c.Forms.VisitorDocType == "" {
		errors = append(errors, ValidationError{
			Field:   "forms.visitor_doctype",
			Message: "visitor_doctype is required",
		})
	}

	if c.Forms.ReportDocType == "" {
		errors = append(errors, ValidationError{
			Field:   "forms.report_doctype",
			Message: "report_doctype is required",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
