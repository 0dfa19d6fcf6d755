// Package config provides configuration structures and loading for visitorgate.
package config

// MaxRowLimit is the hard cap on rows fetched for one report.
const MaxRowLimit = 1000

// Config represents the complete application configuration.
type Config struct {
	Site    DatabaseConfig `yaml:"site" mapstructure:"site"`
	Report  ReportConfig   `yaml:"report" mapstructure:"report"`
	Forms   FormsConfig    `yaml:"forms" mapstructure:"forms"`
	Logging LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents the Frappe site database connection (MariaDB/MySQL).
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// ReportConfig controls visitor report generation.
type ReportConfig struct {
	Candidates     []string `yaml:"candidates" mapstructure:"candidates"`         // record types probed in order
	RowLimit       int      `yaml:"row_limit" mapstructure:"row_limit"`           // capped at MaxRowLimit
	StatusAll      string   `yaml:"status_all" mapstructure:"status_all"`         // status filter value meaning "no filter"
	TimeoutSeconds int      `yaml:"timeout_seconds" mapstructure:"timeout_seconds"` // 0 disables the deadline
	LockTimeout    int      `yaml:"lock_timeout" mapstructure:"lock_timeout"`     // seconds to wait for the report lock
}

// FormsConfig names the record types the forms are stored under.
type FormsConfig struct {
	VisitorDocType  string `yaml:"visitor_doctype" mapstructure:"visitor_doctype"`
	RegisterDocType string `yaml:"register_doctype" mapstructure:"register_doctype"`
	ReportDocType   string `yaml:"report_doctype" mapstructure:"report_doctype"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultCandidates is the probe order used when none is configured.
func DefaultCandidates() []string {
	return []string{"Visitor Management", "Visitor", "VisitorManagement", "Visitor Request"}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Site: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     5,
			MaxIdleConnections: 2,
		},
		Report: ReportConfig{
			Candidates:     DefaultCandidates(),
			RowLimit:       MaxRowLimit,
			StatusAll:      "ทั้งหมด",
			TimeoutSeconds: 0,
			LockTimeout:    1,
		},
		Forms: FormsConfig{
			VisitorDocType:  "Visitor Register",
			RegisterDocType: "Register",
			ReportDocType:   "Visitor Report",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// EffectiveRowLimit returns the configured row limit clamped to (0, MaxRowLimit].
func (r ReportConfig) EffectiveRowLimit() int {
	if r.RowLimit <= 0 || r.RowLimit > MaxRowLimit {
		return MaxRowLimit
	}
	return r.RowLimit
}
