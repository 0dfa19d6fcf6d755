package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	// Execute calls os.Exit(1) on error, so only its presence is checked
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsDefaults(t *testing.T) {
	assert.Equal(t, "visitorgate.yaml", cfgFile)
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, 0, rowLimit)
	assert.Equal(t, 0, timeoutSeconds)
}

func TestRootPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	cfg := flags.Lookup("config")
	assert.NotNil(t, cfg)
	assert.Equal(t, "c", cfg.Shorthand)
	assert.Equal(t, "visitorgate.yaml", cfg.DefValue)

	for _, name := range []string{"log-level", "log-format", "row-limit", "timeout"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestGetConfigFile(t *testing.T) {
	original := cfgFile
	defer func() { cfgFile = original }()

	cfgFile = "/etc/visitorgate/site.yaml"
	assert.Equal(t, "/etc/visitorgate/site.yaml", GetConfigFile())
}

func TestGetCLIOverrides(t *testing.T) {
	origLevel, origFormat, origRows, origTimeout := logLevel, logFormat, rowLimit, timeoutSeconds
	defer func() {
		logLevel, logFormat, rowLimit, timeoutSeconds = origLevel, origFormat, origRows, origTimeout
	}()

	tests := []struct {
		name  string
		apply func()
		want  CLIOverrides
	}{
		{
			name:  "empty overrides",
			apply: func() { logLevel, logFormat, rowLimit, timeoutSeconds = "", "", 0, 0 },
			want:  CLIOverrides{},
		},
		{
			name:  "all overrides",
			apply: func() { logLevel, logFormat, rowLimit, timeoutSeconds = "debug", "json", 200, 30 },
			want:  CLIOverrides{LogLevel: "debug", LogFormat: "json", RowLimit: 200, TimeoutSeconds: 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply()
			assert.Equal(t, tt.want, GetCLIOverrides())
		})
	}
}

func TestRootCommandStructure(t *testing.T) {
	assert.Equal(t, "visitorgate", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Equal(t, Version, rootCmd.Version)
}
