package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestSubcommandsAreAddedToRoot(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"version", "validate", "report", "derive", "dashboard", "gate-pass"} {
		assert.True(t, names[want], "%s should be added to root command", want)
	}
}

func TestSubcommandStructure(t *testing.T) {
	for _, c := range []*cobra.Command{validateCmd, reportCmd, deriveCmd, dashboardCmd, gatePassCmd} {
		t.Run(c.Name(), func(t *testing.T) {
			assert.NotEmpty(t, c.Short)
			assert.NotEmpty(t, c.Long)
			assert.NotNil(t, c.RunE)
			assert.Contains(t, c.Long, "Example:")
			assert.Contains(t, c.Long, "visitorgate "+c.Name())
		})
	}
}

func TestRequiredNameFlags(t *testing.T) {
	for _, c := range []*cobra.Command{reportCmd, deriveCmd, gatePassCmd} {
		flag := c.Flags().Lookup("name")
		if assert.NotNil(t, flag, c.Name()) {
			assert.Equal(t, "n", flag.Shorthand)
			assert.NotNil(t, flag.Annotations[cobra.BashCompOneRequiredFlag], c.Name())
		}
	}
}

func TestReportCommandFlags(t *testing.T) {
	flags := reportCmd.Flags()
	for _, name := range []string{"dry-run", "text", "html", "force"} {
		flag := flags.Lookup(name)
		if assert.NotNil(t, flag, name) {
			assert.Equal(t, "false", flag.DefValue)
		}
	}
}

func TestDeriveCommandFlags(t *testing.T) {
	flags := deriveCmd.Flags()

	form := flags.Lookup("form")
	assert.NotNil(t, form)
	assert.Equal(t, "visitor", form.DefValue)

	assert.NotNil(t, flags.Lookup("set"))
	assert.NotNil(t, flags.Lookup("save"))
}

func TestValidateCommandChecks(t *testing.T) {
	doc := validateCmd.Long
	assert.Contains(t, doc, "Checks performed")
	assert.Contains(t, doc, "Database connectivity")
	assert.Contains(t, doc, "Table existence")
}

func TestVersionCommandOutput(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	runVersion(versionCmd, nil)

	out := buf.String()
	assert.Contains(t, out, "visitorgate version "+Version)
	assert.Contains(t, out, "Commit: "+Commit)
	assert.Contains(t, out, "Go version:")
}

func TestGatePassCommandFlags(t *testing.T) {
	flags := gatePassCmd.Flags()

	rec := flags.Lookup("record")
	if assert.NotNil(t, rec) {
		assert.Equal(t, "false", rec.DefValue)
	}
	machine := flags.Lookup("machine")
	if assert.NotNil(t, machine) {
		assert.Equal(t, "m", machine.Shorthand)
		assert.Empty(t, machine.DefValue)
	}
}
