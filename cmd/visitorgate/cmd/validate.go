package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scango/visitorgate/internal/config"
	"github.com/scango/visitorgate/internal/query"
	"github.com/scango/visitorgate/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check the site database",
	Long: `Validate checks the configuration file and the site database before
any form or report is touched.

Checks performed:
  - Configuration syntax and required fields
  - Database connectivity
  - Table existence for the visitor, register and report forms
  - Visitor data source discovery over the report candidates

Example:
  visitorgate validate --config visitorgate.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// checkTables reports, per form record type, whether its table answers.
func checkTables(ctx context.Context, q query.Querier, forms config.FormsConfig) map[string]error {
	results := make(map[string]error, 3)
	for _, docType := range []string{forms.VisitorDocType, forms.RegisterDocType, forms.ReportDocType} {
		if docType == "" {
			continue
		}
		_, err := q.List(ctx, query.ListRequest{DocType: docType, Limit: 1})
		if err != nil && query.IsMissingTable(err) {
			err = fmt.Errorf("table for %s does not exist", docType)
		}
		results[docType] = err
	}
	return results
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.log.Info("Starting validation checks...")

	if err := s.db.Ping(s.ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", GetConfigFile())
	cmd.Printf("Site: %s@%s:%d/%s\n", s.cfg.Site.User, s.cfg.Site.Host, s.cfg.Site.Port, s.cfg.Site.Database)
	cmd.Printf("Row limit: %d\n\n", s.cfg.Report.EffectiveRowLimit())

	hasErrors := false
	tables := checkTables(s.ctx, s.querier, s.cfg.Forms)
	for _, docType := range []string{s.cfg.Forms.VisitorDocType, s.cfg.Forms.RegisterDocType, s.cfg.Forms.ReportDocType} {
		err, checked := tables[docType]
		if !checked {
			continue
		}
		if err != nil {
			cmd.Printf("❌ %s: %v\n", docType, err)
			hasErrors = true
			continue
		}
		cmd.Printf("✅ %s\n", docType)
	}

	disc, err := report.NewProber(s.querier, s.cfg.Report.Candidates, s.log).Discover(s.ctx)
	if err != nil {
		return err
	}
	if disc.State == report.StateFound {
		cmd.Printf("✅ Visitor data source: %s\n", disc.DocType)
	} else {
		cmd.Printf("❌ No visitor data source among %v\n", disc.Probed)
		hasErrors = true
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	cmd.Println("\n=== Validation Complete ===")
	cmd.Println("✅ All checks passed")
	return nil
}
