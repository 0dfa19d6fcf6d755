package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scango/visitorgate/internal/lock"
	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/report"
)

var (
	reportName   string
	reportDryRun bool
	reportText   bool
	reportHTML   bool
	reportForce  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a visitor report",
	Long: `Report fills a visitor report document from the visitor records of the site.

The report process follows these steps:
  1. Find the record type holding visitor data (first candidate that answers)
  2. Fetch matching visitors, newest first, at most 1000 rows
  3. Render the summary and table into report_data
  4. Save report_data, total_visitors and report_status

Filters are read from the report document: date_from, date_to,
status_filter, building_filter and security_personnel_filter.

Example:
  visitorgate report --config visitorgate.yaml --name VR-0001
  visitorgate report --name VR-0001 --dry-run --text`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportName, "name", "n", "",
		"Name of the report document (required)")
	_ = reportCmd.MarkFlagRequired("name")

	reportCmd.Flags().BoolVar(&reportDryRun, "dry-run", false,
		"Generate the report without saving it")
	reportCmd.Flags().BoolVar(&reportText, "text", false,
		"Print the visitor table to the terminal")
	reportCmd.Flags().BoolVar(&reportHTML, "html", false,
		"Print the rendered report_data HTML")
	reportCmd.Flags().BoolVar(&reportForce, "force", false,
		"Run even if the report lock cannot be acquired (use with caution)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	log := s.log.WithDocType(s.cfg.Forms.ReportDocType).WithDocument(reportName)
	log.Infow("Starting report generation", "config", GetConfigFile(), "dry_run", reportDryRun)

	rec, err := s.store.Load(s.ctx, s.cfg.Forms.ReportDocType, reportName, report.FormFields)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	var saver report.Saver
	if !reportDryRun {
		saver = s.store
	}
	gen := report.NewGenerator(s.querier, saver, s.notes, s.cfg.Report, log)

	var res *report.Result
	generate := func() error {
		res, err = gen.Generate(s.ctx, rec)
		return err
	}

	if reportForce || reportDryRun {
		if reportForce {
			log.Warn("Skipping report lock (--force flag used)")
			warnIfRunning(s.ctx, s.db.Site, reportName, log)
		}
		err = generate()
	} else {
		l := lock.New(s.db.Site, reportName, log)
		log.Debugf("Acquiring lock %q (%s)", l.Name(), describeLockWait(s.cfg.Report.LockTimeout))
		err = l.WithLock(s.ctx, s.cfg.Report.LockTimeout, generate)
		if errors.Is(err, lock.ErrLockTimeout) {
			return fmt.Errorf("report '%s' is already being generated (use --force to override)", reportName)
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Report generation cancelled")
			return nil
		}
		return fmt.Errorf("report generation failed: %w", err)
	}

	printReportResult(cmd, res)

	if reportText && len(res.Visitors) > 0 {
		t := report.Table{
			DocType:   res.Discovery.DocType,
			Visitors:  res.Visitors,
			Generated: res.Generated,
			Limit:     s.cfg.Report.EffectiveRowLimit(),
		}
		if err := report.RenderText(os.Stdout, t); err != nil {
			return err
		}
	}
	if reportHTML {
		fmt.Println(res.HTML)
	}
	return nil
}

// describeLockWait renders a lock timeout for logs.
func describeLockWait(seconds int) string {
	switch {
	case seconds == lock.TimeoutImmediate:
		return "no wait"
	case seconds <= lock.TimeoutInfinite:
		return "wait indefinitely"
	default:
		return fmt.Sprintf("wait up to %ds", seconds)
	}
}

// warnIfRunning tells a --force user that another run holds the report.
// It reports whether the report lock was seen taken.
func warnIfRunning(ctx context.Context, db *sql.DB, name string, log *logger.Logger) bool {
	running, err := lock.IsReportRunning(ctx, db, name)
	if err != nil {
		log.Warnf("Could not check report lock: %v", err)
		return false
	}
	if running {
		log.Warnf("Report '%s' is being generated by another run; results may be overwritten", name)
	}
	return running
}

func printReportResult(cmd *cobra.Command, res *report.Result) {
	cmd.Printf("\n=== Report %s ===\n", reportName)
	cmd.Printf("Probed: %v\n", res.Discovery.Probed)
	switch res.Discovery.State {
	case report.StateFound:
		cmd.Printf("Data source: %s\n", res.Discovery.DocType)
	default:
		cmd.Printf("❌ No visitor data source found\n")
		return
	}
	if res.FetchError != nil {
		cmd.Printf("❌ Fetch failed: %v\n", res.FetchError)
		return
	}
	cmd.Printf("Status: %s\n", res.Status)
	cmd.Printf("Visitors: %d\n", res.Total)
	if res.Saved {
		cmd.Printf("✅ Saved\n")
	} else {
		cmd.Printf("Not saved\n")
	}
}
