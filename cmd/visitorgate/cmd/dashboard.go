package cmd

import (
	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/scango/visitorgate/internal/dashboard"
	"github.com/scango/visitorgate/internal/record"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show security status counts",
	Long: `Dashboard counts security personnel and visitor-accessible buildings.

Counts shown:
  - Personnel on duty (ปฏิบัติงาน)
  - Personnel suspended or on leave (พักงาน, ลางาน)
  - All personnel
  - Open buildings accessible to visitors

Example:
  visitorgate dashboard --config visitorgate.yaml`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	rec := record.New("Security Status Dashboard", "Security Status Dashboard")
	counts, err := dashboard.New(s.querier, s.notes, s.log).Update(s.ctx, rec)
	if err != nil {
		return err
	}

	failed := make(map[string]bool, len(counts.Failed))
	for _, f := range counts.Failed {
		failed[f] = true
	}
	line := func(label, field string, n int64) {
		label = runewidth.FillRight(label, 24)
		if failed[field] {
			cmd.Printf("  %s %s\n", label, color.FgRed.Sprint("-"))
			return
		}
		cmd.Printf("  %s %s\n", label, color.OpBold.Sprint(n))
	}

	cmd.Printf("\n=== Security Status ===\n")
	line("รปภ. ปฏิบัติงาน", dashboard.FieldActive, counts.Active)
	line("รปภ. พักงาน/ลางาน", dashboard.FieldInactive, counts.Inactive)
	line("รปภ. ทั้งหมด", dashboard.FieldTotal, counts.Total)
	line("อาคารเปิดให้ผู้เยี่ยม", dashboard.FieldAccessible, counts.AccessibleBuildings)
	cmd.Printf("  Updated: %s\n", counts.Updated.Format("02/01/2006 15:04:05"))
	return nil
}
