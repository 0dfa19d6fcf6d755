package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scango/visitorgate/internal/engine"
	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/notify"
	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/types"
)

var (
	gatePassName    string
	gatePassRecord  bool
	gatePassMachine string
)

// Gate pass record types and the machine mode that only displays a pass.
const (
	machineGateDocType = "Machine Gate"
	gatePassDocType    = "Visitor Gate Pass"
	useForCheckStatus  = "CheckStatus"
)

var gatePassFields = []string{
	"visitor_register", "visitor_name", "machine_gate", "building_gate", "pass_type", "pass_datetime",
}

var gatePassCmd = &cobra.Command{
	Use:   "gate-pass",
	Short: "Check whether a visitor's gate pass is valid today",
	Long: `Gate-pass checks the visit window of a visitor register document
against today's date.

Results:
  - ยังไม่ถึงวันเข้า: the visit has not started yet
  - ใช้งานได้: the pass is valid today
  - หมดอายุแล้ว: the visit window has ended

With --record the pass is logged as a Visitor Gate Pass for the machine
given by --machine. Only active passes are recorded, and CheckStatus
machines display the pass without recording it.

Example:
  visitorgate gate-pass --name VR-0001
  visitorgate gate-pass --name VR-0001 --record --machine GATE-A-IN`,
	RunE: runGatePass,
}

func init() {
	gatePassCmd.Flags().StringVarP(&gatePassName, "name", "n", "",
		"Name of the visitor register document (required)")
	_ = gatePassCmd.MarkFlagRequired("name")

	gatePassCmd.Flags().BoolVar(&gatePassRecord, "record", false,
		"Record the pass as a Visitor Gate Pass (requires --machine)")
	gatePassCmd.Flags().StringVarP(&gatePassMachine, "machine", "m", "",
		"Name of the Machine Gate scanning the pass")

	rootCmd.AddCommand(gatePassCmd)
}

// passWindow reads the visit window of rec. A missing end date means a
// one-day visit.
func passWindow(rec *record.FieldRecord, p engine.Profile) (start, end time.Time, err error) {
	start, ok := rec.Date(p.VisitStart)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%s %s has no %s", rec.DocType, rec.Name, p.VisitStart)
	}
	end, ok = rec.Date(p.VisitEnd)
	if !ok {
		end = start
	}
	return start, end, nil
}

// passInserter stores new records.
type passInserter interface {
	Insert(ctx context.Context, rec *record.FieldRecord, fields []string) (string, error)
}

// newGatePass builds the Visitor Gate Pass of visitor scanned at machine.
func newGatePass(visitor, machine *record.FieldRecord, at time.Time) *record.FieldRecord {
	name := strings.TrimSpace(visitor.String("first_name") + " " + visitor.String("last_name"))

	pass := record.New(gatePassDocType, "")
	pass.Set("visitor_register", visitor.Name)
	pass.Set("visitor_name", name)
	pass.Set("machine_gate", machine.Name)
	pass.Set("building_gate", machine.Get("building_gate"))
	pass.Set("pass_type", machine.Get("use_for"))
	pass.Set("pass_datetime", at)
	return pass
}

// recordGatePass inserts the gate pass of visitor at machine. Passes that are
// not active are refused. It returns "" when the machine only checks status.
func recordGatePass(ctx context.Context, store passInserter, visitor, machine *record.FieldRecord,
	status engine.PassStatus, at time.Time, log *logger.Logger) (string, error) {
	if status.State != engine.PassActive {
		return "", fmt.Errorf("gate pass %s is not active: %s", visitor.Name, status.Label())
	}
	if machine.String("use_for") == useForCheckStatus {
		log.Infof("Machine %s only checks status; pass not recorded", machine.Name)
		return "", nil
	}

	name, err := store.Insert(ctx, newGatePass(visitor, machine, at), gatePassFields)
	if err != nil {
		return "", fmt.Errorf("failed to record gate pass: %w", err)
	}
	return name, nil
}

func runGatePass(cmd *cobra.Command, args []string) error {
	if gatePassRecord && gatePassMachine == "" {
		return fmt.Errorf("--record requires --machine")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p := engine.VisitorRegisterProfile(s.cfg.Forms.VisitorDocType)
	rec, err := s.store.Load(s.ctx, p.DocType, gatePassName,
		[]string{"first_name", "last_name", p.VisitStart, p.VisitEnd})
	if err != nil {
		return fmt.Errorf("failed to load visitor: %w", err)
	}

	start, end, err := passWindow(rec, p)
	if err != nil {
		return err
	}
	now := time.Now()
	status := engine.PassValidity(start, end, types.DateOf(now))

	cmd.Printf("\n=== Gate Pass %s ===\n", gatePassName)
	cmd.Printf("Visitor: %s %s\n", rec.String("first_name"), rec.String("last_name"))
	cmd.Printf("Visit: %s - %s\n", start.Format(types.DateLayout), end.Format(types.DateLayout))
	notify.NewConsoleNotifier(cmd.OutOrStdout()).Warn(notify.Warning{
		Title:    status.Label(),
		Message:  status.DaysText(),
		Severity: status.Severity(),
	})

	if !gatePassRecord {
		return nil
	}

	machine, err := s.store.Load(s.ctx, machineGateDocType, gatePassMachine, []string{"building_gate", "use_for"})
	if err != nil {
		return fmt.Errorf("failed to load machine gate: %w", err)
	}
	log := s.log.WithDocType(gatePassDocType).WithDocument(gatePassName)
	name, err := recordGatePass(s.ctx, s.store, rec, machine, status, now, log)
	if err != nil {
		return err
	}
	if name != "" {
		cmd.Printf("✅ Recorded %s %s (%s)\n", gatePassDocType, name, machine.String("use_for"))
	}
	return nil
}
