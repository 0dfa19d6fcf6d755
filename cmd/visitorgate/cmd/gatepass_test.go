package cmd

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scango/visitorgate/internal/docstore"
	"github.com/scango/visitorgate/internal/engine"
	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/query"
	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/types"
)

func TestPassWindow(t *testing.T) {
	p := engine.VisitorRegisterProfile("Visitor Register")

	rec := record.New("Visitor Register", "VR-0001")
	rec.Set("visit_date", "2025-06-15")
	rec.Set("visit_end_date", "2025-06-17")
	start, end, err := passWindow(rec, p)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", start.Format(types.DateLayout))
	assert.Equal(t, "2025-06-17", end.Format(types.DateLayout))

	rec.Clear("visit_end_date")
	start, end, err = passWindow(rec, p)
	require.NoError(t, err)
	assert.Equal(t, start, end, "missing end date is a one-day visit")

	rec.Clear("visit_date")
	_, _, err = passWindow(rec, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "visit_date")
}

func gatePassVisitor() *record.FieldRecord {
	rec := record.New("Visitor Register", "VR-0001")
	rec.Set("first_name", "สมชาย")
	rec.Set("last_name", "ใจดี")
	return rec
}

func newGatePassStore(t *testing.T) (*docstore.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	log := logger.NewNop()
	return docstore.New(query.NewSiteQuerier(db, log), db, log), mock
}

func TestRecordGatePass(t *testing.T) {
	store, mock := newGatePassStore(t)
	ctx := context.Background()
	at := time.Date(2025, time.June, 15, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT `name`, `building_gate`, `use_for` FROM `tabMachine Gate` WHERE `name` = ? LIMIT 1",
	)).WithArgs("GATE-A-IN").WillReturnRows(
		sqlmock.NewRows([]string{"name", "building_gate", "use_for"}).AddRow("GATE-A-IN", "Building A", "In"),
	)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO `tabVisitor Gate Pass` (`name`, `visitor_register`, `visitor_name`, `machine_gate`, `building_gate`, `pass_type`, `pass_datetime`, `creation`, `modified`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)).WithArgs(sqlmock.AnyArg(), "VR-0001", "สมชาย ใจดี", "GATE-A-IN", "Building A", "In", at, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	machine, err := store.Load(ctx, machineGateDocType, "GATE-A-IN", []string{"building_gate", "use_for"})
	require.NoError(t, err)

	active := engine.PassStatus{State: engine.PassActive, Days: 1}
	name, err := recordGatePass(ctx, store, gatePassVisitor(), machine, active, at, logger.NewNop())
	require.NoError(t, err)
	assert.NotEmpty(t, name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordGatePassRefusesInactive(t *testing.T) {
	store, mock := newGatePassStore(t)
	machine := record.New(machineGateDocType, "GATE-A-IN")
	machine.Set("use_for", "In")

	for _, status := range []engine.PassStatus{
		{State: engine.PassNotYet, Days: 2},
		{State: engine.PassExpired, Days: 1},
	} {
		name, err := recordGatePass(context.Background(), store, gatePassVisitor(), machine, status, time.Now(), logger.NewNop())
		require.Error(t, err, string(status.State))
		assert.Contains(t, err.Error(), "not active")
		assert.Empty(t, name)
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing is inserted")
}

func TestRecordGatePassCheckStatusMachine(t *testing.T) {
	store, mock := newGatePassStore(t)
	machine := record.New(machineGateDocType, "GATE-LOBBY")
	machine.Set("use_for", useForCheckStatus)

	active := engine.PassStatus{State: engine.PassActive, Days: 1}
	name, err := recordGatePass(context.Background(), store, gatePassVisitor(), machine, active, time.Now(), logger.NewNop())
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewGatePass(t *testing.T) {
	at := time.Date(2025, time.June, 15, 8, 30, 0, 0, time.UTC)
	visitor := record.New("Visitor Register", "VR-0002")
	visitor.Set("first_name", "Anna")

	machine := record.New(machineGateDocType, "GATE-B-OUT")
	machine.Set("building_gate", "Building B")
	machine.Set("use_for", "Out")

	pass := newGatePass(visitor, machine, at)
	assert.Equal(t, gatePassDocType, pass.DocType)
	assert.Empty(t, pass.Name)
	assert.Equal(t, "Anna", pass.String("visitor_name"), "missing last name leaves no trailing space")
	assert.Equal(t, "VR-0002", pass.String("visitor_register"))
	assert.Equal(t, "GATE-B-OUT", pass.String("machine_gate"))
	assert.Equal(t, "Building B", pass.String("building_gate"))
	assert.Equal(t, "Out", pass.String("pass_type"))
	assert.Equal(t, at, pass.Get("pass_datetime"))
}
