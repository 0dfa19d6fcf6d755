// Package docstore loads a single form record from the site database, writes
// its fields back and inserts new records.
package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/query"
	"github.com/scango/visitorgate/internal/record"
	"github.com/scango/visitorgate/internal/sqlutil"
)

// Store reads records through a Querier and writes them through the site database.
type Store struct {
	querier query.Querier
	db      *sql.DB
	logger  *logger.Logger
	now     func() time.Time
}

// New creates a Store. Reads go through q, writes through db.
func New(q query.Querier, db *sql.DB, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Store{
		querier: q,
		db:      db,
		logger:  log,
		now:     time.Now,
	}
}

// Load fetches the named record with the given fields.
// It returns *query.NotFoundError when no such record exists.
func (s *Store) Load(ctx context.Context, docType, name string, fields []string) (*record.FieldRecord, error) {
	columns := append([]string{"name"}, without(fields, "name")...)

	rows, err := s.querier.List(ctx, query.ListRequest{
		DocType: docType,
		Filters: query.NewFilters().Set("name", query.Equals(name)),
		Fields:  columns,
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %s: %w", docType, name, err)
	}
	if len(rows) == 0 {
		return nil, &query.NotFoundError{DocType: docType, Name: name}
	}

	s.logger.Debugf("Loaded %s %s", docType, name)
	return record.FromRow(docType, name, rows[0], without(fields, "name")), nil
}

// Save writes fields of rec back to its row and stamps `modified`.
// It returns *query.NotFoundError when the row is gone.
func (s *Store) Save(ctx context.Context, rec *record.FieldRecord, fields []string) error {
	return s.SaveForm(ctx, rec, fields, nil)
}

// SaveForm is Save for a form with integer fields: a numeric field that is
// empty in rec is written as 0.
func (s *Store) SaveForm(ctx context.Context, rec *record.FieldRecord, fields, numeric []string) error {
	if s.db == nil {
		return fmt.Errorf("site database not connected")
	}
	fields = without(fields, "name", "modified")
	if len(fields) == 0 {
		return fmt.Errorf("no fields to save for %s %s", rec.DocType, rec.Name)
	}

	stmt, args, err := buildUpdate(rec, fields, numeric, s.now())
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("failed to save %s %s: %w", rec.DocType, rec.Name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save %s %s: %w", rec.DocType, rec.Name, err)
	}
	if affected == 0 {
		return &query.NotFoundError{DocType: rec.DocType, Name: rec.Name}
	}

	s.logger.Infof("Saved %s %s (%d fields)", rec.DocType, rec.Name, len(fields))
	return nil
}

// Insert writes rec as a new row, stamping `creation` and `modified`.
// A record without a name gets a time-based one, which Insert returns.
func (s *Store) Insert(ctx context.Context, rec *record.FieldRecord, fields []string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("site database not connected")
	}
	now := s.now()
	if rec.Name == "" {
		rec.Name = newName(now)
	}

	stmt, args, err := buildInsert(rec, without(fields, "name", "creation", "modified"), now)
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return "", fmt.Errorf("failed to insert %s %s: %w", rec.DocType, rec.Name, err)
	}

	s.logger.Infof("Inserted %s %s", rec.DocType, rec.Name)
	return rec.Name, nil
}

// buildUpdate renders the UPDATE statement for fields of rec. Empty numeric
// fields are bound as 0.
// Example: UPDATE `tabVisitor Report` SET `report_data` = ?, `modified` = ? WHERE `name` = ?
func buildUpdate(rec *record.FieldRecord, fields, numeric []string, modified time.Time) (string, []interface{}, error) {
	table, err := sqlutil.QuoteTable(rec.DocType)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+2)
	for _, f := range fields {
		col, err := sqlutil.QuoteField(f)
		if err != nil {
			return "", nil, err
		}
		sets = append(sets, col+" = ?")
		v := rec.Get(f)
		if v == nil && contains(numeric, f) {
			v = 0
		}
		args = append(args, v)
	}
	sets = append(sets, "`modified` = ?")
	args = append(args, modified, rec.Name)

	return fmt.Sprintf("UPDATE %s SET %s WHERE `name` = ?", table, strings.Join(sets, ", ")), args, nil
}

// buildInsert renders the INSERT statement for a new row.
// Example: INSERT INTO `tabVisitor Gate Pass` (`name`, `pass_type`, `creation`, `modified`) VALUES (?, ?, ?, ?)
func buildInsert(rec *record.FieldRecord, fields []string, now time.Time) (string, []interface{}, error) {
	table, err := sqlutil.QuoteTable(rec.DocType)
	if err != nil {
		return "", nil, err
	}

	cols := make([]string, 0, len(fields)+3)
	args := make([]interface{}, 0, len(fields)+3)
	cols = append(cols, "`name`")
	args = append(args, rec.Name)
	for _, f := range fields {
		col, err := sqlutil.QuoteField(f)
		if err != nil {
			return "", nil, err
		}
		cols = append(cols, col)
		args = append(args, rec.Get(f))
	}
	cols = append(cols, "`creation`", "`modified`")
	args = append(args, now, now)

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), marks), args, nil
}

// newName derives a row name from the insert time.
// Example: newName(2025-06-15 09:00:00 UTC) -> "20250615090000000000"
func newName(t time.Time) string {
	return t.UTC().Format("20060102150405") + fmt.Sprintf("%06d", t.Nanosecond()/1000)
}

func contains(fields []string, f string) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

func without(fields []string, drop ...string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		skip := false
		for _, d := range drop {
			if f == d {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, f)
		}
	}
	return out
}
