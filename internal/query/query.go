package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/scango/visitorgate/internal/logger"
	"github.com/scango/visitorgate/internal/sqlutil"
	"github.com/scango/visitorgate/internal/types"
)

// MySQL error number for "table doesn't exist".
const errNoSuchTable = 1146

// Order sorts a list by one field.
type Order struct {
	Field      string
	Descending bool
}

// ListRequest describes one list query.
type ListRequest struct {
	DocType string
	Filters *Filters
	Fields  []string
	OrderBy []Order
	// Limit caps the number of rows; zero means no cap.
	Limit int
}

// Querier lists and counts records of a record type.
type Querier interface {
	// List returns the matching rows. On success the slice is never nil,
	// so an empty record type is distinguishable from a missing response.
	List(ctx context.Context, req ListRequest) ([]types.Row, error)
	Count(ctx context.Context, docType string, filters *Filters) (int64, error)
}

// NotFoundError is returned when a named record does not exist.
type NotFoundError struct {
	DocType string
	Name    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.DocType, e.Name)
}

// IsMissingTable reports whether err means the record type has no table.
func IsMissingTable(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errNoSuchTable
}

// SiteQuerier runs queries against a Frappe site database.
type SiteQuerier struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSiteQuerier creates a Querier over db.
func NewSiteQuerier(db *sql.DB, log *logger.Logger) *SiteQuerier {
	if log == nil {
		log = logger.NewDefault()
	}
	return &SiteQuerier{db: db, logger: log}
}

// BuildListQuery renders req as a SELECT statement.
// Example: SELECT `name` FROM `tabVisitor` WHERE `status` = ? ORDER BY `creation` DESC LIMIT 1
func BuildListQuery(req ListRequest) (string, []interface{}, error) {
	table, err := sqlutil.QuoteTable(req.DocType)
	if err != nil {
		return "", nil, err
	}

	fields := req.Fields
	if len(fields) == 0 {
		fields = []string{"name"}
	}
	columns, err := sqlutil.QuoteFields(fields)
	if err != nil {
		return "", nil, err
	}

	where, args, err := req.Filters.Where()
	if err != nil {
		return "", nil, err
	}

	q := fmt.Sprintf("SELECT %s FROM %s%s", columns, table, where)

	if len(req.OrderBy) > 0 {
		q += " ORDER BY "
		for i, o := range req.OrderBy {
			col, err := sqlutil.QuoteField(o.Field)
			if err != nil {
				return "", nil, err
			}
			if i > 0 {
				q += ", "
			}
			q += col
			if o.Descending {
				q += " DESC"
			} else {
				q += " ASC"
			}
		}
	}

	if req.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", req.Limit)
	}
	return q, args, nil
}

// BuildCountQuery renders a COUNT(*) statement for docType.
func BuildCountQuery(docType string, filters *Filters) (string, []interface{}, error) {
	table, err := sqlutil.QuoteTable(docType)
	if err != nil {
		return "", nil, err
	}
	where, args, err := filters.Where()
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, where), args, nil
}

// List implements Querier.
func (q *SiteQuerier) List(ctx context.Context, req ListRequest) ([]types.Row, error) {
	stmt, args, err := BuildListQuery(req)
	if err != nil {
		return nil, err
	}

	q.logger.Debugf("Listing %s: %s", req.DocType, stmt)

	rows, err := q.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", req.DocType, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get column names: %w", err)
	}

	result := []types.Row{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", req.DocType, err)
		}

		row := make(types.Row, len(columns))
		for i, col := range columns {
			// MySQL driver returns []byte for text columns
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", req.DocType, err)
	}

	q.logger.Debugf("Listed %d %s rows", len(result), req.DocType)
	return result, nil
}

// Count implements Querier.
func (q *SiteQuerier) Count(ctx context.Context, docType string, filters *Filters) (int64, error) {
	stmt, args, err := BuildCountQuery(docType, filters)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := q.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", docType, err)
	}
	return n, nil
}
