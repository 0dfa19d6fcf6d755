// Package lock keeps two visitorgate runs from generating the same report at
// once, using MySQL named locks on the site database.
package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/scango/visitorgate/internal/logger"
)

// ErrLockTimeout is returned when another run holds the lock.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Timeout values for Acquire, in seconds.
const (
	// TimeoutImmediate gives up at once if the lock is taken.
	TimeoutImmediate = 0

	// TimeoutInfinite waits until the lock is free.
	// MySQL treats negative values as infinite wait.
	TimeoutInfinite = -1
)

// MySQL rejects lock names longer than this.
const maxLockNameLength = 64

const lockPrefix = "visitorgate:report:"

// ReportLock is a MySQL named lock for one report document.
//
// GET_LOCK belongs to the session that took it, so the lock pins one pooled
// connection from Acquire until Release and runs both statements on it.
type ReportLock struct {
	db     *sql.DB
	conn   *sql.Conn
	name   string
	logger *logger.Logger
}

// New creates the lock for reportName. Nothing is acquired yet.
func New(db *sql.DB, reportName string, log *logger.Logger) *ReportLock {
	if log == nil {
		log = logger.NewDefault()
	}
	return &ReportLock{
		db:     db,
		name:   LockName(reportName),
		logger: log,
	}
}

// LockName returns the lock name used for a report document.
// Characters other than letters, digits, '_' and '-' become '_'. Names that
// would exceed MySQL's limit are shortened and suffixed with a hash.
// Example: LockName("VR-2025/01") -> "visitorgate:report:VR-2025_01"
func LockName(reportName string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, reportName)

	name := lockPrefix + sanitized
	if len(name) <= maxLockNameLength {
		return name
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(reportName))
	suffix := fmt.Sprintf("~%08x", h.Sum32())
	return name[:maxLockNameLength-len(suffix)] + suffix
}

// Name returns the MySQL lock name.
func (l *ReportLock) Name() string {
	return l.name
}

// IsHeld reports whether this instance holds the lock.
func (l *ReportLock) IsHeld() bool {
	return l.conn != nil
}

// Acquire takes the lock, waiting up to timeoutSeconds.
// It returns false without error when another session holds the lock.
//
// GET_LOCK() returns 1 when obtained, 0 on timeout and NULL on error.
func (l *ReportLock) Acquire(ctx context.Context, timeoutSeconds int) (bool, error) {
	if l.conn != nil {
		return true, nil
	}
	if l.db == nil {
		return false, fmt.Errorf("site database not connected")
	}

	conn, err := l.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get connection for lock %q: %w", l.name, err)
	}

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", l.name, timeoutSeconds).Scan(&result); err != nil {
		_ = conn.Close()
		return false, fmt.Errorf("failed to execute GET_LOCK: %w", err)
	}

	if !result.Valid {
		_ = conn.Close()
		return false, fmt.Errorf("GET_LOCK returned NULL for lock %q", l.name)
	}

	switch result.Int64 {
	case 1:
		l.conn = conn
		l.logger.Debugf("Acquired lock %q", l.name)
		return true, nil
	case 0:
		_ = conn.Close()
		return false, nil
	default:
		_ = conn.Close()
		return false, fmt.Errorf("unexpected GET_LOCK return value: %d", result.Int64)
	}
}

// Release frees the lock and returns the pinned connection to the pool.
// It returns false when the lock was not held.
//
// RELEASE_LOCK() returns 1 when released, 0 when another session owns the
// lock and NULL when it does not exist.
func (l *ReportLock) Release(ctx context.Context) (bool, error) {
	if l.conn == nil {
		return false, nil
	}
	conn := l.conn
	l.conn = nil
	defer func() { _ = conn.Close() }()

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", l.name).Scan(&result); err != nil {
		return false, fmt.Errorf("failed to execute RELEASE_LOCK: %w", err)
	}
	if !result.Valid {
		return false, fmt.Errorf("RELEASE_LOCK returned NULL for lock %q (lock did not exist)", l.name)
	}

	l.logger.Debugf("Released lock %q", l.name)
	return result.Int64 == 1, nil
}

// WithLock runs fn while holding the lock. The lock is released however fn
// returns, including by panic.
func (l *ReportLock) WithLock(ctx context.Context, timeoutSeconds int, fn func() error) error {
	acquired, err := l.Acquire(ctx, timeoutSeconds)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("%w: lock %q is held by another run", ErrLockTimeout, l.name)
	}

	defer func() {
		// ctx may already be cancelled; release on a fresh one
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, releaseErr := l.Release(releaseCtx); releaseErr != nil {
			l.logger.Warnf("Failed to release lock %q: %v", l.name, releaseErr)
		}
	}()

	return fn()
}

// IsReportRunning reports whether some session currently holds the lock of
// reportName. The answer can be stale as soon as it is returned.
func IsReportRunning(ctx context.Context, db *sql.DB, reportName string) (bool, error) {
	var result sql.NullInt64
	name := LockName(reportName)
	if err := db.QueryRowContext(ctx, "SELECT IS_FREE_LOCK(?)", name).Scan(&result); err != nil {
		return false, fmt.Errorf("failed to check if report %q is running: %w", reportName, err)
	}
	if !result.Valid {
		return false, fmt.Errorf("IS_FREE_LOCK returned NULL for lock %q", name)
	}
	return result.Int64 == 0, nil
}
