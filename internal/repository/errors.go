// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// scheduling service to distinguish between different failure scenarios
// without inspecting driver errors. For example, ErrConflict indicates
// that a booking could not be written because its slot is already held,
// while ErrStaleStatus signals that a status compare-and-set lost a race.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert is rejected because an active
// booking already overlaps the slot, either by the locking count or by
// the booking_slots primary key.
var ErrConflict = errors.New("conflict")

// ErrStaleStatus is returned by UpdateStatus when the booking is no longer
// in the expected status.
var ErrStaleStatus = errors.New("stale status")

// ErrRetryable marks a transient write failure (deadlock, lock wait
// timeout, duplicate booking reference) that may succeed on a second try.
var ErrRetryable = errors.New("retryable")

// ErrAlreadyProcessed is returned when an idempotency key was seen before.
var ErrAlreadyProcessed = errors.New("already processed")

// MySQL server error numbers handled explicitly.
const (
	mysqlDuplicateEntry  = 1062
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

func mysqlErrNo(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicate(err error) bool { return mysqlErrNo(err) == mysqlDuplicateEntry }

func isTransient(err error) bool {
	n := mysqlErrNo(err)
	return n == mysqlDeadlock || n == mysqlLockWaitTimeout
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
