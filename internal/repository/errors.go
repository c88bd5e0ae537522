package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Sentinel error categories for storage failures. Services and handlers match
// on these with errors.Is; the original driver error stays in the chain for
// operator diagnostics.
var (
	// ErrNotFound: the referenced row does not exist.
	ErrNotFound = errors.New("registro no encontrado")
	// ErrConflict: duplicate unique key or referential-integrity violation.
	ErrConflict = errors.New("conflicto de integridad")
	// ErrTransient: lock wait timeout or deadlock; the caller may retry.
	ErrTransient = errors.New("error transitorio de base de datos")
)

// MySQL server error numbers that the taxonomy cares about.
const (
	mysqlDupEntry        = 1062 // ER_DUP_ENTRY
	mysqlRowIsReferenced = 1451 // ER_ROW_IS_REFERENCED_2
	mysqlNoReferencedRow = 1452 // ER_NO_REFERENCED_ROW_2
	mysqlLockWaitTimeout = 1205 // ER_LOCK_WAIT_TIMEOUT
	mysqlDeadlock        = 1213 // ER_LOCK_DEADLOCK
)

// classify maps a raw storage error into one of the sentinel categories,
// keeping the original error wrapped. Unrecognized errors pass through
// unchanged and end up as internal errors at the HTTP boundary.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(ErrNotFound, err)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupEntry, mysqlRowIsReferenced, mysqlNoReferencedRow:
			return errors.Join(ErrConflict, err)
		case mysqlLockWaitTimeout, mysqlDeadlock:
			return errors.Join(ErrTransient, err)
		}
	}
	return err
}
