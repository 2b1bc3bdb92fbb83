package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	mssql "github.com/microsoft/go-mssqldb"
)

// ErrorKind is a driver-independent classification of a database error.
type ErrorKind int

const (
	UnknownErr ErrorKind = iota
	NoRowsErr
	DuplicateKeyErr
	ForeignKeyViolationErr
	NotNullViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	RaisedByRoutineErr
	MissingObjectErr
	CanceledErr
)

var kindNames = map[ErrorKind]string{
	UnknownErr:                  "unknown",
	NoRowsErr:                   "no_rows",
	DuplicateKeyErr:             "duplicate_key",
	ForeignKeyViolationErr:      "foreign_key",
	NotNullViolationErr:         "not_null",
	CheckConstraintViolationErr: "check_constraint",
	DataTruncatedErr:            "data_truncated",
	RaisedByRoutineErr:          "raised_by_routine",
	MissingObjectErr:            "missing_object",
	CanceledErr:                 "canceled",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Classify maps SQL Server, MySQL and PostgreSQL driver errors onto an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return UnknownErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NoRowsErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CanceledErr
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		switch n := msErr.Number; {
		case n == 2627 || n == 2601:
			return DuplicateKeyErr
		case n == 547:
			return ForeignKeyViolationErr
		case n == 515:
			return NotNullViolationErr
		case n == 8152 || n == 2628:
			return DataTruncatedErr
		case n == 208 || n == 2812 || n == 4121:
			return MissingObjectErr
		case n >= 50000:
			return RaisedByRoutineErr
		}
		return UnknownErr
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return DuplicateKeyErr
		case 1216, 1217, 1451, 1452:
			return ForeignKeyViolationErr
		case 1048:
			return NotNullViolationErr
		case 3819:
			return CheckConstraintViolationErr
		case 1265, 1406:
			return DataTruncatedErr
		case 1644:
			return RaisedByRoutineErr
		case 1146, 1305:
			return MissingObjectErr
		}
		return UnknownErr
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return DuplicateKeyErr
		case "23503":
			return ForeignKeyViolationErr
		case "23502":
			return NotNullViolationErr
		case "23514":
			return CheckConstraintViolationErr
		case "22001":
			return DataTruncatedErr
		case "P0001":
			return RaisedByRoutineErr
		case "42P01", "42883":
			return MissingObjectErr
		}
		return UnknownErr
	}
	return UnknownErr
}
