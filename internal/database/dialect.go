package database

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"university-hr/internal/config"
)

// Dialect renders routine invocations and row limits for one SQL driver.
// Statements are written with '?' placeholders and rebound to the driver's
// native style (@p1 for SQL Server, $1 for PostgreSQL).
type Dialect struct {
	driver string
	bind   int
}

// NewDialect returns the dialect for a config driver name.
func NewDialect(driver string) Dialect {
	return Dialect{driver: driver, bind: sqlx.BindType(driver)}
}

// Driver returns the driver name the dialect was built for.
func (d Dialect) Driver() string { return d.driver }

// Rebind converts '?' placeholders to the driver's bind style.
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.bind, query)
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Procedure renders a stored procedure call with n positional arguments.
func (d Dialect) Procedure(name string, n int) string {
	if d.driver == config.DriverSQLServer {
		if n == 0 {
			return "EXEC " + name
		}
		return d.Rebind("EXEC " + name + " " + placeholders(n))
	}
	return d.Rebind("CALL " + name + "(" + placeholders(n) + ")")
}

// TableFunction renders a query over a table-valued routine.
// MySQL has no table-valued functions, so the routine is called as a procedure there.
func (d Dialect) TableFunction(name string, n int) string {
	switch d.driver {
	case config.DriverSQLServer:
		return d.Rebind("SELECT * FROM dbo." + name + "(" + placeholders(n) + ")")
	case config.DriverMySQL:
		return d.Procedure(name, n)
	default:
		return d.Rebind("SELECT * FROM " + name + "(" + placeholders(n) + ")")
	}
}

// ScalarFunction renders a single-value function call aliased as alias.
func (d Dialect) ScalarFunction(name string, n int, alias string) string {
	prefix := ""
	if d.driver == config.DriverSQLServer {
		prefix = "dbo."
	}
	return d.Rebind("SELECT " + prefix + name + "(" + placeholders(n) + ") AS " + alias)
}

// First limits a SELECT statement to its first row.
func (d Dialect) First(query string) string {
	query = strings.TrimSpace(query)
	if d.driver == config.DriverSQLServer {
		if len(query) >= 6 && strings.EqualFold(query[:6], "SELECT") {
			return d.Rebind("SELECT TOP 1" + query[6:])
		}
		return d.Rebind(query)
	}
	return d.Rebind(query + " LIMIT 1")
}

// WeekdayName renders an expression yielding the English weekday name of a date column.
func (d Dialect) WeekdayName(column string) string {
	switch d.driver {
	case config.DriverSQLServer:
		return "DATENAME(WEEKDAY, " + column + ")"
	case config.DriverMySQL:
		return "DAYNAME(" + column + ")"
	default:
		return "TRIM(TO_CHAR(" + column + ", 'Day'))"
	}
}

// Quote quotes a table or column name that collides with a reserved word.
// PostgreSQL folds unquoted names to lower case and does not reserve the
// names used here, so they are left bare there to match the rest of the schema.
func (d Dialect) Quote(ident string) string {
	switch d.driver {
	case config.DriverSQLServer:
		return "[" + ident + "]"
	case config.DriverMySQL:
		return "`" + ident + "`"
	default:
		return ident
	}
}
