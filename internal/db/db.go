package db

import "database/sql"

// DB wraps the sql pool so repositories depend on one local type.
type DB struct {
	*sql.DB
}
