package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver used by the message store.
const DriverName = "sqlite3_pruner"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// Grants reference messages with ON DELETE CASCADE.
			if _, err := conn.Exec("PRAGMA foreign_keys = ON", nil); err != nil {
				return err
			}
			// Another process (the game server) may hold the write lock.
			_, err := conn.Exec("PRAGMA busy_timeout = 5000", nil)
			return err
		},
	})
}
