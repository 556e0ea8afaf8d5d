package db

import (
	"database/sql"
)

// Database is a connection the server opens once at startup and closes on
// shutdown. Repositories receive the *sql.DB from DB().
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
