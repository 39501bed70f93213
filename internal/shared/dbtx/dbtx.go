package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn scopes db to ctx and, when tx is non-nil, routes its statements
// through tx so gorm repositories join a transaction opened on *sql.DB.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		conn.Statement.ConnPool = tx
	}
	return conn
}
