// Package mock provides in-memory infrastructure for integration tests.
package mock

import (
	"database/sql"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var dbConn *gorm.DB

// NewDb opens a shared in-memory SQLite database and migrates the given
// models. The connection is reused across scenarios; call ClearDb between
// them.
func NewDb(models ...any) *gorm.DB {
	dbOnce.Do(func() {
		dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
		if err != nil {
			panic(err)
		}
		dbSQL.SetMaxOpenConns(1)

		conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			panic("failed to connect to database. err: " + err.Error())
		}

		if err := conn.AutoMigrate(models...); err != nil {
			panic("failed to migrate database. err: " + err.Error())
		}

		dbConn = conn
	})

	return dbConn
}

// ClearDb removes every row from the given models' tables.
func ClearDb(conn *gorm.DB, models ...any) error {
	for _, model := range models {
		err := conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}
	}
	return nil
}
