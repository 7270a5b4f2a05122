package db

import (
	"botbase/config"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

// Init opens the configured database. MySQL is used when MYSQL_DSN is set,
// otherwise the SQLite file (":memory:" works for local runs).
func Init() error {
	open := func() error {
		var err error
		if config.MYSQL_DSN != "" {
			Instance, err = gorm.Open(mysql.Open(config.MYSQL_DSN), &gorm.Config{
				SkipDefaultTransaction: true,
				PrepareStmt:            true,
			})
		} else {
			Instance, err = gorm.Open(sqlite.Open(config.SQLITE_FILE), &gorm.Config{
				SkipDefaultTransaction: true,
			})
		}
		return err
	}
	return backoff.Retry(open, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
}
