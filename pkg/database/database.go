package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store. A non-empty DATABASE_URL selects PostgreSQL;
// otherwise the embedded SQLite file at sqlitePath is used, which is the
// normal single-shop deployment.
func Connect(databaseURL, sqlitePath string) *gorm.DB {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var (
		db  *gorm.DB
		err error
	)
	if databaseURL != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true, // disables implicit prepared statements
		}), &gorm.Config{
			Logger:      newLogger,
			PrepareStmt: false,
		})
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{
			Logger: newLogger,
		})
	}
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}

	// Connection pooling. SQLite gets a single writer connection so the
	// transaction scopes serialize instead of returning SQLITE_BUSY.
	sqlDB, _ := db.DB()
	if databaseURL != "" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		sqlDB.SetMaxOpenConns(1)
	}

	log.Println("Database connection established")
	return db
}
