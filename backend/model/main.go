package model

import (
	"os"
	"path/filepath"

	"media-uploader/backend/common"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() (err error) {
	var dbInstance *gorm.DB
	dsn := os.Getenv("SQL_DSN")

	if dsn != "" {
		common.SysLog("Using PostgreSQL database")
		dbInstance, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			PrepareStmt: true,
		})
	} else {
		common.SysLog("SQL_DSN not set, using SQLite as database: " + common.SQLitePath)
		if dir := filepath.Dir(common.SQLitePath); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return mkErr
			}
		}
		dbInstance, err = gorm.Open(sqlite.Open(common.SQLitePath), &gorm.Config{
			PrepareStmt: true,
		})
	}

	if err != nil {
		common.SysError("failed to connect database: " + err.Error())
		return err
	}

	DB = dbInstance

	err = DB.AutoMigrate(
		&User{},
		&Media{},
	)
	if err != nil {
		common.SysError("failed to auto migrate database schema: " + err.Error())
		return err
	}

	var userCount int64
	DB.Model(&User{}).Count(&userCount)
	if userCount == 0 {
		common.SysLog("no user exists yet, visit /setup to create the admin account")
	}

	common.SysLog("Database initialized successfully.")
	return nil
}

func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	common.SysLog("Closing database connection.")
	return sqlDB.Close()
}
