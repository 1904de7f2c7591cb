package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the relational store. The backend is picked once at
// startup via DB_DRIVER (postgres or mysql), never per request.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	var dialector gorm.Dialector
	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}

// SetDB swaps the active handle. Tests use this with an in-memory store.
func SetDB(db *gorm.DB) {
	DB = db
}
