package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// InitDB opens the database configured through the environment. With
// DB_DRIVER=sqlite (or no DB_HOST at all) a local sqlite file is used, which
// keeps a dev kiosk runnable without a MySQL instance.
func InitDB() (*gorm.DB, error) {
	driver := getenv("DB_DRIVER", "mysql")
	if driver == "sqlite" || os.Getenv("DB_HOST") == "" {
		return gorm.Open(sqlite.Open(getenv("DB_PATH", "palmpay.db")), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		getenv("DB_USER", "root"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_HOST", "127.0.0.1"),
		getenv("DB_PORT", "3306"),
		getenv("DB_NAME", "palmpay"),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
