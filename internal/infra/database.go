package infra

import (
	"fmt"

	"gestorcn/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection to MySQL, bounds the connection
// pool, and runs AutoMigrate for the five core tables. Connections are
// acquired per unit of work and released promptly; a stuck transaction cannot
// starve the pool beyond the configured limit.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Producto{},
		&model.Boleta{},
		&model.DetalleBoleta{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
