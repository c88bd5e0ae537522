// cmd/seedadmin/main.go — Crea/actualiza el usuario administrador inicial.
// Uso: go run cmd/seedadmin/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "gestorcn:gestorcn@tcp(mysql:3306)/gestorcn?charset=utf8mb4&parseTime=True&loc=Local"
	}
	nombreUsuario := "admin"
	password := "1234"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO usuario (NombreUsuario, PasswordHash, RolAdmin, created_at, updated_at)
		VALUES (?, ?, true, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
		    PasswordHash = VALUES(PasswordHash),
		    RolAdmin = true,
		    updated_at = NOW()
	`, nombreUsuario, string(hash))

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("✅ Usuario '%s' creado/actualizado con password '%s'\n", nombreUsuario, password)
}
