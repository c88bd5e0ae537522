package model

import "time"

// Usuario stores sellers and administrators. RolAdmin is the only privilege
// distinction in the system; there is no finer-grained role engine.
type Usuario struct {
	CodigoUsuario int    `gorm:"primaryKey;autoIncrement;column:CodigoUsuario"`
	NombreUsuario string `gorm:"uniqueIndex;not null;column:NombreUsuario"`
	PasswordHash  string `gorm:"not null;column:PasswordHash"`
	RolAdmin      bool   `gorm:"not null;default:false;column:RolAdmin"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Usuario) TableName() string { return "usuario" }
