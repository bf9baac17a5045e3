// inmo-velar/models/user.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// User es un usuario del back-office. Solo se usa para autenticar las
// peticiones del API y registrar quién ejecuta cada operación.
type User struct {
	ID        uint           `gorm:"primaryKey"  json:"ID"`
	CreatedAt time.Time      `                   json:"CreatedAt"`
	UpdatedAt time.Time      `                   json:"UpdatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"       json:"-"`

	Login    string `gorm:"column:login;uniqueIndex" json:"login"`
	Password string `gorm:"column:password"          json:"-"`
	Nombre   string `gorm:"column:nombre"            json:"nombre"`
}

func (User) TableName() string { return "users" }
