// inmo-velar/config/jwt.go
package config

import (
	"log/slog"
	"os"
)

// JwtKey firma los tokens de sesión del back-office.
var JwtKey []byte

func LoadJWTKey() {
	key := os.Getenv("JWT_SECRET")
	if key == "" {
		slog.Error("Variable de entorno JWT_SECRET no definida")
		os.Exit(1)
	}
	JwtKey = []byte(key)
}
