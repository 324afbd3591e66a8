package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos que el servidor de
// inventario agrega al access token. El cliente no conoce el secreto de
// firma, así que los claims se leen sin verificar: sirven para decidir si
// vale la pena llamar al servidor, nunca como prueba de autenticidad.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Inspect decodifica el token sin verificar la firma y devuelve sus claims.
func Inspect(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token ilegible: %w", err)
	}
	return claims, nil
}

// Expired indica si el token ya venció según su claim exp.
// Un token sin exp se considera vigente; el servidor tiene la última palabra.
func Expired(tokenString string, now time.Time) bool {
	claims, err := Inspect(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return now.After(claims.ExpiresAt.Time)
}
