// Package authsvc - servicios del dominio auth.
package authsvc

import (
	"fmt"
	"time"
	"zentry_api/internal/common"
	"zentry_api/internal/global"

	"github.com/golang-jwt/jwt/v4"
)

const sessionIssuer = "zentry-api"

// sessionDuration vida del token de sesión emitido tras el login.
const sessionDuration = 24 * time.Hour

// SessionClaims son los claims del token de sesión.
// El residencial activo viaja en el token para no resolverlo en cada request.
type SessionClaims struct {
	UserID        string `json:"userId"`
	Rol           string `json:"rol"`
	ResidencialID string `json:"residencialID,omitempty"`
	jwt.RegisteredClaims
}

// GenerateSessionToken emite un token de sesión firmado con HS256.
func GenerateSessionToken(userID, rol, residencialID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:        userID,
		Rol:           rol,
		ResidencialID: residencialID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.ServerConfig.JwtSecret))
}

// ParseSessionToken valida el token de sesión y devuelve los claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return []byte(global.ServerConfig.JwtSecret), nil
	})
	if err != nil {
		if jwtErr, ok := err.(*jwt.ValidationError); ok && jwtErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}
