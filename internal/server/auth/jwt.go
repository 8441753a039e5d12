// Package auth mints and verifies the HS256 device license tokens the
// snapshot endpoints require.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/decolog/decolog/internal/shared"
)

// Claims carries the registered claims plus the device identity and the
// tier the token was minted for.
type Claims struct {
	jwt.RegisteredClaims
	DeviceID string `json:"deviceId"`
	Mode     string `json:"mode"`
}

// GenerateToken signs a device token valid for validityDuration.
func GenerateToken(deviceID, mode string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		DeviceID: deviceID,
		Mode:     mode,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString against secretKey and returns the device
// id and mode it was minted for. Expired and tampered tokens fail.
func ParseToken(tokenString string, secretKey []byte) (string, string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", "", err
	}

	if !token.Valid {
		return "", "", shared.ErrInvalidToken
	}

	return claims.DeviceID, claims.Mode, nil
}
