package utils

import (
	"errors"

	"signup/config"

	"github.com/golang-jwt/jwt"
)

// The session cookie carries a signed token whose only payload is the opaque
// session key; all wizard state stays server-side.

func signingKey() []byte {
	secret := config.AppConfig.SessionSigningKey
	if secret == "" {
		// Fallback to a fixed key for local development.
		secret = "signup-dev-signing-key"
	}
	return []byte(secret)
}

// SignSessionKey wraps the session key in a signed token for the client
// cookie.
func SignSessionKey(sessionKey string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionKey,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// ParseSessionKey validates the cookie token and extracts the session key.
// Any tampered or malformed token is rejected.
func ParseSessionKey(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signingKey(), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session token has no session key")
	}
	return sid, nil
}
