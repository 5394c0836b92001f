package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"headsupholdem-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "headsupholdem-server"

var signingKey []byte

type sessionClaims struct {
	jwtgo.StandardClaims
	Name string `json:"name"`
}

// LoadKey will load the session signing key from the configuration
// this method should only be called once.
func LoadKey() {
	signingKey = []byte(config.Instance().SigningKey)
}

// Sign will sign a session JWT for the player
func Sign(playerID, name string) (string, error) {
	if len(signingKey) == 0 {
		panic("LoadKey() not called")
	}

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, sessionClaims{
		StandardClaims: jwtgo.StandardClaims{
			Id:       uuid.New().String(),
			IssuedAt: time.Now().Unix(),
			Issuer:   Issuer,
			Subject:  playerID,
		},
		Name: name,
	})

	return token.SignedString(signingKey)
}

// ValidSession will validate a signed JWT and return the player ID and
// display name it was issued for
func ValidSession(signedString string) (playerID, name string, err error) {
	if len(signingKey) == 0 {
		panic("LoadKey() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &sessionClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return signingKey, nil
	})

	if err != nil {
		return "", "", err
	}

	if !token.Valid {
		return "", "", errors.New("claims were not valid")
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return "", "", fmt.Errorf("expected sessionClaims, got %T", token.Claims)
	}

	if claims.Issuer != Issuer {
		return "", "", errors.New("invalid issuer")
	}

	if claims.Subject == "" {
		return "", "", errors.New("missing subject")
	}

	return claims.Subject, claims.Name, nil
}
