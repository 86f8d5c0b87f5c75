package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anicoll/foxess-integration/pkg/hasher"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = time.Hour * 12

var (
	errInvalidToken     = errors.New("invalid token")
	errInvalidPassword  = errors.New("invalid password")
	errMissingSignature = errors.New("authorization header missing")
)

type auth struct {
	passwordHash string
	secret       []byte
}

// newAuth hashes the configured password once at startup and mints a random
// signing secret, so tokens do not survive a restart.
func newAuth(password string) *auth {
	hash, err := hasher.HashPassword([]byte(password))
	if err != nil {
		panic(err)
	}
	secret, err := hasher.GenerateToken(32)
	if err != nil {
		panic(err)
	}
	return &auth{
		passwordHash: hash,
		secret:       []byte(secret),
	}
}

func (a *auth) login(password string) (string, error) {
	if !hasher.PasswordCorrect(password, a.passwordHash) {
		return "", errInvalidPassword
	}
	claims := jwt.RegisteredClaims{
		Subject:   "foxess-integration",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *auth) verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return errInvalidToken
	}
	return nil
}

func (a *auth) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(errMissingSignature.Error()))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if err := a.verify(tokenString); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(err.Error()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
