package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims define as informações que a API CareConnect grava no JWT.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ErrNotAJWT indica que o token armazenado não é um JWT parseável.
// Não é fatal: o cliente trata o token como opaco e segue em frente.
var ErrNotAJWT = errors.New("token is not a parseable JWT")

// Inspect faz o parse do token SEM verificar a assinatura e devolve as
// claims. A chave de assinatura vive apenas na API remota, então o
// cliente não tem como validar o token; ele só consegue espiar as
// claims para exibir identidade/expiração. A autorização real acontece
// no servidor a cada chamada.
func Inspect(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrNotAJWT
	}

	return claims, nil
}

// Expired informa se as claims carregam um exp já vencido.
// ok=false quando o token não declara expiração.
func Expired(claims *CustomClaims, now time.Time) (expired bool, ok bool) {
	if claims == nil || claims.ExpiresAt == nil {
		return false, false
	}
	return claims.ExpiresAt.Time.Before(now), true
}
