package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"goclinic/internal/pkg/token"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

// TestInspect_ValidJWT testa a leitura das claims sem verificação de
// assinatura; o cliente não tem a chave do servidor.
func TestInspect_ValidJWT(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	signed := sign(t, jwt.MapClaims{
		"user_id": "user-1",
		"role":    "patient",
		"exp":     exp.Unix(),
	})

	claims, err := token.Inspect(signed)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "patient", claims.Role)

	expired, ok := token.Expired(claims, time.Now())
	assert.True(t, ok)
	assert.False(t, expired)
}

// TestInspect_ExpiredJWT testa a detecção de exp vencido.
func TestInspect_ExpiredJWT(t *testing.T) {
	signed := sign(t, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	claims, err := token.Inspect(signed)

	assert.NoError(t, err)

	expired, ok := token.Expired(claims, time.Now())
	assert.True(t, ok)
	assert.True(t, expired)
}

// TestInspect_OpaqueToken testa que um token não-JWT vira ErrNotAJWT,
// não um erro fatal.
func TestInspect_OpaqueToken(t *testing.T) {
	_, err := token.Inspect("not-a-jwt")
	assert.ErrorIs(t, err, token.ErrNotAJWT)
}

// TestExpired_NoExpClaim testa um token sem exp: ok=false.
func TestExpired_NoExpClaim(t *testing.T) {
	signed := sign(t, jwt.MapClaims{"user_id": "user-1"})

	claims, err := token.Inspect(signed)
	assert.NoError(t, err)

	_, ok := token.Expired(claims, time.Now())
	assert.False(t, ok)
}
