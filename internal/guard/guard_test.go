package guard_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goclinic/internal/domain"
	"goclinic/internal/guard"
	"goclinic/internal/pkg/logger"
)

// MockSessionStore é uma implementação mock da interface SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(session domain.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionStore) Read() (domain.Session, error) {
	args := m.Called()
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockSessionStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// TestRequire_NoSession testa que sem token persistido o veredito é
// RedirectLogin, sem erro. Nenhuma chamada de rede acontece antes disso.
func TestRequire_NoSession(t *testing.T) {
	mockSessions := new(MockSessionStore)
	gate := guard.NewGate(mockSessions, logger.NewLogger("error"))

	mockSessions.On("Read").Return(domain.Session{}, nil)

	_, decision, err := gate.Require()

	assert.NoError(t, err)
	assert.Equal(t, guard.RedirectLogin, decision)
}

// TestRequire_WithSession testa que qualquer sessão presente passa.
func TestRequire_WithSession(t *testing.T) {
	mockSessions := new(MockSessionStore)
	gate := guard.NewGate(mockSessions, logger.NewLogger("error"))

	mockSessions.On("Read").
		Return(domain.Session{Token: "opaque-token", UserID: "user-1", Role: domain.RolePatient}, nil)

	session, decision, err := gate.Require()

	assert.NoError(t, err)
	assert.Equal(t, guard.Allow, decision)
	assert.Equal(t, "user-1", session.UserID)
}

// TestRequire_ExpiredTokenStillAllowed testa que um token JWT vencido
// NÃO é rejeitado localmente: o servidor é a autoridade.
func TestRequire_ExpiredTokenStillAllowed(t *testing.T) {
	mockSessions := new(MockSessionStore)
	gate := guard.NewGate(mockSessions, logger.NewLogger("error"))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "user-1",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	mockSessions.On("Read").
		Return(domain.Session{Token: signed, UserID: "user-1", Role: domain.RolePatient}, nil)

	_, decision, err := gate.Require()

	assert.NoError(t, err)
	assert.Equal(t, guard.Allow, decision)
}

// TestRequireRole_Allowed testa o papel com a capacidade exigida.
func TestRequireRole_Allowed(t *testing.T) {
	mockSessions := new(MockSessionStore)
	gate := guard.NewGate(mockSessions, logger.NewLogger("error"))

	mockSessions.On("Read").
		Return(domain.Session{Token: "opaque-token", UserID: "user-1", Role: domain.RoleAdmin}, nil)

	_, decision, err := gate.RequireRole(domain.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, guard.Allow, decision)
}

// TestRequireRole_Forbidden testa que papel errado é Forbid, nunca
// RedirectLogin: o usuário está logado, só não tem a capacidade.
func TestRequireRole_Forbidden(t *testing.T) {
	mockSessions := new(MockSessionStore)
	gate := guard.NewGate(mockSessions, logger.NewLogger("error"))

	mockSessions.On("Read").
		Return(domain.Session{Token: "opaque-token", UserID: "user-1", Role: domain.RolePatient}, nil)

	_, decision, err := gate.RequireRole(domain.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, guard.Forbid, decision)
}

// TestRequireRole_NoSession testa que sem sessão o veredito continua
// sendo RedirectLogin, mesmo com papéis exigidos.
func TestRequireRole_NoSession(t *testing.T) {
	mockSessions := new(MockSessionStore)
	gate := guard.NewGate(mockSessions, logger.NewLogger("error"))

	mockSessions.On("Read").Return(domain.Session{}, nil)

	_, decision, err := gate.RequireRole(domain.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, guard.RedirectLogin, decision)
}
