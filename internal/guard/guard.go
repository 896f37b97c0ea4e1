package guard

import (
	"time"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/logger"
	"goclinic/internal/pkg/token"
)

// Decision é o veredito do portão de autorização.
type Decision int

const (
	// Allow libera a operação.
	Allow Decision = iota
	// RedirectLogin indica ausência de sessão: o chamador deve mandar o
	// usuário para o login.
	RedirectLogin
	// Forbid indica sessão válida mas papel sem a capacidade exigida.
	Forbid
)

// Gate é o portão de autorização: toda operação protegida passa por ele
// ANTES de qualquer fetch. O Gate apenas LÊ a sessão; quem escreve é o
// serviço de autenticação.
type Gate struct {
	sessions domain.SessionStore
	logger   logger.Logger
}

// NewGate cria e retorna uma nova instância do Portão.
func NewGate(sessions domain.SessionStore, log logger.Logger) *Gate {
	return &Gate{sessions: sessions, logger: log}
}

// Require exige apenas presença de sessão: qualquer papel passa.
//
// A expiração do token NÃO é verificada localmente: o servidor é a
// autoridade e responde 401 quando o token venceu. Claims vencidas são
// apenas registradas em log (inspeção não-verificada).
func (g *Gate) Require() (domain.Session, Decision, error) {
	session, err := g.sessions.Read()
	if err != nil {
		return domain.Session{}, RedirectLogin, apperror.NewInternalError("failed to read session", err)
	}
	if !session.Authenticated() {
		g.logger.Debug("no session, redirecting to login", nil)
		return domain.Session{}, RedirectLogin, nil
	}

	if claims, err := token.Inspect(session.Token); err == nil {
		if expired, ok := token.Expired(claims, time.Now()); ok && expired {
			g.logger.Warn("session token looks expired, deferring to the server", map[string]interface{}{
				"user_id": session.UserID,
			})
		}
	}

	return session, Allow, nil
}

// RequireRole exige sessão E que o papel persistido esteja entre os
// aceitos. Papel errado é Forbid, nunca RedirectLogin: o usuário está
// logado, só não tem a capacidade.
func (g *Gate) RequireRole(roles ...domain.UserRole) (domain.Session, Decision, error) {
	session, decision, err := g.Require()
	if err != nil || decision != Allow {
		return session, decision, err
	}

	for _, role := range roles {
		if session.Role == role {
			return session, Allow, nil
		}
	}

	g.logger.Warn("role lacks the required capability", map[string]interface{}{
		"user_id": session.UserID,
		"role":    string(session.Role),
	})
	return session, Forbid, nil
}
