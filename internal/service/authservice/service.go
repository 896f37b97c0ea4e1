package authservice

import (
	"context"
	"strings"
	"time"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/logger"
	"goclinic/internal/pkg/token"
)

// UserRepository define o contrato que este Serviço espera do fetcher
// de usuários (endpoints públicos de autenticação).
type UserRepository interface {
	Login(ctx context.Context, credentials domain.Credentials) (string, domain.User, error)
	Signup(ctx context.Context, signup domain.Signup) (domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// Service concentra login/cadastro/logout e é o ÚNICO escritor do
// SessionStore. Todos os outros componentes apenas leem a sessão.
type Service struct {
	users    UserRepository
	sessions domain.SessionStore
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Autenticação.
func NewService(users UserRepository, sessions domain.SessionStore, log logger.Logger) *Service {
	return &Service{users: users, sessions: sessions, logger: log}
}

// Login autentica na API remota e persiste a sessão resultante.
func (s *Service) Login(ctx context.Context, email, password string) (domain.Session, error) {
	// 1. Validação de entrada (paridade com o formulário original:
	// email obrigatório, senha com pelo menos 6 caracteres).
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Session{}, apperror.NewValidationError("Email is required")
	}
	if len(password) < 6 {
		return domain.Session{}, apperror.NewValidationError("Password must be at least 6 characters")
	}

	// 2. Chamada ao endpoint público de login
	bearer, user, err := s.users.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		Token:  bearer,
		UserID: user.ID,
		Role:   user.Role,
		User:   &user,
	}

	// 3. Inspeção (não-verificada) das claims, apenas para observabilidade.
	if claims, err := token.Inspect(bearer); err == nil {
		if expired, ok := token.Expired(claims, time.Now()); ok && expired {
			// O servidor emitiu um token já vencido? Improvável, mas registrado.
			s.logger.Warn("login returned an already expired token", map[string]interface{}{
				"user_id": user.ID,
			})
		}
	}

	// 4. Persistência (contrato de escrita única)
	if err := s.sessions.Save(session); err != nil {
		return domain.Session{}, apperror.NewInternalError("failed to persist session", err)
	}

	s.logger.Info("login successful", map[string]interface{}{
		"user_id": user.ID,
		"role":    string(user.Role),
	})
	return session, nil
}

// Signup registra um novo usuário. Não autentica: o fluxo original
// manda o usuário para a tela de login depois do cadastro.
func (s *Service) Signup(ctx context.Context, signup domain.Signup) (domain.User, error) {
	if strings.TrimSpace(signup.FirstName) == "" || strings.TrimSpace(signup.LastName) == "" {
		return domain.User{}, apperror.NewValidationError("First and last name are required")
	}
	if strings.TrimSpace(signup.Email) == "" {
		return domain.User{}, apperror.NewValidationError("Email is required")
	}
	if len(signup.Password) < 6 {
		return domain.User{}, apperror.NewValidationError("Password must be at least 6 characters")
	}
	if signup.Role == "" {
		signup.Role = domain.RolePatient
	}

	return s.users.Signup(ctx, signup)
}

// Logout limpa a sessão persistida. Requisições em voo continuam
// carregando o token antigo até terminarem. Limitação conhecida,
// herdada do cliente original.
func (s *Service) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return apperror.NewInternalError("failed to clear session", err)
	}
	s.logger.Info("logout: session cleared", nil)
	return nil
}

// Current devolve a sessão corrente, ou erro de sessão quando não há
// token persistido.
func (s *Service) Current() (domain.Session, error) {
	session, err := s.sessions.Read()
	if err != nil {
		return domain.Session{}, apperror.NewInternalError("failed to read session", err)
	}
	if !session.Authenticated() {
		return domain.Session{}, apperror.NewSessionError("User not authenticated")
	}
	return session, nil
}

// ForgotPassword dispara o fluxo de recuperação de senha.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.NewValidationError("Email is required")
	}
	return s.users.ForgotPassword(ctx, email)
}

// ResetPassword conclui o fluxo de recuperação com o token recebido.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if strings.TrimSpace(resetToken) == "" {
		return apperror.NewValidationError("Reset token is required")
	}
	if len(newPassword) < 6 {
		return apperror.NewValidationError("Password must be at least 6 characters")
	}
	return s.users.ResetPassword(ctx, resetToken, newPassword)
}
