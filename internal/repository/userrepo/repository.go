package userrepo

import (
	"context"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/httpclient"
	"goclinic/internal/pkg/logger"
)

// UserRepository é o fetcher do recurso user da API CareConnect.
// Também concentra os endpoints públicos de autenticação, já que eles
// vivem sob api/user no servidor.
type UserRepository struct {
	api    *httpclient.Client
	logger logger.Logger
}

// NewUserRepository cria e retorna uma nova instância do Repositório.
func NewUserRepository(api *httpclient.Client, log logger.Logger) *UserRepository {
	return &UserRepository{api: api, logger: log}
}

// loginResponse é o envelope devolvido pelo POST api/user/login.
type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// userEnvelope embrulha respostas de um único usuário.
// O ponteiro distingue "chave ausente" (payload malformado) de usuário vazio.
type userEnvelope struct {
	User *domain.User `json:"user"`
}

// Login autentica na API e devolve o token e o snapshot do usuário.
func (r *UserRepository) Login(ctx context.Context, credentials domain.Credentials) (string, domain.User, error) {
	var resp loginResponse
	if err := r.api.PostPublic(ctx, "/api/user/login", credentials, &resp); err != nil {
		return "", domain.User{}, err
	}

	if resp.Token == "" || resp.User == nil {
		return "", domain.User{}, apperror.NewDecodeError("login response missing token or user", nil)
	}
	return resp.Token, *resp.User, nil
}

// Signup registra um novo usuário.
func (r *UserRepository) Signup(ctx context.Context, signup domain.Signup) (domain.User, error) {
	var envelope userEnvelope
	if err := r.api.PostPublic(ctx, "/api/user/signup", signup, &envelope); err != nil {
		return domain.User{}, err
	}
	if envelope.User == nil {
		return domain.User{}, apperror.NewDecodeError("signup response missing 'user' envelope", nil)
	}
	return *envelope.User, nil
}

// GetOne busca um usuário pelo id (GET api/user/getOne/{id}).
// É o fetch secundário usado pelos agregadores para resolver nomes.
func (r *UserRepository) GetOne(ctx context.Context, id string) (domain.User, error) {
	var envelope userEnvelope
	if err := r.api.Get(ctx, "/api/user/getOne/"+id, &envelope); err != nil {
		return domain.User{}, err
	}
	if envelope.User == nil {
		return domain.User{}, apperror.NewDecodeError("user response missing 'user' envelope", nil)
	}
	return *envelope.User, nil
}

// ForgotPassword dispara o e-mail de recuperação de senha.
func (r *UserRepository) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return r.api.PostPublic(ctx, "/api/user/forgot", body, nil)
}

// ResetPassword troca a senha usando o token recebido por e-mail.
func (r *UserRepository) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	body := map[string]string{"token": resetToken, "password": newPassword}
	return r.api.PostPublic(ctx, "/api/user/resetpassword", body, nil)
}
