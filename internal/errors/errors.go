package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoClinic.
// Ela permite que o código externo (View, CLI) acesse a Categoria e o status
// HTTP recebido da API remota, quando houver.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION", "REMOTE_API", "SESSION")
	StatusCode() int  // Status HTTP recebido da API (0 para erros locais)
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// ErrNoSession indica ausência de sessão persistida (usuário deslogado).
// A ausência de qualquer chave da sessão é tratada como "logged out".
var ErrNoSession = errors.New("no session: user not authenticated")

// --- Tipos de Erro Locais (antes de qualquer chamada de rede) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) StatusCode() int  { return 0 }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// SessionError representa uma sessão ausente ou ilegível no armazenamento local.
// Sempre encapsula ErrNoSession para que errors.Is(err, ErrNoSession) funcione.
type SessionError struct {
	Msg string
}

func (e *SessionError) Error() string    { return e.Msg }
func (e *SessionError) Category() string { return "SESSION_ERROR" }
func (e *SessionError) StatusCode() int  { return 0 }
func (e *SessionError) Unwrap() error    { return ErrNoSession }

// NewSessionError cria um erro de sessão ausente/inválida.
func NewSessionError(msg string) AppError {
	return &SessionError{Msg: msg}
}

// --- Tipos de Erro da API Remota ---

// UnauthorizedError representa um 401 da API (token ausente, inválido ou expirado).
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) StatusCode() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um erro de autenticação rejeitada.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// NotFoundError representa um 404 da API.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) StatusCode() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// RemoteError representa qualquer outra resposta não-2xx da API.
// Msg carrega a mensagem enviada pelo servidor, verbatim, pois ela é
// exibida ao usuário exatamente como veio.
type RemoteError struct {
	Msg    string
	Status int
}

func (e *RemoteError) Error() string    { return e.Msg }
func (e *RemoteError) Category() string { return "REMOTE_API_ERROR" }
func (e *RemoteError) StatusCode() int  { return e.Status }
func (e *RemoteError) Unwrap() error    { return nil }

// NewRemoteError cria um erro carregando o status e a mensagem do servidor.
func NewRemoteError(status int, msg string) AppError {
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &RemoteError{Msg: msg, Status: status}
}

// DecodeError representa um corpo de resposta que não tem a forma esperada
// (envelope ausente ou com tipo errado). Substitui a coerção silenciosa
// para lista vazia que o cliente original fazia.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string    { return e.Msg }
func (e *DecodeError) Category() string { return "DECODE_ERROR" }
func (e *DecodeError) StatusCode() int  { return 0 }
func (e *DecodeError) Unwrap() error    { return e.Err }

// NewDecodeError cria um erro de payload malformado.
func NewDecodeError(msg string, err error) AppError {
	return &DecodeError{Msg: msg, Err: err}
}

// InternalError representa falhas inesperadas de transporte ou de lógica local.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro de rede)
}

func (e *InternalError) Error() string    { return e.Msg }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) StatusCode() int  { return 0 }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro interno (falhas de rede, timeouts, etc.).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// --- Helper para a fronteira HTTP (Tradução de respostas recebidas) ---

// FromStatus traduz um status HTTP não-2xx recebido da API para o tipo
// de erro apropriado, preservando a mensagem do servidor verbatim.
func FromStatus(status int, message string) AppError {
	switch status {
	case http.StatusUnauthorized:
		if message == "" {
			message = "invalid or expired token"
		}
		return NewUnauthorizedError(message)
	case http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return NewNotFoundError(message)
	default:
		return NewRemoteError(status, message)
	}
}

// IsNotFound verifica se o erro (em qualquer nível da cadeia) é um 404.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsNoSession verifica se o erro indica ausência de sessão.
func IsNoSession(err error) bool {
	return errors.Is(err, ErrNoSession)
}
