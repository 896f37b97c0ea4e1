package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"goclinic/internal/domain"
)

// fileState espelha o layout do localStorage do cliente original:
// quatro chaves planas, com o snapshot do usuário serializado como
// string JSON dentro do valor (e não como objeto aninhado).
type fileState struct {
	Token  string `json:"token,omitempty"`
	Role   string `json:"role,omitempty"`
	UserID string `json:"userId,omitempty"`
	User   string `json:"user,omitempty"`
}

// FileStore persiste a sessão em um arquivo JSON local, o análogo do
// localStorage do navegador. Nenhuma validação é feita sobre o conteúdo.
type FileStore struct {
	path string
}

// NewFileStore cria um store apontando para o arquivo dado.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save grava token, role, userId e o snapshot do usuário.
// O arquivo é 0600: ele carrega um token bearer.
func (s *FileStore) Save(session domain.Session) error {
	state := fileState{
		Token:  session.Token,
		Role:   string(session.Role),
		UserID: session.UserID,
	}

	if session.User != nil {
		userJSON, err := json.Marshal(session.User)
		if err != nil {
			return err
		}
		state.User = string(userJSON)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Read devolve a sessão corrente. A ausência do arquivo (ou de qualquer
// chave) não é erro: significa "logged out" e devolve a sessão zero.
func (s *FileStore) Read() (domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Session{}, nil
		}
		return domain.Session{}, err
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		// Arquivo corrompido é tratado como deslogado, igual ao cliente
		// original quando o localStorage tinha JSON inválido.
		return domain.Session{}, nil
	}

	session := domain.Session{
		Token:  state.Token,
		Role:   domain.UserRole(state.Role),
		UserID: state.UserID,
	}

	if state.User != "" {
		var user domain.User
		if err := json.Unmarshal([]byte(state.User), &user); err == nil {
			session.User = &user
		}
	}

	return session, nil
}

// Clear remove todos os campos da sessão; usado no logout.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
