package session

import "goclinic/internal/domain"

// TokenSource adapta um SessionStore para a interface que o cliente
// HTTP espera. É o único caminho pelo qual o token chega às requisições:
// os fetchers nunca leem o storage diretamente.
type TokenSource struct {
	store domain.SessionStore
}

// NewTokenSource cria o adaptador sobre o store dado.
func NewTokenSource(store domain.SessionStore) *TokenSource {
	return &TokenSource{store: store}
}

// Token devolve o token corrente; string vazia significa deslogado.
func (t *TokenSource) Token() (string, error) {
	current, err := t.store.Read()
	if err != nil {
		return "", err
	}
	return current.Token, nil
}
