package domain

// Session é a prova de autenticação mantida no cliente: o token bearer
// mais a identidade/papel em cache, usados para liberar navegação e
// autorizar chamadas à API.
//
// Ciclo de vida: criada na resposta do login, persistida no storage
// local, limpa no logout. A ausência de qualquer campo persistido é
// tratada como "logged out".
type Session struct {
	Token  string   `json:"token"`
	UserID string   `json:"userId"`
	Role   UserRole `json:"role"`
	User   *User    `json:"user,omitempty"`
}

// Authenticated indica se a sessão carrega um token não-vazio.
// A validade/expiração do token NÃO é verificada localmente: um token
// expirado só é descoberto quando uma chamada à API falhar.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SessionStore define o contrato de persistência da sessão.
// Contrato de escrita única: somente o fluxo de login escreve (Save) e
// somente o de logout limpa (Clear); todo o resto apenas lê.
type SessionStore interface {
	Save(session Session) error
	Read() (Session, error)
	Clear() error
}
