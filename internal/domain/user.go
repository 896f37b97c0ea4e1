package domain

import (
	"bytes"
	"encoding/json"
)

// User representa a entidade do usuário como a API CareConnect a devolve.
// Os nomes dos campos JSON são os do wire (incluindo o `_id` do Mongo).
type User struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	Role         UserRole `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// FullName monta o nome de exibição usado pelas telas de listagem.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return ""
	}
	return u.FirstName + " " + u.LastName
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Constantes para os papéis de usuário (boas práticas)
const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
	RoleAdmin   UserRole = "admin"
)

// UserRef referencia um usuário que a API pode devolver de duas formas:
// como string contendo apenas o id, ou como objeto User populado.
// O cliente original tratava os dois casos ad hoc em cada página.
type UserRef struct {
	ID   string
	User *User
}

// UnmarshalJSON aceita tanto `"user": "<id>"` quanto `"user": {...}`.
func (r *UserRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = UserRef{}
		return nil
	}

	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return err
		}
		*r = UserRef{ID: id}
		return nil
	}

	var u User
	if err := json.Unmarshal(trimmed, &u); err != nil {
		return err
	}
	*r = UserRef{ID: u.ID, User: &u}
	return nil
}

// MarshalJSON serializa de volta na forma mais simples disponível.
func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// IsZero indica uma referência vazia (campo ausente ou null no payload).
func (r UserRef) IsZero() bool {
	return r.ID == "" && r.User == nil
}

// Credentials representa o payload de entrada para o login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup representa o payload de entrada para o cadastro.
type Signup struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Role      UserRole `json:"role"`
}
