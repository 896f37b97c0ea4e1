package domain

// ErrorResponse é o envelope de erro que a API CareConnect devolve.
// O campo Message é exibido ao usuário exatamente como veio.
type ErrorResponse struct {
	Message string `json:"message"`
}
