package domain

import "time"

// PartyRef aponta para o paciente ou médico de uma consulta. A API
// devolve um objeto com a referência de usuário dentro (`{user: "<id>"}`),
// às vezes acompanhado do `_id` do próprio paciente/médico.
type PartyRef struct {
	ID   string  `json:"_id,omitempty"`
	User UserRef `json:"user"`
}

// Appointment representa uma consulta como a API a devolve.
// Date chega como string ISO-8601; o parse acontece na ordenação e na
// formatação de exibição, nunca na desserialização (datas inválidas
// viram "N/A" na tela, não erro).
type Appointment struct {
	ID        string   `json:"_id"`
	Patient   PartyRef `json:"patient"`
	Doctor    PartyRef `json:"doctor"`
	Date      string   `json:"date"`
	TimeSlot  string   `json:"timeSlot"`
	Reason    string   `json:"reason,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Status    string   `json:"status,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// DateTime devolve a data da consulta como time.Time.
// ok=false quando o campo está vazio ou não é ISO-8601.
func (a Appointment) DateTime() (time.Time, bool) {
	return parseAPITime(a.Date)
}

// AppointmentRequest é o payload de criação de consulta
// (POST api/appointment/create). Patient e Doctor carregam ids.
type AppointmentRequest struct {
	Patient  string `json:"patient"`
	Doctor   string `json:"doctor"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Reason   string `json:"reason,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ResolvedAppointment é o registro desnormalizado produzido pelo
// agregador de agenda: a consulta mais os nomes de exibição resolvidos
// via fetch secundário. Um campo vazio significa que a resolução
// daquele lado falhou e a linha mantém apenas as referências originais.
type ResolvedAppointment struct {
	Appointment Appointment
	DoctorName  string
	PatientName string
}

// parseAPITime aceita os formatos de data que a API emite.
func parseAPITime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
