package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"goclinic/internal/domain"
)

// TestUserRef_UnmarshalString testa a forma `"user": "<id>"`.
func TestUserRef_UnmarshalString(t *testing.T) {
	var appointment domain.Appointment
	payload := `{"_id": "appt-1", "patient": {"user": "user-1"}, "date": "2024-01-01T09:00:00Z"}`

	err := json.Unmarshal([]byte(payload), &appointment)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", appointment.Patient.User.ID)
	assert.Nil(t, appointment.Patient.User.User)
	assert.False(t, appointment.Patient.User.IsZero())
}

// TestUserRef_UnmarshalObject testa a forma populada `"user": {...}`.
func TestUserRef_UnmarshalObject(t *testing.T) {
	var patient domain.Patient
	payload := `{"_id": "patient-1", "user": {"_id": "user-1", "firstName": "Jane", "lastName": "Doe"}}`

	err := json.Unmarshal([]byte(payload), &patient)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", patient.User.ID)
	assert.NotNil(t, patient.User.User)
	assert.Equal(t, "Jane Doe", patient.User.User.FullName())
}

// TestUserRef_UnmarshalNull testa o campo ausente/null: ref zero.
func TestUserRef_UnmarshalNull(t *testing.T) {
	var patient domain.Patient
	payload := `{"_id": "patient-1", "user": null}`

	err := json.Unmarshal([]byte(payload), &patient)

	assert.NoError(t, err)
	assert.True(t, patient.User.IsZero())
}

// TestUserRef_MarshalRoundTrip testa a serialização de volta na forma
// mais simples disponível.
func TestUserRef_MarshalRoundTrip(t *testing.T) {
	ref := domain.UserRef{ID: "user-1"}
	data, err := json.Marshal(ref)

	assert.NoError(t, err)
	assert.Equal(t, `"user-1"`, string(data))
}

// TestAppointment_DateTime testa os formatos de data aceitos.
func TestAppointment_DateTime(t *testing.T) {
	valid := domain.Appointment{Date: "2024-01-01T09:00:00Z"}
	when, ok := valid.DateTime()
	assert.True(t, ok)
	assert.Equal(t, 2024, when.Year())

	dateOnly := domain.Appointment{Date: "2024-01-01"}
	_, ok = dateOnly.DateTime()
	assert.True(t, ok)

	invalid := domain.Appointment{Date: "tomorrow"}
	_, ok = invalid.DateTime()
	assert.False(t, ok)

	empty := domain.Appointment{}
	_, ok = empty.DateTime()
	assert.False(t, ok)
}

// TestUser_FullName testa o nome de exibição.
func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", domain.User{FirstName: "Jane", LastName: "Doe"}.FullName())
	assert.Empty(t, domain.User{}.FullName())
}

// TestSession_Authenticated testa que só a presença do token conta;
// a expiração fica a cargo do servidor.
func TestSession_Authenticated(t *testing.T) {
	assert.True(t, domain.Session{Token: "anything"}.Authenticated())
	assert.False(t, domain.Session{UserID: "user-1"}.Authenticated())
}
