package appointmentrepo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/httpclient"
	"goclinic/internal/pkg/logger"
	"goclinic/internal/repository/appointmentrepo"
)

type staticTokens struct{}

func (staticTokens) Token() (string, error) { return "token-abc", nil }

func newRepository(serverURL string) *appointmentrepo.AppointmentRepository {
	api := httpclient.New(serverURL, 5*time.Second, staticTokens{}, logger.NewLogger("error"))
	return appointmentrepo.NewAppointmentRepository(api, logger.NewLogger("error"))
}

// TestByPatient_Success testa o fetch com o envelope esperado.
func TestByPatient_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointment/byPatient/patient-1", r.URL.Path)
		w.Write([]byte(`{"appointments": [{"_id": "appt-1", "patient": {"user": "user-1"}, "doctor": {"user": "doc-user-1"}, "date": "2024-01-01T09:00:00Z", "timeSlot": "09:00"}]}`))
	}))
	defer server.Close()

	repo := newRepository(server.URL)
	appointments, err := repo.ByPatient(context.Background(), "patient-1")

	assert.NoError(t, err)
	assert.Len(t, appointments, 1)
	assert.Equal(t, "appt-1", appointments[0].ID)
	assert.Equal(t, "doc-user-1", appointments[0].Doctor.User.ID)
}

// TestByPatient_EmptyList testa que uma lista legitimamente vazia não é erro.
func TestByPatient_EmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"appointments": []}`))
	}))
	defer server.Close()

	repo := newRepository(server.URL)
	appointments, err := repo.ByPatient(context.Background(), "patient-1")

	assert.NoError(t, err)
	assert.NotNil(t, appointments)
	assert.Empty(t, appointments)
}

// TestByPatient_NotFound testa que o 404 das rotas de listagem vira
// lista vazia, como o servidor o usa para "nenhum resultado".
func TestByPatient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "No appointments found"}`))
	}))
	defer server.Close()

	repo := newRepository(server.URL)
	appointments, err := repo.ByPatient(context.Background(), "patient-1")

	assert.NoError(t, err)
	assert.Empty(t, appointments)
}

// TestByPatient_MissingEnvelope testa que a chave ausente é um erro de
// decodificação explícito, não uma lista vazia silenciosa.
func TestByPatient_MissingEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	repo := newRepository(server.URL)
	appointments, err := repo.ByPatient(context.Background(), "patient-1")

	assert.Error(t, err)
	assert.Nil(t, appointments)
	appErr, ok := err.(apperror.AppError)
	assert.True(t, ok)
	assert.Equal(t, "DECODE_ERROR", appErr.Category())
}

// TestCreate_Success testa o agendamento com o payload completo.
func TestCreate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/appointment/create", r.URL.Path)
		w.Write([]byte(`{"appointment": {"_id": "appt-1", "date": "2024-05-01", "timeSlot": "09:00"}}`))
	}))
	defer server.Close()

	repo := newRepository(server.URL)
	created, err := repo.Create(context.Background(), domain.AppointmentRequest{
		Patient: "patient-1", Doctor: "doctor-1", Date: "2024-05-01", TimeSlot: "09:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, "appt-1", created.ID)
}

// TestDelete testa o cancelamento.
func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/appointment/delete/appt-1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	repo := newRepository(server.URL)
	assert.NoError(t, repo.Delete(context.Background(), "appt-1"))
}
