package appointmentrepo

import (
	"context"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/httpclient"
	"goclinic/internal/pkg/logger"
)

// AppointmentRepository é o fetcher do recurso appointment da API CareConnect.
type AppointmentRepository struct {
	api    *httpclient.Client
	logger logger.Logger
}

// NewAppointmentRepository cria e retorna uma nova instância do Repositório.
func NewAppointmentRepository(api *httpclient.Client, log logger.Logger) *AppointmentRepository {
	return &AppointmentRepository{api: api, logger: log}
}

type listEnvelope struct {
	Appointments *[]domain.Appointment `json:"appointments"`
}

type singleEnvelope struct {
	Appointment *domain.Appointment `json:"appointment"`
}

// All busca todas as consultas (GET api/appointment/all), visão admin.
func (r *AppointmentRepository) All(ctx context.Context) ([]domain.Appointment, error) {
	return r.list(ctx, "/api/appointment/all")
}

// ByPatient busca as consultas de um paciente
// (GET api/appointment/byPatient/{patientId}).
func (r *AppointmentRepository) ByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	return r.list(ctx, "/api/appointment/byPatient/"+patientID)
}

// ByDoctor busca as consultas de um médico. A rota recebe o id de
// USUÁRIO do médico, não o id do registro de médico. É assim que o
// cliente original a chama.
func (r *AppointmentRepository) ByDoctor(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return r.list(ctx, "/api/appointment/byDoctor/"+userID)
}

// ByUser busca as consultas associadas a um usuário qualquer
// (GET api/appointment/byUser/{userId}).
func (r *AppointmentRepository) ByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return r.list(ctx, "/api/appointment/byUser/"+userID)
}

// Get busca uma consulta pelo id (GET api/appointment/get/{id}).
func (r *AppointmentRepository) Get(ctx context.Context, id string) (domain.Appointment, error) {
	var envelope singleEnvelope
	if err := r.api.Get(ctx, "/api/appointment/get/"+id, &envelope); err != nil {
		return domain.Appointment{}, err
	}
	if envelope.Appointment == nil {
		return domain.Appointment{}, apperror.NewDecodeError("appointment response missing 'appointment' envelope", nil)
	}
	return *envelope.Appointment, nil
}

// Create agenda uma nova consulta (POST api/appointment/create).
func (r *AppointmentRepository) Create(ctx context.Context, request domain.AppointmentRequest) (domain.Appointment, error) {
	var envelope singleEnvelope
	if err := r.api.Post(ctx, "/api/appointment/create", request, &envelope); err != nil {
		return domain.Appointment{}, err
	}
	if envelope.Appointment == nil {
		return domain.Appointment{}, apperror.NewDecodeError("create response missing 'appointment' envelope", nil)
	}
	return *envelope.Appointment, nil
}

// Delete cancela/remove uma consulta (DELETE api/appointment/delete/{id}).
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "/api/appointment/delete/"+id)
}

// list centraliza o fetch de coleções. Um 404 nas rotas de listagem
// significa "nenhuma consulta para este filtro" no servidor atual e é
// traduzido para lista vazia, como o cliente original fazia.
func (r *AppointmentRepository) list(ctx context.Context, path string) ([]domain.Appointment, error) {
	var envelope listEnvelope
	err := r.api.Get(ctx, path, &envelope)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []domain.Appointment{}, nil
		}
		return nil, err
	}
	if envelope.Appointments == nil {
		return nil, apperror.NewDecodeError("appointment list response missing 'appointments' envelope", nil)
	}
	return *envelope.Appointments, nil
}
