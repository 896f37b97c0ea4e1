package doctorrepo

import (
	"context"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/httpclient"
	"goclinic/internal/pkg/logger"
)

// DoctorRepository é o fetcher do recurso doctor da API CareConnect.
type DoctorRepository struct {
	api    *httpclient.Client
	logger logger.Logger
}

// NewDoctorRepository cria e retorna uma nova instância do Repositório.
func NewDoctorRepository(api *httpclient.Client, log logger.Logger) *DoctorRepository {
	return &DoctorRepository{api: api, logger: log}
}

type listEnvelope struct {
	Doctors *[]domain.Doctor `json:"doctors"`
}

type singleEnvelope struct {
	Doctor *domain.Doctor `json:"doctor"`
}

// All busca todos os médicos (GET api/doctor/all).
func (r *DoctorRepository) All(ctx context.Context) ([]domain.Doctor, error) {
	var envelope listEnvelope
	if err := r.api.Get(ctx, "/api/doctor/all", &envelope); err != nil {
		return nil, err
	}
	if envelope.Doctors == nil {
		return nil, apperror.NewDecodeError("doctor list response missing 'doctors' envelope", nil)
	}
	return *envelope.Doctors, nil
}

// GetByUser busca o médico associado a um usuário
// (GET api/doctor/getDoctorByUser/{userId}).
//
// Atenção: este é o único endpoint da API que devolve o objeto NU,
// sem envelope. Reproduzido como está.
func (r *DoctorRepository) GetByUser(ctx context.Context, userID string) (domain.Doctor, error) {
	var doctor domain.Doctor
	if err := r.api.Get(ctx, "/api/doctor/getDoctorByUser/"+userID, &doctor); err != nil {
		return domain.Doctor{}, err
	}
	return doctor, nil
}

// Get busca um médico pelo id (GET api/doctor/getdoctor/{id}).
// Nesta rota a API devolve o user populado dentro do médico.
func (r *DoctorRepository) Get(ctx context.Context, id string) (domain.Doctor, error) {
	var envelope singleEnvelope
	if err := r.api.Get(ctx, "/api/doctor/getdoctor/"+id, &envelope); err != nil {
		return domain.Doctor{}, err
	}
	if envelope.Doctor == nil {
		return domain.Doctor{}, apperror.NewDecodeError("doctor response missing 'doctor' envelope", nil)
	}
	return *envelope.Doctor, nil
}

// Delete remove um médico (DELETE api/doctor/delete/{id}).
func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "/api/doctor/delete/"+id)
}
