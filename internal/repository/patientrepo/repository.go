package patientrepo

import (
	"context"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/httpclient"
	"goclinic/internal/pkg/logger"
)

// PatientRepository é o fetcher do recurso patient da API CareConnect.
type PatientRepository struct {
	api    *httpclient.Client
	logger logger.Logger
}

// NewPatientRepository cria e retorna uma nova instância do Repositório.
func NewPatientRepository(api *httpclient.Client, log logger.Logger) *PatientRepository {
	return &PatientRepository{api: api, logger: log}
}

// listEnvelope embrulha as respostas de coleção (`{"patients": [...]}`).
// O ponteiro para slice distingue a chave ausente (payload malformado)
// de uma lista legitimamente vazia.
type listEnvelope struct {
	Patients *[]domain.Patient `json:"patients"`
}

type singleEnvelope struct {
	Patient *domain.Patient `json:"patient"`
}

// All busca todos os pacientes (GET api/patient/all).
func (r *PatientRepository) All(ctx context.Context) ([]domain.Patient, error) {
	var envelope listEnvelope
	if err := r.api.Get(ctx, "/api/patient/all", &envelope); err != nil {
		return nil, err
	}
	if envelope.Patients == nil {
		return nil, apperror.NewDecodeError("patient list response missing 'patients' envelope", nil)
	}
	return *envelope.Patients, nil
}

// GetByUser busca o registro de paciente associado a um usuário
// (GET api/patient/getPatientByUser/{userId}). A API devolve um array
// mesmo quando há no máximo um registro; o chamador usa o primeiro.
func (r *PatientRepository) GetByUser(ctx context.Context, userID string) ([]domain.Patient, error) {
	var envelope listEnvelope
	err := r.api.Get(ctx, "/api/patient/getPatientByUser/"+userID, &envelope)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Usuário sem cadastro de paciente: lista vazia, não erro.
			return []domain.Patient{}, nil
		}
		return nil, err
	}
	if envelope.Patients == nil {
		return nil, apperror.NewDecodeError("patient response missing 'patients' envelope", nil)
	}
	return *envelope.Patients, nil
}

// Get busca um paciente pelo id (GET api/patient/getPatient/{id}).
func (r *PatientRepository) Get(ctx context.Context, id string) (domain.Patient, error) {
	var envelope singleEnvelope
	if err := r.api.Get(ctx, "/api/patient/getPatient/"+id, &envelope); err != nil {
		return domain.Patient{}, err
	}
	if envelope.Patient == nil {
		return domain.Patient{}, apperror.NewDecodeError("patient response missing 'patient' envelope", nil)
	}
	return *envelope.Patient, nil
}

// Delete remove um paciente (DELETE api/patient/delete/{id}).
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "/api/patient/delete/"+id)
}
