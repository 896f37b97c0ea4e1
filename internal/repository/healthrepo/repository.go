package healthrepo

import (
	"context"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/httpclient"
	"goclinic/internal/pkg/logger"
)

// HealthRepository é o fetcher do recurso health (queixas de saúde),
// consumido apenas pelo dashboard administrativo.
type HealthRepository struct {
	api    *httpclient.Client
	logger logger.Logger
}

// NewHealthRepository cria e retorna uma nova instância do Repositório.
func NewHealthRepository(api *httpclient.Client, log logger.Logger) *HealthRepository {
	return &HealthRepository{api: api, logger: log}
}

type listEnvelope struct {
	Complaints *[]domain.HealthComplaint `json:"complaints"`
}

// All busca todas as queixas de saúde (GET api/health/all).
func (r *HealthRepository) All(ctx context.Context) ([]domain.HealthComplaint, error) {
	var envelope listEnvelope
	if err := r.api.Get(ctx, "/api/health/all", &envelope); err != nil {
		return nil, err
	}
	if envelope.Complaints == nil {
		return nil, apperror.NewDecodeError("health response missing 'complaints' envelope", nil)
	}
	return *envelope.Complaints, nil
}
