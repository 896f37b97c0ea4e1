package recommendationrepo

import (
	"context"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/httpclient"
	"goclinic/internal/pkg/logger"
)

// RecommendationRepository é o fetcher dos recursos foods e sports.
// Os dois compartilham o mesmo formato de rota e, nas rotas por
// paciente, o mesmo envelope `recommendations`; nas rotas `all` o
// servidor usa chaves diferentes (`reports` e `feedbacks`), herança
// do backend, reproduzida como está.
type RecommendationRepository struct {
	api    *httpclient.Client
	logger logger.Logger
}

// NewRecommendationRepository cria e retorna uma nova instância do Repositório.
func NewRecommendationRepository(api *httpclient.Client, log logger.Logger) *RecommendationRepository {
	return &RecommendationRepository{api: api, logger: log}
}

type foodListEnvelope struct {
	Recommendations *[]domain.FoodRecommendation `json:"recommendations"`
}

type sportListEnvelope struct {
	Recommendations *[]domain.SportRecommendation `json:"recommendations"`
}

type foodReportsEnvelope struct {
	Reports *[]domain.FoodRecommendation `json:"reports"`
}

type sportFeedbacksEnvelope struct {
	Feedbacks *[]domain.SportRecommendation `json:"feedbacks"`
}

// FoodsByPatient busca as recomendações nutricionais de um paciente
// (GET api/foods/patient/{patientId}).
func (r *RecommendationRepository) FoodsByPatient(ctx context.Context, patientID string) ([]domain.FoodRecommendation, error) {
	var envelope foodListEnvelope
	err := r.api.Get(ctx, "/api/foods/patient/"+patientID, &envelope)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []domain.FoodRecommendation{}, nil
		}
		return nil, err
	}
	if envelope.Recommendations == nil {
		return nil, apperror.NewDecodeError("foods response missing 'recommendations' envelope", nil)
	}
	return *envelope.Recommendations, nil
}

// SportsByPatient busca as recomendações de atividade física de um
// paciente (GET api/sports/patient/{patientId}).
func (r *RecommendationRepository) SportsByPatient(ctx context.Context, patientID string) ([]domain.SportRecommendation, error) {
	var envelope sportListEnvelope
	err := r.api.Get(ctx, "/api/sports/patient/"+patientID, &envelope)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []domain.SportRecommendation{}, nil
		}
		return nil, err
	}
	if envelope.Recommendations == nil {
		return nil, apperror.NewDecodeError("sports response missing 'recommendations' envelope", nil)
	}
	return *envelope.Recommendations, nil
}

// AllFoods busca todas as recomendações nutricionais (GET api/foods/all).
func (r *RecommendationRepository) AllFoods(ctx context.Context) ([]domain.FoodRecommendation, error) {
	var envelope foodReportsEnvelope
	if err := r.api.Get(ctx, "/api/foods/all", &envelope); err != nil {
		return nil, err
	}
	if envelope.Reports == nil {
		return nil, apperror.NewDecodeError("foods response missing 'reports' envelope", nil)
	}
	return *envelope.Reports, nil
}

// AllSports busca todas as recomendações de atividade física
// (GET api/sports/all).
func (r *RecommendationRepository) AllSports(ctx context.Context) ([]domain.SportRecommendation, error) {
	var envelope sportFeedbacksEnvelope
	if err := r.api.Get(ctx, "/api/sports/all", &envelope); err != nil {
		return nil, err
	}
	if envelope.Feedbacks == nil {
		return nil, apperror.NewDecodeError("sports response missing 'feedbacks' envelope", nil)
	}
	return *envelope.Feedbacks, nil
}

// CreateFood registra uma nova recomendação nutricional (POST api/foods/create).
func (r *RecommendationRepository) CreateFood(ctx context.Context, request domain.FoodRecommendationRequest) error {
	return r.api.Post(ctx, "/api/foods/create", request, nil)
}

// CreateSport registra uma nova recomendação de atividade física
// (POST api/sports/create).
func (r *RecommendationRepository) CreateSport(ctx context.Context, request domain.SportRecommendationRequest) error {
	return r.api.Post(ctx, "/api/sports/create", request, nil)
}
