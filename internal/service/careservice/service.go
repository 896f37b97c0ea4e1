package careservice

import (
	"context"
	"sort"
	"strings"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/logger"
)

// RecommendationRepository define o contrato do fetcher de recomendações.
type RecommendationRepository interface {
	FoodsByPatient(ctx context.Context, patientID string) ([]domain.FoodRecommendation, error)
	SportsByPatient(ctx context.Context, patientID string) ([]domain.SportRecommendation, error)
	CreateFood(ctx context.Context, request domain.FoodRecommendationRequest) error
	CreateSport(ctx context.Context, request domain.SportRecommendationRequest) error
}

// PatientRepository resolve o registro de paciente de um usuário.
type PatientRepository interface {
	GetByUser(ctx context.Context, userID string) ([]domain.Patient, error)
}

// Service expõe as recomendações de cuidado (nutrição e atividade
// física) do paciente logado, e a emissão de novas recomendações pelo
// médico.
type Service struct {
	recommendations RecommendationRepository
	patients        PatientRepository
	logger          logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Cuidados.
func NewService(recommendations RecommendationRepository, patients PatientRepository, log logger.Logger) *Service {
	return &Service{recommendations: recommendations, patients: patients, logger: log}
}

// FoodsForUser busca as recomendações nutricionais do paciente logado:
// userId → registro de paciente → recomendações, mais recentes primeiro.
func (s *Service) FoodsForUser(ctx context.Context, userID string) ([]domain.FoodRecommendation, error) {
	if userID == "" {
		return nil, apperror.NewSessionError("User not authenticated")
	}

	patients, err := s.patients.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		// Sem cadastro de paciente não há recomendações: vazio, não erro.
		return []domain.FoodRecommendation{}, nil
	}

	recommendations, err := s.recommendations.FoodsByPatient(ctx, patients[0].ID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		ti, okI := recommendations[i].CreatedTime()
		tj, okJ := recommendations[j].CreatedTime()
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return ti.After(tj)
	})
	return recommendations, nil
}

// SportsForUser é o análogo de FoodsForUser para atividades físicas.
func (s *Service) SportsForUser(ctx context.Context, userID string) ([]domain.SportRecommendation, error) {
	if userID == "" {
		return nil, apperror.NewSessionError("User not authenticated")
	}

	patients, err := s.patients.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return []domain.SportRecommendation{}, nil
	}

	recommendations, err := s.recommendations.SportsByPatient(ctx, patients[0].ID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		ti, okI := recommendations[i].CreatedTime()
		tj, okJ := recommendations[j].CreatedTime()
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return ti.After(tj)
	})
	return recommendations, nil
}

// RecommendFoods emite uma recomendação nutricional para um paciente.
func (s *Service) RecommendFoods(ctx context.Context, request domain.FoodRecommendationRequest) error {
	if strings.TrimSpace(request.Patient) == "" {
		return apperror.NewValidationError("Patient is required")
	}
	if len(request.RecommendedFoods) == 0 {
		return apperror.NewValidationError("At least one food item is required")
	}
	for _, item := range request.RecommendedFoods {
		if strings.TrimSpace(item.Name) == "" {
			return apperror.NewValidationError("Food item name is required")
		}
	}

	if err := s.recommendations.CreateFood(ctx, request); err != nil {
		return err
	}
	s.logger.Info("food recommendation created", map[string]interface{}{
		"patient_id": request.Patient,
		"items":      len(request.RecommendedFoods),
	})
	return nil
}

// RecommendSports emite uma recomendação de atividade física.
func (s *Service) RecommendSports(ctx context.Context, request domain.SportRecommendationRequest) error {
	if strings.TrimSpace(request.Patient) == "" {
		return apperror.NewValidationError("Patient is required")
	}
	if len(request.RecommendedSports) == 0 {
		return apperror.NewValidationError("At least one sport item is required")
	}
	for _, item := range request.RecommendedSports {
		if strings.TrimSpace(item.Name) == "" {
			return apperror.NewValidationError("Sport item name is required")
		}
	}

	if err := s.recommendations.CreateSport(ctx, request); err != nil {
		return err
	}
	s.logger.Info("sport recommendation created", map[string]interface{}{
		"patient_id": request.Patient,
		"items":      len(request.RecommendedSports),
	})
	return nil
}
