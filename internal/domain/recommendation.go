package domain

import "time"

// FoodItem é um item da lista de alimentos recomendados.
type FoodItem struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity,omitempty"`
	TimeOfDay string `json:"timeOfDay,omitempty"`
}

// FoodRecommendation representa uma recomendação nutricional emitida
// por um médico para um paciente.
type FoodRecommendation struct {
	ID               string     `json:"_id"`
	Patient          string     `json:"patient"`
	RecommendedFoods []FoodItem `json:"recommendedFoods"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        string     `json:"createdAt,omitempty"`
}

// CreatedTime devolve o createdAt como time.Time (ok=false se ausente/inválido).
func (r FoodRecommendation) CreatedTime() (time.Time, bool) {
	return parseAPITime(r.CreatedAt)
}

// SportItem é um item da lista de atividades físicas recomendadas.
type SportItem struct {
	Name      string `json:"name"`
	Duration  string `json:"duration,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Intensity string `json:"intensity,omitempty"`
}

// SportRecommendation representa uma recomendação de atividade física.
type SportRecommendation struct {
	ID                string      `json:"_id"`
	Patient           string      `json:"patient"`
	RecommendedSports []SportItem `json:"recommendedSports"`
	Notes             string      `json:"notes,omitempty"`
	CreatedAt         string      `json:"createdAt,omitempty"`
}

// CreatedTime devolve o createdAt como time.Time (ok=false se ausente/inválido).
func (r SportRecommendation) CreatedTime() (time.Time, bool) {
	return parseAPITime(r.CreatedAt)
}

// FoodRecommendationRequest é o payload de criação (POST api/foods/create).
type FoodRecommendationRequest struct {
	Patient          string     `json:"patient"`
	RecommendedFoods []FoodItem `json:"recommendedFoods"`
	Notes            string     `json:"notes,omitempty"`
}

// SportRecommendationRequest é o payload de criação (POST api/sports/create).
type SportRecommendationRequest struct {
	Patient           string      `json:"patient"`
	RecommendedSports []SportItem `json:"recommendedSports"`
	Notes             string      `json:"notes,omitempty"`
}

// HealthComplaint é consumido apenas pelo dashboard administrativo,
// que conta as queixas por status.
type HealthComplaint struct {
	ID     string `json:"_id"`
	Status string `json:"status,omitempty"`
}
