package domain

// DayCount é um ponto da série de consultas por dia.
type DayCount struct {
	Day   string // formato "1/2/2006"
	Count int
}

// DashboardSummary agrega as métricas exibidas no painel administrativo.
// Ao contrário das listas, o painel não admite degradação parcial: se
// qualquer fonte falhar, o painel inteiro falha.
type DashboardSummary struct {
	PatientCount        int
	DoctorCount         int
	AppointmentCount    int
	ComplaintCount      int
	FoodRecommendations int
	SportRecommendations int

	// Consultas nos últimos 7 dias, do mais antigo para o mais recente.
	AppointmentsPerDay []DayCount
	AveragePerDay      float64

	// Status de queixa mais frequente ("" quando não há queixas).
	TopComplaintStatus string
}
