package directoryservice

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/logger"
)

const maxLookups = 8

// PatientRepository define o contrato do fetcher de pacientes.
type PatientRepository interface {
	All(ctx context.Context) ([]domain.Patient, error)
	Get(ctx context.Context, id string) (domain.Patient, error)
	Delete(ctx context.Context, id string) error
}

// DoctorRepository define o contrato do fetcher de médicos.
type DoctorRepository interface {
	All(ctx context.Context) ([]domain.Doctor, error)
	Get(ctx context.Context, id string) (domain.Doctor, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository resolve os campos de exibição de um usuário.
type UserRepository interface {
	GetOne(ctx context.Context, id string) (domain.User, error)
}

// AppointmentRepository fornece a coleção de consultas para o painel.
type AppointmentRepository interface {
	All(ctx context.Context) ([]domain.Appointment, error)
}

// HealthRepository fornece as queixas de saúde para o painel.
type HealthRepository interface {
	All(ctx context.Context) ([]domain.HealthComplaint, error)
}

// RecommendationRepository fornece os relatórios de recomendação para o painel.
type RecommendationRepository interface {
	AllFoods(ctx context.Context) ([]domain.FoodRecommendation, error)
	AllSports(ctx context.Context) ([]domain.SportRecommendation, error)
}

// Service é o agregador do diretório administrativo: listas de pacientes
// e médicos com o usuário resolvido por linha, remoções e o painel de
// métricas da clínica.
type Service struct {
	patients        PatientRepository
	doctors         DoctorRepository
	users           UserRepository
	appointments    AppointmentRepository
	health          HealthRepository
	recommendations RecommendationRepository
	logger          logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Diretório.
func NewService(patients PatientRepository, doctors DoctorRepository, users UserRepository, appointments AppointmentRepository, health HealthRepository, recommendations RecommendationRepository, log logger.Logger) *Service {
	return &Service{
		patients:        patients,
		doctors:         doctors,
		users:           users,
		appointments:    appointments,
		health:          health,
		recommendations: recommendations,
		logger:          log,
	}
}

// Patients lista todos os pacientes com os campos de exibição do usuário
// resolvidos. Linhas cujo usuário não pôde ser resolvido seguem com
// User nil; a visualização as renderiza com "N/A".
func (s *Service) Patients(ctx context.Context) ([]domain.PatientRecord, error) {
	patients, err := s.patients.All(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]domain.PatientRecord, len(patients))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxLookups)

	for i, patient := range patients {
		records[i] = domain.PatientRecord{Patient: patient}

		// Rota de lista pode vir com o user populado; só busca quando não vem.
		if patient.User.User != nil {
			records[i].User = patient.User.User
			continue
		}
		if patient.User.IsZero() {
			s.degrade("patient", patient.ID, apperror.NewValidationError("patient has no user reference"))
			continue
		}

		i, patient := i, patient
		g.Go(func() error {
			user, err := s.users.GetOne(groupCtx, patient.User.ID)
			if err != nil {
				s.degrade("patient", patient.ID, err)
				return nil
			}
			records[i].User = &user
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("aggregation cancelled", err)
	}
	return records, nil
}

// Doctors é o análogo de Patients para médicos.
func (s *Service) Doctors(ctx context.Context) ([]domain.DoctorRecord, error) {
	doctors, err := s.doctors.All(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]domain.DoctorRecord, len(doctors))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxLookups)

	for i, doctor := range doctors {
		records[i] = domain.DoctorRecord{Doctor: doctor}

		if doctor.User.User != nil {
			records[i].User = doctor.User.User
			continue
		}
		if doctor.User.IsZero() {
			s.degrade("doctor", doctor.ID, apperror.NewValidationError("doctor has no user reference"))
			continue
		}

		i, doctor := i, doctor
		g.Go(func() error {
			user, err := s.users.GetOne(groupCtx, doctor.User.ID)
			if err != nil {
				s.degrade("doctor", doctor.ID, err)
				return nil
			}
			records[i].User = &user
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("aggregation cancelled", err)
	}
	return records, nil
}

// DoctorDetails busca o registro completo de um médico. A rota de
// detalhe devolve o user populado; quando não devolve, resolve aqui.
func (s *Service) DoctorDetails(ctx context.Context, id string) (domain.DoctorRecord, error) {
	if id == "" {
		return domain.DoctorRecord{}, apperror.NewValidationError("Doctor id is required")
	}

	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return domain.DoctorRecord{}, err
	}

	record := domain.DoctorRecord{Doctor: doctor}
	if doctor.User.User != nil {
		record.User = doctor.User.User
		return record, nil
	}
	if !doctor.User.IsZero() {
		user, err := s.users.GetOne(ctx, doctor.User.ID)
		if err != nil {
			s.degrade("doctor", doctor.ID, err)
			return record, nil
		}
		record.User = &user
	}
	return record, nil
}

// PatientDetails é o análogo de DoctorDetails para pacientes.
func (s *Service) PatientDetails(ctx context.Context, id string) (domain.PatientRecord, error) {
	if id == "" {
		return domain.PatientRecord{}, apperror.NewValidationError("Patient id is required")
	}

	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return domain.PatientRecord{}, err
	}

	record := domain.PatientRecord{Patient: patient}
	if patient.User.User != nil {
		record.User = patient.User.User
		return record, nil
	}
	if !patient.User.IsZero() {
		user, err := s.users.GetOne(ctx, patient.User.ID)
		if err != nil {
			s.degrade("patient", patient.ID, err)
			return record, nil
		}
		record.User = &user
	}
	return record, nil
}

// DeletePatient remove um paciente do diretório.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("Patient id is required")
	}
	if err := s.patients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("patient deleted", map[string]interface{}{"patient_id": id})
	return nil
}

// DeleteDoctor remove um médico do diretório.
func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("Doctor id is required")
	}
	if err := s.doctors.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("doctor deleted", map[string]interface{}{"doctor_id": id})
	return nil
}

// Dashboard monta o painel administrativo buscando as seis coleções em
// paralelo. Diferente das listas, aqui NÃO há degradação parcial: o
// painel mostra contagens, e contagem sobre fonte ausente mentiria.
// Qualquer falha derruba o painel inteiro.
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardSummary, error) {
	var (
		patients     []domain.Patient
		doctors      []domain.Doctor
		appointments []domain.Appointment
		complaints   []domain.HealthComplaint
		foods        []domain.FoodRecommendation
		sports       []domain.SportRecommendation
	)

	g, groupCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		patients, err = s.patients.All(groupCtx)
		return err
	})
	g.Go(func() error {
		var err error
		doctors, err = s.doctors.All(groupCtx)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = s.appointments.All(groupCtx)
		return err
	})
	g.Go(func() error {
		var err error
		complaints, err = s.health.All(groupCtx)
		return err
	})
	g.Go(func() error {
		var err error
		foods, err = s.recommendations.AllFoods(groupCtx)
		return err
	})
	g.Go(func() error {
		var err error
		sports, err = s.recommendations.AllSports(groupCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.DashboardSummary{}, err
	}

	perDay, average := appointmentsPerDay(appointments, time.Now())

	return domain.DashboardSummary{
		PatientCount:         len(patients),
		DoctorCount:          len(doctors),
		AppointmentCount:     len(appointments),
		ComplaintCount:       len(complaints),
		FoodRecommendations:  len(foods),
		SportRecommendations: len(sports),
		AppointmentsPerDay:   perDay,
		AveragePerDay:        average,
		TopComplaintStatus:   topStatus(complaints),
	}, nil
}

// appointmentsPerDay conta as consultas por dia nos últimos 7 dias
// (inclusive hoje) e a média por dia nesse intervalo.
func appointmentsPerDay(appointments []domain.Appointment, now time.Time) ([]domain.DayCount, float64) {
	const window = 7

	counts := make(map[string]int, window)
	days := make([]domain.DayCount, 0, window)
	for offset := window - 1; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset).Format("1/2/2006")
		counts[day] = 0
		days = append(days, domain.DayCount{Day: day})
	}

	total := 0
	for _, appointment := range appointments {
		when, ok := appointment.DateTime()
		if !ok {
			continue
		}
		day := when.Format("1/2/2006")
		if _, inWindow := counts[day]; inWindow {
			counts[day]++
			total++
		}
	}

	for i := range days {
		days[i].Count = counts[days[i].Day]
	}
	return days, float64(total) / float64(window)
}

// topStatus devolve o status de queixa mais frequente; empates são
// desfeitos alfabeticamente para o resultado ser determinístico.
func topStatus(complaints []domain.HealthComplaint) string {
	if len(complaints) == 0 {
		return ""
	}

	counts := make(map[string]int)
	for _, complaint := range complaints {
		status := complaint.Status
		if status == "" {
			status = "unknown"
		}
		counts[status]++
	}

	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	top := statuses[0]
	for _, status := range statuses[1:] {
		if counts[status] > counts[top] {
			top = status
		}
	}
	return top
}

func (s *Service) degrade(kind, id string, err error) {
	s.logger.Warn("user lookup failed, keeping unresolved row", map[string]interface{}{
		"kind":  kind,
		"id":    id,
		"error": err.Error(),
	})
}
