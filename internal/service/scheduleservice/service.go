package scheduleservice

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/logger"
)

// maxLookups limita o fan-out de fetches secundários por agregação.
// O dispatch é paralelo e não-ordenado: a latência da agregação fica
// limitada ao lookup mais lento, não à soma de todos.
const maxLookups = 8

// AppointmentRepository define o contrato que este Serviço espera do
// fetcher de consultas.
type AppointmentRepository interface {
	All(ctx context.Context) ([]domain.Appointment, error)
	ByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	ByDoctor(ctx context.Context, userID string) ([]domain.Appointment, error)
	Get(ctx context.Context, id string) (domain.Appointment, error)
	Create(ctx context.Context, request domain.AppointmentRequest) (domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// PatientRepository resolve o registro de paciente de um usuário.
type PatientRepository interface {
	GetByUser(ctx context.Context, userID string) ([]domain.Patient, error)
}

// DoctorRepository resolve o registro de médico de um usuário.
type DoctorRepository interface {
	GetByUser(ctx context.Context, userID string) (domain.Doctor, error)
}

// UserRepository resolve os campos de exibição de um usuário.
type UserRepository interface {
	GetOne(ctx context.Context, id string) (domain.User, error)
}

// Service é o agregador da agenda: compõe os fetchers para resolver as
// referências cruzadas (consulta → médico/paciente → usuário) que a API
// não resolve do lado do servidor, produzindo registros prontos para a
// camada de visualização.
type Service struct {
	appointments AppointmentRepository
	patients     PatientRepository
	doctors      DoctorRepository
	users        UserRepository
	logger       logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Agenda.
func NewService(appointments AppointmentRepository, patients PatientRepository, doctors DoctorRepository, users UserRepository, log logger.Logger) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		users:        users,
		logger:       log,
	}
}

// ForPatient monta a agenda do paciente logado:
// userId → registro de paciente → consultas → nome do médico por linha.
func (s *Service) ForPatient(ctx context.Context, userID string) ([]domain.ResolvedAppointment, error) {
	if userID == "" {
		return nil, apperror.NewSessionError("User not authenticated")
	}

	// 1. Resolver o registro de paciente do usuário
	patients, err := s.patients.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		// Usuário sem cadastro de paciente: agenda vazia, não erro.
		return []domain.ResolvedAppointment{}, nil
	}

	// 2. Coleção primária
	appointments, err := s.appointments.ByPatient(ctx, patients[0].ID)
	if err != nil {
		return nil, err
	}

	// 3. Fan-out de resolução + ordenação
	resolved, err := s.resolve(ctx, appointments, s.resolveDoctorName, nil)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(resolved)
	return resolved, nil
}

// ForDoctor monta a agenda do médico logado: consultas do médico com o
// nome do paciente resolvido por linha.
func (s *Service) ForDoctor(ctx context.Context, userID string) ([]domain.ResolvedAppointment, error) {
	if userID == "" {
		return nil, apperror.NewSessionError("User not authenticated")
	}

	appointments, err := s.appointments.ByDoctor(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, appointments, nil, s.resolvePatientName)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(resolved)
	return resolved, nil
}

// All monta a visão administrativa: todas as consultas, com os dois
// lados resolvidos.
func (s *Service) All(ctx context.Context) ([]domain.ResolvedAppointment, error) {
	appointments, err := s.appointments.All(ctx)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, appointments, s.resolveUserSide, s.resolvePatientName)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(resolved)
	return resolved, nil
}

// PatientOf resolve o id do registro de paciente do usuário logado,
// usado quando o paciente agenda para si mesmo.
func (s *Service) PatientOf(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", apperror.NewSessionError("User not authenticated")
	}
	patients, err := s.patients.GetByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(patients) == 0 {
		return "", apperror.NewNotFoundError("No patient record found for this account")
	}
	return patients[0].ID, nil
}

// Get devolve os detalhes de uma consulta.
func (s *Service) Get(ctx context.Context, id string) (domain.Appointment, error) {
	if id == "" {
		return domain.Appointment{}, apperror.NewValidationError("Appointment id is required")
	}
	return s.appointments.Get(ctx, id)
}

// Book agenda uma nova consulta. A validação espelha o formulário
// original: paciente, médico, data e horário obrigatórios.
func (s *Service) Book(ctx context.Context, request domain.AppointmentRequest) (domain.Appointment, error) {
	if strings.TrimSpace(request.Patient) == "" {
		return domain.Appointment{}, apperror.NewValidationError("Patient is required")
	}
	if strings.TrimSpace(request.Doctor) == "" {
		return domain.Appointment{}, apperror.NewValidationError("Doctor is required")
	}
	if strings.TrimSpace(request.Date) == "" {
		return domain.Appointment{}, apperror.NewValidationError("Date is required")
	}
	if strings.TrimSpace(request.TimeSlot) == "" {
		return domain.Appointment{}, apperror.NewValidationError("Time slot is required")
	}

	return s.appointments.Create(ctx, request)
}

// Cancel remove uma consulta pelo id.
func (s *Service) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("Appointment id is required")
	}
	return s.appointments.Delete(ctx, id)
}

// resolver preenche um lado (nome do médico ou do paciente) de uma linha.
type resolver func(ctx context.Context, appointment domain.Appointment) (string, error)

// resolve executa o fan-out de fetches secundários sobre a coleção
// primária. Garantias:
//   - o resultado tem SEMPRE o mesmo tamanho da coleção primária;
//   - falha em um fetch secundário degrada apenas aquela linha (o nome
//     fica vazio e as referências originais permanecem), nunca o todo;
//   - o resultado só é publicado depois que TODOS os lookups terminam;
//   - o cancelamento do contexto do chamador interrompe os lookups em
//     voo e falha a agregação inteira.
func (s *Service) resolve(ctx context.Context, appointments []domain.Appointment, doctorSide, patientSide resolver) ([]domain.ResolvedAppointment, error) {
	resolved := make([]domain.ResolvedAppointment, len(appointments))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxLookups)

	for i, appointment := range appointments {
		resolved[i] = domain.ResolvedAppointment{Appointment: appointment}

		i, appointment := i, appointment
		if doctorSide != nil {
			g.Go(func() error {
				name, err := doctorSide(groupCtx, appointment)
				if err != nil {
					s.degrade(appointment.ID, "doctor", err)
					return nil
				}
				resolved[i].DoctorName = name
				return nil
			})
		}

		if patientSide != nil {
			g.Go(func() error {
				name, err := patientSide(groupCtx, appointment)
				if err != nil {
					s.degrade(appointment.ID, "patient", err)
					return nil
				}
				resolved[i].PatientName = name
				return nil
			})
		}
	}

	// Join: nada é publicado antes de todos os lookups assentarem.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("aggregation cancelled", err)
	}
	return resolved, nil
}

// degrade registra a falha de um fetch secundário. A linha segue com as
// referências originais: degradação parcial, não falha parcial.
func (s *Service) degrade(appointmentID, side string, err error) {
	s.logger.Warn("secondary fetch failed, keeping unresolved row", map[string]interface{}{
		"appointment_id": appointmentID,
		"side":           side,
		"error":          err.Error(),
	})
}

// resolveDoctorName resolve o nome do médico de uma consulta pelo
// caminho que a API exige: ref de usuário do médico → registro de
// médico → usuário do médico.
func (s *Service) resolveDoctorName(ctx context.Context, appointment domain.Appointment) (string, error) {
	ref := appointment.Doctor.User
	if ref.IsZero() {
		return "", apperror.NewValidationError("appointment has no doctor reference")
	}
	if ref.User != nil && ref.User.FullName() != "" {
		return ref.User.FullName(), nil
	}

	doctor, err := s.doctors.GetByUser(ctx, ref.ID)
	if err != nil {
		return "", err
	}
	if doctor.User.User != nil && doctor.User.User.FullName() != "" {
		return doctor.User.User.FullName(), nil
	}

	user, err := s.users.GetOne(ctx, doctor.User.ID)
	if err != nil {
		return "", err
	}
	return user.FullName(), nil
}

// resolveUserSide resolve o nome do médico diretamente pela ref de
// usuário, sem passar pelo registro de médico (visão admin).
func (s *Service) resolveUserSide(ctx context.Context, appointment domain.Appointment) (string, error) {
	ref := appointment.Doctor.User
	if ref.IsZero() {
		return "", apperror.NewValidationError("appointment has no doctor reference")
	}
	if ref.User != nil && ref.User.FullName() != "" {
		return ref.User.FullName(), nil
	}
	user, err := s.users.GetOne(ctx, ref.ID)
	if err != nil {
		return "", err
	}
	return user.FullName(), nil
}

// resolvePatientName resolve o nome do paciente pela ref de usuário.
func (s *Service) resolvePatientName(ctx context.Context, appointment domain.Appointment) (string, error) {
	ref := appointment.Patient.User
	if ref.IsZero() {
		return "", apperror.NewValidationError("appointment has no patient reference")
	}
	if ref.User != nil && ref.User.FullName() != "" {
		return ref.User.FullName(), nil
	}
	user, err := s.users.GetOne(ctx, ref.ID)
	if err != nil {
		return "", err
	}
	return user.FullName(), nil
}

// sortByDateDesc ordena o resultado mesclado por data decrescente,
// depois que todos os fetches secundários assentaram. Datas inválidas
// vão para o fim. A ordenação é idempotente.
func sortByDateDesc(appointments []domain.ResolvedAppointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		ti, okI := appointments[i].Appointment.DateTime()
		tj, okJ := appointments[j].Appointment.DateTime()
		if okI != okJ {
			return okI // datas válidas antes das inválidas
		}
		if !okI {
			return false
		}
		return ti.After(tj)
	})
}
