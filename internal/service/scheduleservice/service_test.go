package scheduleservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/logger"
	"goclinic/internal/service/scheduleservice"
)

// MockAppointmentRepository é uma implementação mock da interface AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) All(ctx context.Context) ([]domain.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ByDoctor(ctx context.Context, userID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Get(ctx context.Context, id string) (domain.Appointment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Create(ctx context.Context, request domain.AppointmentRequest) (domain.Appointment, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPatientRepository é uma implementação mock da interface PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) GetByUser(ctx context.Context, userID string) ([]domain.Patient, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Patient), args.Error(1)
}

// MockDoctorRepository é uma implementação mock da interface DoctorRepository
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) GetByUser(ctx context.Context, userID string) (domain.Doctor, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Doctor), args.Error(1)
}

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetOne(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func newService(appointments *MockAppointmentRepository, patients *MockPatientRepository, doctors *MockDoctorRepository, users *MockUserRepository) *scheduleservice.Service {
	return scheduleservice.NewService(appointments, patients, doctors, users, logger.NewLogger("error"))
}

// TestForPatient_Success testa o caminho completo: registro de paciente,
// consultas e nomes de médico resolvidos.
func TestForPatient_Success(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	mockPatients.On("GetByUser", mock.Anything, "user-1").
		Return([]domain.Patient{{ID: "patient-1", User: domain.UserRef{ID: "user-1"}}}, nil)

	mockAppointments.On("ByPatient", mock.Anything, "patient-1").
		Return([]domain.Appointment{
			{ID: "appt-1", Doctor: domain.PartyRef{User: domain.UserRef{ID: "doc-user-1"}}, Date: "2024-01-01T09:00:00Z"},
		}, nil)

	mockDoctors.On("GetByUser", mock.Anything, "doc-user-1").
		Return(domain.Doctor{ID: "doctor-1", User: domain.UserRef{ID: "doc-user-1"}}, nil)
	mockUsers.On("GetOne", mock.Anything, "doc-user-1").
		Return(domain.User{ID: "doc-user-1", FirstName: "Jane", LastName: "Doe"}, nil)

	result, err := svc.ForPatient(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "Jane Doe", result[0].DoctorName)
	mockPatients.AssertExpectations(t)
	mockAppointments.AssertExpectations(t)
}

// TestForPatient_NoPatientRecord testa o usuário sem cadastro de paciente:
// agenda vazia, sem erro.
func TestForPatient_NoPatientRecord(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	mockPatients.On("GetByUser", mock.Anything, "user-1").Return([]domain.Patient{}, nil)

	result, err := svc.ForPatient(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	mockAppointments.AssertNotCalled(t, "ByPatient", mock.Anything, mock.Anything)
}

// TestForPatient_SecondaryFetchFailure testa a degradação parcial: a
// falha na resolução de um médico não derruba a lista, apenas deixa a
// linha sem o nome resolvido.
func TestForPatient_SecondaryFetchFailure(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	mockPatients.On("GetByUser", mock.Anything, "user-1").
		Return([]domain.Patient{{ID: "patient-1"}}, nil)

	mockAppointments.On("ByPatient", mock.Anything, "patient-1").
		Return([]domain.Appointment{
			{ID: "appt-1", Doctor: domain.PartyRef{User: domain.UserRef{ID: "doc-user-1"}}, Date: "2024-02-01T09:00:00Z"},
			{ID: "appt-2", Doctor: domain.PartyRef{User: domain.UserRef{ID: "doc-user-2"}}, Date: "2024-01-01T09:00:00Z"},
		}, nil)

	mockDoctors.On("GetByUser", mock.Anything, "doc-user-1").
		Return(domain.Doctor{ID: "doctor-1", User: domain.UserRef{ID: "doc-user-1"}}, nil)
	mockUsers.On("GetOne", mock.Anything, "doc-user-1").
		Return(domain.User{ID: "doc-user-1", FirstName: "Jane", LastName: "Doe"}, nil)

	// O segundo médico falha na resolução
	mockDoctors.On("GetByUser", mock.Anything, "doc-user-2").
		Return(domain.Doctor{}, apperror.NewRemoteError(500, "Server error"))

	result, err := svc.ForPatient(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "Jane Doe", result[0].DoctorName)
	// A linha degradada mantém a referência original e o nome vazio
	assert.Equal(t, "appt-2", result[1].Appointment.ID)
	assert.Empty(t, result[1].DoctorName)
	assert.Equal(t, "doc-user-2", result[1].Appointment.Doctor.User.ID)
}

// TestForPatient_SortDescending testa a ordenação por data decrescente
// depois do join dos fetches secundários.
func TestForPatient_SortDescending(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	mockPatients.On("GetByUser", mock.Anything, "user-1").
		Return([]domain.Patient{{ID: "patient-1"}}, nil)

	mockAppointments.On("ByPatient", mock.Anything, "patient-1").
		Return([]domain.Appointment{
			{ID: "old", Date: "2023-06-15T10:00:00Z"},
			{ID: "newest", Date: "2024-03-01T10:00:00Z"},
			{ID: "middle", Date: "2024-01-01T10:00:00Z"},
		}, nil)

	result, err := svc.ForPatient(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, result, 3)
	assert.Equal(t, "newest", result[0].Appointment.ID)
	assert.Equal(t, "middle", result[1].Appointment.ID)
	assert.Equal(t, "old", result[2].Appointment.ID)
}

// TestForPatient_PrimaryFetchFailure testa que a falha na coleção
// primária derruba a operação inteira.
func TestForPatient_PrimaryFetchFailure(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	mockPatients.On("GetByUser", mock.Anything, "user-1").
		Return([]domain.Patient{{ID: "patient-1"}}, nil)
	mockAppointments.On("ByPatient", mock.Anything, "patient-1").
		Return([]domain.Appointment(nil), apperror.NewRemoteError(500, "Server error"))

	result, err := svc.ForPatient(context.Background(), "user-1")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "Server error", err.Error())
}

// TestForPatient_ContextCancelled testa que o cancelamento do contexto
// falha a agregação em vez de devolver resultado parcial.
func TestForPatient_ContextCancelled(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	ctx, cancel := context.WithCancel(context.Background())

	mockPatients.On("GetByUser", mock.Anything, "user-1").
		Return([]domain.Patient{{ID: "patient-1"}}, nil)
	mockAppointments.On("ByPatient", mock.Anything, "patient-1").
		Return([]domain.Appointment{
			{ID: "appt-1", Doctor: domain.PartyRef{User: domain.UserRef{ID: "doc-user-1"}}, Date: "2024-01-01T09:00:00Z"},
		}, nil)
	mockDoctors.On("GetByUser", mock.Anything, "doc-user-1").
		Run(func(args mock.Arguments) { cancel() }).
		Return(domain.Doctor{}, context.Canceled)

	result, err := svc.ForPatient(ctx, "user-1")

	assert.Error(t, err)
	assert.Nil(t, result)
}

// TestForDoctor_Success testa a agenda do médico com o nome do paciente
// resolvido diretamente pela ref de usuário.
func TestForDoctor_Success(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	mockAppointments.On("ByDoctor", mock.Anything, "doc-user-1").
		Return([]domain.Appointment{
			{ID: "appt-1", Patient: domain.PartyRef{User: domain.UserRef{ID: "pat-user-1"}}, Date: "2024-01-01T09:00:00Z"},
		}, nil)
	mockUsers.On("GetOne", mock.Anything, "pat-user-1").
		Return(domain.User{ID: "pat-user-1", FirstName: "John", LastName: "Smith"}, nil)

	result, err := svc.ForDoctor(context.Background(), "doc-user-1")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "John Smith", result[0].PatientName)
}

// TestForDoctor_PopulatedRef testa que uma ref já populada não dispara
// fetch secundário.
func TestForDoctor_PopulatedRef(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	populated := &domain.User{ID: "pat-user-1", FirstName: "John", LastName: "Smith"}
	mockAppointments.On("ByDoctor", mock.Anything, "doc-user-1").
		Return([]domain.Appointment{
			{ID: "appt-1", Patient: domain.PartyRef{User: domain.UserRef{ID: "pat-user-1", User: populated}}},
		}, nil)

	result, err := svc.ForDoctor(context.Background(), "doc-user-1")

	assert.NoError(t, err)
	assert.Equal(t, "John Smith", result[0].PatientName)
	mockUsers.AssertNotCalled(t, "GetOne", mock.Anything, mock.Anything)
}

// TestBook_Validation testa os campos obrigatórios do agendamento.
func TestBook_Validation(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	_, err := svc.Book(context.Background(), domain.AppointmentRequest{
		Doctor: "doctor-1", Date: "2024-05-01", TimeSlot: "09:00",
	})
	assert.Error(t, err)
	assert.Equal(t, "Patient is required", err.Error())

	_, err = svc.Book(context.Background(), domain.AppointmentRequest{
		Patient: "patient-1", Doctor: "doctor-1", Date: "2024-05-01",
	})
	assert.Error(t, err)
	assert.Equal(t, "Time slot is required", err.Error())

	mockAppointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestBook_Success testa o agendamento com payload completo.
func TestBook_Success(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	request := domain.AppointmentRequest{
		Patient: "patient-1", Doctor: "doctor-1", Date: "2024-05-01", TimeSlot: "09:00",
	}
	mockAppointments.On("Create", mock.Anything, request).
		Return(domain.Appointment{ID: "appt-1"}, nil)

	created, err := svc.Book(context.Background(), request)

	assert.NoError(t, err)
	assert.Equal(t, "appt-1", created.ID)
	mockAppointments.AssertExpectations(t)
}

// TestCancel_RequiresID testa a validação do id no cancelamento.
func TestCancel_RequiresID(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	err := svc.Cancel(context.Background(), "")
	assert.Error(t, err)
	mockAppointments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestPatientOf testa a resolução do registro de paciente do usuário.
func TestPatientOf(t *testing.T) {
	mockAppointments := new(MockAppointmentRepository)
	mockPatients := new(MockPatientRepository)
	mockDoctors := new(MockDoctorRepository)
	mockUsers := new(MockUserRepository)

	svc := newService(mockAppointments, mockPatients, mockDoctors, mockUsers)

	mockPatients.On("GetByUser", mock.Anything, "user-1").
		Return([]domain.Patient{{ID: "patient-1"}}, nil)

	id, err := svc.PatientOf(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "patient-1", id)
}
