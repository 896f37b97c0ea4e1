package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"goclinic/config"
	"goclinic/internal/domain"
	"goclinic/internal/guard"
	"goclinic/internal/pkg/cache"
	"goclinic/internal/pkg/httpclient"
	"goclinic/internal/pkg/logger"
	"goclinic/internal/pkg/session"
	"goclinic/internal/repository/appointmentrepo"
	"goclinic/internal/repository/doctorrepo"
	"goclinic/internal/repository/healthrepo"
	"goclinic/internal/repository/patientrepo"
	"goclinic/internal/repository/recommendationrepo"
	"goclinic/internal/repository/userrepo"
	"goclinic/internal/service/authservice"
	"goclinic/internal/service/careservice"
	"goclinic/internal/service/directoryservice"
	"goclinic/internal/service/scheduleservice"
	"goclinic/internal/view"
)

// app agrupa os componentes montados no bootstrap.
type app struct {
	auth      *authservice.Service
	schedule  *scheduleservice.Service
	directory *directoryservice.Service
	care      *careservice.Service
	gate      *guard.Gate
	page      *view.Page
	logger    logger.Logger
}

func main() {
	// 1. Carregar variáveis de ambiente do arquivo .env (se existir)
	_ = godotenv.Load()

	// 2. Carregar Configurações e inicializar o Logger
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)

	// 3. Contexto raiz cancelado por SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. Backend de sessão: arquivo local (padrão) ou Redis compartilhado
	var sessions domain.SessionStore
	switch cfg.SessionBackend {
	case "redis":
		client, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect to the session backend", err)
		}
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
	default:
		sessions = session.NewFileStore(cfg.SessionFile)
	}

	// 5. Cliente HTTP base, com o token injetado a partir da sessão
	api := httpclient.New(cfg.APIBaseURL, cfg.HTTPTimeout, session.NewTokenSource(sessions), log)

	// 6. Injeção de Dependências (Repository -> Service)
	users := userrepo.NewUserRepository(api, log)
	patients := patientrepo.NewPatientRepository(api, log)
	doctors := doctorrepo.NewDoctorRepository(api, log)
	appointments := appointmentrepo.NewAppointmentRepository(api, log)
	recommendations := recommendationrepo.NewRecommendationRepository(api, log)
	health := healthrepo.NewHealthRepository(api, log)

	application := &app{
		auth:      authservice.NewService(users, sessions, log),
		schedule:  scheduleservice.NewService(appointments, patients, doctors, users, log),
		directory: directoryservice.NewService(patients, doctors, users, appointments, health, recommendations, log),
		care:      careservice.NewService(recommendations, patients, log),
		gate:      guard.NewGate(sessions, log),
		page:      view.NewPage(os.Stdout, log),
		logger:    log,
	}

	// 7. Despachar o subcomando
	if err := application.run(ctx, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// run despacha o subcomando. Erros já foram exibidos ao usuário quando
// run retorna; o retorno só decide o exit code.
func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return a.login(ctx, rest)
	case "signup":
		return a.signup(ctx, rest)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami(ctx)
	case "appointments":
		return a.appointments(ctx)
	case "appointment":
		return a.appointmentDetail(ctx, rest)
	case "book":
		return a.book(ctx, rest)
	case "cancel":
		return a.cancel(ctx, rest)
	case "patients":
		return a.patients(ctx)
	case "doctors":
		return a.doctors(ctx)
	case "doctor":
		return a.doctorDetail(ctx, rest)
	case "patient":
		return a.patientDetail(ctx, rest)
	case "delete-patient":
		return a.deletePatient(ctx, rest)
	case "delete-doctor":
		return a.deleteDoctor(ctx, rest)
	case "foods":
		return a.foods(ctx)
	case "sports":
		return a.sports(ctx)
	case "recommend-foods":
		return a.recommendFoods(ctx, rest)
	case "recommend-sports":
		return a.recommendSports(ctx, rest)
	case "dashboard":
		return a.dashboard(ctx)
	case "forgot-password":
		return a.forgotPassword(ctx, rest)
	case "reset-password":
		return a.resetPassword(ctx, rest)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: goclinic <command> [flags]

Session:
  login            -email <email>           (password is prompted)
  signup           -first -last -email -password [-role patient|doctor]
  logout
  whoami
  forgot-password  -email <email>
  reset-password   -token <token> -password <new password>

Appointments:
  appointments
  appointment      -id <appointment id>
  book             -doctor <doctor id> -date <YYYY-MM-DD> -time <slot> [-reason] [-notes]
  cancel           -id <appointment id>

Care (patient):
  foods
  sports

Care (doctor):
  recommend-foods  -patient <patient id> -items <name[:qty[:time]],...> [-notes]
  recommend-sports -patient <patient id> -items <name[:dur[:freq]],...> [-notes]

Directory (admin):
  patients | doctors
  doctor  -id <doctor id>
  patient -id <patient id>
  delete-patient -id <patient id>
  delete-doctor  -id <doctor id>
  dashboard`)
}

// fail exibe um erro de comando no mesmo formato das páginas.
func fail(err error) error {
	fmt.Printf("Error: %s\n", err.Error())
	return err
}

// require aplica o portão de autorização antes de qualquer fetch.
// roles vazio exige apenas sessão presente.
func (a *app) require(roles ...domain.UserRole) (domain.Session, error) {
	var (
		current  domain.Session
		decision guard.Decision
		err      error
	)
	if len(roles) == 0 {
		current, decision, err = a.gate.Require()
	} else {
		current, decision, err = a.gate.RequireRole(roles...)
	}
	if err != nil {
		return domain.Session{}, fail(err)
	}
	switch decision {
	case guard.RedirectLogin:
		fmt.Println("User not authenticated. Please log in.")
		return domain.Session{}, fmt.Errorf("not authenticated")
	case guard.Forbid:
		fmt.Println("You do not have permission to access this page.")
		return domain.Session{}, fmt.Errorf("forbidden")
	}
	return current, nil
}

// --- Sessão ---

func (a *app) login(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("login", flag.ExitOnError)
	email := flags.String("email", "", "account email")
	if err := flags.Parse(args); err != nil {
		return err
	}

	fmt.Print("Password: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fail(fmt.Errorf("failed to read password: %w", err))
	}

	current, err := a.auth.Login(ctx, *email, string(secret))
	if err != nil {
		return fail(err)
	}

	name := current.UserID
	if current.User != nil && current.User.FullName() != "" {
		name = current.User.FullName()
	}
	fmt.Printf("Logged in as %s (%s)\n", name, current.Role)
	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("signup", flag.ExitOnError)
	first := flags.String("first", "", "first name")
	last := flags.String("last", "", "last name")
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	role := flags.String("role", "patient", "account role (patient or doctor)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Signup(ctx, domain.Signup{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  *password,
		Role:      domain.UserRole(*role),
	})
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Account created for %s. Please log in.\n", user.Email)
	return nil
}

func (a *app) logout() error {
	if err := a.auth.Logout(); err != nil {
		return fail(err)
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	current, err := a.require()
	if err != nil {
		return err
	}
	_, err = view.Show(a.page, ctx, "whoami",
		func(context.Context) (domain.Session, error) { return current, nil },
		view.RenderSession,
	)
	return err
}

func (a *app) forgotPassword(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := flags.String("email", "", "account email")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.auth.ForgotPassword(ctx, *email); err != nil {
		return fail(err)
	}
	fmt.Println("Password reset email sent.")
	return nil
}

func (a *app) resetPassword(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("reset-password", flag.ExitOnError)
	token := flags.String("token", "", "reset token from the email")
	password := flags.String("password", "", "new password")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := a.auth.ResetPassword(ctx, *token, *password); err != nil {
		return fail(err)
	}
	fmt.Println("Password updated. Please log in.")
	return nil
}

// --- Agenda ---

// appointments escolhe a visão pela capacidade do papel logado:
// paciente vê a própria agenda, médico a sua, admin todas.
func (a *app) appointments(ctx context.Context) error {
	current, err := a.require()
	if err != nil {
		return err
	}

	switch current.Role {
	case domain.RoleDoctor:
		_, err = view.Show(a.page, ctx, "doctor-appointments",
			func(ctx context.Context) ([]domain.ResolvedAppointment, error) {
				return a.schedule.ForDoctor(ctx, current.UserID)
			},
			view.RenderDoctorAppointments,
		)
	case domain.RoleAdmin:
		_, err = view.Show(a.page, ctx, "all-appointments",
			func(ctx context.Context) ([]domain.ResolvedAppointment, error) {
				return a.schedule.All(ctx)
			},
			view.RenderAllAppointments,
		)
	default:
		_, err = view.Show(a.page, ctx, "patient-appointments",
			func(ctx context.Context) ([]domain.ResolvedAppointment, error) {
				return a.schedule.ForPatient(ctx, current.UserID)
			},
			view.RenderPatientAppointments,
		)
	}
	return err
}

func (a *app) appointmentDetail(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("appointment", flag.ExitOnError)
	id := flags.String("id", "", "appointment id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(); err != nil {
		return err
	}
	_, err := view.Show(a.page, ctx, "appointment-detail",
		func(ctx context.Context) (domain.Appointment, error) {
			return a.schedule.Get(ctx, *id)
		},
		view.RenderAppointmentDetail,
	)
	return err
}

func (a *app) book(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("book", flag.ExitOnError)
	doctor := flags.String("doctor", "", "doctor id")
	patient := flags.String("patient", "", "patient id (admins only; patients book for themselves)")
	date := flags.String("date", "", "appointment date (YYYY-MM-DD)")
	timeSlot := flags.String("time", "", "time slot (e.g. 09:00)")
	reason := flags.String("reason", "", "reason for the visit")
	notes := flags.String("notes", "", "additional notes")
	if err := flags.Parse(args); err != nil {
		return err
	}

	current, err := a.require(domain.RolePatient, domain.RoleAdmin)
	if err != nil {
		return err
	}

	// Paciente agenda para si: o id do próprio registro é resolvido aqui.
	patientID := *patient
	if current.Role == domain.RolePatient {
		patientID, err = a.schedule.PatientOf(ctx, current.UserID)
		if err != nil {
			return fail(err)
		}
	}

	created, err := a.schedule.Book(ctx, domain.AppointmentRequest{
		Patient:  patientID,
		Doctor:   *doctor,
		Date:     *date,
		TimeSlot: *timeSlot,
		Reason:   *reason,
		Notes:    *notes,
	})
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Appointment booked: %s\n", created.ID)
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := flags.String("id", "", "appointment id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(); err != nil {
		return err
	}
	if err := a.schedule.Cancel(ctx, *id); err != nil {
		return fail(err)
	}
	fmt.Println("Appointment cancelled.")
	return nil
}

// --- Cuidados ---

func (a *app) foods(ctx context.Context) error {
	current, err := a.require(domain.RolePatient)
	if err != nil {
		return err
	}
	_, err = view.Show(a.page, ctx, "food-recommendations",
		func(ctx context.Context) ([]domain.FoodRecommendation, error) {
			return a.care.FoodsForUser(ctx, current.UserID)
		},
		view.RenderFoodRecommendations,
	)
	return err
}

func (a *app) sports(ctx context.Context) error {
	current, err := a.require(domain.RolePatient)
	if err != nil {
		return err
	}
	_, err = view.Show(a.page, ctx, "sport-recommendations",
		func(ctx context.Context) ([]domain.SportRecommendation, error) {
			return a.care.SportsForUser(ctx, current.UserID)
		},
		view.RenderSportRecommendations,
	)
	return err
}

func (a *app) recommendFoods(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("recommend-foods", flag.ExitOnError)
	patient := flags.String("patient", "", "patient id")
	items := flags.String("items", "", "comma separated list: name[:quantity[:timeOfDay]]")
	notes := flags.String("notes", "", "additional notes")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RoleDoctor, domain.RoleAdmin); err != nil {
		return err
	}

	request := domain.FoodRecommendationRequest{Patient: *patient, Notes: *notes}
	for _, raw := range splitItems(*items) {
		parts := strings.SplitN(raw, ":", 3)
		item := domain.FoodItem{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			item.Quantity = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			item.TimeOfDay = strings.TrimSpace(parts[2])
		}
		request.RecommendedFoods = append(request.RecommendedFoods, item)
	}

	if err := a.care.RecommendFoods(ctx, request); err != nil {
		return fail(err)
	}
	fmt.Println("Food recommendation created.")
	return nil
}

func (a *app) recommendSports(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("recommend-sports", flag.ExitOnError)
	patient := flags.String("patient", "", "patient id")
	items := flags.String("items", "", "comma separated list: name[:duration[:frequency]]")
	notes := flags.String("notes", "", "additional notes")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RoleDoctor, domain.RoleAdmin); err != nil {
		return err
	}

	request := domain.SportRecommendationRequest{Patient: *patient, Notes: *notes}
	for _, raw := range splitItems(*items) {
		parts := strings.SplitN(raw, ":", 3)
		item := domain.SportItem{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			item.Duration = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			item.Frequency = strings.TrimSpace(parts[2])
		}
		request.RecommendedSports = append(request.RecommendedSports, item)
	}

	if err := a.care.RecommendSports(ctx, request); err != nil {
		return fail(err)
	}
	fmt.Println("Sport recommendation created.")
	return nil
}

// splitItems separa a lista por vírgulas, descartando entradas vazias.
func splitItems(raw string) []string {
	var items []string
	for _, piece := range strings.Split(raw, ",") {
		if strings.TrimSpace(piece) != "" {
			items = append(items, piece)
		}
	}
	return items
}

// --- Diretório ---

func (a *app) patients(ctx context.Context) error {
	if _, err := a.require(domain.RoleAdmin); err != nil {
		return err
	}
	_, err := view.Show(a.page, ctx, "patients", a.directory.Patients, view.RenderPatients)
	return err
}

// doctors é visível para qualquer sessão: pacientes consultam a lista
// para escolher com quem agendar.
func (a *app) doctors(ctx context.Context) error {
	if _, err := a.require(); err != nil {
		return err
	}
	_, err := view.Show(a.page, ctx, "doctors", a.directory.Doctors, view.RenderDoctors)
	return err
}

func (a *app) doctorDetail(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("doctor", flag.ExitOnError)
	id := flags.String("id", "", "doctor id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(); err != nil {
		return err
	}
	_, err := view.Show(a.page, ctx, "doctor-detail",
		func(ctx context.Context) (domain.DoctorRecord, error) {
			return a.directory.DoctorDetails(ctx, *id)
		},
		view.RenderDoctorDetails,
	)
	return err
}

func (a *app) patientDetail(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("patient", flag.ExitOnError)
	id := flags.String("id", "", "patient id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RoleAdmin, domain.RoleDoctor); err != nil {
		return err
	}
	_, err := view.Show(a.page, ctx, "patient-detail",
		func(ctx context.Context) (domain.PatientRecord, error) {
			return a.directory.PatientDetails(ctx, *id)
		},
		view.RenderPatientDetails,
	)
	return err
}

func (a *app) deletePatient(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("delete-patient", flag.ExitOnError)
	id := flags.String("id", "", "patient id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RoleAdmin); err != nil {
		return err
	}
	if err := a.directory.DeletePatient(ctx, *id); err != nil {
		return fail(err)
	}
	fmt.Println("Patient deleted.")
	return nil
}

func (a *app) deleteDoctor(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("delete-doctor", flag.ExitOnError)
	id := flags.String("id", "", "doctor id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RoleAdmin); err != nil {
		return err
	}
	if err := a.directory.DeleteDoctor(ctx, *id); err != nil {
		return fail(err)
	}
	fmt.Println("Doctor deleted.")
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	if _, err := a.require(domain.RoleAdmin); err != nil {
		return err
	}
	_, err := view.Show(a.page, ctx, "dashboard", a.directory.Dashboard, view.RenderDashboard)
	return err
}
