package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"goclinic/internal/domain"
)

// newTable devolve um tabwriter com o padding das telas de listagem.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// appointmentDate formata a coluna de data de uma consulta.
func appointmentDate(a domain.Appointment) string {
	if t, ok := a.DateTime(); ok {
		return FormatDate(t)
	}
	return notAvailable
}

// RenderPatientAppointments renderiza a agenda do paciente: o lado
// resolvido é o médico. Vazio é Success com mensagem, não erro.
func RenderPatientAppointments(w io.Writer, appointments []domain.ResolvedAppointment) error {
	if len(appointments) == 0 {
		_, err := fmt.Fprintln(w, "No appointments found.")
		return err
	}

	table := newTable(w)
	fmt.Fprintln(table, "DOCTOR\tDATE\tTIME\tSTATUS")
	for _, row := range appointments {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			orNA(row.DoctorName),
			appointmentDate(row.Appointment),
			orNA(row.Appointment.TimeSlot),
			orNA(row.Appointment.Status),
		)
	}
	return table.Flush()
}

// RenderDoctorAppointments renderiza a agenda do médico: o lado
// resolvido é o paciente.
func RenderDoctorAppointments(w io.Writer, appointments []domain.ResolvedAppointment) error {
	if len(appointments) == 0 {
		_, err := fmt.Fprintln(w, "No appointments found.")
		return err
	}

	table := newTable(w)
	fmt.Fprintln(table, "PATIENT\tDATE\tTIME\tSTATUS")
	for _, row := range appointments {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			orNA(row.PatientName),
			appointmentDate(row.Appointment),
			orNA(row.Appointment.TimeSlot),
			orNA(row.Appointment.Status),
		)
	}
	return table.Flush()
}

// RenderAllAppointments renderiza a visão administrativa, com os dois
// lados resolvidos.
func RenderAllAppointments(w io.Writer, appointments []domain.ResolvedAppointment) error {
	if len(appointments) == 0 {
		_, err := fmt.Fprintln(w, "No appointments found.")
		return err
	}

	table := newTable(w)
	fmt.Fprintln(table, "PATIENT\tDOCTOR\tDATE\tTIME\tSTATUS")
	for _, row := range appointments {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
			orNA(row.PatientName),
			orNA(row.DoctorName),
			appointmentDate(row.Appointment),
			orNA(row.Appointment.TimeSlot),
			orNA(row.Appointment.Status),
		)
	}
	return table.Flush()
}

// RenderAppointmentDetail renderiza o cartão de uma consulta.
func RenderAppointmentDetail(w io.Writer, appointment domain.Appointment) error {
	fmt.Fprintf(w, "Appointment %s\n", appointment.ID)
	fmt.Fprintf(w, "  Date:    %s\n", appointmentDate(appointment))
	fmt.Fprintf(w, "  Time:    %s\n", orNA(appointment.TimeSlot))
	fmt.Fprintf(w, "  Status:  %s\n", orNA(appointment.Status))
	if appointment.Reason != "" {
		fmt.Fprintf(w, "  Reason:  %s\n", appointment.Reason)
	}
	if appointment.Notes != "" {
		fmt.Fprintf(w, "  Notes:   %s\n", appointment.Notes)
	}
	return nil
}

// RenderPatients renderiza o diretório de pacientes. Linhas sem usuário
// resolvido saem com "N/A", nunca são descartadas.
func RenderPatients(w io.Writer, records []domain.PatientRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No patients found.")
		return err
	}

	table := newTable(w)
	fmt.Fprintln(table, "NAME\tEMAIL\tPHONE\tBLOOD TYPE")
	for _, record := range records {
		name, email := notAvailable, notAvailable
		if record.User != nil {
			name = orNA(record.User.FullName())
			email = orNA(record.User.Email)
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			name, email,
			orNA(record.Patient.Phone),
			orNA(record.Patient.BloodType),
		)
	}
	return table.Flush()
}

// RenderDoctors renderiza o diretório de médicos.
func RenderDoctors(w io.Writer, records []domain.DoctorRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No doctors found.")
		return err
	}

	table := newTable(w)
	fmt.Fprintln(table, "NAME\tEMAIL\tSPECIALIZATION\tHOSPITAL")
	for _, record := range records {
		name, email := notAvailable, notAvailable
		if record.User != nil {
			name = orNA(record.User.FullName())
			email = orNA(record.User.Email)
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			name, email,
			orNA(record.Doctor.Specialization),
			orNA(record.Doctor.Hospital),
		)
	}
	return table.Flush()
}

// RenderDoctorDetails renderiza o cartão de um médico.
func RenderDoctorDetails(w io.Writer, record domain.DoctorRecord) error {
	name, email := notAvailable, notAvailable
	if record.User != nil {
		name = orNA(record.User.FullName())
		email = orNA(record.User.Email)
	}
	fmt.Fprintf(w, "Doctor %s\n", record.Doctor.ID)
	fmt.Fprintf(w, "  Name:            %s\n", name)
	fmt.Fprintf(w, "  Email:           %s\n", email)
	fmt.Fprintf(w, "  Specialization:  %s\n", orNA(record.Doctor.Specialization))
	fmt.Fprintf(w, "  Hospital:        %s\n", orNA(record.Doctor.Hospital))
	fmt.Fprintf(w, "  License:         %s\n", orNA(record.Doctor.LicenseNumber))
	if record.Doctor.YearsOfExperience > 0 {
		fmt.Fprintf(w, "  Experience:      %d years\n", record.Doctor.YearsOfExperience)
	}
	return nil
}

// RenderPatientDetails renderiza o cartão de um paciente.
func RenderPatientDetails(w io.Writer, record domain.PatientRecord) error {
	name, email := notAvailable, notAvailable
	if record.User != nil {
		name = orNA(record.User.FullName())
		email = orNA(record.User.Email)
	}
	fmt.Fprintf(w, "Patient %s\n", record.Patient.ID)
	fmt.Fprintf(w, "  Name:        %s\n", name)
	fmt.Fprintf(w, "  Email:       %s\n", email)
	fmt.Fprintf(w, "  Phone:       %s\n", orNA(record.Patient.Phone))
	fmt.Fprintf(w, "  Blood type:  %s\n", orNA(record.Patient.BloodType))
	fmt.Fprintf(w, "  Gender:      %s\n", orNA(record.Patient.Gender))
	return nil
}

// RenderFoodRecommendations renderiza as recomendações nutricionais do
// paciente, mais recentes primeiro (a ordenação vem do serviço).
func RenderFoodRecommendations(w io.Writer, recommendations []domain.FoodRecommendation) error {
	if len(recommendations) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations found.")
		return err
	}

	for _, recommendation := range recommendations {
		issued := notAvailable
		if t, ok := recommendation.CreatedTime(); ok {
			issued = FormatDate(t)
		}
		fmt.Fprintf(w, "Recommendation (%s)\n", issued)
		for _, item := range recommendation.RecommendedFoods {
			line := "  - " + item.Name
			if item.Quantity != "" {
				line += ", " + item.Quantity
			}
			if item.TimeOfDay != "" {
				line += " (" + item.TimeOfDay + ")"
			}
			fmt.Fprintln(w, line)
		}
		if recommendation.Notes != "" {
			fmt.Fprintf(w, "  Notes: %s\n", recommendation.Notes)
		}
	}
	return nil
}

// RenderSportRecommendations é o análogo para atividades físicas.
func RenderSportRecommendations(w io.Writer, recommendations []domain.SportRecommendation) error {
	if len(recommendations) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations found.")
		return err
	}

	for _, recommendation := range recommendations {
		issued := notAvailable
		if t, ok := recommendation.CreatedTime(); ok {
			issued = FormatDate(t)
		}
		fmt.Fprintf(w, "Recommendation (%s)\n", issued)
		for _, item := range recommendation.RecommendedSports {
			line := "  - " + item.Name
			if item.Duration != "" {
				line += ", " + item.Duration
			}
			if item.Frequency != "" {
				line += ", " + item.Frequency
			}
			if item.Intensity != "" {
				line += " (" + item.Intensity + ")"
			}
			fmt.Fprintln(w, line)
		}
		if recommendation.Notes != "" {
			fmt.Fprintf(w, "  Notes: %s\n", recommendation.Notes)
		}
	}
	return nil
}

// RenderDashboard renderiza o painel administrativo.
func RenderDashboard(w io.Writer, summary domain.DashboardSummary) error {
	fmt.Fprintln(w, "Clinic Dashboard")
	table := newTable(w)
	fmt.Fprintf(table, "  Patients\t%d\n", summary.PatientCount)
	fmt.Fprintf(table, "  Doctors\t%d\n", summary.DoctorCount)
	fmt.Fprintf(table, "  Appointments\t%d\n", summary.AppointmentCount)
	fmt.Fprintf(table, "  Health complaints\t%d\n", summary.ComplaintCount)
	fmt.Fprintf(table, "  Food recommendations\t%d\n", summary.FoodRecommendations)
	fmt.Fprintf(table, "  Sport recommendations\t%d\n", summary.SportRecommendations)
	if err := table.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "Appointments, last 7 days:")
	trend := newTable(w)
	for _, day := range summary.AppointmentsPerDay {
		fmt.Fprintf(trend, "  %s\t%d\n", day.Day, day.Count)
	}
	if err := trend.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "  Average per day: %.1f\n", summary.AveragePerDay)

	if summary.TopComplaintStatus != "" {
		fmt.Fprintf(w, "Top complaint status: %s\n", summary.TopComplaintStatus)
	}
	return nil
}

// RenderSession renderiza a sessão corrente (whoami).
func RenderSession(w io.Writer, session domain.Session) error {
	name := notAvailable
	email := notAvailable
	if session.User != nil {
		name = orNA(session.User.FullName())
		email = orNA(session.User.Email)
	}
	fmt.Fprintf(w, "Logged in as %s\n", name)
	fmt.Fprintf(w, "  Email:    %s\n", email)
	fmt.Fprintf(w, "  Role:     %s\n", orNA(string(session.Role)))
	fmt.Fprintf(w, "  User id:  %s\n", orNA(session.UserID))
	return nil
}
