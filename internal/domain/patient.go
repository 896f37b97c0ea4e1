package domain

// Patient encapsula uma referência de User mais os atributos clínicos
// do paciente, como a API os devolve.
type Patient struct {
	ID         string  `json:"_id"`
	User       UserRef `json:"user"`
	BloodType  string  `json:"bloodType,omitempty"`
	Allergies  []string `json:"allergies,omitempty"`
	BirthDate  string  `json:"birthDate,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
	UpdatedAt  string  `json:"updatedAt,omitempty"`
}

// Doctor encapsula uma referência de User mais os atributos profissionais.
type Doctor struct {
	ID                string  `json:"_id"`
	User              UserRef `json:"user"`
	Specialization    string  `json:"specialization,omitempty"`
	Hospital          string  `json:"hospital,omitempty"`
	LicenseNumber     string  `json:"licenseNumber,omitempty"`
	YearsOfExperience int     `json:"yearsOfExperience,omitempty"`
	CreatedAt         string  `json:"createdAt,omitempty"`
	UpdatedAt         string  `json:"updatedAt,omitempty"`
}

// PatientRecord é o registro desnormalizado produzido pelo agregador
// de diretório: o paciente mais os campos de exibição do seu usuário.
// Quando a resolução do usuário falha, User fica nil e a linha é
// renderizada com os campos "N/A": degradação parcial, nunca descarte.
type PatientRecord struct {
	Patient Patient
	User    *User
}

// DoctorRecord é o análogo do PatientRecord para médicos.
type DoctorRecord struct {
	Doctor Doctor
	User   *User
}
