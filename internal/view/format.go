package view

import "time"

// placeholder exibido quando um campo não pôde ser resolvido.
const notAvailable = "N/A"

// FormatDate formata uma data no padrão das telas (ex.: "1/1/2024").
func FormatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// FormatDateTime formata data e hora (ex.: "1/1/2024, 9:30:00 AM").
func FormatDateTime(t time.Time) string {
	return t.Format("1/2/2006, 3:04:05 PM")
}

// orNA substitui string vazia pelo placeholder.
func orNA(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}
