package entities

import (
	"fmt"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatLongSpanishDate renders "1 de junio de 2025".
func FormatLongSpanishDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// FormatShortDate renders "01/06/2025".
func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return "Fecha no especificada"
	}
	return t.Format("02/01/2006")
}
