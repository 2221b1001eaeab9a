package ui

import (
	"fmt"
	"time"

	"subtrack/internal/models"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	notAvailable = "N/A"
	dateLayout   = "January 2, 2006"
)

// FormatAmount форматирует сумму по правилам локали. Коды вне ISO 4217 (DASH, DOGE)
// печатаются числом с кодом после него.
func FormatAmount(lang language.Tag, value *float64, code string) string {
	if value == nil {
		return notAvailable
	}
	p := message.NewPrinter(lang)

	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%.2f %s", *value, code)
	}
	return p.Sprint(currency.Symbol(unit.Amount(*value)))
}

// FormatDate - дата следующего платежа; пустое значение выводится как N/A
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return notAvailable
	}
	return t.UTC().Format(dateLayout)
}

// FormatCycle: "1 Monthly", "2 Weekly"
func FormatCycle(frequency int, cycle models.BillingCycle) string {
	return fmt.Sprintf("%d %s", frequency, cycle)
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
