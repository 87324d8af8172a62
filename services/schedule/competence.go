package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sessionsheet/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var monthNames = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthName returns the lower-case pt-BR name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Casers keep state, so each call builds its own.
func upper(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(s)
}

func monthLabel(m time.Month, year int) string {
	return fmt.Sprintf("%s/%d", upper(MonthName(m)), year)
}

// LabelMonth renders the legacy competence (month 0-11) as "SETEMBRO/2025".
func LabelMonth(month, year int) string {
	if month < 0 || month > 11 {
		return ""
	}
	return monthLabel(time.Month(month+1), year)
}

// Label renders the competence of a date range. Ranges inside one calendar
// month give "SETEMBRO/2025"; longer ones give "SETEMBRO/2025 - OUTUBRO/2025".
func Label(start, end models.Date) string {
	first := monthLabel(start.Month, start.Year)
	if start.Year == end.Year && start.Month == end.Month {
		return first
	}
	return first + " - " + monthLabel(end.Month, end.Year)
}

// RequestLabel labels a request in either form.
func RequestLabel(req models.ScheduleRequest) (string, error) {
	start, end, err := Period(req)
	if err != nil {
		return "", err
	}
	return Label(start, end), nil
}

// CompetenceRange returns the first and last day of a legacy competence.
func CompetenceRange(month, year int) (models.Date, models.Date, error) {
	if month < 0 || month > 11 {
		return models.Date{}, models.Date{}, invalid("competence.month", "must be between 0 and 11, got %d", month)
	}
	if year < 1 || year > 9999 {
		return models.Date{}, models.Date{}, invalid("competence.year", "out of range: %d", year)
	}
	first := models.NewDate(year, time.Month(month+1), 1)
	return first, first.LastOfMonth(), nil
}

// ParseCompetence reads a single-month label such as "SETEMBRO/2025"
// back into a zero-based month and a year.
func ParseCompetence(label string) (int, int, error) {
	name, yearStr, ok := strings.Cut(strings.TrimSpace(label), "/")
	if !ok {
		return 0, 0, invalid("competence", "%q is not MONTH/YEAR", label)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, invalid("competence", "%q has no numeric year", label)
	}
	lower := cases.Lower(language.BrazilianPortuguese).String(name)
	for i, n := range monthNames {
		if n == lower {
			return i, year, nil
		}
	}
	return 0, 0, invalid("competence", "unknown month %q", name)
}
