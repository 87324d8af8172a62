package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"sessionsheet/models"
)

// MaxRangeDays bounds the calendar walk so malformed input fails fast.
const MaxRangeDays = 5 * 366

// Exception is an ExceptionOverride with its date parsed.
type Exception struct {
	Date     models.Date
	Sessions []models.SessionInterval
}

// Period resolves the inclusive date range of a request from either form.
func Period(req models.ScheduleRequest) (models.Date, models.Date, error) {
	hasRange := req.StartDate != "" || req.EndDate != ""
	switch {
	case hasRange && req.Competence != nil:
		return models.Date{}, models.Date{}, invalid("", "provide either a date range or a competence, not both")
	case req.Competence != nil:
		return CompetenceRange(req.Competence.Month, req.Competence.Year)
	case !hasRange:
		return models.Date{}, models.Date{}, invalid("", "missing date range or competence")
	}

	if req.StartDate == "" {
		return models.Date{}, models.Date{}, invalid("startDate", "is required when endDate is set")
	}
	if req.EndDate == "" {
		return models.Date{}, models.Date{}, invalid("endDate", "is required when startDate is set")
	}
	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		return models.Date{}, models.Date{}, invalid("startDate", "%v", err)
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		return models.Date{}, models.Date{}, invalid("endDate", "%v", err)
	}
	if err := checkRange(start, end); err != nil {
		return models.Date{}, models.Date{}, err
	}
	return start, end, nil
}

func checkRange(start, end models.Date) error {
	if end.Before(start) {
		return invalid("endDate", "%s is before startDate %s", end, start)
	}
	if start.DaysUntil(end) >= MaxRangeDays {
		return invalid("endDate", "range of %d days exceeds the limit of %d", start.DaysUntil(end)+1, MaxRangeDays)
	}
	return nil
}

// ParseExceptions parses override dates and rejects a date listed twice.
func ParseExceptions(raw []models.ExceptionOverride) ([]Exception, error) {
	out := make([]Exception, 0, len(raw))
	seen := make(map[models.Date]int, len(raw))
	for i, ov := range raw {
		field := fmt.Sprintf("exceptions[%d]", i)
		d, err := models.ParseDate(ov.Date)
		if err != nil {
			return nil, invalid(field+".date", "%v", err)
		}
		if prev, dup := seen[d]; dup {
			return nil, invalid(field+".date", "%s is already overridden by exceptions[%d]", d, prev)
		}
		seen[d] = i
		out = append(out, Exception{Date: d, Sessions: ov.Sessions})
	}
	return out, nil
}

func indexRules(rules []models.WeekdayRule) (map[models.Weekday]models.WeekdayRule, error) {
	byDay := make(map[models.Weekday]models.WeekdayRule, len(rules))
	for i, r := range rules {
		field := fmt.Sprintf("weekdayRules[%d]", i)
		if r.Day == models.NoWeekday {
			return nil, invalid(field+".day", "is required")
		}
		if !r.Day.Valid() {
			return nil, invalid(field+".day", "unknown weekday %d", int(r.Day))
		}
		if _, dup := byDay[r.Day]; dup {
			return nil, invalid(field+".day", "%s has more than one rule", r.Day)
		}
		if r.SessionCount < 1 {
			return nil, invalid(field+".sessionCount", "must be at least 1, got %d", r.SessionCount)
		}
		start, end, err := normalizeTimes(field, r.StartTime, r.EndTime)
		if err != nil {
			return nil, err
		}
		r.StartTime, r.EndTime = start, end
		byDay[r.Day] = r
	}
	return byDay, nil
}

type intervalKey struct{ start, end string }

func indexExceptions(exceptions []Exception) (map[models.Date][]models.SessionInterval, error) {
	byDate := make(map[models.Date][]models.SessionInterval, len(exceptions))
	for i, ex := range exceptions {
		field := fmt.Sprintf("exceptions[%d]", i)
		if _, dup := byDate[ex.Date]; dup {
			return nil, invalid(field+".date", "%s is overridden more than once", ex.Date)
		}
		sessions := make([]models.SessionInterval, 0, len(ex.Sessions))
		counts := make(map[intervalKey]int, len(ex.Sessions))
		for j, s := range ex.Sessions {
			sf := fmt.Sprintf("%s.sessions[%d]", field, j)
			if s.SessionCount < 1 {
				return nil, invalid(sf+".sessionCount", "must be at least 1, got %d", s.SessionCount)
			}
			start, end, err := normalizeTimes(sf, s.StartTime, s.EndTime)
			if err != nil {
				return nil, err
			}
			key := intervalKey{start, end}
			if prev, dup := counts[key]; dup {
				if prev != s.SessionCount {
					return nil, invalid(sf, "interval %s-%s repeats with a different session count", start, end)
				}
				continue
			}
			counts[key] = s.SessionCount
			sessions = append(sessions, models.SessionInterval{StartTime: start, EndTime: end, SessionCount: s.SessionCount})
		}
		byDate[ex.Date] = sessions
	}
	return byDate, nil
}

func normalizeTimes(field, start, end string) (string, string, error) {
	s, err := NormalizeClock(start)
	if err != nil {
		return "", "", invalid(field+".startTime", "%v", err)
	}
	e, err := NormalizeClock(end)
	if err != nil {
		return "", "", invalid(field+".endTime", "%v", err)
	}
	if s != "" && e != "" && s >= e {
		return "", "", invalid(field+".endTime", "%s must be after startTime %s", e, s)
	}
	return s, e, nil
}

// NormalizeClock validates an "H:MM"/"HH:MM" time and zero-pads the hour.
// The empty string means no time and is returned unchanged.
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return "", fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, errH := strconv.Atoi(hh)
	m, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return "", fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}
