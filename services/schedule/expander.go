package schedule

import (
	"fmt"
	"sort"

	"sessionsheet/models"
)

// Expand turns a weekly pattern plus per-date overrides into the ordered
// list of attended sessions between start and end, both inclusive.
//
// An override replaces the weekday rule for its date entirely; an override
// with no sessions emits nothing. Records come out sorted by date and, within
// a date, by start time with timeless intervals first.
func Expand(start, end models.Date, rules []models.WeekdayRule, exceptions []Exception) ([]models.SessionRecord, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	byDay, err := indexRules(rules)
	if err != nil {
		return nil, err
	}
	byDate, err := indexExceptions(exceptions)
	if err != nil {
		return nil, err
	}

	var records []models.SessionRecord
	steps := 0
	for d := start; !d.After(end); d = d.AddDays(1) {
		if steps++; steps > MaxRangeDays {
			return nil, fmt.Errorf("schedule: calendar walk from %s exceeded %d days", start, MaxRangeDays)
		}

		if sessions, ok := byDate[d]; ok {
			records = append(records, overrideRecords(d, sessions)...)
			continue
		}
		if rule, ok := byDay[d.Weekday()]; ok {
			records = append(records, models.SessionRecord{
				Date:         d,
				SessionCount: rule.SessionCount,
				StartTime:    rule.StartTime,
				EndTime:      rule.EndTime,
				Origin:       models.OriginDefault,
			})
		}
	}
	return records, nil
}

func overrideRecords(d models.Date, sessions []models.SessionInterval) []models.SessionRecord {
	sorted := make([]models.SessionInterval, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return startsBefore(sorted[i].StartTime, sorted[j].StartTime)
	})

	out := make([]models.SessionRecord, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, models.SessionRecord{
			Date:         d,
			SessionCount: s.SessionCount,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			Origin:       models.OriginOverride,
		})
	}
	return out
}

// startsBefore orders "HH:MM" values with the empty value first.
func startsBefore(a, b string) bool {
	if a == "" || b == "" {
		return a == "" && b != ""
	}
	return a < b
}

// GenerateSchedule validates a request in either form and expands it.
func GenerateSchedule(req models.ScheduleRequest) ([]models.SessionRecord, error) {
	start, end, err := Period(req)
	if err != nil {
		return nil, err
	}
	exceptions, err := ParseExceptions(req.Exceptions)
	if err != nil {
		return nil, err
	}
	return Expand(start, end, req.WeekdayRules, exceptions)
}
