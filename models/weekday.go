package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is the Monday-first day of the week used by schedules.
type Weekday int

// NoWeekday is the zero value. It marks a rule whose day was never set.
const (
	NoWeekday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays lists the days in document order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type weekdayInfo struct {
	std     time.Weekday
	name    string
	abbrev  string
	ptBR    string
	aliases []string
}

// weekdayTable is the only place that relates the Monday-first enum to time.Weekday.
var weekdayTable = [...]weekdayInfo{
	NoWeekday: {},
	Monday:    {time.Monday, "monday", "SEG", "Segunda-feira", []string{"mon", "seg", "segunda"}},
	Tuesday:   {time.Tuesday, "tuesday", "TER", "Terça-feira", []string{"tue", "ter", "terça", "terca", "terca-feira"}},
	Wednesday: {time.Wednesday, "wednesday", "QUA", "Quarta-feira", []string{"wed", "qua", "quarta"}},
	Thursday:  {time.Thursday, "thursday", "QUI", "Quinta-feira", []string{"thu", "qui", "quinta"}},
	Friday:    {time.Friday, "friday", "SEX", "Sexta-feira", []string{"fri", "sex", "sexta"}},
	Saturday:  {time.Saturday, "saturday", "SAB", "Sábado", []string{"sat", "sab", "sabado"}},
	Sunday:    {time.Sunday, "sunday", "DOM", "Domingo", []string{"sun", "dom"}},
}

var weekdayByStd = func() map[time.Weekday]Weekday {
	m := make(map[time.Weekday]Weekday, len(weekdayTable))
	for _, wd := range AllWeekdays {
		m[weekdayTable[wd].std] = wd
	}
	return m
}()

var weekdayByName = func() map[string]Weekday {
	m := make(map[string]Weekday)
	for _, wd := range AllWeekdays {
		info := weekdayTable[wd]
		m[info.name] = wd
		m[strings.ToLower(info.abbrev)] = wd
		m[strings.ToLower(info.ptBR)] = wd
		for _, a := range info.aliases {
			m[a] = wd
		}
	}
	return m
}()

// WeekdayFromTime converts a time.Weekday (Sunday = 0).
func WeekdayFromTime(d time.Weekday) Weekday {
	return weekdayByStd[d]
}

// ParseWeekday accepts English names, three-letter codes and Portuguese names, case-insensitive.
func ParseWeekday(s string) (Weekday, error) {
	wd, ok := weekdayByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return NoWeekday, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

// Time converts back to time.Weekday.
func (w Weekday) Time() time.Weekday { return weekdayTable[w].std }

// Abbrev is the three-letter Portuguese abbreviation printed on documents.
func (w Weekday) Abbrev() string { return weekdayTable[w].abbrev }

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayTable[w].name
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(w))
	}
	return json.Marshal(w.String())
}

func (w *Weekday) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("weekday must be a string: %w", err)
	}
	parsed, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
