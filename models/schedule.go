package models

// WeekdayRule is the recurring attendance for one day of the week.
type WeekdayRule struct {
	Day          Weekday `json:"day"`
	SessionCount int     `json:"sessionCount"`
	StartTime    string  `json:"startTime,omitempty"` // "HH:MM"
	EndTime      string  `json:"endTime,omitempty"`   // "HH:MM"
}

// SessionInterval is one block of sessions inside an exception day.
type SessionInterval struct {
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	SessionCount int    `json:"sessionCount"`
}

// ExceptionOverride replaces the weekly pattern on one date.
// An empty Sessions list means no attendance on that date.
type ExceptionOverride struct {
	Date     string            `json:"date" binding:"required"` // "YYYY-MM-DD"
	Sessions []SessionInterval `json:"sessions"`
}

// Competence is the legacy month/year request form. Month is zero-based (0 = January).
type Competence struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// ScheduleRequest carries either an explicit date range or a legacy competence.
type ScheduleRequest struct {
	StartDate    string              `json:"startDate,omitempty"`
	EndDate      string              `json:"endDate,omitempty"`
	Competence   *Competence         `json:"competence,omitempty"`
	WeekdayRules []WeekdayRule       `json:"weekdayRules"`
	Exceptions   []ExceptionOverride `json:"exceptions,omitempty"`
}

type RecordOrigin string

const (
	OriginDefault  RecordOrigin = "default"
	OriginOverride RecordOrigin = "override"
)

// SessionRecord is one attended row of the document.
type SessionRecord struct {
	Date         Date         `json:"date"`
	SessionCount int          `json:"sessionCount"`
	StartTime    string       `json:"startTime,omitempty"`
	EndTime      string       `json:"endTime,omitempty"`
	Origin       RecordOrigin `json:"origin"`
}

// MonthSegment is the part of a range that falls inside one calendar month.
type MonthSegment struct {
	Year         int  `json:"year"`
	Month        int  `json:"month"` // 1-12
	SegmentStart Date `json:"segmentStart"`
	SegmentEnd   Date `json:"segmentEnd"`
}

// TotalSessions sums the session counts of records.
func TotalSessions(records []SessionRecord) int {
	total := 0
	for _, r := range records {
		total += r.SessionCount
	}
	return total
}
