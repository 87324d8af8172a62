package sheet

import (
	"fmt"
	"strings"
	"unicode"
)

// Columns names the six data-window columns.
type Columns struct {
	Sequence string
	Date     string
	Start    string
	End      string
	Sessions string
	Status   string
}

func (c Columns) all() []string {
	return []string{c.Sequence, c.Date, c.Start, c.End, c.Sessions, c.Status}
}

// Layout is the cell contract between the engine and a template file.
type Layout struct {
	WorksheetIndex int

	Company           string
	Professional      string
	Therapy           string
	LicenseNumber     string
	AuthorizedSession string
	PatientName       string
	Responsible       string
	HealthPlan        string
	CardNumber        string
	GuideNumber       string
	WeekdaySummary    string
	Competence        string

	// FirstRow..LastRow is the data window, one record per row.
	FirstRow int
	LastRow  int
	Columns  Columns

	// The total-sessions footer sits at TotalColumn+TotalRow before any
	// row is duplicated and moves down one row per duplication.
	TotalColumn string
	TotalRow    int

	StatusLabel string
}

// DefaultLayout matches the attendance template shipped with the service
// (see BlankTemplate).
var DefaultLayout = Layout{
	WorksheetIndex: 0,

	Company:           "A1",
	Professional:      "C3",
	Therapy:           "C4",
	LicenseNumber:     "C5",
	AuthorizedSession: "C6",
	PatientName:       "C7",
	Responsible:       "C8",
	HealthPlan:        "C9",
	CardNumber:        "C10",
	GuideNumber:       "C11",
	WeekdaySummary:    "C54",
	Competence:        "C57",

	FirstRow: 14,
	LastRow:  44,
	Columns: Columns{
		Sequence: "A",
		Date:     "B",
		Start:    "C",
		End:      "D",
		Sessions: "E",
		Status:   "F",
	},

	TotalColumn: "E",
	TotalRow:    46,

	StatusLabel: "Atendido",
}

// Capacity is the number of records the window holds without growing.
func (l Layout) Capacity() int {
	return l.LastRow - l.FirstRow + 1
}

// Validate rejects layouts the engine cannot place rows into.
func (l Layout) Validate() error {
	if l.FirstRow < 1 || l.LastRow < l.FirstRow {
		return fmt.Errorf("sheet: invalid data window %d..%d", l.FirstRow, l.LastRow)
	}
	if l.TotalRow <= l.LastRow {
		return fmt.Errorf("sheet: total row %d must be below the data window", l.TotalRow)
	}
	for _, c := range append(l.Columns.all(), l.TotalColumn) {
		if c == "" || strings.IndexFunc(c, func(r rune) bool { return !unicode.IsUpper(r) }) >= 0 {
			return fmt.Errorf("sheet: invalid column %q", c)
		}
	}
	return nil
}

func cellAt(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
