package schedule

import (
	"testing"

	"sessionsheet/models"
)

func TestWeekdaySummary(t *testing.T) {
	got := WeekdaySummary([]models.WeekdayRule{
		{Day: models.Friday, SessionCount: 4},
		{Day: models.Monday, SessionCount: 4},
		{Day: models.Wednesday, SessionCount: 4},
	})
	if got != "SEG(4), QUA(4), SEX(4)" {
		t.Errorf("WeekdaySummary = %q", got)
	}
	if WeekdaySummary(nil) != "" {
		t.Error("no rules should give an empty summary")
	}
	if got := WeekdaySummary([]models.WeekdayRule{{Day: models.Sunday, SessionCount: 1}, {Day: models.Tuesday, SessionCount: 10}}); got != "TER(10), DOM(1)" {
		t.Errorf("WeekdaySummary = %q", got)
	}
}
