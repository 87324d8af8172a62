package schedule

import (
	"fmt"
	"sort"
	"strings"

	"sessionsheet/models"
)

// WeekdaySummary renders the rules Monday-first as "SEG(4), QUA(4), SEX(4)".
func WeekdaySummary(rules []models.WeekdayRule) string {
	sorted := make([]models.WeekdayRule, 0, len(rules))
	for _, r := range rules {
		if r.Day.Valid() {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })

	parts := make([]string, len(sorted))
	for i, r := range sorted {
		parts[i] = fmt.Sprintf("%s(%d)", r.Day.Abbrev(), r.SessionCount)
	}
	return strings.Join(parts, ", ")
}
