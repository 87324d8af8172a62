package schedule

import "sessionsheet/models"

// SplitByMonth cuts [start, end] into one segment per calendar month it
// touches, clipped to the range and in chronological order.
func SplitByMonth(start, end models.Date) []models.MonthSegment {
	if end.Before(start) {
		return nil
	}
	var segments []models.MonthSegment
	for first := start.FirstOfMonth(); !first.After(end); first = first.LastOfMonth().AddDays(1) {
		segStart, segEnd := first, first.LastOfMonth()
		if segStart.Before(start) {
			segStart = start
		}
		if segEnd.After(end) {
			segEnd = end
		}
		segments = append(segments, models.MonthSegment{
			Year:         first.Year,
			Month:        int(first.Month),
			SegmentStart: segStart,
			SegmentEnd:   segEnd,
		})
	}
	return segments
}

// SegmentRequest narrows req to one segment. Exceptions outside the
// segment are dropped; the legacy competence is replaced by the range.
func SegmentRequest(req models.ScheduleRequest, seg models.MonthSegment) models.ScheduleRequest {
	out := models.ScheduleRequest{
		StartDate:    seg.SegmentStart.String(),
		EndDate:      seg.SegmentEnd.String(),
		WeekdayRules: req.WeekdayRules,
	}
	for _, ex := range req.Exceptions {
		d, err := models.ParseDate(ex.Date)
		if err != nil || d.Before(seg.SegmentStart) || d.After(seg.SegmentEnd) {
			continue
		}
		out.Exceptions = append(out.Exceptions, ex)
	}
	return out
}
