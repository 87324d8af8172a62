package document

import (
	"context"
	"fmt"
	"io"
	"time"

	"sessionsheet/models"
	"sessionsheet/services/quota"
	"sessionsheet/services/schedule"
	"sessionsheet/services/sheet"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const anonymousActor = "anonymous"

func (s *DefaultDocumentService) Preview(req models.ScheduleRequest) (*models.SchedulePreview, error) {
	start, end, err := schedule.Period(req)
	if err != nil {
		return nil, err
	}
	records, err := schedule.GenerateSchedule(req)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.SessionRecord{}
	}
	return &models.SchedulePreview{
		Competence:     schedule.Label(start, end),
		WeekdaySummary: schedule.WeekdaySummary(req.WeekdayRules),
		Records:        records,
		TotalSessions:  models.TotalSessions(records),
		Segments:       schedule.SplitByMonth(start, end),
	}, nil
}

func (s *DefaultDocumentService) Generate(ctx context.Context, actor string, req models.DocumentRequest) (*models.Document, error) {
	start, end, err := schedule.Period(req.ScheduleRequest)
	if err != nil {
		return nil, err
	}
	records, err := schedule.GenerateSchedule(req.ScheduleRequest)
	if err != nil {
		return nil, err
	}

	doc, err := s.render(ctx, req.HeaderFields, req.WeekdayRules, records, schedule.Label(start, end), nil)
	if err != nil {
		return nil, err
	}
	// only documents that rendered are charged
	if _, err := s.limiter().Consume(ctx, actorOrAnonymous(actor), 1); err != nil {
		return nil, err
	}
	doc.FileName = FileName(start, end)

	s.logger().Info("spreadsheet generated",
		zap.String("actor", actorOrAnonymous(actor)),
		zap.String("competence", doc.Competence),
		zap.Int("records", len(doc.Records)),
		zap.Int("duplicatedRows", doc.DuplicatedRows),
	)
	s.recordActivity(ctx, actor, models.ActionGenerateSpreadsheet, req.HeaderFields, doc.Competence, []models.Document{*doc})
	return doc, nil
}

// GenerateByMonth runs the whole pipeline once per month segment. Segments
// render concurrently; the first failure cancels the rest and nothing is returned.
func (s *DefaultDocumentService) GenerateByMonth(ctx context.Context, actor string, req models.DocumentRequest) ([]models.Document, error) {
	start, end, err := schedule.Period(req.ScheduleRequest)
	if err != nil {
		return nil, err
	}
	// the whole request is validated before any segment renders
	if _, err := schedule.GenerateSchedule(req.ScheduleRequest); err != nil {
		return nil, err
	}
	segments := schedule.SplitByMonth(start, end)

	docs := make([]models.Document, len(segments))
	g, gctx := errgroup.WithContext(ctx)
	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			segReq := schedule.SegmentRequest(req.ScheduleRequest, seg)
			records, err := schedule.GenerateSchedule(segReq)
			if err != nil {
				return fmt.Errorf("segment %02d/%d: %w", seg.Month, seg.Year, err)
			}
			label := schedule.LabelMonth(seg.Month-1, seg.Year)
			doc, err := s.render(gctx, req.HeaderFields, req.WeekdayRules, records, label, &seg)
			if err != nil {
				return fmt.Errorf("segment %02d/%d: %w", seg.Month, seg.Year, err)
			}
			doc.FileName = SegmentFileName(seg)
			docs[i] = *doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if _, err := s.limiter().Consume(ctx, actorOrAnonymous(actor), len(docs)); err != nil {
		return nil, err
	}

	s.logger().Info("monthly spreadsheets generated",
		zap.String("actor", actorOrAnonymous(actor)),
		zap.Int("documents", len(docs)),
	)
	s.recordActivity(ctx, actor, models.ActionGenerateMonthly, req.HeaderFields, schedule.Label(start, end), docs)
	return docs, nil
}

func (s *DefaultDocumentService) RecentActivity(ctx context.Context, actor string, limit int) ([]models.ActivityLog, error) {
	if s.Activity == nil {
		return []models.ActivityLog{}, nil
	}
	return s.Activity.List(ctx, actor, limit)
}

func (s *DefaultDocumentService) render(
	ctx context.Context,
	fields models.HeaderFields,
	rules []models.WeekdayRule,
	records []models.SessionRecord,
	label string,
	seg *models.MonthSegment,
) (*models.Document, error) {
	wb, err := s.Opener.Open(ctx, s.TemplateRef)
	if err != nil {
		return nil, err
	}
	if c, ok := wb.(io.Closer); ok {
		defer c.Close()
	}

	total := models.TotalSessions(records)
	res, err := sheet.Populate(wb, s.layout(), records, total, sheet.Header{
		Fields:         fields,
		WeekdaySummary: schedule.WeekdaySummary(rules),
		Competence:     label,
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.SessionRecord{}
	}
	return &models.Document{
		Competence:     label,
		Segment:        seg,
		Records:        records,
		TotalSessions:  total,
		DuplicatedRows: res.DuplicatedRows,
		Content:        res.Content,
	}, nil
}

// recordActivity stores a log entry. Failures are logged and never fail the request.
func (s *DefaultDocumentService) recordActivity(ctx context.Context, actor, action string, fields models.HeaderFields, label string, docs []models.Document) {
	if s.Activity == nil {
		return
	}
	entry := models.ActivityLog{
		Actor:        actorOrAnonymous(actor),
		Action:       action,
		PatientName:  fields.PatientName,
		Professional: fields.Professional,
		Competence:   label,
		Documents:    len(docs),
		CreatedAt:    time.Now(),
	}
	for _, d := range docs {
		entry.Records += len(d.Records)
		entry.TotalSessions += d.TotalSessions
	}
	if _, err := s.Activity.Create(ctx, entry); err != nil {
		s.logger().Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

func (s *DefaultDocumentService) layout() sheet.Layout {
	if s.Layout.FirstRow == 0 {
		return sheet.DefaultLayout
	}
	return s.Layout
}

func (s *DefaultDocumentService) limiter() quota.Limiter {
	if s.Quota == nil {
		return quota.Unlimited{}
	}
	return s.Quota
}

func (s *DefaultDocumentService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func actorOrAnonymous(actor string) string {
	if actor == "" {
		return anonymousActor
	}
	return actor
}
