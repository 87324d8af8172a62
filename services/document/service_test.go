package document

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"sessionsheet/models"
	"sessionsheet/services/quota"
	"sessionsheet/services/schedule"
	"sessionsheet/services/sheet"
	"sessionsheet/services/sheet/sheettest"
)

type memoryActivity struct {
	mu      sync.Mutex
	entries []models.ActivityLog
	err     error
}

func (m *memoryActivity) Create(_ context.Context, e models.ActivityLog) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	e.ID = "log-1"
	m.entries = append(m.entries, e)
	return e.ID, nil
}

func (m *memoryActivity) GetByID(_ context.Context, id string) (*models.ActivityLog, error) {
	return nil, errors.New("not found")
}

func (m *memoryActivity) List(_ context.Context, actor string, limit int) ([]models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ActivityLog(nil), m.entries...), nil
}

type countingLimiter struct {
	limit, used int
}

func (l *countingLimiter) Consume(_ context.Context, _ string, n int) (int, error) {
	if l.used+n > l.limit {
		return 0, quota.ErrQuotaExceeded
	}
	l.used += n
	return l.limit - l.used, nil
}

func newService(t *testing.T) (*DefaultDocumentService, *sheettest.Opener, *memoryActivity) {
	t.Helper()
	opener := &sheettest.Opener{}
	activity := &memoryActivity{}
	svc, err := NewDefaultDocumentService(opener, "template.xlsx", activity, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return svc, opener, activity
}

func request(start, end string) models.DocumentRequest {
	return models.DocumentRequest{
		HeaderFields: models.HeaderFields{
			Professional:  "Ana Souza",
			LicenseNumber: "CRP 06/1234",
			PatientName:   "João Pedro",
			Responsible:   "Maria Pedro",
			HealthPlan:    "Unimed",
		},
		ScheduleRequest: models.ScheduleRequest{
			StartDate: start,
			EndDate:   end,
			WeekdayRules: []models.WeekdayRule{
				{Day: models.Monday, SessionCount: 4},
				{Day: models.Wednesday, SessionCount: 4},
				{Day: models.Friday, SessionCount: 4},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	svc, opener, activity := newService(t)
	doc, err := svc.Generate(context.Background(), "user-1", request("2025-09-01", "2025-09-30"))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Records) != 13 || doc.TotalSessions != 52 {
		t.Fatalf("got %d records / %d sessions", len(doc.Records), doc.TotalSessions)
	}
	if doc.FileName != "09-2025.xlsx" || doc.Competence != "SETEMBRO/2025" || doc.Segment != nil {
		t.Errorf("unexpected document %+v", doc)
	}
	if len(doc.Content) == 0 {
		t.Error("empty content")
	}

	wbs := opener.Opened()
	if len(wbs) != 1 {
		t.Fatalf("opened %d workbooks", len(wbs))
	}
	if v, _ := wbs[0].Value("C54"); v != "SEG(4), QUA(4), SEX(4)" {
		t.Errorf("weekday summary = %v", v)
	}
	if v, _ := wbs[0].Value("E46"); v != 52 {
		t.Errorf("total = %v", v)
	}

	if len(activity.entries) != 1 {
		t.Fatalf("%d activity entries", len(activity.entries))
	}
	e := activity.entries[0]
	if e.Actor != "user-1" || e.Action != models.ActionGenerateSpreadsheet || e.Records != 13 || e.TotalSessions != 52 {
		t.Errorf("unexpected activity %+v", e)
	}
}

func TestGenerateMultiMonthLabel(t *testing.T) {
	svc, _, _ := newService(t)
	doc, err := svc.Generate(context.Background(), "", request("2025-09-15", "2025-10-15"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Competence != "SETEMBRO/2025 - OUTUBRO/2025" {
		t.Errorf("competence = %q", doc.Competence)
	}
	if doc.FileName != "09-2025_10-2025.xlsx" {
		t.Errorf("file name = %q", doc.FileName)
	}
}

func TestGenerateByMonth(t *testing.T) {
	svc, opener, activity := newService(t)
	req := request("2025-09-15", "2025-11-10")
	req.Exceptions = []models.ExceptionOverride{{Date: "2025-10-01"}}

	docs, err := svc.GenerateByMonth(context.Background(), "user-2", req)
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"09-2025.xlsx", "10-2025.xlsx", "11-2025.xlsx"}
	wantLabels := []string{"SETEMBRO/2025", "OUTUBRO/2025", "NOVEMBRO/2025"}
	if len(docs) != len(wantNames) {
		t.Fatalf("got %d documents", len(docs))
	}

	whole, err := schedule.GenerateSchedule(req.ScheduleRequest)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for i, d := range docs {
		if d.FileName != wantNames[i] || d.Competence != wantLabels[i] {
			t.Errorf("doc %d = %s %s", i, d.FileName, d.Competence)
		}
		if d.Segment == nil || d.Segment.Month != 9+i {
			t.Errorf("doc %d segment = %+v", i, d.Segment)
		}
		for _, r := range d.Records {
			if r.Date.Before(d.Segment.SegmentStart) || r.Date.After(d.Segment.SegmentEnd) {
				t.Errorf("doc %d holds %s outside its segment", i, r.Date)
			}
			if r.Date.String() == "2025-10-01" {
				t.Error("exception date was not honoured")
			}
		}
		total += len(d.Records)
	}
	if total != len(whole) {
		t.Errorf("segments hold %d records, whole range %d", total, len(whole))
	}
	if len(opener.Opened()) != 3 {
		t.Errorf("opened %d workbooks", len(opener.Opened()))
	}
	if len(activity.entries) != 1 || activity.entries[0].Documents != 3 {
		t.Errorf("unexpected activity %+v", activity.entries)
	}
}

func TestGenerateByMonthFailsAtomically(t *testing.T) {
	svc, _, activity := newService(t)
	svc.Layout = sheet.DefaultLayout
	svc.Layout.WorksheetIndex = 1

	docs, err := svc.GenerateByMonth(context.Background(), "", request("2025-09-01", "2025-12-31"))
	if !errors.Is(err, sheet.ErrWorksheetNotFound) {
		t.Fatalf("err = %v", err)
	}
	if docs != nil {
		t.Error("partial output returned")
	}
	if len(activity.entries) != 0 {
		t.Error("failed generation was logged")
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	svc, opener, _ := newService(t)
	req := request("", "")
	if _, err := svc.Generate(context.Background(), "", req); !errors.Is(err, schedule.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	req = request("2025-09-01", "2025-09-30")
	req.Exceptions = []models.ExceptionOverride{{Date: "2025-09-02"}, {Date: "2025-09-02"}}
	if _, err := svc.GenerateByMonth(context.Background(), "", req); !errors.Is(err, schedule.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if len(opener.Opened()) != 0 {
		t.Error("template opened for invalid input")
	}
}

func TestQuota(t *testing.T) {
	svc, _, _ := newService(t)
	svc.Quota = &countingLimiter{limit: 2}

	if _, err := svc.GenerateByMonth(context.Background(), "u", request("2025-09-01", "2025-11-30")); !errors.Is(err, quota.ErrQuotaExceeded) {
		t.Fatalf("three months against a limit of two: err = %v", err)
	}
	if _, err := svc.Generate(context.Background(), "u", request("2025-09-01", "2025-11-30")); err != nil {
		t.Fatalf("single document: %v", err)
	}
}

func TestFailedRenderIsNotCharged(t *testing.T) {
	svc, opener, _ := newService(t)
	limiter := &countingLimiter{limit: 5}
	svc.Quota = limiter

	opener.Err = errors.New("template unreadable")
	if _, err := svc.Generate(context.Background(), "u", request("2025-09-01", "2025-09-30")); err == nil {
		t.Fatal("expected the open failure")
	}
	opener.Err = nil
	svc.Layout = sheet.DefaultLayout
	svc.Layout.WorksheetIndex = 1
	if _, err := svc.GenerateByMonth(context.Background(), "u", request("2025-09-01", "2025-11-30")); !errors.Is(err, sheet.ErrWorksheetNotFound) {
		t.Fatalf("err = %v", err)
	}
	if limiter.used != 0 {
		t.Errorf("%d generations charged for failed renders", limiter.used)
	}

	svc.Layout.WorksheetIndex = 0
	if _, err := svc.GenerateByMonth(context.Background(), "u", request("2025-09-01", "2025-11-30")); err != nil {
		t.Fatal(err)
	}
	if limiter.used != 3 {
		t.Errorf("used = %d, want 3", limiter.used)
	}
}

func TestActivityFailureDoesNotFail(t *testing.T) {
	svc, _, activity := newService(t)
	activity.err = errors.New("mongo down")
	if _, err := svc.Generate(context.Background(), "", request("2025-09-01", "2025-09-07")); err != nil {
		t.Fatal(err)
	}
}

func TestPreview(t *testing.T) {
	svc, opener, _ := newService(t)
	p, err := svc.Preview(models.ScheduleRequest{
		StartDate:    "2025-09-06",
		EndDate:      "2025-09-07",
		WeekdayRules: []models.WeekdayRule{{Day: models.Monday, SessionCount: 4}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Records) != 0 || p.Records == nil || p.TotalSessions != 0 {
		t.Errorf("unexpected preview %+v", p)
	}
	if p.WeekdaySummary != "SEG(4)" || p.Competence != "SETEMBRO/2025" || len(p.Segments) != 1 {
		t.Errorf("unexpected preview %+v", p)
	}
	if len(opener.Opened()) != 0 {
		t.Error("preview opened the template")
	}
}

func TestBundle(t *testing.T) {
	docs := []models.Document{
		{FileName: "09-2025.xlsx", Content: []byte("first"), Segment: &models.MonthSegment{Year: 2025, Month: 9}},
		{FileName: "10-2025.xlsx", Content: []byte("second"), Segment: &models.MonthSegment{Year: 2025, Month: 10}},
	}
	b, err := Bundle(docs, time.Date(2025, 10, 31, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("%d entries", len(zr.File))
	}
	for i, f := range zr.File {
		if f.Name != docs[i].FileName {
			t.Errorf("entry %d = %s", i, f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		content, _ := io.ReadAll(rc)
		rc.Close()
		if !bytes.Equal(content, docs[i].Content) {
			t.Errorf("entry %s content = %q", f.Name, content)
		}
	}
	if got := ArchiveName(docs); got != "registros_09-2025_10-2025.zip" {
		t.Errorf("ArchiveName = %q", got)
	}

	docs[1].FileName = docs[0].FileName
	if _, err := Bundle(docs, time.Now()); err == nil {
		t.Error("duplicate entries should fail")
	}
}

func TestNewDefaultDocumentServiceRequiresTemplate(t *testing.T) {
	if _, err := NewDefaultDocumentService(nil, "x", nil, nil, nil); err == nil {
		t.Error("nil opener accepted")
	}
	if _, err := NewDefaultDocumentService(&sheettest.Opener{}, "", nil, nil, nil); err == nil {
		t.Error("empty template ref accepted")
	}
}
