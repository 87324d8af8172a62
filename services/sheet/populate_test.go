package sheet_test

import (
	"errors"
	"fmt"
	"testing"

	"sessionsheet/models"
	"sessionsheet/services/sheet"
	"sessionsheet/services/sheet/sheettest"
)

func makeRecords(n int) []models.SessionRecord {
	start := models.NewDate(2025, 9, 1)
	out := make([]models.SessionRecord, n)
	for i := range out {
		out[i] = models.SessionRecord{
			Date:         start.AddDays(i),
			SessionCount: 1,
			StartTime:    "08:00",
			EndTime:      "09:00",
			Origin:       models.OriginDefault,
		}
	}
	return out
}

func header() sheet.Header {
	return sheet.Header{
		Fields: models.HeaderFields{
			Professional:  "Ana Souza",
			Therapy:       "Fonoaudiologia",
			LicenseNumber: "CRFa 12345",
			PatientName:   "João Pedro",
			Responsible:   "Maria Pedro",
			HealthPlan:    "Unimed",
			CardNumber:    "0001",
			GuideNumber:   "G-77",
		},
		WeekdaySummary: "SEG(4), QUA(4), SEX(4)",
		Competence:     "SETEMBRO/2025",
	}
}

// templateCells mimics the labels and placeholder rows of the shipped template.
func templateCells() map[string]any {
	cells := map[string]any{
		"A1":  "CLÍNICA MODELO",
		"D46": "Total de sessões",
		"B54": "Dias de atendimento",
		"B57": "Competência",
	}
	for row := 14; row <= 44; row++ {
		cells[fmt.Sprintf("A%d", row)] = "stale"
		cells[fmt.Sprintf("F%d", row)] = "stale"
	}
	return cells
}

func mustValue(t *testing.T, wb *sheettest.Workbook, addr string, want any) {
	t.Helper()
	got, ok := wb.Value(addr)
	if !ok || got != want {
		t.Errorf("%s = %v (set=%v), want %v", addr, got, ok, want)
	}
}

func mustEmpty(t *testing.T, wb *sheettest.Workbook, addr string) {
	t.Helper()
	if got, ok := wb.Value(addr); ok {
		t.Errorf("%s = %v, want empty", addr, got)
	}
}

func TestPopulateOverflow(t *testing.T) {
	tests := []struct {
		name         string
		records      int
		wantDup      int
		wantLastRow  int
		wantTotal    string
		wantFooter   string
		wantSummary  string
		wantCompCell string
	}{
		{"empty", 0, 0, 0, "E46", "D46", "C54", "C57"},
		{"partial", 13, 0, 26, "E46", "D46", "C54", "C57"},
		{"exact fill", 31, 0, 44, "E46", "D46", "C54", "C57"},
		{"one over", 32, 1, 45, "E47", "D47", "C55", "C58"},
		{"two over", 33, 2, 46, "E48", "D48", "C56", "C59"},
		{"long", 62, 31, 75, "E77", "D77", "C85", "C88"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := sheettest.NewWorkbook(templateCells())
			wb.SetHeight(44, 21)
			records := makeRecords(tt.records)
			total := models.TotalSessions(records)

			res, err := sheet.Populate(wb, sheet.DefaultLayout, records, total, header())
			if err != nil {
				t.Fatal(err)
			}
			if res.DuplicatedRows != tt.wantDup {
				t.Errorf("DuplicatedRows = %d, want %d", res.DuplicatedRows, tt.wantDup)
			}
			if res.LastRecordRow != tt.wantLastRow {
				t.Errorf("LastRecordRow = %d, want %d", res.LastRecordRow, tt.wantLastRow)
			}
			if res.TotalCell != tt.wantTotal {
				t.Errorf("TotalCell = %s, want %s", res.TotalCell, tt.wantTotal)
			}
			if len(wb.Duplicates()) != tt.wantDup {
				t.Errorf("%d duplicate calls, want %d", len(wb.Duplicates()), tt.wantDup)
			}
			for _, call := range wb.Duplicates() {
				if call.Count != 1 || !call.InsertAfter {
					t.Errorf("unexpected duplicate call %+v", call)
				}
			}

			mustValue(t, wb, tt.wantTotal, total)
			mustValue(t, wb, tt.wantFooter, "Total de sessões")
			mustValue(t, wb, tt.wantSummary, "SEG(4), QUA(4), SEX(4)")
			mustValue(t, wb, tt.wantCompCell, "SETEMBRO/2025")

			for i, rec := range records {
				row := 14 + i
				mustValue(t, wb, fmt.Sprintf("A%d", row), i+1)
				mustValue(t, wb, fmt.Sprintf("B%d", row), rec.Date.Display())
				mustValue(t, wb, fmt.Sprintf("F%d", row), "Atendido")
			}
			if tt.records < 31 {
				mustEmpty(t, wb, fmt.Sprintf("A%d", 14+tt.records))
				mustEmpty(t, wb, "F44")
			}
			if tt.wantDup > 0 && wb.Height(45) != 21 {
				t.Errorf("duplicated row height = %v, want 21", wb.Height(45))
			}
			if wb.Serialized() != 1 {
				t.Errorf("serialized %d times", wb.Serialized())
			}
		})
	}
}

func TestPopulateHeader(t *testing.T) {
	wb := sheettest.NewWorkbook(templateCells())
	h := header()
	if _, err := sheet.Populate(wb, sheet.DefaultLayout, makeRecords(1), 1, h); err != nil {
		t.Fatal(err)
	}
	mustValue(t, wb, "A1", "CLÍNICA MODELO")
	mustValue(t, wb, "C3", "Ana Souza")
	mustValue(t, wb, "C4", "Fonoaudiologia")
	mustValue(t, wb, "C5", "CRFa 12345")
	mustValue(t, wb, "C7", "João Pedro")
	mustValue(t, wb, "C8", "Maria Pedro")
	mustValue(t, wb, "C9", "Unimed")
	mustValue(t, wb, "C10", "0001")
	mustValue(t, wb, "C11", "G-77")

	want := sheet.Alignment{WrapText: true, Vertical: "center", Horizontal: "center"}
	if a, ok := wb.Alignment("C14"); !ok || a != want {
		t.Errorf("C14 alignment = %+v", a)
	}

	wb = sheettest.NewWorkbook(templateCells())
	h.Fields.Company = &models.CompanyData{Name: "Clínica Viva", CNPJ: "12345678000195", Address: "Rua A, 10"}
	if _, err := sheet.Populate(wb, sheet.DefaultLayout, nil, 0, h); err != nil {
		t.Fatal(err)
	}
	mustValue(t, wb, "A1", "Clínica Viva\nCNPJ: 12.345.678/0001-95\nENDEREÇO: Rua A, 10")
	if a, ok := wb.Alignment("A1"); !ok || !a.WrapText {
		t.Errorf("A1 alignment = %+v", a)
	}
}

func TestPopulateBlankTimes(t *testing.T) {
	wb := sheettest.NewWorkbook(nil)
	records := []models.SessionRecord{{Date: models.NewDate(2025, 9, 1), SessionCount: 4}}
	if _, err := sheet.Populate(wb, sheet.DefaultLayout, records, 4, header()); err != nil {
		t.Fatal(err)
	}
	mustValue(t, wb, "C14", "")
	mustValue(t, wb, "D14", "")
	mustValue(t, wb, "E14", 4)
	mustValue(t, wb, "E46", 4)
}

func TestPopulateMissingWorksheet(t *testing.T) {
	wb := sheettest.NewWorkbook(nil)
	layout := sheet.DefaultLayout
	layout.WorksheetIndex = 2
	_, err := sheet.Populate(wb, layout, nil, 0, header())
	if !errors.Is(err, sheet.ErrWorksheetNotFound) {
		t.Fatalf("err = %v", err)
	}
	if wb.Serialized() != 0 {
		t.Error("workbook serialized after failure")
	}
}

func TestLayoutValidate(t *testing.T) {
	if err := sheet.DefaultLayout.Validate(); err != nil {
		t.Fatal(err)
	}
	if sheet.DefaultLayout.Capacity() != 31 {
		t.Errorf("Capacity = %d", sheet.DefaultLayout.Capacity())
	}

	broken := []func(*sheet.Layout){
		func(l *sheet.Layout) { l.FirstRow = 0 },
		func(l *sheet.Layout) { l.LastRow = 10 },
		func(l *sheet.Layout) { l.TotalRow = 44 },
		func(l *sheet.Layout) { l.Columns.Status = "" },
		func(l *sheet.Layout) { l.TotalColumn = "e" },
	}
	for i, mutate := range broken {
		l := sheet.DefaultLayout
		mutate(&l)
		if err := l.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestFormatCNPJ(t *testing.T) {
	tests := map[string]string{
		"12345678000195":     "12.345.678/0001-95",
		"12.345.678/0001-95": "12.345.678/0001-95",
		" 123 ":              "123",
	}
	for in, want := range tests {
		if got := sheet.FormatCNPJ(in); got != want {
			t.Errorf("FormatCNPJ(%q) = %q, want %q", in, got, want)
		}
	}
}
