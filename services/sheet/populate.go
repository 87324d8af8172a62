package sheet

import (
	"fmt"
	"strings"

	"sessionsheet/models"
)

// Header holds every value written to a fixed header cell.
type Header struct {
	Fields         models.HeaderFields
	WeekdaySummary string
	Competence     string
}

// Result describes a populated workbook.
type Result struct {
	Content        []byte
	DuplicatedRows int
	// LastRecordRow is 0 when there are no records.
	LastRecordRow int
	TotalCell     string
}

var dataAlignment = Alignment{WrapText: true, Vertical: "center", Horizontal: "center"}

// Populate lays records into the template's data window and serializes it.
//
// Header cells are written first, then the whole window is blanked. Records
// beyond the window's capacity each duplicate the current last data row, so
// the footer and every row below it move down one row per overflow record.
func Populate(wb Workbook, layout Layout, records []models.SessionRecord, totalSessions int, header Header) (*Result, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	ws, err := wb.Worksheet(layout.WorksheetIndex)
	if err != nil {
		return nil, err
	}

	if err := writeHeader(ws, layout, header); err != nil {
		return nil, err
	}
	if err := clearWindow(ws, layout); err != nil {
		return nil, err
	}

	res := &Result{}
	lastRow := layout.LastRow
	for i, rec := range records {
		row := layout.FirstRow + i
		if row > lastRow {
			if err := growWindow(ws, lastRow); err != nil {
				return nil, err
			}
			lastRow++
			res.DuplicatedRows++
		}
		if err := writeRecord(ws, layout, row, i+1, rec); err != nil {
			return nil, err
		}
		res.LastRecordRow = row
	}

	res.TotalCell = cellAt(layout.TotalColumn, layout.TotalRow+res.DuplicatedRows)
	if err := ws.SetCell(res.TotalCell, totalSessions); err != nil {
		return nil, fmt.Errorf("sheet: write total: %w", err)
	}

	content, err := wb.Bytes()
	if err != nil {
		return nil, fmt.Errorf("sheet: serialize workbook: %w", err)
	}
	res.Content = content
	return res, nil
}

func writeHeader(ws Worksheet, layout Layout, h Header) error {
	f := h.Fields
	cells := []struct {
		addr  string
		value string
	}{
		{layout.Professional, f.Professional},
		{layout.Therapy, f.Therapy},
		{layout.LicenseNumber, f.LicenseNumber},
		{layout.AuthorizedSession, f.AuthorizedSession},
		{layout.PatientName, f.PatientName},
		{layout.Responsible, f.Responsible},
		{layout.HealthPlan, f.HealthPlan},
		{layout.CardNumber, f.CardNumber},
		{layout.GuideNumber, f.GuideNumber},
		{layout.WeekdaySummary, h.WeekdaySummary},
		{layout.Competence, h.Competence},
	}
	for _, c := range cells {
		if c.addr == "" {
			continue
		}
		if err := ws.SetCell(c.addr, c.value); err != nil {
			return fmt.Errorf("sheet: write %s: %w", c.addr, err)
		}
	}

	// Without company data the template's own A1 text stays.
	if f.Company == nil || layout.Company == "" {
		return nil
	}
	if err := ws.SetCell(layout.Company, CompanyBlock(*f.Company)); err != nil {
		return fmt.Errorf("sheet: write %s: %w", layout.Company, err)
	}
	return ws.SetAlignment(layout.Company, dataAlignment)
}

func clearWindow(ws Worksheet, layout Layout) error {
	for row := layout.FirstRow; row <= layout.LastRow; row++ {
		for _, col := range layout.Columns.all() {
			if err := ws.SetCell(cellAt(col, row), nil); err != nil {
				return fmt.Errorf("sheet: clear row %d: %w", row, err)
			}
		}
	}
	return nil
}

// growWindow inserts a copy of lastRow right below it, keeping its height.
func growWindow(ws Worksheet, lastRow int) error {
	if err := ws.DuplicateRow(lastRow, 1, true); err != nil {
		return fmt.Errorf("sheet: duplicate row %d: %w", lastRow, err)
	}
	height, err := ws.RowHeight(lastRow)
	if err != nil {
		return fmt.Errorf("sheet: read row %d height: %w", lastRow, err)
	}
	if height > 0 {
		if err := ws.SetRowHeight(lastRow+1, height); err != nil {
			return fmt.Errorf("sheet: set row %d height: %w", lastRow+1, err)
		}
	}
	return nil
}

func writeRecord(ws Worksheet, layout Layout, row, seq int, rec models.SessionRecord) error {
	c := layout.Columns
	values := []struct {
		col   string
		value any
	}{
		{c.Sequence, seq},
		{c.Date, rec.Date.Display()},
		{c.Start, rec.StartTime},
		{c.End, rec.EndTime},
		{c.Sessions, rec.SessionCount},
		{c.Status, layout.StatusLabel},
	}
	for _, v := range values {
		addr := cellAt(v.col, row)
		if err := ws.SetCell(addr, v.value); err != nil {
			return fmt.Errorf("sheet: write %s: %w", addr, err)
		}
		if err := ws.SetAlignment(addr, dataAlignment); err != nil {
			return fmt.Errorf("sheet: align %s: %w", addr, err)
		}
	}
	return nil
}

// CompanyBlock renders the clinic identification printed at the top of the sheet.
func CompanyBlock(c models.CompanyData) string {
	lines := []string{strings.TrimSpace(c.Name)}
	if c.CNPJ != "" {
		lines = append(lines, "CNPJ: "+FormatCNPJ(c.CNPJ))
	}
	if c.Address != "" {
		lines = append(lines, "ENDEREÇO: "+strings.TrimSpace(c.Address))
	}
	return strings.Join(lines, "\n")
}

// FormatCNPJ renders a 14-digit CNPJ as 12.345.678/0001-95.
// Anything that does not hold exactly 14 digits is returned trimmed but unchanged.
func FormatCNPJ(raw string) string {
	var digits []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) != 14 {
		return strings.TrimSpace(raw)
	}
	d := string(digits)
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}
