package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const blankSheetName = "Registro"

// BlankTemplate builds an attendance template that satisfies layout: labels
// next to each header cell, a titled data window and the footer label.
// Deployments without their own template file start from this one.
func BlankTemplate(layout Layout) ([]byte, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", blankSheetName); err != nil {
		return nil, err
	}
	sh := blankSheetName

	labels := map[string]string{}
	for _, l := range []struct{ addr, text string }{
		{layout.Company, "REGISTRO DE ATENDIMENTOS"},
		{offsetLeft(layout.Professional), "Profissional"},
		{offsetLeft(layout.Therapy), "Terapia"},
		{offsetLeft(layout.LicenseNumber), "Nº conselho"},
		{offsetLeft(layout.AuthorizedSession), "Sessões autorizadas"},
		{offsetLeft(layout.PatientName), "Paciente"},
		{offsetLeft(layout.Responsible), "Responsável"},
		{offsetLeft(layout.HealthPlan), "Plano de saúde"},
		{offsetLeft(layout.CardNumber), "Nº carteirinha"},
		{offsetLeft(layout.GuideNumber), "Nº guia"},
		{offsetLeft(layout.WeekdaySummary), "Dias de atendimento"},
		{offsetLeft(layout.Competence), "Competência"},
	} {
		labels[l.addr] = l.text
	}

	c := layout.Columns
	heading := layout.FirstRow - 1
	for _, h := range []struct{ col, text string }{
		{c.Sequence, "Nº"}, {c.Date, "Data"}, {c.Start, "Início"},
		{c.End, "Fim"}, {c.Sessions, "Sessões"}, {c.Status, "Situação"},
	} {
		if heading > 0 {
			labels[cellAt(h.col, heading)] = h.text
		}
	}
	if prev := previousColumn(layout.TotalColumn); prev != "" {
		labels[cellAt(prev, layout.TotalRow)] = "Total de sessões"
	}

	for addr, text := range labels {
		if addr == "" {
			continue
		}
		if err := f.SetCellValue(sh, addr, text); err != nil {
			return nil, fmt.Errorf("sheet: label %s: %w", addr, err)
		}
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	if heading > 0 {
		first, last := cellAt(c.Sequence, heading), cellAt(c.Status, heading)
		if err := f.SetCellStyle(sh, first, last, headStyle); err != nil {
			return nil, err
		}
	}
	for row := layout.FirstRow; row <= layout.LastRow; row++ {
		if err := f.SetRowHeight(sh, row, 18); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sh, "A", "A", 6)
	_ = f.SetColWidth(sh, "B", "B", 20)
	_ = f.SetColWidth(sh, "C", "F", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// offsetLeft returns the address one column to the left, or "" in column A.
func offsetLeft(addr string) string {
	col, row, err := excelize.SplitCellName(addr)
	if err != nil {
		return ""
	}
	prev := previousColumn(col)
	if prev == "" {
		return ""
	}
	return cellAt(prev, row)
}

func previousColumn(col string) string {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil || n <= 1 {
		return ""
	}
	name, err := excelize.ColumnNumberToName(n - 1)
	if err != nil {
		return ""
	}
	return name
}
