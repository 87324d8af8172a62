package sheet

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ExcelizeOpener opens .xlsx templates with excelize. Registered templates
// are kept as immutable bytes and every Open parses a private copy.
type ExcelizeOpener struct {
	mu        sync.RWMutex
	templates map[string][]byte
}

func NewExcelizeOpener() *ExcelizeOpener {
	return &ExcelizeOpener{templates: make(map[string][]byte)}
}

// Register stores content under ref. The slice must not be modified afterwards.
func (o *ExcelizeOpener) Register(ref string, content []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.templates[ref] = content
}

// RegisterFile reads a template from disk and registers it under its path.
func (o *ExcelizeOpener) RegisterFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("sheet: read template %s: %w", path, err)
	}
	o.Register(path, content)
	return nil
}

// Open parses the registered template, or reads ref from disk when it was never registered.
func (o *ExcelizeOpener) Open(ctx context.Context, ref string) (Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.mu.RLock()
	content, ok := o.templates[ref]
	o.mu.RUnlock()

	var (
		f   *excelize.File
		err error
	)
	if ok {
		f, err = excelize.OpenReader(bytes.NewReader(content))
	} else {
		f, err = excelize.OpenFile(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("sheet: open template %s: %w", ref, err)
	}
	return &excelizeWorkbook{f: f}, nil
}

type excelizeWorkbook struct {
	f *excelize.File
}

func (w *excelizeWorkbook) Worksheet(index int) (Worksheet, error) {
	name := w.f.GetSheetName(index)
	if name == "" {
		return nil, fmt.Errorf("%w: index %d", ErrWorksheetNotFound, index)
	}
	return &excelizeSheet{f: w.f, name: name}, nil
}

func (w *excelizeWorkbook) Bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *excelizeWorkbook) Close() error {
	return w.f.Close()
}

type excelizeSheet struct {
	f    *excelize.File
	name string
}

func (s *excelizeSheet) Cell(addr string) (string, error) {
	return s.f.GetCellValue(s.name, addr)
}

func (s *excelizeSheet) SetCell(addr string, value any) error {
	return s.f.SetCellValue(s.name, addr, value)
}

// SetAlignment keeps the cell's borders, font and fill and only swaps its alignment.
func (s *excelizeSheet) SetAlignment(addr string, a Alignment) error {
	styleID, err := s.f.GetCellStyle(s.name, addr)
	if err != nil {
		return err
	}
	style, err := s.f.GetStyle(styleID)
	if err != nil || style == nil {
		style = &excelize.Style{}
	}
	style.Alignment = &excelize.Alignment{
		WrapText:   a.WrapText,
		Vertical:   a.Vertical,
		Horizontal: a.Horizontal,
	}
	newID, err := s.f.NewStyle(style)
	if err != nil {
		return err
	}
	return s.f.SetCellStyle(s.name, addr, addr, newID)
}

func (s *excelizeSheet) RowHeight(row int) (float64, error) {
	return s.f.GetRowHeight(s.name, row)
}

func (s *excelizeSheet) SetRowHeight(row int, height float64) error {
	return s.f.SetRowHeight(s.name, row, height)
}

// DuplicateRow inserts count copies of row. A copy inserted before the row
// is indistinguishable from one inserted after it, so both go below.
func (s *excelizeSheet) DuplicateRow(row, count int, _ bool) error {
	for i := 0; i < count; i++ {
		if err := s.f.DuplicateRowTo(s.name, row, row+1); err != nil {
			return err
		}
	}
	return nil
}
