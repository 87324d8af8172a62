// Package sheettest provides an in-memory workbook for exercising the layout
// engine without a real spreadsheet file.
package sheettest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"sessionsheet/services/sheet"
)

// DuplicateCall records one DuplicateRow invocation.
type DuplicateCall struct {
	Row         int
	Count       int
	InsertAfter bool
}

// Workbook holds a single worksheet unless Sheets says otherwise.
type Workbook struct {
	mu sync.Mutex

	// Sheets is the number of worksheets; zero means one.
	Sheets int

	cells      map[string]any
	alignments map[string]sheet.Alignment
	heights    map[int]float64
	duplicates []DuplicateCall
	serialized int
}

// NewWorkbook returns a workbook whose only sheet holds the given cells.
func NewWorkbook(cells map[string]any) *Workbook {
	wb := &Workbook{
		cells:      make(map[string]any),
		alignments: make(map[string]sheet.Alignment),
		heights:    make(map[int]float64),
	}
	for k, v := range cells {
		wb.cells[k] = v
	}
	return wb
}

func (w *Workbook) Worksheet(index int) (sheet.Worksheet, error) {
	n := w.Sheets
	if n == 0 {
		n = 1
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: index %d", sheet.ErrWorksheetNotFound, index)
	}
	return &worksheet{wb: w}, nil
}

// Bytes returns the cells as sorted JSON so equal workbooks serialize equally.
func (w *Workbook) Bytes() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.serialized++
	keys := make([]string, 0, len(w.cells))
	for k := range w.cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, fmt.Sprint(w.cells[k])})
	}
	return json.Marshal(out)
}

// Value returns the raw value stored at addr.
func (w *Workbook) Value(addr string) (any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.cells[addr]
	return v, ok
}

// Alignment returns the alignment last applied to addr.
func (w *Workbook) Alignment(addr string) (sheet.Alignment, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.alignments[addr]
	return a, ok
}

// Height returns the height of row, 0 when never set.
func (w *Workbook) Height(row int) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.heights[row]
}

// SetHeight seeds a row height before the engine runs.
func (w *Workbook) SetHeight(row int, height float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.heights[row] = height
}

func (w *Workbook) Duplicates() []DuplicateCall {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]DuplicateCall(nil), w.duplicates...)
}

// Serialized reports how many times Bytes ran.
func (w *Workbook) Serialized() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.serialized
}

type worksheet struct {
	wb *Workbook
}

func (s *worksheet) Cell(addr string) (string, error) {
	if _, _, err := excelize.CellNameToCoordinates(addr); err != nil {
		return "", err
	}
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	v, ok := s.wb.cells[addr]
	if !ok || v == nil {
		return "", nil
	}
	return fmt.Sprint(v), nil
}

func (s *worksheet) SetCell(addr string, value any) error {
	if _, _, err := excelize.CellNameToCoordinates(addr); err != nil {
		return err
	}
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	if value == nil {
		delete(s.wb.cells, addr)
		return nil
	}
	s.wb.cells[addr] = value
	return nil
}

func (s *worksheet) SetAlignment(addr string, a sheet.Alignment) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	s.wb.alignments[addr] = a
	return nil
}

func (s *worksheet) RowHeight(row int) (float64, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	return s.wb.heights[row], nil
}

func (s *worksheet) SetRowHeight(row int, height float64) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	s.wb.heights[row] = height
	return nil
}

// DuplicateRow shifts every row below row down by count and fills the gap
// with copies of row, the way a spreadsheet engine does.
func (s *worksheet) DuplicateRow(row, count int, insertAfter bool) error {
	if row < 1 || count < 1 {
		return fmt.Errorf("sheettest: invalid duplicate of row %d x%d", row, count)
	}
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	s.wb.duplicates = append(s.wb.duplicates, DuplicateCall{Row: row, Count: count, InsertAfter: insertAfter})

	cells := make(map[string]any, len(s.wb.cells))
	aligns := make(map[string]sheet.Alignment, len(s.wb.alignments))
	for addr, v := range s.wb.cells {
		col, r := split(addr)
		if r > row {
			r += count
		}
		cells[col+strconv.Itoa(r)] = v
		if r == row {
			for i := 1; i <= count; i++ {
				cells[col+strconv.Itoa(row+i)] = v
			}
		}
	}
	for addr, a := range s.wb.alignments {
		col, r := split(addr)
		if r > row {
			r += count
		}
		aligns[col+strconv.Itoa(r)] = a
		if r == row {
			for i := 1; i <= count; i++ {
				aligns[col+strconv.Itoa(row+i)] = a
			}
		}
	}
	heights := make(map[int]float64, len(s.wb.heights))
	for r, h := range s.wb.heights {
		if r > row {
			heights[r+count] = h
			continue
		}
		heights[r] = h
	}
	s.wb.cells, s.wb.alignments, s.wb.heights = cells, aligns, heights
	return nil
}

func split(addr string) (string, int) {
	col, row, err := excelize.SplitCellName(addr)
	if err != nil {
		return addr, 0
	}
	return col, row
}

// Opener hands out workbooks built by New, one per Open call.
type Opener struct {
	mu     sync.Mutex
	New    func() *Workbook
	Err    error
	opened []*Workbook
}

func (o *Opener) Open(ctx context.Context, ref string) (sheet.Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if o.Err != nil {
		return nil, o.Err
	}
	wb := NewWorkbook(nil)
	if o.New != nil {
		wb = o.New()
	}
	o.mu.Lock()
	o.opened = append(o.opened, wb)
	o.mu.Unlock()
	return wb, nil
}

// Opened returns every workbook handed out so far, in Open order.
func (o *Opener) Opened() []*Workbook {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*Workbook(nil), o.opened...)
}
