package sheet

import (
	"context"
	"errors"
)

// ErrWorksheetNotFound is returned when the template lacks the requested sheet.
var ErrWorksheetNotFound = errors.New("worksheet not found in template")

// Alignment mirrors the subset of cell alignment the layout touches.
type Alignment struct {
	WrapText   bool
	Vertical   string // "top", "center", "bottom"
	Horizontal string // "left", "center", "right"
}

// Opener loads a fresh, private copy of a template.
type Opener interface {
	Open(ctx context.Context, ref string) (Workbook, error)
}

// Workbook is an opened template.
type Workbook interface {
	// Worksheet returns the sheet at a zero-based index or ErrWorksheetNotFound.
	Worksheet(index int) (Worksheet, error)
	Bytes() ([]byte, error)
}

// Worksheet is the cell and row capability the layout engine depends on.
// Addresses use A1 notation; rows are 1-based.
type Worksheet interface {
	Cell(addr string) (string, error)
	// SetCell writes a value; nil clears the cell.
	SetCell(addr string, value any) error
	SetAlignment(addr string, a Alignment) error
	RowHeight(row int) (float64, error)
	SetRowHeight(row int, height float64) error
	// DuplicateRow copies row count times, inserting the copies after it
	// (insertAfter) or before it, and shifts the rows below.
	DuplicateRow(row, count int, insertAfter bool) error
}
