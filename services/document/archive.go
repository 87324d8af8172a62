package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"sessionsheet/models"
)

const (
	SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ArchiveContentType     = "application/zip"
)

// SegmentFileName names a monthly document "MM-YYYY.xlsx".
func SegmentFileName(seg models.MonthSegment) string {
	return fmt.Sprintf("%02d-%04d.xlsx", seg.Month, seg.Year)
}

// FileName names a whole-range document after the months it spans.
func FileName(start, end models.Date) string {
	first := fmt.Sprintf("%02d-%04d", int(start.Month), start.Year)
	if start.Year == end.Year && start.Month == end.Month {
		return first + ".xlsx"
	}
	return fmt.Sprintf("%s_%02d-%04d.xlsx", first, int(end.Month), end.Year)
}

// ArchiveName names the bundle of several monthly documents.
func ArchiveName(docs []models.Document) string {
	if len(docs) == 0 || docs[0].Segment == nil || docs[len(docs)-1].Segment == nil {
		return "registros.zip"
	}
	first, last := docs[0].Segment, docs[len(docs)-1].Segment
	return fmt.Sprintf("registros_%02d-%04d_%02d-%04d.zip", first.Month, first.Year, last.Month, last.Year)
}

// Bundle zips docs in the given order, one entry per document.
func Bundle(docs []models.Document, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if seen[d.FileName] {
			return nil, fmt.Errorf("document: duplicate archive entry %s", d.FileName)
		}
		seen[d.FileName] = true

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     d.FileName,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("document: add %s: %w", d.FileName, err)
		}
		if _, err := w.Write(d.Content); err != nil {
			return nil, fmt.Errorf("document: write %s: %w", d.FileName, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
