// Package export produces the downloadable tabular artifact for a
// finished question set.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/questgen-flow/backend/internal/domain"
	"github.com/questgen-flow/backend/internal/storage"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName       = "Questions"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headerRow = []interface{}{
	"ID", "Question", "Option A", "Option B", "Option C", "Option D",
	"Correct Answer", "Explanation", "Topic",
}

// ExcelExporter writes question sets as xlsx workbooks into artifact
// storage.
type ExcelExporter struct {
	store storage.ArtifactStorage
}

// NewExcelExporter creates an exporter backed by the given storage.
func NewExcelExporter(store storage.ArtifactStorage) *ExcelExporter {
	return &ExcelExporter{store: store}
}

// ExportKey returns the storage key of a job's workbook.
func ExportKey(jobID string) string {
	return fmt.Sprintf("exports/%s.xlsx", jobID)
}

// Export builds the workbook for the finalized question list and uploads
// it, returning the storage key.
func (e *ExcelExporter) Export(ctx context.Context, jobID string, questions []domain.Question) (string, error) {
	f, err := BuildWorkbook(questions)
	if err != nil {
		return "", fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	key := ExportKey(jobID)
	if err := e.store.Upload(ctx, key, &buf, int64(buf.Len()), xlsxContentType); err != nil {
		return "", err
	}
	return key, nil
}

// BuildWorkbook renders the question list into an xlsx workbook with one
// row per question.
func BuildWorkbook(questions []domain.Question) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		f.Close()
		return nil, err
	}

	for i, q := range questions {
		row := []interface{}{
			q.ID,
			q.Text,
			q.Options["A"],
			q.Options["B"],
			q.Options["C"],
			q.Options["D"],
			q.CorrectAnswer,
			q.Explanation,
			q.Topic,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}
