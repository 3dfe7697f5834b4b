package export

import (
	"fmt"
	"io"

	"docreview/internal/domain"
)

// Write renders records in the requested format.
func Write(w io.Writer, format domain.ExportFormat, records []domain.AnalysisRecord) error {
	t := BuildTable(records)
	switch format {
	case domain.ExportCSV:
		return WriteCSV(w, t)
	case domain.ExportXLSX:
		return WriteXLSX(w, t)
	default:
		return domain.NewValidationError("unsupported export format %q", format)
	}
}

// ParseFormat maps a query value to an ExportFormat; empty means CSV.
func ParseFormat(s string) (domain.ExportFormat, error) {
	switch domain.ExportFormat(s) {
	case "", domain.ExportCSV:
		return domain.ExportCSV, nil
	case domain.ExportXLSX:
		return domain.ExportXLSX, nil
	}
	return "", domain.NewValidationError("format must be csv or xlsx, got %q", s)
}

// ContentType returns the MIME type for format.
func ContentType(format domain.ExportFormat) string {
	if ct, ok := domain.ExportContentTypes[format]; ok {
		return ct
	}
	return fmt.Sprintf("application/%s", format)
}
