package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docreview/internal/domain"
)

func sampleRecords() []domain.AnalysisRecord {
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	return []domain.AnalysisRecord{
		{
			ID:        "rec-1",
			FileID:    "file-1",
			CreatedAt: created,
			Result: domain.InferenceResult{
				"summary":      "fine",
				"overall_risk": "low",
				"risks":        []interface{}{map[string]interface{}{"clause": "7"}},
			},
		},
		{
			ID:     "rec-2",
			FileID: "file-1",
			Result: domain.InferenceResult{"summary": "second", "score": float64(3.5), "ok": true},
		},
	}
}

func TestBuildTable(t *testing.T) {
	table := BuildTable(sampleRecords())

	assert.Equal(t, []string{"Record ID", "File ID", "Created At", "ok", "overall_risk", "risks", "score", "summary"}, table.Header)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, []string{"rec-1", "file-1", "2026-03-04T05:06:07Z", "", "low", `[{"clause":"7"}]`, "", "fine"}, table.Rows[0])
	assert.Equal(t, []string{"rec-2", "file-1", "", "Yes", "", "", "3.5", "second"}, table.Rows[1])
}

func TestBuildTable_Empty(t *testing.T) {
	table := BuildTable(nil)

	assert.Equal(t, fixedColumns, table.Header)
	assert.Empty(t, table.Rows)
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, domain.ExportCSV, sampleRecords()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Record ID", rows[0][0])
	assert.Equal(t, "rec-2", rows[2][0])
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, domain.ExportXLSX, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "File ID", rows[0][1])
	assert.Equal(t, "rec-1", rows[1][0])
	assert.Equal(t, "fine", rows[1][7])
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, domain.ExportFormat("pdf"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportCSV, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportXLSX, f)

	_, err = ParseFormat("json")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "contract_v2_pdf_2026-01-15.csv", BuildFilename("contract v2.pdf", domain.ExportCSV, now))
	assert.Equal(t, "analysis_results_2026-01-15.xlsx", BuildFilename("***", domain.ExportXLSX, now))
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := bytes.Repeat([]byte("a"), 150)
	assert.Len(t, SanitizeFilename(string(long)), 100)
}
