// Package export renders analysis records as CSV or XLSX tables.
package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"docreview/internal/domain"
)

// fixedColumns lead every export; result keys follow in sorted order.
var fixedColumns = []string{"Record ID", "File ID", "Created At"}

// Table is a header row plus data rows, shared by both encoders.
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable flattens records into a table. Each top-level result key becomes
// a column; nested values are written as compact JSON.
func BuildTable(records []domain.AnalysisRecord) Table {
	keySet := make(map[string]struct{})
	for i := range records {
		for k := range records[i].Result {
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	header := make([]string, 0, len(fixedColumns)+len(keys))
	header = append(header, fixedColumns...)
	header = append(header, keys...)

	rows := make([][]string, 0, len(records))
	for i := range records {
		rec := &records[i]
		row := make([]string, len(header))
		row[0] = rec.ID
		row[1] = rec.FileID
		if !rec.CreatedAt.IsZero() {
			row[2] = rec.CreatedAt.UTC().Format(time.RFC3339)
		}
		for j, k := range keys {
			if v, ok := rec.Result[k]; ok {
				row[len(fixedColumns)+j] = formatValue(v)
			}
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition: anything
// outside [A-Za-z0-9_-] becomes "_", runs collapse, and the result is capped
// at 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "analysis_results"
	}
	return s
}

// BuildFilename returns {sanitized_file_id}_{YYYY-MM-DD}.{format}.
func BuildFilename(fileID string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(fileID), now.Format("2006-01-02"), format)
}
