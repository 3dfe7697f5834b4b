package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DocumentPayload is an uploaded document as read from the inbound request.
// It belongs to the request that received it and is never retained.
type DocumentPayload struct {
	Content   []byte
	Filename  string
	MediaType string
}

// ScanResult is the text extracted from a document by the scanner.
type ScanResult struct {
	Text string `json:"text"`
}

// PageEntry is one page of extracted text. Page numbers are 1-based.
type PageEntry struct {
	Page    int    `json:"page"`
	Content string `json:"content"`
}

// PageList is an ordered sequence of pages. It decodes from a JSON array whose
// elements are either bare strings or {"page","content"} objects; bare strings
// are numbered by position.
type PageList []PageEntry

// UnmarshalJSON implements json.Unmarshaler.
func (p *PageList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("pages must be an array: %w", err)
	}
	out := make(PageList, 0, len(raw))
	for i, item := range raw {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			out = append(out, PageEntry{Page: i + 1, Content: text})
			continue
		}
		var entry PageEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		if entry.Page == 0 {
			entry.Page = i + 1
		}
		out = append(out, entry)
	}
	*p = out
	return nil
}

// PageSet maps a slot name to its ordered pages. One inference request carries
// exactly one PageSet.
type PageSet map[string]PageList

// InferenceResult is the opaque JSON object returned by the model. Only
// envelope keys are ever added or inspected.
type InferenceResult map[string]interface{}

// Value implements driver.Valuer so results can be stored in a jsonb column.
func (r InferenceResult) Value() (driver.Value, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *InferenceResult) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*r = nil
		return nil
	default:
		return errors.New("unsupported type for inference result")
	}
	return json.Unmarshal(data, r)
}

// AnalysisRecord is a persisted analysis result. The store assigns ID; FileID
// is supplied by the caller and is not required to be unique.
type AnalysisRecord struct {
	ID        string          `db:"id" json:"id"`
	FileID    string          `db:"file_id" json:"file_id"`
	Result    InferenceResult `db:"result" json:"result"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// AnalysisRecordPatch carries the fields an update may change. Nil fields are
// left untouched.
type AnalysisRecordPatch struct {
	FileID *string          `json:"file_id,omitempty"`
	Result *InferenceResult `json:"result,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p AnalysisRecordPatch) Empty() bool {
	return p.FileID == nil && p.Result == nil
}

// Envelope is the response returned to an orchestrator caller: the inference
// result with orchestration metadata merged in at the top level.
type Envelope map[string]interface{}
