package resultstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"docreview/internal/client"
	"docreview/internal/config"
	"docreview/internal/domain"
	"docreview/internal/port"
)

const (
	serviceName    = "result-store"
	recordsPath    = "/analyse-results"
	byFilePath     = "/results/"
	defaultTimeout = 30 * time.Second
)

// Client implements port.ResultStore against the result store service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a result store client from store config.
func NewClient(cfg *config.CollaboratorConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    client.New(cfg.Timeout(defaultTimeout)),
	}
}

type createRequest struct {
	FileID string                 `json:"file_id"`
	Result domain.InferenceResult `json:"result"`
}

type recordEnvelope struct {
	Data *domain.AnalysisRecord `json:"data"`
}

type listEnvelope struct {
	Data  []domain.AnalysisRecord `json:"data"`
	Count int                     `json:"count"`
}

type byFileEnvelope struct {
	FileID       string                  `json:"file_id"`
	TotalResults int                     `json:"total_results"`
	Results      []domain.AnalysisRecord `json:"results"`
}

// Save creates a record for fileID. A response without a record id is treated
// as a failed save.
func (c *Client) Save(ctx context.Context, fileID string, result domain.InferenceResult) (*domain.AnalysisRecord, error) {
	var env recordEnvelope
	err := c.call(ctx, http.MethodPost, recordsPath, createRequest{FileID: fileID, Result: result}, &env)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.UpstreamError{
			Service: serviceName, Kind: domain.ErrStoreFailed,
			StatusCode: http.StatusNotFound, Body: "create endpoint not found",
		}
	}
	if err != nil {
		return nil, err
	}
	if env.Data == nil || env.Data.ID == "" {
		return nil, &domain.UpstreamError{
			Service: serviceName,
			Kind:    domain.ErrStoreFailed,
			Err:     errors.New("response did not include a record id"),
		}
	}
	return env.Data, nil
}

// Get fetches a record by its store-assigned id.
func (c *Client) Get(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	var env recordEnvelope
	if err := c.call(ctx, http.MethodGet, recordsPath+"/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, domain.ErrNotFound
	}
	return env.Data, nil
}

// List returns records matching filter, newest first.
func (c *Client) List(ctx context.Context, filter port.ListFilter) ([]domain.AnalysisRecord, error) {
	q := url.Values{}
	if filter.FileID != "" {
		q.Set("file_id", filter.FileID)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}
	path := recordsPath
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var env listEnvelope
	if err := c.call(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListByFileID returns every record for fileID. The store answers 404 with an
// empty result listing when there are none, which is reported here as an
// empty list. Any other 404 is a store failure.
func (c *Client) ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error) {
	respBody, err := c.send(ctx, http.MethodGet, byFilePath+url.PathEscape(fileID), nil)
	if err != nil {
		var upErr *domain.UpstreamError
		if errors.As(err, &upErr) && upErr.StatusCode == http.StatusNotFound && isFileListing(upErr.Body) {
			return []domain.AnalysisRecord{}, nil
		}
		return nil, err
	}

	var env byFileEnvelope
	if err := decode(respBody, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// isFileListing reports whether body is the store's per-file listing rather
// than a route miss.
func isFileListing(body string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return false
	}
	for _, key := range []string{"file_id", "total_results", "results"} {
		if _, ok := fields[key]; !ok {
			return false
		}
	}
	return true
}

// Update applies patch to the record with the given id.
func (c *Client) Update(ctx context.Context, id string, patch domain.AnalysisRecordPatch) (*domain.AnalysisRecord, error) {
	var env recordEnvelope
	if err := c.call(ctx, http.MethodPut, recordsPath+"/"+url.PathEscape(id), patch, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, domain.ErrNotFound
	}
	return env.Data, nil
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, recordsPath+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	respBody, err := c.send(ctx, method, path, in)
	if err != nil {
		var upErr *domain.UpstreamError
		if errors.As(err, &upErr) && upErr.StatusCode == http.StatusNotFound {
			return domain.ErrNotFound
		}
		return err
	}
	if out == nil {
		return nil
	}
	return decode(respBody, out)
}

func (c *Client) send(ctx context.Context, method, path string, in interface{}) ([]byte, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	client.Decorate(req, c.apiKey)

	return client.Do(c.http, req, serviceName, domain.ErrStoreFailed)
}

func decode(respBody []byte, out interface{}) error {
	if err := json.Unmarshal(respBody, out); err != nil {
		return &domain.UpstreamError{
			Service: serviceName,
			Kind:    domain.ErrStoreFailed,
			Body:    client.Truncate(string(respBody), 500),
			Err:     fmt.Errorf("decoding response: %w", err),
		}
	}
	return nil
}
