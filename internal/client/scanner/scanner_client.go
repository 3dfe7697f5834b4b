package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"docreview/internal/client"
	"docreview/internal/config"
	"docreview/internal/domain"
)

const (
	serviceName    = "scanner"
	scanPath       = "/scan_document"
	defaultTimeout = 60 * time.Second
)

// Client implements port.Scanner against the scanner service's multipart API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a scanner client from collaborator config.
func NewClient(cfg *config.CollaboratorConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    client.New(cfg.Timeout(defaultTimeout)),
	}
}

// Scan uploads the document and returns its extracted text. A successful call
// that yields no text returns domain.ErrEmptyExtraction.
func (c *Client) Scan(ctx context.Context, doc domain.DocumentPayload) (*domain.ScanResult, error) {
	body, contentType, err := encodeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+scanPath, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	client.Decorate(req, c.apiKey)

	respBody, err := client.Do(c.http, req, serviceName, domain.ErrScanFailed)
	if err != nil {
		return nil, err
	}

	var result domain.ScanResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &domain.UpstreamError{
			Service: serviceName,
			Kind:    domain.ErrScanFailed,
			Body:    client.Truncate(string(respBody), 500),
			Err:     fmt.Errorf("decoding response: %w", err),
		}
	}
	if strings.TrimSpace(result.Text) == "" {
		return nil, domain.ErrEmptyExtraction
	}
	return &result, nil
}

func encodeDocument(doc domain.DocumentPayload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(doc.Filename)))
	mediaType := doc.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	h.Set("Content-Type", mediaType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(doc.Content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
