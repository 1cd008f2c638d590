// =============================================================================
// Quote Analyzer - Extraction Service Client
// =============================================================================
//
// Client for the external PDF-to-CSV extraction service. The service is a
// black box behind a webhook: it receives the uploaded quote PDFs as
// base64 blobs and answers with a base64 CSV of the flat line-item table.
//
// PROTOCOL:
//   POST {url}
//     {"files": [{"name": "quote.pdf", "content": "<base64>"}, ...]}
//   200 OK
//     {"csv": "<base64>"}
//
// One blocking round trip with a generous timeout; any non-success
// response or timeout is reported as an error and nothing is ingested.
// Retries and backoff are the caller's responsibility.
//
// =============================================================================

package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// File is one PDF to extract: its name and raw content.
type File struct {
	Name    string
	Content []byte
}

// Client talks to the extraction webhook.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the given webhook URL. The timeout
// bounds the whole round trip; extraction of several PDFs can take
// minutes, so configure it generously.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// request/response wire shapes.
type extractRequest struct {
	Files []filePayload `json:"files"`
}

type filePayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type extractResponse struct {
	CSV string `json:"csv"`
}

// Extract sends the PDF files to the service and returns the raw CSV
// bytes of the extracted flat table.
func (c *Client) Extract(ctx context.Context, files []File) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to extract")
	}

	payload := extractRequest{
		Files: make([]filePayload, 0, len(files)),
	}
	for _, f := range files {
		payload.Files = append(payload.Files, filePayload{
			Name:    f.Name,
			Content: base64.StdEncoding.EncodeToString(f.Content),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var result extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	csvBytes, err := base64.StdEncoding.DecodeString(result.CSV)
	if err != nil {
		return nil, fmt.Errorf("failed to decode csv payload: %w", err)
	}

	return csvBytes, nil
}
