// Package uploader implements the image-upload collaborator: it posts a
// file to a remote endpoint as multipart form data and returns the hosted
// URL from the response.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// imageResponse mirrors the upload endpoint's response body.
type imageResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Client uploads images to a configured endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// New constructs an uploader for the given endpoint. apiKey, when
// non-empty, is sent as the "key" query parameter. httpClient may be nil,
// in which case http.DefaultClient is used; timeout behavior is whatever
// the injected client carries.
func New(endpoint, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
}

// Upload sends the file content as the "image" multipart field and returns
// the hosted URL. Any transport or non-2xx response failure propagates as
// an error; no retries are performed.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("image", name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("copy image data: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	endpoint := c.endpoint
	if c.apiKey != "" {
		endpoint = fmt.Sprintf("%s?key=%s", endpoint, url.QueryEscape(c.apiKey))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload image: unexpected status %s", resp.Status)
	}

	var ir imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if ir.Data.URL == "" {
		return "", fmt.Errorf("decode upload response: missing url")
	}
	return ir.Data.URL, nil
}
