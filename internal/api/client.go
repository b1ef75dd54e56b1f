// Package api is the HTTP JSON binding to the external commerce backend. All
// business state lives behind this client; packages above it only mirror what
// the backend returns.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

// Error is a backend-reported business failure: either a non-2xx response or a
// 2xx envelope whose status is not "success". The message is the one the
// backend wants shown to the user.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: backend error (status %d): %s", e.StatusCode, e.Message)
}

// envelope is the response frame every backend endpoint speaks.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client for the given base URL. token may be empty for the
// unauthenticated endpoints (tracking, categories, adverts).
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	rd, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, rd, "application/json", out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	rd, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, rd, "application/json", out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out)
}

// PostMultipart submits form fields plus an optional file part, used by
// testimonial creation which may carry a photo.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("api: write form field %s: %w", k, err)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("api: create form file: %w", err)
		}
		if _, err := io.Copy(fw, file); err != nil {
			return fmt.Errorf("api: copy form file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("api: close multipart writer: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), out)
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("api: encode request body: %w", err)
	}
	return bytes.NewReader(b), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if id, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-Id", id.String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("api: decode response from %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 || env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		log.Warn().Int("status_code", resp.StatusCode).Str("path", path).Str("message", msg).Msg("api: backend reported failure")
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("api: decode data from %s %s: %w", method, path, err)
		}
	}
	return nil
}

// UserMessage extracts a message fit for display: the backend message when the
// backend answered, a generic one for transport failures.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
