package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
	defaultUserAgent    = "chefcommunity-go/1.0.0"
)

// doRequest sends a JSON request and decodes a JSON response into result.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result interface{}) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
		contentType = contentTypeJSON
	}
	return c.send(ctx, method, path, token, contentType, bodyReader, result)
}

// doMultipart sends a multipart/form-data POST built by write.
func (c *Client) doMultipart(ctx context.Context, path, token string, write func(*multipart.Writer) error, result interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := write(mw); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	return c.send(ctx, http.MethodPost, path, token, mw.FormDataContentType(), &buf, result)
}

func (c *Client) send(ctx context.Context, method, path, token, contentType string, body io.Reader, result interface{}) error {
	reqURL := strings.TrimRight(c.baseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(headerUserAgent, c.userAgent)
	req.Header.Set(headerRequestID, requestID)
	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, token, nil, result)
}

func (c *Client) post(ctx context.Context, path, token string, body, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, token, body, result)
}

func (c *Client) put(ctx context.Context, path, token string, body, result interface{}) error {
	return c.doRequest(ctx, http.MethodPut, path, token, body, result)
}

func (c *Client) delete(ctx context.Context, path, token string, result interface{}) error {
	return c.doRequest(ctx, http.MethodDelete, path, token, nil, result)
}
