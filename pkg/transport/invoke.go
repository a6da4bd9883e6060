// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-Id"

// Invoke sends req and decodes a successful response body into out.
// out may be nil, *string or *[]byte (raw body), or any JSON target.
// The returned response, when non-nil, has its body restored for reading.
func (c *Client) Invoke(ctx context.Context, req *Request, out any) (*http.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &APIError{Operation: req.Operation, Cause: err}
		}
	}

	logger := c.log().With(
		"operation", req.Operation,
		"method", httpReq.Method,
		"path", httpReq.URL.Path,
		"requestId", httpReq.Header.Get(HeaderRequestID),
	)
	logger.Debug("sending request")

	start := time.Now()
	clientRequestsInFlight.Inc()
	resp, err := c.httpClient.Do(httpReq)
	clientRequestsInFlight.Dec()
	duration := time.Since(start)
	clientRequestDuration.WithLabelValues(req.Operation).Observe(duration.Seconds())

	if err != nil {
		clientRequestsTotal.WithLabelValues(req.Operation, httpReq.Method, "error").Inc()
		logger.Debug("request failed", "error", err, "duration", duration)
		return nil, &APIError{Operation: req.Operation, Cause: err}
	}

	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	clientRequestsTotal.WithLabelValues(req.Operation, httpReq.Method, strconv.Itoa(resp.StatusCode)).Inc()
	logger.Debug("received response", "status", resp.StatusCode, "bytes", len(body), "duration", duration)

	if readErr != nil {
		return resp, &APIError{
			Operation:  req.Operation,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Header:     resp.Header.Clone(),
			Cause:      fmt.Errorf("failed to read response body: %w", readErr),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, responseError(req.Operation, resp, body)
	}

	if err := decode(body, out); err != nil {
		return resp, &APIError{
			Operation:  req.Operation,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Header:     resp.Header.Clone(),
			Body:       body,
			Cause:      err,
		}
	}
	return resp, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	path, missing := ExpandPath(req.Path, req.PathParams)
	if missing != "" {
		return nil, MissingParameter(req.Operation, missing)
	}

	u := *c.baseURL
	target, err := u.Parse(strings.TrimRight(u.EscapedPath(), "/") + path)
	if err != nil {
		return nil, &APIError{Operation: req.Operation, Cause: fmt.Errorf("invalid request path %q: %w", path, err)}
	}
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		buf, ct, err := req.Form.encode()
		if err != nil {
			return nil, &APIError{Operation: req.Operation, Cause: err}
		}
		body, contentType = buf, ct
	case req.Body != nil:
		contentType = SelectHeaderContentType(req.ContentType)
		body, err = encodeBody(req.Body, contentType)
		if err != nil {
			return nil, &APIError{Operation: req.Operation, Cause: err}
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, &APIError{Operation: req.Operation, Cause: fmt.Errorf("failed to create request: %w", err)}
	}

	for k, vs := range c.defaultHeader {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	if accept := SelectHeaderAccept(req.Accept); accept != "" {
		httpReq.Header.Set("Accept", accept)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, vs := range req.Header {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	if httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	}
	return httpReq, nil
}

func decode(body []byte, out any) error {
	switch v := out.(type) {
	case nil:
		return nil
	case *string:
		*v = string(body)
		return nil
	case *[]byte:
		*v = body
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Fetch performs a plain GET against an absolute URL and returns the body.
// It shares the tuned client, user agent and limiter with Invoke.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &APIError{Operation: "fetch", Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Operation: "fetch", Cause: fmt.Errorf("http request failed for url %s: %w", rawURL, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseError("fetch", resp, data)
	}
	return data, nil
}

// Download fetches rawURL and writes the body to filePath.
func (c *Client) Download(ctx context.Context, rawURL, filePath string) error {
	data, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("failed to read from url %s: %w", rawURL, err)
	}
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return nil
}
