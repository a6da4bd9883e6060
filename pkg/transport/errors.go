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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
)

// ErrMissingParameter is matched by every local validation failure.
var ErrMissingParameter = errors.New("missing required parameter")

// APIError is returned for every failed call: local validation, transport
// failure, non-2xx response, or an undecodable body.
type APIError struct {
	// Operation is the API operation id, e.g. "getAlignedFeature".
	Operation string
	// StatusCode is the HTTP status; 400 for local validation, 0 when no response was received.
	StatusCode int
	Reason     string
	Header     http.Header
	Body       []byte
	// Message is the server supplied message parsed from the error body, if any.
	Message string
	// Parameter names the missing required parameter for local failures.
	Parameter string
	Cause     error
}

func (e *APIError) Error() string {
	switch {
	case e.Local():
		return fmt.Sprintf("missing the required parameter %q when calling %s", e.Parameter, e.Operation)
	case e.StatusCode == 0:
		return fmt.Sprintf("%s: request failed: %v", e.Operation, e.Cause)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d %s", e.Operation, e.StatusCode, e.Reason)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	if e.Local() {
		return ErrMissingParameter
	}
	return e.Cause
}

// Local reports whether the error was raised before any network call.
func (e *APIError) Local() bool {
	return e.Parameter != ""
}

// Code classifies the error for structured handling.
func (e *APIError) Code() apperrors.ErrorCode {
	if e.StatusCode != 0 {
		return apperrors.CodeFromStatus(e.StatusCode)
	}
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return apperrors.ErrCodeTimeout
	}
	return apperrors.ErrCodeUnavailable
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// MissingParameter builds the local validation error for a required
// parameter and counts it.
func MissingParameter(op, name string) *APIError {
	validationFailures.WithLabelValues(op).Inc()
	return &APIError{
		Operation:  op,
		StatusCode: http.StatusBadRequest,
		Reason:     http.StatusText(http.StatusBadRequest),
		Parameter:  name,
	}
}

func responseError(op string, resp *http.Response, body []byte) *APIError {
	return &APIError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Header:     resp.Header.Clone(),
		Body:       body,
		Message:    serverMessage(body),
	}
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// serverMessage extracts the message of a Spring error or problem-detail body.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Message != "":
		return payload.Message
	case payload.Detail != "":
		return payload.Detail
	default:
		return payload.Error
	}
}
