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
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// Request describes one API call.
type Request struct {
	// Operation is the API operation id used in errors, logs and metrics.
	Operation string
	Method    string
	// Path is a template such as /api/projects/{projectId}.
	Path       string
	PathParams map[string]string
	Query      url.Values
	Header     http.Header
	// Body is JSON encoded unless it is a string or []byte.
	Body any
	// Form takes precedence over Body.
	Form        *Multipart
	Accept      []string
	ContentType []string
}

// FormFile is one uploaded file part.
type FormFile struct {
	Field    string
	FileName string
	Content  io.Reader
}

// FormJSON is one JSON encoded form part.
type FormJSON struct {
	Field string
	Value any
}

// Multipart holds ordered form parts. Files are written before JSON parts.
type Multipart struct {
	Files []FormFile
	JSON  []FormJSON
}

// AddFile appends a file part.
func (m *Multipart) AddFile(field, fileName string, content io.Reader) {
	m.Files = append(m.Files, FormFile{Field: field, FileName: fileName, Content: content})
}

// AddJSON appends a JSON part. Nil values are skipped.
func (m *Multipart) AddJSON(field string, value any) {
	if isNil(value) {
		return
	}
	m.JSON = append(m.JSON, FormJSON{Field: field, Value: value})
}

func (m *Multipart) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range m.Files {
		part, err := w.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %q: %w", f.FileName, err)
		}
		if f.Content != nil {
			if _, err := io.Copy(part, f.Content); err != nil {
				return nil, "", fmt.Errorf("failed to write form file %q: %w", f.FileName, err)
			}
		}
	}

	for _, j := range m.JSON {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, j.Field))
		h.Set("Content-Type", MediaTypeJSON)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form part %q: %w", j.Field, err)
		}
		if err := json.NewEncoder(part).Encode(j.Value); err != nil {
			return nil, "", fmt.Errorf("failed to encode form part %q: %w", j.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// ExpandPath substitutes {name} placeholders with path-escaped values.
// It returns the name of the first placeholder without a non-empty value.
func ExpandPath(template string, params map[string]string) (string, string) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), ""
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String(), ""
		}
		name := rest[open+1 : open+end]
		value, ok := params[name]
		if !ok || value == "" {
			return "", name
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		rest = rest[open+end+1:]
	}
}

func encodeBody(body any, contentType string) (io.Reader, error) {
	switch v := body.(type) {
	case []byte:
		return bytes.NewReader(v), nil
	case string:
		if !isJSONMime(contentType) {
			return strings.NewReader(v), nil
		}
	case io.Reader:
		return v, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(payload), nil
}
