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
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c, &calls
}

func TestInvoke_GetDecodesJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects/p1/aligned-features/f2", r.URL.Path)
		assert.Equal(t, []string{"msData", "tags"}, r.URL.Query()["optFields"])
		assert.Equal(t, MediaTypeJSON, r.Header.Get("Accept"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))
		w.Header().Set("Content-Type", MediaTypeJSON)
		_, _ = w.Write([]byte(`{"id":"f2","name":"feature"}`))
	})

	q := url.Values{}
	AddEach(q, "optFields", []string{"msData", "tags"})

	var out item
	resp, err := c.Invoke(context.Background(), &Request{
		Operation:  "getAlignedFeature",
		Method:     http.MethodGet,
		Path:       "/api/projects/{projectId}/aligned-features/{alignedFeatureId}",
		PathParams: map[string]string{"projectId": "p1", "alignedFeatureId": "f2"},
		Query:      q,
		Accept:     []string{MediaTypeJSON},
	}, &out)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, item{ID: "f2", Name: "feature"}, out)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"f2","name":"feature"}`, string(raw))
}

func TestInvoke_BaseURLPathPrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sirius/api/projects", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/sirius/")
	require.NoError(t, err)
	_, err = c.Invoke(context.Background(), &Request{Operation: "getProjectSpaces", Path: "/api/projects"}, nil)
	require.NoError(t, err)
}

func TestInvoke_NoQueryWhenEmpty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Invoke(context.Background(), &Request{
		Operation: "getProjectSpaces",
		Path:      "/api/projects",
		Query:     url.Values{},
	}, nil)
	require.NoError(t, err)
}

func TestInvoke_JSONBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, MediaTypeJSON, r.Header.Get("Content-Type"))
		var ids []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		assert.Equal(t, []string{"a", "b"}, ids)
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Invoke(context.Background(), &Request{
		Operation:   "deleteAlignedFeatures",
		Method:      http.MethodPut,
		Path:        "/api/projects/p1/aligned-features/delete",
		Body:        []string{"a", "b"},
		ContentType: []string{MediaTypeJSON},
	}, nil)
	require.NoError(t, err)
}

func TestInvoke_RawStringOutput(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, MediaTypeCSV, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", MediaTypeCSV)
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	})

	var out string
	_, err := c.Invoke(context.Background(), &Request{
		Operation: "getFingerIdData",
		Path:      "/api/projects/p1/fingerid-data",
		Accept:    []string{MediaTypeCSV},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", out)
}

func TestInvoke_Multipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, MediaTypeMultipart, mediaType)

		mr := multipart.NewReader(r.Body, params["boundary"])
		var files []string
		var parameters map[string]any
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
			data, err := io.ReadAll(part)
			require.NoError(t, err)
			switch part.FormName() {
			case "inputFiles":
				files = append(files, part.FileName()+"="+string(data))
			case "parameters":
				assert.Equal(t, MediaTypeJSON, part.Header.Get("Content-Type"))
				require.NoError(t, json.Unmarshal(data, &parameters))
			default:
				t.Errorf("unexpected part %q", part.FormName())
			}
		}
		assert.Equal(t, []string{"a.mzML=AAA", "b.mzML=BBB"}, files)
		assert.Equal(t, "APEX_HEIGHT", parameters["alignLCMSRuns"])
		w.WriteHeader(http.StatusOK)
	})

	form := &Multipart{}
	form.AddFile("inputFiles", "a.mzML", strings.NewReader("AAA"))
	form.AddFile("inputFiles", "b.mzML", strings.NewReader("BBB"))
	form.AddJSON("parameters", map[string]string{"alignLCMSRuns": "APEX_HEIGHT"})
	form.AddJSON("skipped", nil)

	_, err := c.Invoke(context.Background(), &Request{
		Operation:   "importMsRunData",
		Method:      http.MethodPost,
		Path:        "/api/projects/p1/import/ms-data",
		Form:        form,
		ContentType: []string{MediaTypeMultipart},
	}, nil)
	require.NoError(t, err)
	assert.Len(t, form.JSON, 1)
}

func TestInvoke_ErrorResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", MediaTypeJSON)
		w.Header().Set("X-Trace", "t-1")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"error":"Not Found","message":"no project 'p9'","path":"/api/projects/p9"}`))
	})

	var out item
	resp, err := c.Invoke(context.Background(), &Request{
		Operation: "getProjectSpace",
		Path:      "/api/projects/p9",
	}, &out)
	require.Error(t, err)
	require.NotNil(t, resp)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.False(t, apiErr.Local())
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.Reason)
	assert.Equal(t, "no project 'p9'", apiErr.Message)
	assert.Equal(t, "t-1", apiErr.Header.Get("X-Trace"))
	assert.Contains(t, string(apiErr.Body), "no project")
	assert.Equal(t, apperrors.ErrCodeNotFound, apiErr.Code())
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "getProjectSpace: 404 Not Found: no project 'p9'", err.Error())
}

func TestInvoke_MissingPathParamIsLocal(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resp, err := c.Invoke(context.Background(), &Request{
		Operation:  "getJob",
		Path:       "/api/projects/{projectId}/jobs/{jobId}",
		PathParams: map[string]string{"projectId": "p1"},
	}, nil)
	assert.Nil(t, resp)
	require.ErrorIs(t, err, ErrMissingParameter)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))

	apiErr, _ := AsAPIError(err)
	assert.Equal(t, "jobId", apiErr.Parameter)
}

func TestInvoke_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base)
	require.NoError(t, err)

	_, err = c.Invoke(context.Background(), &Request{Operation: "health", Path: "/actuator/health"}, nil)
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Cause)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apiErr.Code())
}

func TestInvoke_DecodeFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	var out item
	_, err := c.Invoke(context.Background(), &Request{Operation: "getJob", Path: "/x"}, &out)
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Cause)
}

func TestInvoke_CanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Invoke(ctx, &Request{Operation: "health", Path: "/actuator/health"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvoke_HeadersAndRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "fixed-id", r.Header.Get(HeaderRequestID))
		assert.Equal(t, "custom", r.Header.Get("X-Extra"))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithBearerToken("tok"), WithRateLimit(1000, 10))
	require.NoError(t, err)

	h := http.Header{}
	h.Set(HeaderRequestID, "fixed-id")
	h.Set("X-Extra", "custom")

	var out item
	resp, err := c.Invoke(context.Background(), &Request{Operation: "shutdown", Method: http.MethodPost, Path: "/actuator/shutdown", Header: h}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, item{}, out)
}

func TestFetchAndDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("kind: JobSubmission\n"))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)

	data, err := c.Fetch(context.Background(), srv.URL+"/job.yaml")
	require.NoError(t, err)
	assert.Equal(t, "kind: JobSubmission\n", string(data))

	_, err = c.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = c.Fetch(context.Background(), "")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, c.Download(context.Background(), srv.URL+"/job.yaml", path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kind: JobSubmission\n", string(content))
}

func TestInvoke_NilRequest(t *testing.T) {
	c, err := New("http://localhost")
	require.NoError(t, err)
	_, err = c.Invoke(context.Background(), nil, nil)
	require.Error(t, err)
}
