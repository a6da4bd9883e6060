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

package sirius

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

// recordingInvoker records requests and answers with canned JSON bodies.
type recordingInvoker struct {
	mu     sync.Mutex
	calls  []*transport.Request
	bodies []string
}

func (r *recordingInvoker) Invoke(_ context.Context, req *transport.Request, out any) (*http.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, req)

	body := ""
	if len(r.bodies) > 0 {
		body = r.bodies[0]
		if len(r.bodies) > 1 {
			r.bodies = r.bodies[1:]
		}
	}
	if out != nil && body != "" {
		if s, ok := out.(*string); ok {
			*s = body
		} else if err := json.Unmarshal([]byte(body), out); err != nil {
			return nil, err
		}
	}
	return &http.Response{StatusCode: http.StatusOK, Header: http.Header{}}, nil
}

func (r *recordingInvoker) last(t *testing.T) *transport.Request {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.calls, "expected at least one call")
	return r.calls[len(r.calls)-1]
}

func (r *recordingInvoker) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newRecordingClient(bodies ...string) (*Client, *recordingInvoker) {
	inv := &recordingInvoker{bodies: bodies}
	return NewFromInvoker(inv), inv
}

// newServerClient returns a Client backed by an httptest server running h.
func newServerClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }
