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
	"net/http"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

// Invoker sends one described request. *transport.Client implements it.
type Invoker interface {
	Invoke(ctx context.Context, req *transport.Request, out any) (*http.Response, error)
}

// Client bundles all SIRIUS API services over one Invoker.
type Client struct {
	Actuator *ActuatorService
	Info     *InfoService
	Projects *ProjectsService
	Features *FeaturesService
	Jobs     *JobsService

	invoker Invoker
}

// NewClient creates a transport for baseURL and wires all services to it.
func NewClient(baseURL string, opts ...transport.Option) (*Client, error) {
	tc, err := transport.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromInvoker(tc), nil
}

// NewFromInvoker wires all services to an existing Invoker, so several
// clients can share one transport.
func NewFromInvoker(inv Invoker) *Client {
	return &Client{
		Actuator: &ActuatorService{inv: inv},
		Info:     &InfoService{inv: inv},
		Projects: &ProjectsService{inv: inv},
		Features: &FeaturesService{inv: inv},
		Jobs:     &JobsService{inv: inv},
		invoker:  inv,
	}
}

// Invoker returns the shared Invoker.
func (c *Client) Invoker() Invoker {
	return c.invoker
}

var (
	acceptJSON       = []string{transport.MediaTypeJSON}
	acceptCSV        = []string{transport.MediaTypeCSV}
	contentJSON      = []string{transport.MediaTypeJSON}
	contentMultipart = []string{transport.MediaTypeMultipart}
)

// pathParams validates required path values given as name/value pairs.
func pathParams(op string, kv ...string) (map[string]string, error) {
	params := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if err := transport.RequireString(op, kv[i], kv[i+1]); err != nil {
			return nil, err
		}
		params[kv[i]] = kv[i+1]
	}
	return params, nil
}

func fetch[T any](ctx context.Context, inv Invoker, req *transport.Request) (*T, *http.Response, error) {
	var out T
	resp, err := inv.Invoke(ctx, req, &out)
	if err != nil {
		return nil, resp, err
	}
	return &out, resp, nil
}

func fetchList[T any](ctx context.Context, inv Invoker, req *transport.Request) ([]T, *http.Response, error) {
	var out []T
	resp, err := inv.Invoke(ctx, req, &out)
	if err != nil {
		return nil, resp, err
	}
	return out, resp, nil
}

func send(ctx context.Context, inv Invoker, req *transport.Request) (*http.Response, error) {
	return inv.Invoke(ctx, req, nil)
}
