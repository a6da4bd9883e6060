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
	"net/url"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

// InfoOptions selects which parts of Info the server fills in.
type InfoOptions struct {
	ServerInfo *bool
	UpdateInfo *bool
}

// InfoService reports version information about the running service.
type InfoService struct {
	inv Invoker
}

func (s *InfoService) GetInfo(ctx context.Context, opts *InfoOptions) (*Info, *http.Response, error) {
	q := url.Values{}
	if opts != nil {
		transport.SetOptional(q, "serverInfo", opts.ServerInfo)
		transport.SetOptional(q, "updateInfo", opts.UpdateInfo)
	}
	return fetch[Info](ctx, s.inv, &transport.Request{
		Operation: "getInfo",
		Method:    http.MethodGet,
		Path:      "/api/info",
		Query:     q,
		Accept:    acceptJSON,
	})
}
