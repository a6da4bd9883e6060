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

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVersionNegotiation(t *testing.T) {
	var seen string
	s := New(WithHandler(map[string]http.HandlerFunc{
		"GET /api/info": func(w http.ResponseWriter, r *http.Request) {
			seen = APIVersionFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		},
	}))
	h := s.Handler()

	for _, accept := range []string{
		"",
		"application/json",
		"application/vnd.sirius-ms.v1+json",
		"application/json, application/vnd.sirius-ms.v1+json",
		"application/vnd.sirius-ms.v7+json",
		"application/vnd.sirius-ms.+json",
	} {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("Accept=%q: status = %d", accept, rec.Code)
		}
		if got := rec.Header().Get(headerAPIVersion); got != DefaultAPIVersion {
			t.Errorf("Accept=%q: %s = %q, want %q", accept, headerAPIVersion, got, DefaultAPIVersion)
		}
		if seen != DefaultAPIVersion {
			t.Errorf("Accept=%q: handler saw version %q", accept, seen)
		}
	}
}

func TestAPIVersionFromContext_Unset(t *testing.T) {
	if got := APIVersionFromContext(context.Background()); got != DefaultAPIVersion {
		t.Errorf("APIVersionFromContext() = %q, want %q", got, DefaultAPIVersion)
	}
	if isValidAPIVersion("v2") || !isValidAPIVersion("v1") {
		t.Error("only v1 is a supported API version")
	}
}
