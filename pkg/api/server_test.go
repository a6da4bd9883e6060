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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// Serve blocks until shutdown, so these tests exercise the server it
// builds through newServer instead.

func TestConstants(t *testing.T) {
	if name != "sirius-mock" {
		t.Errorf("name = %q, want %q", name, "sirius-mock")
	}

	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}

	if version == "" {
		t.Error("version should not be empty")
	}
	if commit == "" {
		t.Error("commit should not be empty")
	}
	if date == "" {
		t.Error("date should not be empty")
	}
}

func TestProjectDir(t *testing.T) {
	t.Setenv(EnvProjectDir, "")
	if got := projectDir(); !strings.HasSuffix(got, name) {
		t.Errorf("projectDir() = %q, want suffix %q", got, name)
	}

	dir := t.TempDir()
	t.Setenv(EnvProjectDir, dir)
	if got := projectDir(); got != dir {
		t.Errorf("projectDir() = %q, want %q", got, dir)
	}
}

func TestInfoEndpoint(t *testing.T) {
	t.Setenv(EnvSiriusVersion, "6.2.1")
	t.Setenv(EnvProjectDir, t.TempDir())

	ts := httptest.NewServer(newServer(func() {}).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/info")
	if err != nil {
		t.Fatalf("GET /api/info: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var info struct {
		SiriusVersion string `json:"siriusVersion"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.SiriusVersion != "6.2.1" {
		t.Errorf("siriusVersion = %q, want %q", info.SiriusVersion, "6.2.1")
	}
}

func TestProjectLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvProjectDir, dir)

	ts := httptest.NewServer(newServer(func() {}).Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/projects/demo", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/projects/demo: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var p struct {
		Location string `json:"location"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := filepath.Join(dir, "demo.sirius"); p.Location != want {
		t.Errorf("location = %q, want %q", p.Location, want)
	}
}

func TestShutdownEndpoint(t *testing.T) {
	t.Setenv(EnvProjectDir, t.TempDir())

	called := make(chan struct{})
	ts := httptest.NewServer(newServer(func() { close(called) }).Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/actuator/shutdown", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /actuator/shutdown: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	<-called
}
