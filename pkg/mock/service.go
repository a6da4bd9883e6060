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

package mock

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirius-ms/sirius-go/pkg/server"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

const (
	// DefaultVersion is the SIRIUS version the mock reports.
	DefaultVersion = "6.1.0"

	// nightSkyAPIVersion is the REST API revision the mock implements.
	nightSkyAPIVersion = "3.1"
)

// Service serves the SIRIUS REST API from an in-memory Store.
type Service struct {
	store    *Store
	version  string
	shutdown func()
}

// Option configures a Service.
type Option func(*Service)

// WithVersion sets the SIRIUS version reported by /api/info.
func WithVersion(v string) Option {
	return func(s *Service) {
		if v != "" {
			s.version = v
		}
	}
}

// WithStore replaces the default empty store.
func WithStore(st *Store) Option {
	return func(s *Service) {
		s.store = st
	}
}

// WithShutdown sets the function called by POST /actuator/shutdown.
// Without it the endpoint only acknowledges the request.
func WithShutdown(fn func()) Option {
	return func(s *Service) {
		s.shutdown = fn
	}
}

// New returns a Service with an empty store rooted in the temp dir.
func New(opts ...Option) *Service {
	s := &Service{version: DefaultVersion}
	for _, o := range opts {
		o(s)
	}
	if s.store == nil {
		s.store = NewStore(filepath.Join(os.TempDir(), "sirius-mock"))
	}
	return s
}

// Store returns the state behind the service.
func (s *Service) Store() *Store {
	return s.store
}

// Handlers returns the REST routes keyed by method-qualified pattern,
// ready for server.WithHandler.
func (s *Service) Handlers() map[string]http.HandlerFunc {
	const (
		project  = "/api/projects/{projectId}"
		features = project + "/aligned-features"
		feature  = features + "/{alignedFeatureId}"
		jobs     = project + "/jobs"
		configs  = "/api/job-configs"
	)

	routes := make(map[string]http.HandlerFunc)
	handle := func(method, path string, h http.HandlerFunc) {
		routes[method+" "+path] = h
	}

	handle(http.MethodGet, "/actuator/health", s.getHealth)
	handle(http.MethodPost, "/actuator/shutdown", s.postShutdown)
	handle(http.MethodGet, "/api/info", s.getInfo)

	handle(http.MethodGet, "/api/projects", s.getProjects)
	handle(http.MethodGet, project, s.getProject)
	handle(http.MethodPost, project, s.createProject)
	handle(http.MethodPut, project, s.openProject)
	handle(http.MethodDelete, project, s.closeProject)
	handle(http.MethodPut, project+"/copy", s.copyProject)
	handle(http.MethodGet, project+"/fingerid-data", s.getCSVData(fingerIDHeader))
	handle(http.MethodGet, project+"/cf-data", s.getCSVData(classyFireHeader))
	handle(http.MethodGet, project+"/npc-data", s.getCSVData(npcHeader))
	handle(http.MethodPost, project+"/import/ms-data", s.importData(false))
	handle(http.MethodPost, project+"/import/ms-data-job", s.importData(true))
	handle(http.MethodPost, project+"/import/preprocessed-data", s.importData(false))
	handle(http.MethodPost, project+"/import/preprocessed-data-job", s.importData(true))

	handle(http.MethodGet, features, s.getFeatures)
	handle(http.MethodGet, features+"/page", s.getFeaturesPage)
	handle(http.MethodPost, features, s.addFeatures)
	handle(http.MethodPut, features+"/delete", s.deleteFeatures)
	handle(http.MethodGet, feature, s.getFeature)
	handle(http.MethodDelete, feature, s.deleteFeature)
	handle(http.MethodGet, feature+"/ms-data", s.getMsData)
	handle(http.MethodGet, feature+"/traces", s.featureResource(sirius.TraceSet{}))
	handle(http.MethodGet, feature+"/quantification", s.featureResource(sirius.QuantTable{}))
	handle(http.MethodGet, feature+"/quant-table-row", s.featureResource(sirius.QuantTable{}))

	// No tools run, so every result collection is empty.
	for _, results := range []string{"/formulas", "/structures", "/denovo-structures", "/spectral-library-matches"} {
		handle(http.MethodGet, feature+results, s.featureResource([]struct{}{}))
		handle(http.MethodGet, feature+results+"/page", s.featurePage)
	}
	handle(http.MethodGet, feature+"/formulas/{formulaId...}", s.missingResult("FormulaCandidate", "formulaId"))
	handle(http.MethodGet, feature+"/spectral-library-matches/summary", s.featureResource(sirius.SpectralLibraryMatchSummary{}))
	handle(http.MethodGet, feature+"/spectral-library-matches/{matchId}", s.missingResult("SpectralLibraryMatch", "matchId"))

	handle(http.MethodGet, jobs, s.getJobs)
	handle(http.MethodGet, jobs+"/page", s.getJobsPage)
	handle(http.MethodPost, jobs, s.startJob)
	handle(http.MethodPost, jobs+"/from-config", s.startJobFromConfig)
	handle(http.MethodGet, jobs+"/{jobId}", s.getJob)
	handle(http.MethodDelete, jobs+"/{jobId}", s.deleteJob)
	handle(http.MethodDelete, jobs, s.deleteJobs)
	handle(http.MethodGet, project+"/has-jobs", s.hasJobs)

	handle(http.MethodGet, configs, s.getJobConfigs)
	handle(http.MethodGet, "/api/job-config-names", s.getJobConfigNames)
	handle(http.MethodGet, configs+"/{name}", s.getJobConfig)
	handle(http.MethodPost, configs+"/{name}", s.saveJobConfig)
	handle(http.MethodDelete, configs+"/{name}", s.deleteJobConfig)
	handle(http.MethodGet, "/api/default-job-config", s.getDefaultJobConfig)

	return routes
}

// fail writes err in the Spring error layout.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, err error) {
	slog.Debug("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	server.WriteErrorFromErr(w, r, err, "Internal Server Error", nil)
}
