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
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirius-ms/sirius-go/pkg/server"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"k8s.io/utils/ptr"
)

const (
	fingerIDHeader   = "alignedFeatureId\tcompoundId\tformulaId\tmolecularFormula\tadduct"
	classyFireHeader = "alignedFeatureId\tcompoundId\tformulaId\tmolecularFormula\tadduct\tClassyFire#most specific class"
	npcHeader        = "alignedFeatureId\tcompoundId\tformulaId\tmolecularFormula\tadduct\tNPC#pathway\tNPC#superclass\tNPC#class"

	maxMultipartMemory = 32 << 20
)

// optFields reads optFields as repeated or comma separated values.
func optFields(q url.Values) []string {
	var out []string
	for _, v := range q["optFields"] {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}

func boolParam(q url.Values, name string, def bool) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, badRequest(fmt.Sprintf("Parameter '%s' must be a boolean.", name))
	}
	return b, nil
}

func optionalString(q url.Values, name string) *string {
	if !q.Has(name) {
		return nil
	}
	return ptr.To(q.Get(name))
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest(fmt.Sprintf("Required request body is missing or malformed: %v", err))
	}
	return nil
}

func (s *Service) getHealth(w http.ResponseWriter, _ *http.Request) {
	server.RespondJSON(w, http.StatusOK, sirius.Health{Status: "UP", Groups: []string{"liveness", "readiness"}})
}

func (s *Service) postShutdown(w http.ResponseWriter, _ *http.Request) {
	server.RespondJSON(w, http.StatusOK, map[string]string{"message": "Shutting down, bye..."})
	if s.shutdown != nil {
		slog.Info("shutdown requested through actuator")
		go s.shutdown()
	}
}

func (s *Service) getInfo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	serverInfo, err := boolParam(q, "serverInfo", true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	updateInfo, err := boolParam(q, "updateInfo", true)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	info := sirius.Info{
		NightSkyAPIVersion: ptr.To(nightSkyAPIVersion),
		SiriusVersion:      ptr.To(s.version),
	}
	if serverInfo {
		info.AvailableILPSolvers = []string{"CLP"}
		info.SupportedILPSolvers = map[string]string{"CLP": "1.17.5", "GUROBI": "9.1.x", "CPLEX": "22.1.x"}
	}
	if updateInfo {
		info.LatestSiriusVersion = ptr.To(s.version)
	}
	server.RespondJSON(w, http.StatusOK, info)
}

func (s *Service) getProjects(w http.ResponseWriter, _ *http.Request) {
	server.RespondJSON(w, http.StatusOK, s.store.ListProjects())
}

func (s *Service) getProject(w http.ResponseWriter, r *http.Request) {
	info, err := s.store.GetProject(r.PathValue("projectId"), optFields(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, info)
}

func (s *Service) createProject(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	info, err := s.store.CreateProject(r.PathValue("projectId"), optionalString(q, "pathToProject"), optFields(q))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	slog.Debug("project created", "projectId", info.ProjectID, "location", info.Location)
	server.RespondJSON(w, http.StatusOK, info)
}

func (s *Service) openProject(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	info, err := s.store.OpenProject(r.PathValue("projectId"), optionalString(q, "pathToProject"), optFields(q))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, info)
}

func (s *Service) closeProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.CloseProject(r.PathValue("projectId")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Service) copyProject(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := q.Get("pathToCopiedProject")
	if target == "" {
		s.fail(w, r, badRequest("Required parameter 'pathToCopiedProject' is not present."))
		return
	}
	info, err := s.store.CopyProject(r.PathValue("projectId"), target, optionalString(q, "copyProjectId"), optFields(q))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, info)
}

// getCSVData serves a summary table. Without computed results the table
// only carries its header row.
func (s *Service) getCSVData(header string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		charge, err := strconv.Atoi(r.URL.Query().Get("charge"))
		if err != nil || charge == 0 {
			s.fail(w, r, badRequest("Required parameter 'charge' must be a non-zero integer."))
			return
		}
		if _, err := s.store.GetProject(r.PathValue("projectId"), nil); err != nil {
			s.fail(w, r, err)
			return
		}
		server.RespondText(w, http.StatusOK, "application/csv", header+"\n")
	}
}

// importData accepts multipart uploads in the "inputFiles" field. Each
// uploaded file becomes one feature.
func (s *Service) importData(asJob bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			s.fail(w, r, badRequest(fmt.Sprintf("Failed to parse multipart request: %v", err)))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		files := r.MultipartForm.File["inputFiles"]
		if len(files) == 0 {
			s.fail(w, r, badRequest("Required part 'inputFiles' is not present."))
			return
		}
		if params := r.MultipartForm.Value["parameters"]; len(params) > 0 {
			var p sirius.LcmsSubmissionParameters
			if err := json.Unmarshal([]byte(params[0]), &p); err != nil {
				s.fail(w, r, badRequest(fmt.Sprintf("Invalid part 'parameters': %v", err)))
				return
			}
		}
		allowMs1Only, err := boolParam(r.URL.Query(), "allowMs1OnlyData", true)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		imports := make([]sirius.FeatureImport, 0, len(files))
		for _, fh := range files {
			fi, err := readUpload(fh)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			imports = append(imports, fi)
		}

		result, job, err := s.store.ImportFeatures(r.PathValue("projectId"), imports, allowMs1Only)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		slog.Debug("data imported", "projectId", r.PathValue("projectId"), "files", len(files), "features", len(result.AffectedAlignedFeatureIDs))
		if asJob {
			server.RespondJSON(w, http.StatusOK, jobView(job, optFields(r.URL.Query())))
			return
		}
		server.RespondJSON(w, http.StatusOK, result)
	}
}

func readUpload(fh *multipart.FileHeader) (sirius.FeatureImport, error) {
	f, err := fh.Open()
	if err != nil {
		return sirius.FeatureImport{}, badRequest(fmt.Sprintf("Failed to read upload '%s': %v", fh.Filename, err))
	}
	defer f.Close()
	return parsePeakList(fh.Filename, f)
}

func (s *Service) getFeatures(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListFeatures(r.PathValue("projectId"), optFields(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, out)
}

func (s *Service) getFeaturesPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := parsePageRequest(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.store.ListFeatures(r.PathValue("projectId"), optFields(q))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sortFeatures(out, page.sort)
	server.RespondJSON(w, http.StatusOK, paginate(out, page))
}

func (s *Service) addFeatures(w http.ResponseWriter, r *http.Request) {
	var in []sirius.FeatureImport
	if err := decodeBody(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	for _, f := range in {
		if err := validate.Struct(featureRules{IonMass: f.IonMass, Charge: f.Charge}); err != nil {
			s.fail(w, r, badRequest(validationMessage(err)))
			return
		}
	}
	if p := r.URL.Query().Get("profile"); p != "" {
		if _, err := sirius.ParseInstrumentProfile(p); err != nil {
			s.fail(w, r, badRequest(err.Error()))
			return
		}
	}
	added, err := s.store.AddFeatures(r.PathValue("projectId"), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	fields := optFields(r.URL.Query())
	out := make([]sirius.AlignedFeature, 0, len(added))
	for _, f := range added {
		out = append(out, featureView(f, fields))
	}
	server.RespondJSON(w, http.StatusOK, out)
}

func (s *Service) deleteFeatures(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := decodeBody(r, &ids); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.DeleteFeatures(r.PathValue("projectId"), ids...); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Service) getFeature(w http.ResponseWriter, r *http.Request) {
	f, err := s.store.GetFeature(r.PathValue("projectId"), r.PathValue("alignedFeatureId"), optFields(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, f)
}

func (s *Service) deleteFeature(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteFeatures(r.PathValue("projectId"), r.PathValue("alignedFeatureId")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Service) getMsData(w http.ResponseWriter, r *http.Request) {
	ms, err := s.store.GetMsData(r.PathValue("projectId"), r.PathValue("alignedFeatureId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, ms)
}

// featureResource serves a fixed body once the feature is known to exist.
func (s *Service) featureResource(body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.store.GetFeature(r.PathValue("projectId"), r.PathValue("alignedFeatureId"), nil); err != nil {
			s.fail(w, r, err)
			return
		}
		server.RespondJSON(w, http.StatusOK, body)
	}
}

// featurePage serves an empty page of results for an existing feature.
func (s *Service) featurePage(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.store.GetFeature(r.PathValue("projectId"), r.PathValue("alignedFeatureId"), nil); err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, paginate([]struct{}{}, page))
}

// missingResult answers lookups of single results, which never exist.
func (s *Service) missingResult(kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.store.GetFeature(r.PathValue("projectId"), r.PathValue("alignedFeatureId"), nil); err != nil {
			s.fail(w, r, err)
			return
		}
		id, _, _ := strings.Cut(r.PathValue(param), "/")
		s.fail(w, r, notFound(kind, id))
	}
}

func (s *Service) getJobs(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListJobs(r.PathValue("projectId"), optFields(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, out)
}

func (s *Service) getJobsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := parsePageRequest(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.store.ListJobs(r.PathValue("projectId"), optFields(q))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, paginate(out, page))
}

func (s *Service) startJob(w http.ResponseWriter, r *http.Request) {
	var sub sirius.JobSubmission
	if err := decodeBody(r, &sub); err != nil {
		s.fail(w, r, err)
		return
	}
	job, err := s.store.StartJob(r.PathValue("projectId"), sub, optFields(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	slog.Debug("job started", "projectId", r.PathValue("projectId"), "jobId", job.ID)
	server.RespondJSON(w, http.StatusOK, job)
}

func (s *Service) startJobFromConfig(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("jobConfigName")
	if name == "" {
		s.fail(w, r, badRequest("Required parameter 'jobConfigName' is not present."))
		return
	}
	var ids []string
	if err := decodeBody(r, &ids); err != nil {
		s.fail(w, r, err)
		return
	}
	var recompute *bool
	if q.Has("recompute") {
		b, err := boolParam(q, "recompute", false)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		recompute = &b
	}
	job, err := s.store.StartJobFromConfig(r.PathValue("projectId"), name, ids, recompute, optFields(q))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, job)
}

func (s *Service) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.PathValue("projectId"), r.PathValue("jobId"), optFields(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, job)
}

func (s *Service) deleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteJob(r.PathValue("projectId"), r.PathValue("jobId")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Service) deleteJobs(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteJobs(r.PathValue("projectId")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Service) hasJobs(w http.ResponseWriter, r *http.Request) {
	includeFinished, err := boolParam(r.URL.Query(), "includeFinished", false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	has, err := s.store.HasJobs(r.PathValue("projectId"), includeFinished)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, has)
}

func (s *Service) getJobConfigs(w http.ResponseWriter, _ *http.Request) {
	server.RespondJSON(w, http.StatusOK, s.store.ListJobConfigs())
}

func (s *Service) getJobConfigNames(w http.ResponseWriter, _ *http.Request) {
	server.RespondJSON(w, http.StatusOK, s.store.JobConfigNames())
}

func (s *Service) getJobConfig(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetJobConfig(r.PathValue("name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, c)
}

func (s *Service) saveJobConfig(w http.ResponseWriter, r *http.Request) {
	override, err := boolParam(r.URL.Query(), "overrideExisting", false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var sub sirius.JobSubmission
	if err := decodeBody(r, &sub); err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.store.SaveJobConfig(r.PathValue("name"), sub, override)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, c)
}

func (s *Service) deleteJobConfig(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteJobConfig(r.PathValue("name")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Service) getDefaultJobConfig(w http.ResponseWriter, r *http.Request) {
	includeConfigMap, err := boolParam(r.URL.Query(), "includeConfigMap", false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sub := defaultSubmission()
	if includeConfigMap {
		sub.ConfigMap = map[string]string{
			"FormulaSettings.detectable":            "B,Cl,Br,Se,S",
			"MS2MassDeviation.allowedMassDeviation": "10.0ppm",
		}
	}
	server.RespondJSON(w, http.StatusOK, sub)
}
