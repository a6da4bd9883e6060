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
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"k8s.io/utils/ptr"
)

// project is one opened project-space. Features and jobs keep insertion
// order so listings and pages are stable.
type project struct {
	info         sirius.ProjectInfo
	features     map[string]*sirius.AlignedFeature
	featureOrder []string
	jobs         map[string]*sirius.Job
	jobOrder     []string
}

func newProject(id, location string) *project {
	return &project{
		info: sirius.ProjectInfo{
			ProjectID: id,
			Location:  location,
			Type:      ptr.To(sirius.ProjectTypeUnimported),
		},
		features: make(map[string]*sirius.AlignedFeature),
		jobs:     make(map[string]*sirius.Job),
	}
}

// Store is the in-memory state behind the mock service. It is safe for
// concurrent use.
type Store struct {
	mu         sync.RWMutex
	projects   map[string]*project
	jobConfigs map[string]sirius.StoredJobSubmission
	baseDir    string
	newID      func() string
}

// NewStore returns an empty store. Projects created without a path are
// placed below baseDir.
func NewStore(baseDir string) *Store {
	return &Store{
		projects:   make(map[string]*project),
		jobConfigs: map[string]sirius.StoredJobSubmission{defaultConfigName: defaultStoredConfig()},
		baseDir:    baseDir,
		newID:      func() string { return uuid.New().String() },
	}
}

func notFound(kind, id string) error {
	return apperrors.NewWithContext(apperrors.ErrCodeNotFound,
		fmt.Sprintf("%s with id '%s' not found.", kind, id), map[string]any{"id": id})
}

func conflict(msg string) error {
	return apperrors.New(apperrors.ErrCodeConflict, msg)
}

func badRequest(msg string) error {
	return apperrors.New(apperrors.ErrCodeInvalidRequest, msg)
}

func (s *Store) project(id string) (*project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, notFound("Project", id)
	}
	return p, nil
}

func (s *Store) location(id string, pathToProject *string) string {
	if pathToProject != nil && *pathToProject != "" {
		return *pathToProject
	}
	return filepath.Join(s.baseDir, id+".sirius")
}

// projectInfo returns a copy of the project info, with counts when
// sizeInformation is requested.
func projectInfo(p *project, fields []string) sirius.ProjectInfo {
	info := p.info
	if slices.Contains(fields, string(sirius.ProjectInfoOptFieldSizeInformation)) {
		info.NumOfFeatures = ptr.To(int64(len(p.features)))
		info.NumOfCompounds = ptr.To(int64(len(p.features)))
		info.NumOfBytes = ptr.To(int64(0))
	}
	if slices.Contains(fields, string(sirius.ProjectInfoOptFieldCompatibilityInfo)) {
		info.Compatible = ptr.To(true)
	}
	return info
}

// ListProjects returns all open projects sorted by id.
func (s *Store) ListProjects() []sirius.ProjectInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]sirius.ProjectInfo, 0, len(s.projects))
	for _, id := range slices.Sorted(maps.Keys(s.projects)) {
		out = append(out, projectInfo(s.projects[id], nil))
	}
	return out
}

// GetProject returns one open project.
func (s *Store) GetProject(id string, fields []string) (sirius.ProjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.project(id)
	if err != nil {
		return sirius.ProjectInfo{}, err
	}
	return projectInfo(p, fields), nil
}

// CreateProject creates and opens an empty project. Ids and locations
// already in use are conflicts.
func (s *Store) CreateProject(id string, pathToProject *string, fields []string) (sirius.ProjectInfo, error) {
	if err := validateProjectID(id); err != nil {
		return sirius.ProjectInfo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[id]; exists {
		return sirius.ProjectInfo{}, conflict(fmt.Sprintf("Project with id '%s' already exists.", id))
	}
	location := s.location(id, pathToProject)
	for _, p := range s.projects {
		if p.info.Location == location {
			return sirius.ProjectInfo{}, conflict(fmt.Sprintf("Location '%s' is already in use by project '%s'.", location, p.info.ProjectID))
		}
	}

	p := newProject(id, location)
	s.projects[id] = p
	return projectInfo(p, fields), nil
}

// OpenProject opens a project; opening an already open project with the
// same id returns it unchanged.
func (s *Store) OpenProject(id string, pathToProject *string, fields []string) (sirius.ProjectInfo, error) {
	if err := validateProjectID(id); err != nil {
		return sirius.ProjectInfo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, exists := s.projects[id]; exists {
		return projectInfo(p, fields), nil
	}
	p := newProject(id, s.location(id, pathToProject))
	s.projects[id] = p
	return projectInfo(p, fields), nil
}

// CloseProject closes a project and drops its state.
func (s *Store) CloseProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.project(id); err != nil {
		return err
	}
	delete(s.projects, id)
	return nil
}

// CopyProject copies a project's features to a new location. With a
// copyID the copy is opened under that id as well. Without one the copy
// stays closed and is described by its location, with the file name stem
// as its id.
func (s *Store) CopyProject(id, pathToCopied string, copyID *string, fields []string) (sirius.ProjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.project(id)
	if err != nil {
		return sirius.ProjectInfo{}, err
	}
	if copyID == nil || *copyID == "" {
		info := projectInfo(src, fields)
		base := filepath.Base(pathToCopied)
		info.ProjectID = strings.TrimSuffix(base, filepath.Ext(base))
		info.Location = pathToCopied
		return info, nil
	}
	if err := validateProjectID(*copyID); err != nil {
		return sirius.ProjectInfo{}, err
	}
	if _, exists := s.projects[*copyID]; exists {
		return sirius.ProjectInfo{}, conflict(fmt.Sprintf("Project with id '%s' already exists.", *copyID))
	}

	dst := newProject(*copyID, pathToCopied)
	dst.info.Type = src.info.Type
	for _, fid := range src.featureOrder {
		f := *src.features[fid]
		dst.features[fid] = &f
		dst.featureOrder = append(dst.featureOrder, fid)
	}
	s.projects[*copyID] = dst
	return projectInfo(dst, fields), nil
}

// validateProjectID applies the SIRIUS rule for project ids: letters,
// digits, '_' and '-' only.
func validateProjectID(id string) error {
	if id == "" {
		return badRequest("Project id must not be empty.")
	}
	if strings.IndexFunc(id, func(r rune) bool {
		return !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) >= 0 {
		return badRequest(fmt.Sprintf("Invalid project id '%s'. Allowed are letters, digits, '_' and '-'.", id))
	}
	return nil
}
