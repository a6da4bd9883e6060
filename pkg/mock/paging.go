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
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"k8s.io/utils/ptr"

	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

const defaultPageSize = 20

var (
	validate     = validator.New()
	queryDecoder = schema.NewDecoder()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// featureRules holds the constraints checked on every imported feature.
type featureRules struct {
	IonMass float64 `validate:"gt=0"`
	Charge  int32   `validate:"ne=0"`
}

// pageQuery is the paging part of a query string.
type pageQuery struct {
	Page *int     `schema:"page" validate:"omitempty,gte=0"`
	Size *int     `schema:"size" validate:"omitempty,gte=1"`
	Sort []string `schema:"sort"`
}

type pageRequest struct {
	page int
	size int
	sort []string
}

func parsePageRequest(q url.Values) (pageRequest, error) {
	var pq pageQuery
	if err := queryDecoder.Decode(&pq, q); err != nil {
		return pageRequest{}, badRequest(fmt.Sprintf("Invalid paging parameters: %v", err))
	}
	if err := validate.Struct(pq); err != nil {
		return pageRequest{}, badRequest(validationMessage(err))
	}
	return pageRequest{
		page: ptr.Deref(pq.Page, 0),
		size: ptr.Deref(pq.Size, defaultPageSize),
		sort: pq.Sort,
	}, nil
}

// validationMessage renders validator errors as one Spring style message.
func validationMessage(err error) string {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		field := ve.Field()
		if field != "" {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		switch ve.Tag() {
		case "gte":
			msgs = append(msgs, fmt.Sprintf("Parameter '%s' must be at least %s.", field, ve.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("Parameter '%s' must be greater than %s.", field, ve.Param()))
		case "ne":
			msgs = append(msgs, fmt.Sprintf("Parameter '%s' must not be %s.", field, ve.Param()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("Parameter '%s' is required.", field))
		default:
			msgs = append(msgs, fmt.Sprintf("Parameter '%s' is invalid.", field))
		}
	}
	return strings.Join(msgs, " ")
}

// paginate cuts one page out of items. Pages past the end are empty.
func paginate[T any](items []T, p pageRequest) sirius.PagedModel[T] {
	total := len(items)
	start := total
	if p.page <= total/p.size {
		start = p.page * p.size
	}
	end := start + min(p.size, total-start)
	pages := total / p.size
	if total%p.size != 0 {
		pages++
	}
	content := items[start:end]
	if content == nil {
		content = []T{}
	}
	return sirius.PagedModel[T]{
		Content: content,
		Page: &sirius.PageMetadata{
			Size:          int64(p.size),
			Number:        int64(p.page),
			TotalElements: int64(total),
			TotalPages:    int64(pages),
		},
	}
}

// sortFeatures applies "property,direction" sort entries. Unknown
// properties are ignored, later entries break ties of earlier ones.
func sortFeatures(items []sirius.AlignedFeature, sorts []string) {
	if len(sorts) == 0 {
		return
	}
	slices.SortStableFunc(items, func(a, b sirius.AlignedFeature) int {
		for _, s := range sorts {
			prop, dir, _ := strings.Cut(s, ",")
			var c int
			switch prop {
			case "ionMass":
				c = cmp.Compare(a.IonMass, b.IonMass)
			case "name":
				c = cmp.Compare(ptr.Deref(a.Name, ""), ptr.Deref(b.Name, ""))
			case "rtApexSeconds":
				c = cmp.Compare(ptr.Deref(a.RtApexSeconds, 0), ptr.Deref(b.RtApexSeconds, 0))
			}
			if strings.EqualFold(dir, "desc") {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

