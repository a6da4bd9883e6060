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
	"net/url"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

// PageRequest selects one page of a paged listing. Nil fields are omitted
// so the server applies its defaults.
type PageRequest struct {
	// Page is zero based.
	Page *int32
	Size *int32
	// Sort entries look like "property,asc" and are sent as repeated parameters.
	Sort []string
}

func (p *PageRequest) apply(q url.Values) {
	if p == nil {
		return
	}
	transport.SetOptional(q, "page", p.Page)
	transport.SetOptional(q, "size", p.Size)
	transport.AddEach(q, "sort", p.Sort)
}

// PageMetadata describes the position of a page within the full listing.
type PageMetadata struct {
	Size          int64 `json:"size" yaml:"size"`
	Number        int64 `json:"number" yaml:"number"`
	TotalElements int64 `json:"totalElements" yaml:"totalElements"`
	TotalPages    int64 `json:"totalPages" yaml:"totalPages"`
}

// PagedModel is one page of items plus paging metadata.
type PagedModel[T any] struct {
	Content []T           `json:"content" yaml:"content"`
	Page    *PageMetadata `json:"page,omitempty" yaml:"page,omitempty"`
}

// HasNext reports whether a page after this one exists.
func (p *PagedModel[T]) HasNext() bool {
	if p == nil || p.Page == nil {
		return false
	}
	return p.Page.Number+1 < p.Page.TotalPages
}
