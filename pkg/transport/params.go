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

package transport

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Media types used by the SIRIUS API.
const (
	MediaTypeJSON      = "application/json"
	MediaTypeCSV       = "application/csv"
	MediaTypeMultipart = "multipart/form-data"
	MediaTypeText      = "text/plain"
)

// RequireString fails locally when a required string parameter is empty.
func RequireString(op, name, value string) error {
	if value == "" {
		return MissingParameter(op, name)
	}
	return nil
}

// RequireValue fails locally when a required parameter is nil, including
// typed nil pointers, slices and maps.
func RequireValue(op, name string, value any) error {
	if isNil(value) {
		return MissingParameter(op, name)
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// ParameterToString renders a scalar query or path value.
// Pointers are dereferenced; string based enums render as their value.
func ParameterToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		if isNil(t) {
			return ""
		}
		return t.String()
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, ParameterToString(rv.Index(i).Interface()))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(rv.Interface())
}

// AddEach appends one query parameter per element. Empty input adds nothing.
func AddEach[T any](q url.Values, key string, values []T) {
	for _, v := range values {
		q.Add(key, ParameterToString(v))
	}
}

// SetOptional sets key only when v is non-nil.
func SetOptional[T any](q url.Values, key string, v *T) {
	if v == nil {
		return
	}
	q.Set(key, ParameterToString(*v))
}

// SelectHeaderAccept returns application/json when offered, otherwise all
// candidates joined by commas. Empty input yields "".
func SelectHeaderAccept(accepts []string) string {
	if len(accepts) == 0 {
		return ""
	}
	for _, a := range accepts {
		if strings.EqualFold(a, MediaTypeJSON) {
			return MediaTypeJSON
		}
	}
	return strings.Join(accepts, ",")
}

// SelectHeaderContentType returns application/json when offered or when no
// candidates exist, otherwise the first candidate.
func SelectHeaderContentType(contentTypes []string) string {
	if len(contentTypes) == 0 {
		return MediaTypeJSON
	}
	for _, ct := range contentTypes {
		if strings.EqualFold(ct, MediaTypeJSON) {
			return MediaTypeJSON
		}
	}
	return contentTypes[0]
}

func isJSONMime(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(strings.SplitN(mime, ";", 2)[0]))
	return mime == MediaTypeJSON || strings.HasSuffix(mime, "+json")
}
