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

package serializer

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

const defaultValueKey = "value"

var timeType = reflect.TypeOf(time.Time{})

// writeTable renders lists of objects as one row per element and anything
// else as a sorted FIELD/VALUE listing.
func writeTable(w io.Writer, v any) error {
	val := indirect(reflect.ValueOf(v))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if val.IsValid() && (val.Kind() == reflect.Slice || val.Kind() == reflect.Array) && val.Type() != reflect.TypeOf([]byte(nil)) {
		if val.Len() == 0 {
			fmt.Fprintln(w, "<empty>")
			return nil
		}
		if isScalar(indirect(val.Index(0))) {
			fmt.Fprintln(tw, strings.ToUpper(defaultValueKey))
			for i := 0; i < val.Len(); i++ {
				fmt.Fprintln(tw, formatCell(indirect(val.Index(i))))
			}
			return tw.Flush()
		}
		return writeRows(tw, val)
	}

	flat := make(map[string]string)
	flatten(flat, val, "", true)
	if len(flat) == 0 {
		fmt.Fprintln(w, "<empty>")
		return nil
	}
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, flat[k])
	}
	return tw.Flush()
}

func writeRows(tw *tabwriter.Writer, list reflect.Value) error {
	rows := make([]map[string]string, list.Len())
	var columns []string
	seen := map[string]bool{}
	for i := range rows {
		rows[i] = make(map[string]string)
		flatten(rows[i], list.Index(i), "", false)
		for _, k := range orderedKeys(list.Index(i)) {
			if _, ok := rows[i][k]; ok && !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
		extra := make([]string, 0)
		for k := range rows[i] {
			if !seen[k] {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			seen[k] = true
			columns = append(columns, k)
		}
	}

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = row[c]
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// orderedKeys returns top-level keys of a struct in declaration order so
// list columns follow the model rather than the alphabet.
func orderedKeys(v reflect.Value) []string {
	v = indirect(v)
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := fieldName(f)
		if skip {
			continue
		}
		if f.Anonymous && name == "" {
			keys = append(keys, orderedKeys(v.Field(i))...)
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

// flatten walks v and stores leaf values under dotted keys. In deep mode
// slices and maps are expanded; otherwise they are summarized.
func flatten(out map[string]string, v reflect.Value, prefix string, deep bool) {
	if !v.IsValid() {
		return
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	if isScalar(v) {
		if prefix == "" {
			prefix = defaultValueKey
		}
		out[prefix] = formatCell(v)
		return
	}

	//nolint:exhaustive // scalars are handled above
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, skip := fieldName(f)
			if skip {
				continue
			}
			if f.Anonymous && name == "" {
				flatten(out, v.Field(i), prefix, deep)
				continue
			}
			flatten(out, v.Field(i), joinKey(prefix, name), deep)
		}
	case reflect.Map:
		if !deep {
			if v.Len() > 0 {
				out[prefix] = fmt.Sprintf("{%d keys}", v.Len())
			}
			return
		}
		for _, k := range v.MapKeys() {
			flatten(out, v.MapIndex(k), joinKey(prefix, fmt.Sprint(k.Interface())), deep)
		}
	case reflect.Slice, reflect.Array:
		if !deep {
			if v.Len() > 0 {
				out[prefix] = summarizeList(v)
			}
			return
		}
		for i := 0; i < v.Len(); i++ {
			flatten(out, v.Index(i), joinKey(prefix, fmt.Sprintf("[%d]", i)), deep)
		}
	}
}

func summarizeList(v reflect.Value) string {
	if v.Len() <= 3 && isScalar(indirect(v.Index(0))) {
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatCell(indirect(v.Index(i)))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprintf("[%d items]", v.Len())
}

// fieldName returns the json name of f. An embedded struct without a tag
// name yields "" so its fields are inlined.
func fieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name != "" {
		return name, false
	}
	if f.Anonymous {
		return "", false
	}
	return f.Name, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isScalar(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	if v.Type() == timeType {
		return true
	}
	//nolint:exhaustive // everything else is composite
	switch v.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return false
	default:
		return true
	}
}

func formatCell(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(time.RFC3339)
	}
	return fmt.Sprint(v.Interface())
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}
