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

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinServerVersion is the oldest SIRIUS service release whose REST API
// this client speaks.
const MinServerVersion = "6.0"

var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
	ErrIncompatible      = errors.New("incompatible server version")
)

// Version is a semantic version with one to three significant components.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`

	// Precision is the number of significant components (1, 2 or 3).
	Precision int `json:"precision" yaml:"precision"`

	// Extras holds the pre-release or build suffix including its leading
	// '-' or '+', e.g. "-SNAPSHOT".
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// NewVersion returns a full-precision version.
func NewVersion(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch, Precision: 3}
}

// String renders the significant components without extras.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return strconv.Itoa(v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// Full renders the version including extras.
func (v Version) Full() string {
	return v.String() + v.Extras
}

// IsPrerelease reports whether the version carries a pre-release suffix
// such as "-SNAPSHOT" or "-rc.1".
func (v Version) IsPrerelease() bool {
	return strings.HasPrefix(v.Extras, "-")
}

// ParseVersion parses "1", "1.2", "1.2.3" with an optional "v" prefix and
// optional extras after '-' or '+'.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(s, "v")

	var v Version
	main := s
	// extras start at the first '-' or '+' that follows a digit, so "-1"
	// stays a (negative) component rather than a suffix
	for i := 1; i < len(s); i++ {
		if (s[i] == '-' || s[i] == '+') && s[i-1] >= '0' && s[i-1] <= '9' {
			main, v.Extras = s[:i], s[i:]
			break
		}
	}

	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	nums := [3]int{}
	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativeComponent, n)
		}
		nums[i] = n
	}

	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	v.Precision = len(parts)
	return v, nil
}

// MustParseVersion is ParseVersion for literals; it panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// Compare returns -1, 0 or 1. Only the components significant in both
// versions are compared; extras are ignored.
func (v Version) Compare(other Version) int {
	precision := min(v.Precision, other.Precision)
	a := [3]int{v.Major, v.Minor, v.Patch}
	b := [3]int{other.Major, other.Minor, other.Patch}
	for i := 0; i < precision && i < 3; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// EqualsOrNewer reports whether v is at least other.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// IsNewer reports whether v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}

// Equals compares all three components regardless of precision.
func (v Version) Equals(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch
}

// IsValid reports whether all components are non-negative and the
// precision is 1, 2 or 3.
func (v Version) IsValid() bool {
	return v.Major >= 0 && v.Minor >= 0 && v.Patch >= 0 && v.Precision >= 1 && v.Precision <= 3
}

// CheckServer verifies that the version string reported by a service is at
// least minimum. The returned error wraps ErrIncompatible when the service is
// too old and the parse error when reported is malformed.
func CheckServer(reported string, minimum Version) error {
	v, err := ParseVersion(strings.TrimSpace(reported))
	if err != nil {
		return fmt.Errorf("failed to parse server version %q: %w", reported, err)
	}
	if !v.EqualsOrNewer(minimum) {
		return fmt.Errorf("%w: server %s is older than %s", ErrIncompatible, v.Full(), minimum)
	}
	return nil
}
