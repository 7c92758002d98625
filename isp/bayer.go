// Copyright 2025 go-highway Authors
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

package isp

import (
	"fmt"
	"strings"
)

// Pattern identifies the color filter layout of a 2x2 Bayer block, named by
// its samples in reading order.
type Pattern uint8

const (
	// GRBG is the canonical layout: Gr at (0,0), R at (0,1), B at (1,0),
	// Gb at (1,1).
	GRBG Pattern = iota
	RGGB
	BGGR
	GBRG
)

var patternNames = [...]string{
	GRBG: "GRBG",
	RGGB: "RGGB",
	BGGR: "BGGR",
	GBRG: "GBRG",
}

func (p Pattern) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return fmt.Sprintf("Pattern(%d)", uint8(p))
}

// ParsePattern parses a layout name such as "grbg" (case-insensitive).
// Unknown names yield ErrUnsupportedPattern.
func ParsePattern(s string) (Pattern, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("isp: parse %q: %w", s, ErrUnsupportedPattern)
}

// Supported reports whether the stages accept p.
func (p Pattern) Supported() bool {
	return p == GRBG
}

func checkPattern(p Pattern) error {
	if !p.Supported() {
		return fmt.Errorf("isp: %v: %w", p, ErrUnsupportedPattern)
	}
	return nil
}
