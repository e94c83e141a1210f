// Copyright 2025 Naren Yellavula
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

package avl

import (
	"cmp"
	"strconv"
	"strings"
)

// Kind tells which variant a Value holds.
type Kind uint8

const (
	NumberKind Kind = iota
	TextKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case TextKind:
		return "text"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable key or value: either a Number or a Text.
// The zero Value is Number(0).
type Value struct {
	kind Kind
	num  int64
	text string
}

// Number returns a numeric Value.
func Number(n int64) Value {
	return Value{kind: NumberKind, num: n}
}

// Text returns a textual Value.
func Text(s string) Value {
	return Value{kind: TextKind, text: s}
}

// ParseValue turns a decimal integer literal into a Number and anything
// else into a Text.
func ParseValue(s string) Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Number(n)
	}
	return Text(s)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNumber() bool {
	return v.kind == NumberKind
}

func (v Value) IsText() bool {
	return v.kind == TextKind
}

// Int returns the numeric payload and whether v is a Number.
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == NumberKind
}

// Str returns the textual payload and whether v is a Text.
func (v Value) Str() (string, bool) {
	return v.text, v.kind == TextKind
}

// Compare returns -1, 0 or +1. Every Number sorts before every Text.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind == NumberKind {
			return -1
		}
		return 1
	}
	if v.kind == NumberKind {
		return cmp.Compare(v.num, other.num)
	}
	return strings.Compare(v.text, other.text)
}

func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

func (v Value) Less(other Value) bool {
	return v.Compare(other) < 0
}

// String renders a Number as a decimal and a Text Go-quoted, so that
// Number(5) and Text("5") print differently.
func (v Value) String() string {
	if v.kind == TextKind {
		return strconv.Quote(v.text)
	}
	return strconv.FormatInt(v.num, 10)
}
