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

package loaders

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cybrota/avlmap/avl"
)

var (
	// ErrUnsupportedFormat is returned when no registered loader accepts a format or path.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrMalformed wraps every parse failure of an individual record.
	ErrMalformed = errors.New("malformed record")
)

// Loader streams key/value entries out of a reader. Entries are handed to
// emit as soon as they are parsed, so a malformed record halfway through
// leaves every earlier entry applied.
type Loader interface {
	Name() string
	SupportsFormat(format string) bool
	SupportsPath(path string) bool
	Priority() int // Lower number = higher priority
	Load(r io.Reader, emit func(avl.Entry) error) error
}

// ValueOf maps a decoded host value onto avl.Value. Integers become
// Numbers and strings become Texts; anything else is rejected.
func ValueOf(x any) (avl.Value, error) {
	switch v := x.(type) {
	case avl.Value:
		return v, nil
	case string:
		return avl.Text(v), nil
	case int:
		return avl.Number(int64(v)), nil
	case int8:
		return avl.Number(int64(v)), nil
	case int16:
		return avl.Number(int64(v)), nil
	case int32:
		return avl.Number(int64(v)), nil
	case int64:
		return avl.Number(v), nil
	case uint:
		return unsignedValue(uint64(v))
	case uint8:
		return avl.Number(int64(v)), nil
	case uint16:
		return avl.Number(int64(v)), nil
	case uint32:
		return avl.Number(int64(v)), nil
	case uint64:
		return unsignedValue(v)
	default:
		return avl.Value{}, fmt.Errorf("%w: %T is neither an integer nor a string", ErrMalformed, x)
	}
}

func unsignedValue(u uint64) (avl.Value, error) {
	if u > math.MaxInt64 {
		return avl.Value{}, fmt.Errorf("%w: integer %d overflows int64", ErrMalformed, u)
	}
	return avl.Number(int64(u)), nil
}
