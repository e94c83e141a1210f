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
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/cybrota/avlmap/avl"
)

// KVLoader reads one "key value" pair per line. Tokens follow shell
// quoting rules, so `"new york" 8336817` is a Text key with a Number value.
// Blank lines and lines starting with '#' are skipped.
type KVLoader struct{}

func (l *KVLoader) Name() string {
	return "kv"
}

func (l *KVLoader) SupportsFormat(format string) bool {
	switch format {
	case "kv", "txt", "text":
		return true
	}
	return false
}

func (l *KVLoader) SupportsPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kv", ".txt":
		return true
	}
	return false
}

func (l *KVLoader) Priority() int {
	return 50
}

func (l *KVLoader) Load(r io.Reader, emit func(avl.Entry) error) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := ParseKVLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := emit(entry); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// ParseKVLine splits a single "key value" line into an entry.
func ParseKVLine(line string) (avl.Entry, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(line)
	if err != nil {
		return avl.Entry{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// the parser stops at an unquoted ; & | < or > and leaves the rest;
	// Position counts runes
	if parser.Position >= 0 {
		return avl.Entry{}, fmt.Errorf("%w: unquoted %q at column %d, quote the token",
			ErrMalformed, []rune(line)[parser.Position], parser.Position+1)
	}
	if len(args) != 2 {
		return avl.Entry{}, fmt.Errorf("%w: want a key and a value, got %d fields", ErrMalformed, len(args))
	}
	return avl.Entry{Key: avl.ParseValue(args[0]), Value: avl.ParseValue(args[1])}, nil
}
