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
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cybrota/avlmap/avl"
)

// YAMLLoader accepts either a sequence of {key, value} mappings
//
//	- key: 1
//	  value: one
//
// or a plain mapping, read in document order. Integer scalars become
// Numbers and string scalars become Texts.
type YAMLLoader struct{}

func (l *YAMLLoader) Name() string {
	return "yaml"
}

func (l *YAMLLoader) SupportsFormat(format string) bool {
	return format == "yaml" || format == "yml"
}

func (l *YAMLLoader) SupportsPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (l *YAMLLoader) Priority() int {
	return 10
}

func (l *YAMLLoader) Load(r io.Reader, emit func(avl.Entry) error) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		for _, item := range root.Content {
			entry, err := pairFromMapping(item)
			if err != nil {
				return err
			}
			if err := emit(entry); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			entry, err := entryFromNodes(root.Content[i], root.Content[i+1])
			if err != nil {
				return err
			}
			if err := emit(entry); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: line %d: top level must be a sequence or a mapping", ErrMalformed, root.Line)
	}
	return nil
}

func pairFromMapping(item *yaml.Node) (avl.Entry, error) {
	if item.Kind != yaml.MappingNode {
		return avl.Entry{}, fmt.Errorf("%w: line %d: sequence items must be {key, value} mappings", ErrMalformed, item.Line)
	}

	var key, value *yaml.Node
	for i := 0; i+1 < len(item.Content); i += 2 {
		switch item.Content[i].Value {
		case "key":
			key = item.Content[i+1]
		case "value":
			value = item.Content[i+1]
		}
	}
	if key == nil || value == nil {
		return avl.Entry{}, fmt.Errorf("%w: line %d: both key and value are required", ErrMalformed, item.Line)
	}
	return entryFromNodes(key, value)
}

func entryFromNodes(key, value *yaml.Node) (avl.Entry, error) {
	k, err := scalarValue(key)
	if err != nil {
		return avl.Entry{}, err
	}
	v, err := scalarValue(value)
	if err != nil {
		return avl.Entry{}, err
	}
	return avl.Entry{Key: k, Value: v}, nil
}

func scalarValue(n *yaml.Node) (avl.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return avl.Value{}, fmt.Errorf("%w: line %d: expected a scalar", ErrMalformed, n.Line)
	}

	var x any
	if err := n.Decode(&x); err != nil {
		return avl.Value{}, fmt.Errorf("%w: line %d: %v", ErrMalformed, n.Line, err)
	}
	v, err := ValueOf(x)
	if err != nil {
		return avl.Value{}, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}
