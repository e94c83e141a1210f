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
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cybrota/avlmap/avl"
)

// Manager picks a Loader by format name or file path.
type Manager struct {
	loaders []Loader
}

// NewManager creates a manager with every built-in loader registered.
func NewManager() *Manager {
	manager := &Manager{}

	manager.Register(&YAMLLoader{})
	manager.Register(&HistoryLoader{})
	manager.Register(&HistoryLoader{LastRun: true})
	manager.Register(&KVLoader{})

	return manager
}

// Register adds a loader, keeping the list ordered by priority.
func (m *Manager) Register(loader Loader) {
	m.loaders = append(m.loaders, loader)
	sort.SliceStable(m.loaders, func(i, j int) bool {
		return m.loaders[i].Priority() < m.loaders[j].Priority()
	})
}

// Formats lists the registered loader names in priority order.
func (m *Manager) Formats() []string {
	names := make([]string, 0, len(m.loaders))
	for _, l := range m.loaders {
		names = append(names, l.Name())
	}
	return names
}

// ForFormat returns the highest priority loader accepting format.
func (m *Manager) ForFormat(format string) (Loader, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, l := range m.loaders {
		if l.SupportsFormat(format) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnsupportedFormat, format, strings.Join(m.Formats(), ", "))
}

// ForPath returns the highest priority loader recognising path.
func (m *Manager) ForPath(path string) (Loader, error) {
	for _, l := range m.loaders {
		if l.SupportsPath(path) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot tell the format of %q, pass one explicitly", ErrUnsupportedFormat, path)
}

// Load reads r with the loader for format and returns the number of
// entries emitted before any error.
func (m *Manager) Load(r io.Reader, format string, emit func(avl.Entry) error) (int, error) {
	loader, err := m.ForFormat(format)
	if err != nil {
		return 0, err
	}
	return run(loader, r, emit)
}

// LoadFile opens path and loads it. An empty format is inferred from the path.
func (m *Manager) LoadFile(path string, format string, emit func(avl.Entry) error) (int, error) {
	var (
		loader Loader
		err    error
	)
	if format == "" {
		loader, err = m.ForPath(path)
	} else {
		loader, err = m.ForFormat(format)
	}
	if err != nil {
		return 0, err
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	n, err := run(loader, file, emit)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func run(loader Loader, r io.Reader, emit func(avl.Entry) error) (int, error) {
	count := 0
	err := loader.Load(r, func(e avl.Entry) error {
		if err := emit(e); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}
