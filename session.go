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

package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/willf/bloom"

	"github.com/cybrota/avlmap/avl"
	"github.com/cybrota/avlmap/loaders"
)

// Session owns one tree and executes textual commands against it. Like the
// tree, a Session is meant for a single goroutine.
type Session struct {
	tree    *avl.Tree
	filter  *bloom.BloomFilter // nil when disabled
	renders *cache.Cache
	loaders *loaders.Manager
	config  *Config

	generation  uint64 // bumped on every mutation
	filterSkips uint64 // lookups answered by the filter alone

	progress io.Writer // nil disables load progress bars
	log      *logrus.Entry
}

func NewSession(config *Config) *Session {
	s := &Session{
		tree:    avl.New(),
		renders: NewRenderCache(config.Cache),
		loaders: loaders.NewManager(),
		config:  config,
		log:     logrus.WithField("component", "session"),
	}
	s.resetFilter()
	return s
}

// SetProgress sets where load progress bars are drawn; nil turns them off.
func (s *Session) SetProgress(w io.Writer) {
	s.progress = w
}

func (s *Session) Generation() uint64 {
	return s.generation
}

func (s *Session) Len() int {
	return s.tree.Len()
}

// Entries returns a snapshot of the entries in key order.
func (s *Session) Entries() []avl.Entry {
	return s.tree.Dump()
}

func (s *Session) resetFilter() {
	if !s.config.Filter.Enabled {
		s.filter = nil
		return
	}
	s.filter = bloom.NewWithEstimates(s.config.Filter.ExpectedKeys, s.config.Filter.FalsePositiveRate)
}

// filterKey encodes a key with its kind so Number(5) and Text("5") differ.
func filterKey(key avl.Value) []byte {
	if n, ok := key.Int(); ok {
		buf := make([]byte, 9)
		buf[0] = byte(avl.NumberKind)
		binary.BigEndian.PutUint64(buf[1:], uint64(n))
		return buf
	}
	text, _ := key.Str()
	return append([]byte{byte(avl.TextKind)}, text...)
}

// Insert upserts and reports whether the key was new.
func (s *Session) Insert(key, value avl.Value) bool {
	before := s.tree.Len()
	s.tree.Insert(key, value)
	if s.filter != nil {
		s.filter.Add(filterKey(key))
	}
	s.generation++

	added := s.tree.Len() > before
	s.log.WithFields(logrus.Fields{"key": key, "added": added}).Debug("insert")
	return added
}

// Get returns the value under key. Keys the filter has never seen are
// reported missing without touching the tree.
func (s *Session) Get(key avl.Value) (avl.Value, bool) {
	if s.filter != nil && !s.filter.Test(filterKey(key)) {
		s.filterSkips++
		return avl.Value{}, false
	}
	return s.tree.Search(key)
}

func (s *Session) Has(key avl.Value) bool {
	_, ok := s.Get(key)
	return ok
}

// Remove deletes key. The filter keeps the key, which only costs a tree
// descent on a later miss.
func (s *Session) Remove(key avl.Value) (avl.Value, bool) {
	value, ok := s.tree.Remove(key)
	if ok {
		s.generation++
	}
	s.log.WithFields(logrus.Fields{"key": key, "found": ok}).Debug("remove")
	return value, ok
}

// Clear drops every entry and returns how many there were.
func (s *Session) Clear() int {
	n := s.tree.Len()
	s.tree.Clear()
	s.resetFilter()
	s.generation++
	s.renders.Flush()
	return n
}

// Dump renders the entries with the configured layout, reusing the last
// rendering while the tree is unchanged.
func (s *Session) Dump() string {
	key := fmt.Sprintf("dump:%s:%d", s.config.Display.Layout, s.generation)
	if text := GetRendering(s.renders, key); text != "" {
		return text
	}

	var text string
	if s.config.Display.Layout == LayoutLines {
		lines := make([]string, 0, s.tree.Len())
		for k, v := range s.tree.All() {
			lines = append(lines, avl.Entry{Key: k, Value: v}.String())
		}
		text = strings.Join(lines, "\n")
	} else {
		text = s.tree.String()
	}
	if text == "" {
		text = "(empty)"
	}

	CacheRendering(s.renders, key, text)
	return text
}

// LoadFile bulk inserts a file's entries. Entries read before a malformed
// record stay inserted.
func (s *Session) LoadFile(path, format string) (int, error) {
	if format == "" {
		format = s.config.Loader.DefaultFormat
	}

	var bar *progressbar.ProgressBar
	if s.progress != nil {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(s.progress),
			progressbar.OptionSetDescription("📥 Loading "+path),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(s.progress)
			}),
		)
	}

	n, err := s.loaders.LoadFile(path, format, func(e avl.Entry) error {
		s.Insert(e.Key, e.Value)
		if bar != nil {
			bar.Add(1)
		}
		return nil
	})

	if bar != nil {
		bar.Finish()
	}

	s.log.WithFields(logrus.Fields{"path": path, "entries": n}).Info("load")
	return n, err
}

// LoadHistory loads the login shell's history file. format picks the
// history loader, "history" (run counts) when empty.
func (s *Session) LoadHistory(format string) (string, int, error) {
	path, err := loaders.HistoryPath()
	if err != nil {
		return "", 0, err
	}
	if format == "" {
		format = "history"
	}
	n, err := s.LoadFile(path, format)
	return path, n, err
}

// Execute runs one command line and returns its output.
func (s *Session) Execute(line string) (string, error) {
	args, err := splitCommand(line)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}

	def, ok := lookupCommand(args[0])
	if !ok {
		return "", fmt.Errorf("%w %q, try help", ErrUnknownCommand, args[0])
	}
	args = args[1:]
	if len(args) < def.minArgs || len(args) > def.maxArgs {
		return "", fmt.Errorf("%w: %s", ErrUsage, def.usage())
	}
	return def.run(s, args)
}

func (s *Session) cmdInsert(args []string) (string, error) {
	entry := avl.Entry{Key: avl.ParseValue(args[0]), Value: avl.ParseValue(args[1])}
	if s.Insert(entry.Key, entry.Value) {
		return "inserted " + entry.String(), nil
	}
	return "updated " + entry.String(), nil
}

func (s *Session) cmdGet(args []string) (string, error) {
	value, ok := s.Get(avl.ParseValue(args[0]))
	if !ok {
		return "(not found)", nil
	}
	return value.String(), nil
}

func (s *Session) cmdHas(args []string) (string, error) {
	return strconv.FormatBool(s.Has(avl.ParseValue(args[0]))), nil
}

func (s *Session) cmdRemove(args []string) (string, error) {
	value, ok := s.Remove(avl.ParseValue(args[0]))
	if !ok {
		return "(not found)", nil
	}
	return "removed " + value.String(), nil
}

func (s *Session) cmdDump(args []string) (string, error) {
	return s.Dump(), nil
}

func (s *Session) cmdPrint(args []string) (string, error) {
	if s.tree.IsEmpty() {
		return "(empty)", nil
	}
	var b strings.Builder
	s.tree.Print(&b, s.config.Display.ShowValues)
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Session) cmdLen(args []string) (string, error) {
	return strconv.Itoa(s.tree.Len()), nil
}

func (s *Session) cmdHeight(args []string) (string, error) {
	return strconv.Itoa(s.tree.Height()), nil
}

func (s *Session) cmdVerify(args []string) (string, error) {
	if err := s.tree.Verify(); err != nil {
		return "", err
	}
	return "ok", nil
}

func (s *Session) cmdStats(args []string) (string, error) {
	lines := []string{
		fmt.Sprintf("entries: %d", s.tree.Len()),
		fmt.Sprintf("height: %d", s.tree.Height()),
		fmt.Sprintf("generation: %d", s.generation),
	}
	if s.filter != nil {
		lines = append(lines,
			fmt.Sprintf("filter: %d bits, %d hashes", s.filter.Cap(), s.filter.K()),
			fmt.Sprintf("filter skips: %d", s.filterSkips))
	} else {
		lines = append(lines, "filter: disabled")
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) cmdClear(args []string) (string, error) {
	return fmt.Sprintf("cleared %d entries", s.Clear()), nil
}

func (s *Session) cmdLoad(args []string) (string, error) {
	var (
		path string
		n    int
		err  error
	)
	switch len(args) {
	case 0:
		path, n, err = s.LoadHistory("")
	case 1:
		path = args[0]
		n, err = s.LoadFile(path, "")
	default:
		path = args[0]
		n, err = s.LoadFile(path, args[1])
	}
	if err != nil {
		return "", fmt.Errorf("loaded %d entries before failing: %w", n, err)
	}
	return fmt.Sprintf("loaded %d entries from %s", n, path), nil
}

func (s *Session) cmdHelp(args []string) (string, error) {
	lines := make([]string, 0, len(commandTable))
	for _, def := range commandTable {
		lines = append(lines, fmt.Sprintf("%-20s %s", def.usage(), def.summary))
	}
	return strings.Join(lines, "\n"), nil
}
