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
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cybrota/avlmap/avl"
)

// HistoryEntry holds the optional timestamp and the command
type HistoryEntry struct {
	Command   string
	Timestamp *time.Time
}

// HistoryLoader reads zsh or bash history and emits one entry per distinct
// command, in command order. By default the value is Number(times run); with
// LastRun it is Number(unix time of the latest run), 0 when the history
// carries no timestamps for that command.
//
// zsh extended lines look like ": 1673291850:0;ls -la". bash writes
// "#1673291850" on its own line before a command when HISTTIMEFORMAT is set.
// Plain lines are commands without a timestamp.
type HistoryLoader struct {
	LastRun bool
}

func (l *HistoryLoader) Name() string {
	if l.LastRun {
		return "history-last"
	}
	return "history"
}

func (l *HistoryLoader) SupportsFormat(format string) bool {
	if l.LastRun {
		return format == "history-last"
	}
	switch format {
	case "history", "zsh", "bash":
		return true
	}
	return false
}

// SupportsPath only matches for the frequency loader; last-run values are
// asked for by format.
func (l *HistoryLoader) SupportsPath(path string) bool {
	if l.LastRun {
		return false
	}
	base := filepath.Base(path)
	return strings.HasSuffix(base, "_history") || strings.HasSuffix(base, ".history")
}

func (l *HistoryLoader) Priority() int {
	if l.LastRun {
		return 21
	}
	return 20
}

// Load emits the aggregate of every line read. When reading fails partway,
// the lines before the failure are still emitted and the read error is
// returned afterwards.
func (l *HistoryLoader) Load(r io.Reader, emit func(avl.Entry) error) error {
	history, readErr := ReadHistory(r)

	values := make(map[string]int64, len(history)/4)
	for _, hist := range history {
		if hist.Command == "" {
			continue
		}
		if !l.LastRun {
			values[hist.Command]++
			continue
		}
		last := values[hist.Command]
		if hist.Timestamp != nil && hist.Timestamp.Unix() > last {
			last = hist.Timestamp.Unix()
		}
		values[hist.Command] = last
	}

	commands := make([]string, 0, len(values))
	for command := range values {
		commands = append(commands, command)
	}
	sort.Strings(commands)

	for _, command := range commands {
		if err := emit(avl.Entry{Key: avl.Text(command), Value: avl.Number(values[command])}); err != nil {
			return err
		}
	}
	return readErr
}

// ReadHistory parses zsh extended and bash timestamped history. On a read
// error it returns the entries parsed so far along with the error.
func ReadHistory(r io.Reader) ([]HistoryEntry, error) {
	var history []HistoryEntry
	var lastTimestamp *time.Time

	scanner := bufio.NewScanner(r)
	// long one-liners are common in history files
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		// bash: "#1673291850" stamps the next command
		if strings.HasPrefix(line, "#") {
			if epoch, err := strconv.ParseInt(strings.TrimSpace(line[1:]), 10, 64); err == nil {
				t := time.Unix(epoch, 0)
				lastTimestamp = &t
				continue
			}
		}

		if entry, ok := parseZshLine(line); ok {
			history = append(history, entry)
			lastTimestamp = nil
			continue
		}

		history = append(history, HistoryEntry{Command: line, Timestamp: lastTimestamp})
		lastTimestamp = nil
	}

	if err := scanner.Err(); err != nil {
		return history, fmt.Errorf("failed to read history: %w", err)
	}
	return history, nil
}

// parseZshLine splits ": 1673291850:0;ls -la" into its timestamp and command.
func parseZshLine(line string) (HistoryEntry, bool) {
	if !strings.HasPrefix(line, ": ") {
		return HistoryEntry{}, false
	}

	// "", " 1673291850", "0;ls -la"
	parts := strings.SplitN(line, ":", 3)
	if len(parts) < 3 {
		return HistoryEntry{}, false
	}
	epoch, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return HistoryEntry{}, false
	}
	t := time.Unix(epoch, 0)

	subParts := strings.SplitN(parts[2], ";", 2)
	if len(subParts) < 2 {
		return HistoryEntry{Timestamp: &t}, true
	}
	return HistoryEntry{Command: subParts[1], Timestamp: &t}, true
}

// HistoryPath returns the history file of the user's login shell, falling
// back to bash when SHELL is unset.
func HistoryPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	shell := "bash"
	if shellPath, ok := os.LookupEnv("SHELL"); ok {
		shell = filepath.Base(shellPath)
	}

	switch shell {
	case "zsh":
		return filepath.Join(homeDir, ".zsh_history"), nil
	case "bash":
		return filepath.Join(homeDir, ".bash_history"), nil
	default:
		return "", fmt.Errorf("%w: no history reader for shell %q", ErrUnsupportedFormat, shell)
	}
}
