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
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeLine(t *testing.T, m ShellModel, line string) ShellModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(ShellModel)
}

func newTestShell(t *testing.T) ShellModel {
	t.Helper()
	m := NewShellModel(newTestSession(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(ShellModel)
}

func TestShellModelRunsCommands(t *testing.T) {
	m := newTestShell(t)
	if !m.ready {
		t.Fatalf("model not ready after WindowSizeMsg")
	}

	m = typeLine(t, m, "insert 1 one")
	m = typeLine(t, m, "insert 2 two")

	if m.session.Len() != 2 {
		t.Fatalf("session has %d entries; want 2", m.session.Len())
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after enter: %q", m.input.Value())
	}
	if m.lastOutput != `inserted { key: 2, value: "two" }` {
		t.Errorf("lastOutput = %q", m.lastOutput)
	}
	if !strings.Contains(m.side.View(), `{ key: 1, value: "one" }`) {
		t.Errorf("entries panel does not list key 1")
	}
}

func TestShellModelErrorsStayInTranscript(t *testing.T) {
	m := newTestShell(t)
	m = typeLine(t, m, "bogus")

	last := m.transcript[len(m.transcript)-1]
	if !strings.Contains(last, "unknown command") {
		t.Errorf("transcript tail = %q; want an unknown command error", last)
	}
	if m.lastOutput != "" {
		t.Errorf("lastOutput = %q; errors should not become copyable output", m.lastOutput)
	}
}

func TestShellModelHistoryRecall(t *testing.T) {
	m := newTestShell(t)
	m = typeLine(t, m, "len")
	m = typeLine(t, m, "height")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(ShellModel)
	if m.input.Value() != "height" {
		t.Errorf("first up = %q; want height", m.input.Value())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(ShellModel)
	if m.input.Value() != "len" {
		t.Errorf("second up = %q; want len", m.input.Value())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(ShellModel)
	if m.input.Value() != "" {
		t.Errorf("down past the newest line = %q; want empty", m.input.Value())
	}
}

func TestShellModelPanels(t *testing.T) {
	m := newTestShell(t)
	m = typeLine(t, m, "insert 1 1")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = next.(ShellModel)
	if m.panel != panelTree {
		t.Fatalf("panel = %d after f2; want tree", m.panel)
	}
	if !strings.Contains(m.side.View(), "|------+ 1") {
		t.Errorf("tree panel does not draw the root")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = next.(ShellModel)
	if m.panel != panelEntries {
		t.Errorf("panel = %d after second f2; want entries", m.panel)
	}
}

func TestShellModelQuit(t *testing.T) {
	m := newTestShell(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("esc did not quit")
	}
}

func TestShellModelTinyTerminal(t *testing.T) {
	m := NewShellModel(newTestSession(t))
	for _, size := range []tea.WindowSizeMsg{{Width: 5, Height: 3}, {Width: 30, Height: 10}, {Width: 30, Height: 12}} {
		next, _ := m.Update(size)
		m = next.(ShellModel)
		if m.output.Height < 1 || m.side.Height < 1 || m.output.Width < 1 || m.side.Width < 1 {
			t.Errorf("size %dx%d gives panes output %dx%d, side %dx%d", size.Width, size.Height,
				m.output.Width, m.output.Height, m.side.Width, m.side.Height)
		}
		if size.Height < minShellHeight && !strings.Contains(m.View(), "Terminal too small") {
			t.Errorf("size %dx%d did not show the resize notice", size.Width, size.Height)
		}
	}
}
