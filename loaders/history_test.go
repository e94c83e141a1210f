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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/avlmap/avl"
)

func TestReadHistoryZsh(t *testing.T) {
	input := ": 1673291850:0;ls -la\n: 1673291900:0;git status\nplain command\n: bogus\n"

	history, err := ReadHistory(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, history, 4)

	assert.Equal(t, "ls -la", history[0].Command)
	require.NotNil(t, history[0].Timestamp)
	assert.Equal(t, int64(1673291850), history[0].Timestamp.Unix())
	assert.Equal(t, "plain command", history[2].Command)
	assert.Nil(t, history[2].Timestamp)
	assert.Equal(t, ": bogus", history[3].Command)
}

func TestReadHistoryBash(t *testing.T) {
	input := "#1673291850\nmake test\necho hi\n# a comment\n"

	history, err := ReadHistory(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, history, 3)

	require.NotNil(t, history[0].Timestamp)
	assert.Equal(t, "make test", history[0].Command)
	assert.Nil(t, history[1].Timestamp, "timestamps only stamp the next command")
	assert.Equal(t, "# a comment", history[2].Command)
}

func TestHistoryLoaderCountsCommands(t *testing.T) {
	input := strings.Join([]string{
		": 1:0;ls",
		": 2:0;git status",
		": 3:0;ls",
		": 4:0;",
		"ls",
	}, "\n")

	var entries []avl.Entry
	require.NoError(t, (&HistoryLoader{}).Load(strings.NewReader(input), collect(&entries)))
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Key.Equal(avl.Text("git status")))
	assert.True(t, entries[0].Value.Equal(avl.Number(1)))
	assert.True(t, entries[1].Key.Equal(avl.Text("ls")))
	assert.True(t, entries[1].Value.Equal(avl.Number(3)))
}

func TestHistoryLoaderLastRun(t *testing.T) {
	input := strings.Join([]string{
		": 100:0;ls",
		": 300:0;git status",
		": 200:0;ls",
		"make",
	}, "\n")

	var entries []avl.Entry
	require.NoError(t, (&HistoryLoader{LastRun: true}).Load(strings.NewReader(input), collect(&entries)))
	require.Len(t, entries, 3)

	assert.True(t, entries[0].Key.Equal(avl.Text("git status")))
	assert.True(t, entries[0].Value.Equal(avl.Number(300)))
	assert.True(t, entries[1].Key.Equal(avl.Text("ls")))
	assert.True(t, entries[1].Value.Equal(avl.Number(200)), "latest run wins over a later line with an older stamp")
	assert.True(t, entries[2].Key.Equal(avl.Text("make")))
	assert.True(t, entries[2].Value.Equal(avl.Number(0)))
}

func TestHistoryLoaderFormats(t *testing.T) {
	manager := NewManager()

	l, err := manager.ForFormat("history-last")
	require.NoError(t, err)
	assert.Equal(t, "history-last", l.Name())

	l, err = manager.ForPath("/home/me/.zsh_history")
	require.NoError(t, err)
	assert.Equal(t, "history", l.Name())
}

func TestHistoryLoaderReadErrorKeepsEarlierLines(t *testing.T) {
	input := "ls\nls\n" + strings.Repeat("x", 1024*1024+1) + "\npwd\n"

	var entries []avl.Entry
	err := (&HistoryLoader{}).Load(strings.NewReader(input), collect(&entries))

	require.Error(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Key.Equal(avl.Text("ls")))
	assert.True(t, entries[0].Value.Equal(avl.Number(2)))
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Setenv("SHELL", "/bin/zsh")
	p, err := HistoryPath()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, ".zsh_history"))

	t.Setenv("SHELL", "/usr/bin/fish")
	_, err = HistoryPath()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
