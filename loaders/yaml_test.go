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

func TestYAMLLoaderSequence(t *testing.T) {
	input := `
- key: 1
  value: one
- key: "1"
  value: 100
- key: apple
  value: 3
`
	var entries []avl.Entry
	require.NoError(t, (&YAMLLoader{}).Load(strings.NewReader(input), collect(&entries)))
	require.Len(t, entries, 3)

	assert.True(t, entries[0].Key.Equal(avl.Number(1)))
	assert.True(t, entries[0].Value.Equal(avl.Text("one")))
	assert.True(t, entries[1].Key.Equal(avl.Text("1")), "quoted scalars stay text")
	assert.True(t, entries[1].Value.Equal(avl.Number(100)))
	assert.True(t, entries[2].Key.Equal(avl.Text("apple")))
}

func TestYAMLLoaderMappingKeepsDocumentOrder(t *testing.T) {
	input := "zebra: 1\n10: ten\napple: 2\n"

	var entries []avl.Entry
	require.NoError(t, (&YAMLLoader{}).Load(strings.NewReader(input), collect(&entries)))
	require.Len(t, entries, 3)

	assert.True(t, entries[0].Key.Equal(avl.Text("zebra")))
	assert.True(t, entries[1].Key.Equal(avl.Number(10)))
	assert.True(t, entries[1].Value.Equal(avl.Text("ten")))
	assert.True(t, entries[2].Key.Equal(avl.Text("apple")))
}

func TestYAMLLoaderErrors(t *testing.T) {
	cases := map[string]string{
		"float value":   "a: 1.5\n",
		"bool key":      "true: x\n",
		"nested value":  "a: [1, 2]\n",
		"missing value": "- key: 1\n",
		"scalar item":   "- 1\n",
		"scalar root":   "just text\n",
		"broken":        "a: [1,\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			err := (&YAMLLoader{}).Load(strings.NewReader(input), func(avl.Entry) error { return nil })
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestYAMLLoaderEmptyDocument(t *testing.T) {
	called := false
	err := (&YAMLLoader{}).Load(strings.NewReader(""), func(avl.Entry) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, called)
}
