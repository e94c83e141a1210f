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
	"iter"
	"strings"
)

// Entry is one key/value pair.
type Entry struct {
	Key   Value
	Value Value
}

func (e Entry) String() string {
	return "{ key: " + e.Key.String() + ", value: " + e.Value.String() + " }"
}

// BulkInsert inserts entries in order. A later entry with the same key as
// an earlier one wins.
func (tree *Tree) BulkInsert(entries ...Entry) {
	for _, e := range entries {
		tree.Insert(e.Key, e.Value)
	}
}

// Dump returns every entry in ascending key order.
func (tree *Tree) Dump() []Entry {
	entries := make([]Entry, 0, tree.count)
	inOrder(tree.root, func(n *node) bool {
		entries = append(entries, Entry{Key: n.key, Value: n.value})
		return true
	})
	return entries
}

// All iterates entries in ascending key order.
func (tree *Tree) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		inOrder(tree.root, func(n *node) bool {
			return yield(n.key, n.value)
		})
	}
}

// Walk calls fn for each entry in ascending key order until fn returns false.
func (tree *Tree) Walk(fn func(key, value Value) bool) {
	inOrder(tree.root, func(n *node) bool {
		return fn(n.key, n.value)
	})
}

// inOrder visits left, self, right and reports whether the walk ran to
// completion.
func inOrder(n *node, visit func(*node) bool) bool {
	if n == nil {
		return true
	}
	if !inOrder(n.left, visit) {
		return false
	}
	if !visit(n) {
		return false
	}
	return inOrder(n.right, visit)
}

// Min returns the entry with the lowest key.
func (tree *Tree) Min() (Entry, bool) {
	n := tree.root
	if n == nil {
		return Entry{}, false
	}
	for n.left != nil {
		n = n.left
	}
	return Entry{Key: n.key, Value: n.value}, true
}

// Max returns the entry with the highest key.
func (tree *Tree) Max() (Entry, bool) {
	n := tree.root
	if n == nil {
		return Entry{}, false
	}
	for n.right != nil {
		n = n.right
	}
	return Entry{Key: n.key, Value: n.value}, true
}

// Render formats entries as "{ key: K, value: V }, ...".
func Render(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	return b.String()
}

func (tree *Tree) String() string {
	return Render(tree.Dump())
}
