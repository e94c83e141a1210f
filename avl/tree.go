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

// Tree is an ordered map from Value keys to Value values.
type Tree struct {
	root  *node
	count int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Len is the number of keys stored.
func (tree *Tree) Len() int {
	return tree.count
}

func (tree *Tree) IsEmpty() bool {
	return tree.root == nil
}

// Height is 0 for an empty tree and 1 for a single node.
func (tree *Tree) Height() int {
	return heightOf(tree.root)
}

// RootKey returns the key currently held at the root.
func (tree *Tree) RootKey() (Value, bool) {
	if tree.root == nil {
		return Value{}, false
	}
	return tree.root.key, true
}

// Clear drops every node.
func (tree *Tree) Clear() {
	tree.root = nil
	tree.count = 0
}

// Insert stores value under key, replacing the value of an existing key.
func (tree *Tree) Insert(key, value Value) {
	var added bool
	tree.root, added = insertNode(tree.root, key, value)
	if added {
		tree.count++
	}
}

func insertNode(n *node, key, value Value) (*node, bool) {
	if n == nil {
		return newNode(key, value), true
	}

	var added bool
	switch c := key.Compare(n.key); {
	case c < 0:
		n.left, added = insertNode(n.left, key, value)
	case c > 0:
		n.right, added = insertNode(n.right, key, value)
	default:
		n.value = value
		return n, false
	}

	n.recomputeHeight()
	return balance(n), added
}

// Search returns a copy of the value stored under key.
func (tree *Tree) Search(key Value) (Value, bool) {
	n := tree.root
	for n != nil {
		switch c := key.Compare(n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is present.
func (tree *Tree) Has(key Value) bool {
	_, ok := tree.Search(key)
	return ok
}

// Remove deletes key and returns the value it held.
func (tree *Tree) Remove(key Value) (Value, bool) {
	var (
		removed Value
		found   bool
	)
	tree.root, removed, found = removeNode(tree.root, key)
	if found {
		tree.count--
	}
	return removed, found
}

func removeNode(n *node, key Value) (*node, Value, bool) {
	if n == nil {
		return nil, Value{}, false
	}

	var (
		removed Value
		found   bool
	)
	switch c := key.Compare(n.key); {
	case c < 0:
		n.left, removed, found = removeNode(n.left, key)
	case c > 0:
		n.right, removed, found = removeNode(n.right, key)
	default:
		removed, found = n.value, true
		if n.left == nil {
			return n.right, removed, true
		}
		if n.right == nil {
			return n.left, removed, true
		}
		// Two children: the in-order successor's entry moves into n.
		var successor *node
		n.right, successor = removeMin(n.right)
		n.key, n.value = successor.key, successor.value
	}

	if !found {
		return n, removed, false
	}

	n.recomputeHeight()
	return balance(n), removed, true
}

// removeMin detaches the leftmost node of the subtree at n, rebalancing
// each ancestor on the way back up.
func removeMin(n *node) (*node, *node) {
	if n.left == nil {
		rest := n.right
		n.right = nil
		return rest, n
	}

	var least *node
	n.left, least = removeMin(n.left)
	n.recomputeHeight()
	return balance(n), least
}
