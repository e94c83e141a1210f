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

// node is a tree vertex. Each node exclusively owns its children.
type node struct {
	key    Value
	value  Value
	height int // 1 for a leaf
	left   *node
	right  *node
}

func newNode(key, value Value) *node {
	return &node{key: key, value: value, height: 1}
}

func heightOf(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

// recomputeHeight must run on every ancestor of a structural change,
// innermost first.
func (n *node) recomputeHeight() {
	n.height = max(heightOf(n.left), heightOf(n.right)) + 1
}

func (n *node) balanceFactor() int {
	return heightOf(n.left) - heightOf(n.right)
}

// rotateRight lifts y's left child into y's place and returns it.
func rotateRight(y *node) *node {
	x := y.left
	if x == nil {
		panic("avl: rotateRight on node " + y.key.String() + " without left child")
	}

	y.left = x.right
	y.recomputeHeight()
	x.right = y
	x.recomputeHeight()

	return x
}

// rotateLeft lifts x's right child into x's place and returns it.
func rotateLeft(x *node) *node {
	y := x.right
	if y == nil {
		panic("avl: rotateLeft on node " + x.key.String() + " without right child")
	}

	x.right = y.left
	x.recomputeHeight()
	y.left = x
	y.recomputeHeight()

	return y
}

// balance restores the height bound at n, assuming both subtrees already
// satisfy it. At most one double rotation is performed.
func balance(n *node) *node {
	bf := n.balanceFactor()

	// Left-heavy
	if bf > 1 {
		if n.left.balanceFactor() < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	}

	// Right-heavy
	if bf < -1 {
		if n.right.balanceFactor() > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}

	return n
}
