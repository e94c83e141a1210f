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
	"fmt"
	"io"
)

type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Print draws the tree sideways on w, right subtree on top, and returns
// the depth reached. withValues adds each node's value and cached height.
func (tree *Tree) Print(w io.Writer, withValues bool) int {
	return printNode(w, tree.root, "", rootBranch, withValues)
}

func printNode(w io.Writer, n *node, prefix string, br branch, withValues bool) int {
	if n == nil {
		return 0
	}

	rd := 0
	if n.right != nil {
		pad := "       "
		if br == leftBranch {
			pad = "|      "
		}
		rd = printNode(w, n.right, prefix+pad, rightBranch, withValues)
	}

	switch br {
	case rootBranch:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	if withValues {
		fmt.Fprintf(w, "%v → %v h=%d\n", n.key, n.value, n.height)
	} else {
		fmt.Fprintf(w, "%v\n", n.key)
	}

	ld := 0
	if n.left != nil {
		pad := "       "
		if br == rightBranch {
			pad = "|      "
		}
		ld = printNode(w, n.left, prefix+pad, leftBranch, withValues)
	}

	return 1 + max(ld, rd)
}
