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
	"errors"
	"fmt"
)

// ErrCorrupt is wrapped by every error returned from Verify.
var ErrCorrupt = errors.New("avl: corrupt tree")

// Verify walks the whole tree and checks the cached heights, the AVL
// balance bound, strict key order and the entry count. It is O(n) and
// meant for tests and diagnostics.
func (tree *Tree) Verify() error {
	count, _, err := verifyNode(tree.root, nil, nil)
	if err != nil {
		return err
	}
	if count != tree.count {
		return fmt.Errorf("%w: counted %d nodes, tree records %d", ErrCorrupt, count, tree.count)
	}
	return nil
}

// verifyNode returns the node count and the true height of the subtree.
// lo and hi are exclusive key bounds inherited from the ancestors.
func verifyNode(n *node, lo, hi *Value) (int, int, error) {
	if n == nil {
		return 0, 0, nil
	}
	if lo != nil && n.key.Compare(*lo) <= 0 {
		return 0, 0, fmt.Errorf("%w: key %v not above lower bound %v", ErrCorrupt, n.key, *lo)
	}
	if hi != nil && n.key.Compare(*hi) >= 0 {
		return 0, 0, fmt.Errorf("%w: key %v not below upper bound %v", ErrCorrupt, n.key, *hi)
	}

	lc, lh, err := verifyNode(n.left, lo, &n.key)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := verifyNode(n.right, &n.key, hi)
	if err != nil {
		return 0, 0, err
	}

	height := max(lh, rh) + 1
	if n.height != height {
		return 0, 0, fmt.Errorf("%w: node %v caches height %d, actual %d", ErrCorrupt, n.key, n.height, height)
	}
	if bf := lh - rh; bf > 1 || bf < -1 {
		return 0, 0, fmt.Errorf("%w: node %v has balance factor %+d", ErrCorrupt, n.key, bf)
	}
	return lc + rc + 1, height, nil
}
