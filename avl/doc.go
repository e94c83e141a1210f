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

// Package avl implements an in-memory ordered map on top of an AVL tree.
//
// Keys and values are Value instances, a small tagged union holding either an
// integer or a string. Keys are ordered by Value.Compare: numbers by magnitude,
// strings lexicographically, and every number before every string.
//
// Insert, Search and Remove are O(log n). Inserting an existing key replaces
// its value. A missing key is reported through a boolean, never an error.
//
// A Tree is not safe for concurrent use. Callers sharing a tree between
// goroutines must serialise access with a single lock around the whole tree.
package avl
