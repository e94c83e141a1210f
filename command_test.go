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
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"insert 1 2", []string{"insert", "1", "2"}},
		{`insert "new york" 8336817`, []string{"insert", "new york", "8336817"}},
		{`get 'a b'`, []string{"get", "a b"}},
		{"   dump   ", []string{"dump"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		got, err := splitCommand(tt.input)
		if err != nil {
			t.Fatalf("splitCommand(%q) returned error: %v", tt.input, err)
		}
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitCommand(%q) = %#v; want %#v", tt.input, got, tt.want)
		}
	}
}

func TestSplitCommandShellOperators(t *testing.T) {
	for _, input := range []string{"insert q a&b", "insert k v; clear", "get a|b", "insert a>b 1", "insert a<b 1"} {
		if _, err := splitCommand(input); !errors.Is(err, ErrUsage) {
			t.Errorf("splitCommand(%q) error = %v; want %v", input, err, ErrUsage)
		}
	}

	got, err := splitCommand(`insert q 'a&b'`)
	if err != nil {
		t.Fatalf("quoted operator returned error: %v", err)
	}
	if want := []string{"insert", "q", "a&b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("splitCommand = %#v; want %#v", got, want)
	}
}

func TestLookupCommand(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"insert", "insert", true},
		{"SET", "insert", true},
		{"del", "remove", true},
		{"search", "get", true},
		{"nope", "", false},
	}

	for _, tt := range tests {
		def, ok := lookupCommand(tt.name)
		if ok != tt.ok {
			t.Errorf("lookupCommand(%q) ok = %t; want %t", tt.name, ok, tt.ok)
			continue
		}
		if ok && def.name != tt.want {
			t.Errorf("lookupCommand(%q) = %q; want %q", tt.name, def.name, tt.want)
		}
	}
}

func TestCommandReferenceListsEveryCommand(t *testing.T) {
	ref := commandReference()
	for _, def := range commandTable {
		if !strings.Contains(ref, "`"+def.usage()+"`") {
			t.Errorf("command reference is missing %q", def.usage())
		}
	}
}
