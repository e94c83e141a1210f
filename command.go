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
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// commandDef describes one session command.
type commandDef struct {
	name    string
	aliases []string
	args    string
	minArgs int
	maxArgs int
	summary string
	run     func(s *Session, args []string) (string, error)
}

var commandTable []commandDef

func init() {
	commandTable = []commandDef{
		{name: "insert", aliases: []string{"set", "put"}, args: "KEY VALUE", minArgs: 2, maxArgs: 2,
			summary: "insert or update a key", run: (*Session).cmdInsert},
		{name: "get", aliases: []string{"search"}, args: "KEY", minArgs: 1, maxArgs: 1,
			summary: "print the value stored under a key", run: (*Session).cmdGet},
		{name: "has", args: "KEY", minArgs: 1, maxArgs: 1,
			summary: "report whether a key is present", run: (*Session).cmdHas},
		{name: "remove", aliases: []string{"del", "delete"}, args: "KEY", minArgs: 1, maxArgs: 1,
			summary: "remove a key and print its value", run: (*Session).cmdRemove},
		{name: "dump", summary: "list all entries in key order", run: (*Session).cmdDump},
		{name: "print", summary: "draw the tree", run: (*Session).cmdPrint},
		{name: "len", summary: "number of entries", run: (*Session).cmdLen},
		{name: "height", summary: "height of the tree", run: (*Session).cmdHeight},
		{name: "verify", summary: "check the balance and order invariants", run: (*Session).cmdVerify},
		{name: "stats", summary: "tree and filter statistics", run: (*Session).cmdStats},
		{name: "clear", summary: "drop every entry", run: (*Session).cmdClear},
		{name: "load", args: "[PATH [FORMAT]]", minArgs: 0, maxArgs: 2,
			summary: "bulk insert entries from a file, or your shell history", run: (*Session).cmdLoad},
		{name: "help", summary: "list commands", run: (*Session).cmdHelp},
	}
}

func lookupCommand(name string) (*commandDef, bool) {
	name = strings.ToLower(name)
	for i := range commandTable {
		def := &commandTable[i]
		if def.name == name {
			return def, true
		}
		for _, alias := range def.aliases {
			if alias == name {
				return def, true
			}
		}
	}
	return nil, false
}

func (def *commandDef) usage() string {
	if def.args == "" {
		return def.name
	}
	return def.name + " " + def.args
}

// splitCommand splits a full command string into parts. Shell operators
// must be quoted; one command per line.
func splitCommand(fullCmd string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(fullCmd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", fullCmd, err)
	}
	// Position is the rune index where the parser stopped, -1 when it read everything
	if parser.Position >= 0 {
		return nil, fmt.Errorf("%w: unquoted %q at column %d, quote the token",
			ErrUsage, []rune(fullCmd)[parser.Position], parser.Position+1)
	}
	return args, nil
}

// commandReference renders the command table as markdown.
func commandReference() string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	for _, def := range commandTable {
		fmt.Fprintf(&b, "* `%s` %s", def.usage(), def.summary)
		if len(def.aliases) > 0 {
			fmt.Fprintf(&b, " (also: %s)", strings.Join(def.aliases, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nKeys and values that look like decimal integers are numbers, anything else is text. ")
	b.WriteString("Quote text containing spaces or any of `; & | < >`: `insert \"new york\" 8336817`.\n")
	return b.String()
}
