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
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **avlmap %s**

An ordered key/value map on a self-balancing AVL tree, with an interactive shell and bulk loaders.
Keys and values are numbers or text; every number sorts before every text.

Built with Go %s

# 1. Commands
* **avlmap** or **avlmap shell [FILE...]**: open the interactive shell, optionally preloading files
* **avlmap exec [FILE]**: run session commands from a file, or stdin, one per line
* **avlmap load FILE...**: bulk load files and print the entries in key order (--history adds your shell history)
* **avlmap settings**: show the configuration in ~/.avlmap.yaml
* **avlmap usage**: this guide

# 2. Session commands
* insert KEY VALUE (also set, put)
* get KEY, has KEY, remove KEY (also del)
* dump, print, len, height, stats, verify, clear
* load [PATH [FORMAT]] (no path loads your shell history)

Tokens that look like decimal integers are numbers, anything else is text.
Quote text containing spaces or ; & | < >, e.g. insert "new york" 8336817

# 3. File formats
* **kv** (.kv, .txt): one KEY VALUE pair per line, # comments
* **yaml** (.yaml, .yml): a mapping, or a list of {key, value} items
* **history** (.zsh_history, .bash_history): command frequencies from shell history
* **history-last**: the latest run time of each command, as a unix epoch

# Please be aware
* Copy to clipboard on Linux or Unix requires 'xclip' or 'xsel' to be installed

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
