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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cybrota/avlmap/loaders"
)

var version = "dev"

func main() {
	asciiLogo := `
 █████╗ ██╗   ██╗██╗     ███╗   ███╗ █████╗ ██████╗
██╔══██╗██║   ██║██║     ████╗ ████║██╔══██╗██╔══██╗
███████║██║   ██║██║     ██╔████╔██║███████║██████╔╝
██╔══██║╚██╗ ██╔╝██║     ██║╚██╔╝██║██╔══██║██╔═══╝
██║  ██║ ╚████╔╝ ███████╗██║ ╚═╝ ██║██║  ██║██║
╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝
Ordered key/value map on a self-balancing AVL tree [Version: %s%s%s]

`

	var config *Config

	var rootCmd = &cobra.Command{
		Use:     "avlmap",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config, _ = LoadConfig()
			setupLogging(config)
			InitializeColors()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := runShell(config, nil); err != nil {
				logrus.Fatalf("Error running shell: %v", err)
			}
		},
	}

	var cmdShell = &cobra.Command{
		Use:   "shell [FILE...]",
		Short: "Open the interactive shell",
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runShell(config, args); err != nil {
				logrus.Fatalf("Error running shell: %v", err)
			}
		},
	}

	var cmdExec = &cobra.Command{
		Use:   "exec [FILE]",
		Short: "Run session commands from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			in := io.Reader(os.Stdin)
			var script *os.File
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					logrus.Fatalf("Error opening script: %v", err)
				}
				script = f
				in = f
			}

			keepGoing, _ := cmd.Flags().GetBool("keep-going")
			failed := execScript(NewSession(config), in, os.Stdout, os.Stderr, keepGoing)
			if script != nil {
				script.Close()
			}
			if failed > 0 {
				os.Exit(1)
			}
		},
	}
	cmdExec.Flags().Bool("keep-going", false, "continue after a failing command")

	var cmdLoad = &cobra.Command{
		Use:   "load [FILE...]",
		Short: "Bulk load files and print the entries in key order",
		Args: func(cmd *cobra.Command, args []string) error {
			if history, _ := cmd.Flags().GetBool("history"); history {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		Run: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString("format")
			copyOut, _ := cmd.Flags().GetBool("copy")
			drawTree, _ := cmd.Flags().GetBool("tree")
			history, _ := cmd.Flags().GetBool("history")

			session := NewSession(config)
			if config.Loader.ShowProgress {
				session.SetProgress(os.Stderr)
			}
			if history {
				historyFormat := "history"
				if strings.HasPrefix(format, "history") {
					historyFormat = format
				}
				if path, _, err := session.LoadHistory(historyFormat); err != nil {
					logrus.Fatalf("Error loading history %s: %v", path, err)
				}
			}
			for _, path := range args {
				if _, err := session.LoadFile(path, format); err != nil {
					logrus.Fatalf("Error loading %s: %v", path, err)
				}
			}

			out := session.Dump()
			if drawTree {
				out, _ = session.Execute("print")
			}
			fmt.Println(out)

			if copyOut {
				if err := copyToClipboard(out); err != nil {
					logrus.Errorf("Failed to copy to clipboard: %v", err)
				}
			}
		},
	}
	cmdLoad.Flags().String("format", "", fmt.Sprintf("input format, inferred from the file name when empty (%s)",
		strings.Join(loaders.NewManager().Formats(), ", ")))
	cmdLoad.Flags().Bool("copy", false, "copy the output to the clipboard")
	cmdLoad.Flags().Bool("tree", false, "draw the tree instead of listing entries")
	cmdLoad.Flags().Bool("history", false, "also load your shell history (command -> run count, or last run with --format history-last)")

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show avlmap configuration settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displaySettings()
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print avlmap usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avlmap version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	// colors are known only after InitializeColors, so the logo is rendered lazily
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		InitializeColors()
		fmt.Printf(asciiLogo, Green, version, Reset)
		fmt.Println(cmd.UsageString())
	})

	rootCmd.AddCommand(cmdShell, cmdExec, cmdLoad, cmdSettings, cmdUsage, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runShell(config *Config, files []string) error {
	session := NewSession(config)
	for _, path := range files {
		if _, err := session.LoadFile(path, ""); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return runShellApp(session)
}

// execScript runs one command per line of in, writing outputs to out and
// errors to errOut. Blank lines and '#' comments are skipped. It returns the
// number of failed commands; without keepGoing it stops at the first.
func execScript(session *Session, in io.Reader, out, errOut io.Writer, keepGoing bool) int {
	scanner := bufio.NewScanner(in)
	failed := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result, err := session.Execute(line)
		if err != nil {
			failed++
			fmt.Fprintf(errOut, "%sline %d: %v%s\n", Error, lineNo, err, Reset)
			if !keepGoing {
				return failed
			}
			continue
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "%sreading script: %v%s\n", Error, err, Reset)
		failed++
	}
	return failed
}
