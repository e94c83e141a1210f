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
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// sidePanel selects what the right-hand pane shows.
type sidePanel int

const (
	panelEntries sidePanel = iota
	panelTree
	panelHelp
)

// Focus targets, cycled with tab.
const (
	focusInput = iota
	focusOutput
	focusSide
)

// Below this size View shows a resize notice instead of the panes.
const (
	minShellWidth  = 20
	minShellHeight = 12
)

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	err error
}

// ShellModel is the Bubble Tea state of the interactive shell.
type ShellModel struct {
	ready bool

	input  textinput.Model
	output viewport.Model
	side   viewport.Model

	session *Session

	focus      int
	panel      sidePanel
	transcript []string
	lastOutput string
	status     string

	// submitted lines, oldest first; historyPos == len(history) means a fresh line
	history    []string
	historyPos int

	styles          *Styles
	glamourRenderer *glamour.TermRenderer
	helpRendered    string

	width  int
	height int
}

// Styles holds all the styling for the shell.
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	InputPrompt    lipgloss.Style
	Command        lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

func NewStyles() *Styles {
	scheme := GetColorScheme()
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.BorderFocus).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.Border),
		Title: lipgloss.NewStyle().
			Foreground(scheme.Primary).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(scheme.Accent).
			Bold(true),
		Command: lipgloss.NewStyle().
			Foreground(scheme.Accent),
		HelpKey: lipgloss.NewStyle().
			Foreground(scheme.TextMuted).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(scheme.TextMuted),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(scheme.Success).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(scheme.Error).
			Bold(true),
	}
}

func NewShellModel(session *Session) ShellModel {
	styles := NewStyles()

	ti := textinput.New()
	ti.Placeholder = "insert KEY VALUE, get KEY, remove KEY, dump, help..."
	ti.Prompt = "avl> "
	ti.PromptStyle = styles.InputPrompt
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 50

	output := viewport.New(0, 0)
	output.SetContent("Type a command and press enter. F1 shows the command reference.")

	side := viewport.New(0, 0)

	m := ShellModel{
		input:   ti,
		output:  output,
		side:    side,
		session: session,
		focus:   focusInput,
		panel:   panelEntries,
		styles:  styles,
	}
	m.refreshSide()
	return m
}

func (m ShellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true

	case copiedMsg:
		if msg.err != nil {
			m.status = m.styles.ErrorMessage.Render("copy failed: " + msg.err.Error())
		} else {
			m.status = m.styles.SuccessMessage.Render("📋 copied last output")
		}
	}

	return m, nil
}

func (m ShellModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % 3
		if m.focus == focusInput {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil
	case "f1":
		if m.panel == panelHelp {
			m.panel = panelEntries
		} else {
			m.panel = panelHelp
		}
		m.refreshSide()
		return m, nil
	case "f2":
		if m.panel == panelTree {
			m.panel = panelEntries
		} else {
			m.panel = panelTree
		}
		m.refreshSide()
		return m, nil
	case "ctrl+y":
		if m.lastOutput == "" {
			return m, nil
		}
		text := m.lastOutput
		return m, func() tea.Msg {
			return copiedMsg{err: clipboard.WriteAll(text)}
		}
	case "pgup":
		m.focusedViewport().LineUp(m.focusedViewport().Height)
		return m, nil
	case "pgdown":
		m.focusedViewport().LineDown(m.focusedViewport().Height)
		return m, nil
	case "up":
		if m.focus == focusInput {
			m.recall(-1)
		} else {
			m.focusedViewport().LineUp(1)
		}
		return m, nil
	case "down":
		if m.focus == focusInput {
			m.recall(1)
		} else {
			m.focusedViewport().LineDown(1)
		}
		return m, nil
	case "enter":
		if m.focus == focusInput {
			m.submit()
			return m, nil
		}
	}

	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// focusedViewport is the pane scrolled by navigation keys; the input line
// scrolls the transcript.
func (m *ShellModel) focusedViewport() *viewport.Model {
	if m.focus == focusSide {
		return &m.side
	}
	return &m.output
}

// recall steps through submitted lines like a shell history.
func (m *ShellModel) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	pos := m.historyPos + step
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.history) {
		m.historyPos = len(m.history)
		m.input.SetValue("")
		return
	}
	m.historyPos = pos
	m.input.SetValue(m.history[pos])
	m.input.CursorEnd()
}

func (m *ShellModel) submit() {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return
	}

	m.history = append(m.history, line)
	m.historyPos = len(m.history)
	m.status = ""

	m.transcript = append(m.transcript, m.styles.Command.Render("avl> "+line))
	out, err := m.session.Execute(line)
	if err != nil {
		m.transcript = append(m.transcript, m.styles.ErrorMessage.Render("error: "+err.Error()))
	} else if out != "" {
		m.transcript = append(m.transcript, out)
		m.lastOutput = out
	}

	m.output.SetContent(strings.Join(m.transcript, "\n"))
	m.output.GotoBottom()
	m.refreshSide()
}

func (m *ShellModel) refreshSide() {
	switch m.panel {
	case panelHelp:
		m.side.SetContent(m.renderHelp())
	case panelTree:
		out, _ := m.session.Execute("print")
		m.side.SetContent(out)
	default:
		entries := m.session.Entries()
		if len(entries) == 0 {
			m.side.SetContent("(empty)")
			return
		}
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = e.String()
		}
		m.side.SetContent(strings.Join(lines, "\n"))
	}
}

// renderHelp renders the command reference once, on first use.
func (m *ShellModel) renderHelp() string {
	if m.helpRendered != "" {
		return m.helpRendered
	}

	ref := commandReference()
	if m.glamourRenderer == nil {
		m.glamourRenderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(72),
		)
	}
	if m.glamourRenderer == nil {
		return ref
	}
	rendered, err := m.glamourRenderer.Render(ref)
	if err != nil {
		return ref
	}
	m.helpRendered = rendered
	return rendered
}

func (m *ShellModel) updateLayout() {
	inputHeight := 3
	bodyHeight := m.height - inputHeight - 6
	leftWidth := (m.width * 6 / 10) - 1
	rightWidth := m.width - leftWidth - 3

	// tiny terminals get the "too small" notice, but the panes must stay valid
	m.input.Width = max(1, leftWidth-8)
	m.output.Width = max(1, leftWidth-2)
	m.output.Height = max(1, bodyHeight-2)
	m.side.Width = max(1, rightWidth-2)
	m.side.Height = max(1, bodyHeight+inputHeight)
}

func (m ShellModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < minShellWidth || m.height < minShellHeight {
		return "Terminal too small. Please resize your terminal."
	}

	inputHeight := 3
	bodyHeight := m.height - inputHeight - 6
	leftWidth := (m.width * 6 / 10) - 1
	rightWidth := m.width - leftWidth - 3

	inputBox := m.box(m.focus == focusInput, leftWidth, inputHeight, " ⌨️  Command ", m.input.View())
	outputBox := m.box(m.focus == focusOutput, leftWidth, bodyHeight, " 📜 Output ", m.output.View())

	var sideTitle string
	switch m.panel {
	case panelHelp:
		sideTitle = " 📖 Commands "
	case panelTree:
		sideTitle = fmt.Sprintf(" 🌲 Tree (height %d) ", m.session.tree.Height())
	default:
		sideTitle = fmt.Sprintf(" 📋 Entries (%d) ", m.session.Len())
	}
	sideBox := m.box(m.focus == focusSide, rightWidth, bodyHeight+inputHeight+2, sideTitle, m.side.View())

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, inputBox, outputBox),
		sideBox,
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderFooter())
}

func (m ShellModel) box(focused bool, width, height int, title, content string) string {
	style := m.styles.BorderBlurred
	if focused {
		style = m.styles.BorderFocused
	}
	return style.
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(width-4).Render(title),
			content,
		))
}

func (m ShellModel) renderFooter() string {
	keys := []string{"enter", "tab", "f1", "f2", "ctrl+y", "esc"}
	descs := []string{"run", "switch focus", "commands", "tree view", "copy output", "quit"}

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	footer := strings.Join(helpEntries, " • ")
	if m.status != "" {
		footer += "   " + m.status
	}
	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(footer)
}

func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "📋 Copied %s%d bytes%s to clipboard.\n", Green, len(text), Reset)
	return nil
}

// runShellApp starts the interactive shell on session.
func runShellApp(session *Session) error {
	InitializeColors()

	program := tea.NewProgram(
		NewShellModel(session),
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
