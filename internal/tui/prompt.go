// Package tui provides interactive terminal UI components.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bkerrors "bookjan/internal/errors"
)

// skipToken aborts entry for the current file only.
const skipToken = "!"

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// PromptAction represents the user's action in the manual-entry UI.
type PromptAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone PromptAction = iota
	// ActionEntered indicates the user typed an ISBN.
	ActionEntered
	// ActionSkipped indicates the user skipped the file.
	ActionSkipped
	// ActionStopped indicates the user stopped processing entirely.
	ActionStopped
)

// PromptResult holds the outcome of one manual-entry prompt.
type PromptResult struct {
	Action PromptAction
	ISBN   string
}

type promptModel struct {
	input    textinput.Model
	filename string
	errMsg   string
	result   PromptResult
}

func newPromptModel(filename string) *promptModel {
	input := textinput.New()
	input.Placeholder = "9784xxxxxxxxx"
	input.CharLimit = 13
	input.Width = 20
	input.Focus()

	return &promptModel{
		input:    input,
		filename: filename,
		result:   PromptResult{Action: ActionNone},
	}
}

func (m *promptModel) Init() tea.Cmd { return textinput.Blink }

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			switch {
			case value == skipToken:
				m.result = PromptResult{Action: ActionSkipped}
				return m, tea.Quit
			case validISBNShape(value):
				m.result = PromptResult{Action: ActionEntered, ISBN: value}
				return m, tea.Quit
			default:
				m.errMsg = "ISBN must be 10 or 13 digits, or ! to skip"
				return m, nil
			}
		case "ctrl+c", "esc":
			m.result = PromptResult{Action: ActionStopped}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *promptModel) View() string {
	header := promptHeaderStyle.Render(fmt.Sprintf("No barcode found in: %s", m.filename))
	help := promptHelpStyle.Render("Enter ISBN | ! skip file | Esc stop")

	lines := []string{header, m.input.View(), help}
	if m.errMsg != "" {
		lines = append(lines, promptErrorStyle.Render(m.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// validISBNShape accepts 10- or 13-digit strings. The catalog lookup
// does the real validation; this only keeps typos from leaving the
// terminal.
func validISBNShape(value string) bool {
	if len(value) != 10 && len(value) != 13 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var (
	promptHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214")).
				MarginBottom(1)

	promptHelpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))

	promptErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("161"))
)

// PromptISBN asks the user to type an ISBN for a file whose barcode
// could not be read.
func PromptISBN(filename string) (PromptResult, error) {
	m := newPromptModel(filename)
	finalModel, err := runProgram(m)
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return PromptResult{}, bkerrors.NewStopProcessingError("manual entry interrupted")
		}
		return PromptResult{}, err
	}

	if typed, ok := finalModel.(*promptModel); ok {
		return typed.result, nil
	}

	return PromptResult{}, fmt.Errorf("unexpected program result")
}
