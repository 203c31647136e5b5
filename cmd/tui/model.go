package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldEmail = iota
	fieldPassword
)

// keyMap defines the key bindings for the sign-in form
type keyMap struct {
	Submit key.Binding
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// LoginModel is a Bubble Tea model collecting an email and a password.
type LoginModel struct {
	inputs     []textinput.Model
	focusIndex int

	// message is shown under the form, e.g. a missing field hint
	message string

	submitted bool
	cancelled bool
}

// NewLoginModel builds the form, prefilling email when known.
func NewLoginModel(email string) LoginModel {
	inputs := make([]textinput.Model, 2)

	inputs[fieldEmail] = textinput.New()
	inputs[fieldEmail].Placeholder = "you@example.com"
	inputs[fieldEmail].CharLimit = 256
	inputs[fieldEmail].Width = 40
	inputs[fieldEmail].Prompt = "📧 "
	inputs[fieldEmail].PromptStyle = inputLabelStyle
	inputs[fieldEmail].Cursor.Style = cursorStyle
	inputs[fieldEmail].SetValue(email)

	inputs[fieldPassword] = textinput.New()
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldPassword].CharLimit = 256
	inputs[fieldPassword].Width = 40
	inputs[fieldPassword].Prompt = "🔑 "
	inputs[fieldPassword].PromptStyle = inputLabelStyle
	inputs[fieldPassword].Cursor.Style = cursorStyle
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	m := LoginModel{inputs: inputs}
	if strings.TrimSpace(email) != "" {
		m.focusIndex = fieldPassword
	}
	m.inputs[m.focusIndex].Focus()

	return m
}

// Init starts the cursor blink.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and forwards the rest to the focused input.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Next):
		return m.focus((m.focusIndex + 1) % len(m.inputs)), nil

	case key.Matches(keyMsg, keys.Prev):
		return m.focus((m.focusIndex + len(m.inputs) - 1) % len(m.inputs)), nil

	case key.Matches(keyMsg, keys.Submit):
		if m.focusIndex == fieldEmail && m.Email() != "" && m.Password() == "" {
			return m.focus(fieldPassword), nil
		}
		if m.Email() == "" || m.Password() == "" {
			m.message = "email and password are both required"
			return m, nil
		}
		m.submitted = true
		return m, tea.Quit
	}

	return m.updateFocused(msg)
}

func (m LoginModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m LoginModel) focus(index int) LoginModel {
	m.focusIndex = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	m.message = ""
	return m
}

// View renders the form.
func (m LoginModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Sign in to miri.dev") + "\n")

	labels := []string{"Email:", "Password:"}
	for i, input := range m.inputs {
		sb.WriteString(inputLabelStyle.Render(labels[i]) + "\n")
		sb.WriteString(input.View() + "\n\n")
	}
	if m.message != "" {
		sb.WriteString(errorStyle.Render(m.message) + "\n")
	}
	sb.WriteString(helpStyle.Render("tab: next field • enter: sign in • esc: cancel"))

	return boxStyle.Render(sb.String())
}

// Email returns the trimmed email value.
func (m LoginModel) Email() string {
	return strings.TrimSpace(m.inputs[fieldEmail].Value())
}

// Password returns the password value.
func (m LoginModel) Password() string {
	return m.inputs[fieldPassword].Value()
}

// Submitted reports whether the user confirmed the form.
func (m LoginModel) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user aborted the form.
func (m LoginModel) Cancelled() bool {
	return m.cancelled
}

// Hint renders a muted one-line hint.
func Hint(text string) string {
	return subtitleStyle.Render(text)
}
