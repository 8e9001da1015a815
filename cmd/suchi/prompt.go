package main

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptModel asks for a task description when add is called without text.
type promptModel struct {
	textInput textinput.Model
	app       *app
	quitting  bool
}

func runAddPrompt(a *app) {
	p := tea.NewProgram(newPromptModel(a))
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func newPromptModel(a *app) promptModel {
	ti := textinput.New()
	ti.Placeholder = "Enter task description"
	ti.Focus()
	ti.Width = 50

	return promptModel{
		textInput: ti,
		app:       a,
	}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.textInput.Value() != "" {
				if err := m.app.add(m.textInput.Value()); err != nil {
					log.Printf("Failed to add task: %v", err)
				}
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf(
		"Enter task description:\n\n%s\n\nPress Ctrl+C to quit",
		m.textInput.View(),
	)
}
