package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinayprograms/suchi/internal/config"
	"github.com/vinayprograms/suchi/internal/editor"
	"github.com/vinayprograms/suchi/internal/store"
	"github.com/vinayprograms/suchi/internal/task"
)

type uiStyles struct {
	number  lipgloss.Style
	date    lipgloss.Style
	tag     lipgloss.Style
	heading lipgloss.Style
}

var styles uiStyles

func initStyles(cfg *config.Config) {
	styles = uiStyles{
		number:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Colors.NumberColor)),
		date:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Colors.DateColor)).Background(lipgloss.Color(cfg.Colors.DateBgColor)),
		tag:     lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Colors.TagColor)).Background(lipgloss.Color(cfg.Colors.TagBgColor)),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Colors.HeadingColor)).Bold(true),
	}
}

// taskItem is one task line in the browse list. index is its 1-based line
// number in the file, which stays valid while filtering.
type taskItem struct {
	index int
	line  string
}

func (i taskItem) FilterValue() string {
	return i.line
}

func (i taskItem) Title() string {
	date, text := task.SplitDate(i.line)

	var parts []string
	parts = append(parts, styles.number.Render(fmt.Sprintf("%3d", i.index)))
	if date != "" {
		parts = append(parts, styles.date.Render(fmt.Sprintf(" %s ", date)))
	}
	parts = append(parts, styleTags(text))

	return strings.Join(parts, " ")
}

func (i taskItem) Description() string { return "" }

// styleTags highlights @tag tokens in place, leaving spacing untouched.
func styleTags(text string) string {
	words := strings.Split(text, " ")
	for i, word := range words {
		if len(word) > 1 && word[0] == '@' {
			words[i] = styles.tag.Render(word)
		}
	}
	return strings.Join(words, " ")
}

type uiModel struct {
	list     list.Model
	app      *app
	quitting bool
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle quit keys before list processes them
		if msg.String() == "ctrl+c" || msg.String() == "esc" || (msg.String() == "q" && m.list.FilterState() != list.Filtering) {
			m.quitting = true
			return m, tea.Quit
		}

		if msg.String() == "enter" {
			if i, ok := m.list.SelectedItem().(taskItem); ok {
				return m, openEditorCmd(m.app, i.index)
			}
		}
	case editorFinishedMsg:
		if msg.err != nil {
			log.Printf("Editor error: %v", msg.err)
		}
		m.app.autocommit("edit tasks")

		// Reload tasks after editing
		lines, err := store.Read(m.app.cfg.File)
		if err != nil {
			return m, tea.Quit
		}
		m.list.SetItems(itemsFromLines(lines))
		return m, nil
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m uiModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

type editorFinishedMsg struct{ err error }

func openEditorCmd(a *app, line int) tea.Cmd {
	c := editor.ExecSession{Editor: a.cfg.Editor}.Cmd(a.cfg.File, line)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func itemsFromLines(lines []string) []list.Item {
	items := make([]list.Item, len(lines))
	for i, line := range lines {
		items[i] = taskItem{index: i + 1, line: line}
	}
	return items
}

func runUI(a *app) error {
	lines, err := store.Read(a.cfg.File)
	if err != nil {
		return err
	}

	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No tasks found")
		return nil
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)

	l := list.New(itemsFromLines(lines), delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = styles.heading
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.KeyMap.Quit.SetKeys("esc", "ctrl+c")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "edit"),
			),
		}
	}

	m := uiModel{
		list: l,
		app:  a,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
