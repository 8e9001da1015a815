package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/vinayprograms/suchi/internal/grid"
	"github.com/vinayprograms/suchi/internal/store"
	"github.com/vinayprograms/suchi/internal/task"
)

// watchModel keeps the tag overview grid on screen and redraws it whenever
// the task file changes.
type watchModel struct {
	app      *app
	watcher  *fsnotify.Watcher
	path     string
	width    int
	height   int
	content  string
	err      error
	quitting bool
}

type fileChangedMsg struct{}

// waitForFileChange blocks until the task file is touched. The write may be
// an in-place write or an atomic replace, so the watch sits on the directory
// and events are filtered by name.
func waitForFileChange(watcher *fsnotify.Watcher, path string) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create ||
					event.Op&fsnotify.Remove == fsnotify.Remove {
					time.Sleep(100 * time.Millisecond)
					return fileChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("Watcher error: %v", err)
			}
		}
	}
}

func (m watchModel) Init() tea.Cmd {
	return waitForFileChange(m.watcher, m.path)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.content, m.err = m.renderGrid()
			return m, nil
		}
	case fileChangedMsg:
		m.content, m.err = m.renderGrid()
		return m, waitForFileChange(m.watcher, m.path)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.content, m.err = m.renderGrid()
	}
	return m, nil
}

func (m watchModel) renderGrid() (string, error) {
	lines, err := store.Read(m.app.cfg.File)
	if err != nil {
		return "", err
	}
	return grid.Render(task.GroupByTag(task.Number(lines)), m.width, m.height), nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit", m.err)
	}
	return m.content + "\n\n" + styles.heading.Render("watching "+m.app.cfg.File) + "  q quit, r refresh"
}

func runWatch(a *app) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path := filepath.Clean(a.cfg.File)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	m := watchModel{
		app:     a,
		watcher: watcher,
		path:    path,
		width:   80,
		height:  24,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
