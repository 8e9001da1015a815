// Package editor launches the configured text editor and blocks until it exits.
package editor

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Session runs interactive edit sessions on a file.
type Session interface {
	// Run opens path in the editor and waits for it to exit.
	Run(path string) error
	// RunAt opens path with the cursor on the given 1-based line.
	RunAt(path string, line int) error
}

// ExecSession launches the editor as a child process attached to the
// current terminal.
type ExecSession struct {
	Editor string
}

// Cmd builds the editor invocation without starting it, so it can also be
// handed to tea.ExecProcess from the TUI. A line of 0 opens the file without
// positioning the cursor. Line positioning flags depend on the editor; editors
// we don't recognize get the plain path.
func (s ExecSession) Cmd(path string, line int) *exec.Cmd {
	editor := s.Editor
	if strings.HasPrefix(editor, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			editor = filepath.Join(home, editor[2:])
		}
	}

	parts := strings.Fields(editor)
	name := parts[0]
	args := parts[1:]

	if line > 0 {
		switch filepath.Base(name) {
		case "vi", "vim", "nvim", "emacs", "nano":
			args = append(args, "+"+strconv.Itoa(line), path)
		case "code":
			args = append(args, "-g", path+":"+strconv.Itoa(line))
		default:
			args = append(args, path)
		}
	} else {
		args = append(args, path)
	}

	return exec.Command(name, args...)
}

func (s ExecSession) Run(path string) error {
	return s.run(s.Cmd(path, 0))
}

func (s ExecSession) RunAt(path string, line int) error {
	return s.run(s.Cmd(path, line))
}

func (s ExecSession) run(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
