package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/vinayprograms/suchi/internal/config"
	"github.com/vinayprograms/suchi/internal/editor"
	"github.com/vinayprograms/suchi/internal/git"
	"github.com/vinayprograms/suchi/internal/grid"
	"github.com/vinayprograms/suchi/internal/store"
	"github.com/vinayprograms/suchi/internal/task"
)

// app bundles the loaded configuration with the writers and the edit session
// the commands run against.
type app struct {
	cfg    *config.Config
	out    io.Writer
	editor editor.Session
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	initStyles(cfg)

	a := &app{
		cfg:    cfg,
		out:    os.Stdout,
		editor: editor.ExecSession{Editor: cfg.Editor},
	}

	if len(os.Args) == 1 {
		width, height := terminalSize()
		if err := a.overview(width, height); err != nil {
			log.Fatal(err)
		}
		return
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "-h", "--help", "help":
		printHelp()
	case "add", "a":
		if len(os.Args) < 3 {
			runAddPrompt(a)
			return
		}
		if err := a.add(strings.Join(os.Args[2:], " ")); err != nil {
			log.Fatal(err)
		}
	case "rm":
		if len(os.Args) < 3 {
			fmt.Println("invalid n")
			os.Exit(1)
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("invalid n")
			os.Exit(1)
		}
		if err := a.remove(n); err != nil {
			log.Fatal(err)
		}
	case "ls", "list":
		tag := ""
		if len(os.Args) > 2 {
			tag = os.Args[2]
		}
		if err := a.list(tag); err != nil {
			log.Fatal(err)
		}
	case "unfiled":
		if err := a.list(task.Unfiled); err != nil {
			log.Fatal(err)
		}
	case "norm":
		if err := a.normalize(); err != nil {
			log.Fatal(err)
		}
	case "edit", "e":
		if len(os.Args) > 2 {
			tag := os.Args[2]
			if tag == "" {
				fmt.Println("invalid tag")
				os.Exit(1)
			}
			if err := a.editTag(tag); err != nil {
				log.Fatal(err)
			}
			return
		}
		if err := a.edit(); err != nil {
			log.Fatal(err)
		}
	case "merge":
		if len(os.Args) != 5 {
			fmt.Println("Usage: suchi merge <left> <root> <right>")
			os.Exit(1)
		}
		if err := a.merge(os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatal(err)
		}
	case "tags":
		if err := a.tags(); err != nil {
			log.Fatal(err)
		}
	case "ui":
		if err := runUI(a); err != nil {
			log.Fatal(err)
		}
	case "watch":
		if err := runWatch(a); err != nil {
			log.Fatal(err)
		}
	case "install-driver":
		if err := git.InstallMergeDriver(cfg.File); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Registered suchi as merge driver for %s\n", cfg.File)
	case "mcp":
		// Start MCP server on stdio
		mcpServer := task.NewMCPServer(cfg)
		ctx := context.Background()
		if err := mcpServer.Run(ctx); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Printf("Unknown subcommand: %s\n", subcommand)
		printHelp()
		os.Exit(1)
	}
}

// add date-stamps the text and appends it to the task file. Blank text is
// ignored.
func (a *app) add(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	line := task.Stamp(text, task.Today())
	if err := store.Append(a.cfg.File, line); err != nil {
		return err
	}

	a.autocommit("add task")
	return nil
}

// remove deletes the n-th line, counting from 1 in on-disk order. An index
// outside the file reports invalid n and leaves the file untouched.
func (a *app) remove(n int) error {
	lines, err := store.Read(a.cfg.File)
	if err != nil {
		return err
	}

	if n < 1 || n > len(lines) {
		fmt.Fprintln(a.out, "invalid n")
		return nil
	}

	lines = append(lines[:n-1], lines[n:]...)
	if err := store.Write(a.cfg.File, lines); err != nil {
		return err
	}

	a.autocommit("remove task")
	return nil
}

// list prints all tasks date-stripped and numbered. With a tag only matching
// lines print, keeping their numbers from the full listing.
func (a *app) list(tag string) error {
	lines, err := store.Read(a.cfg.File)
	if err != nil {
		return err
	}

	if tag == "" {
		fmt.Fprintln(a.out, strings.Join(task.Number(task.StripDates(lines)), "\n"))
		return nil
	}

	matches := task.GroupByTag(task.Number(lines))[tag]
	if len(matches) == 0 {
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(matches, "\n"))
	return nil
}

func (a *app) normalize() error {
	lines, err := store.Read(a.cfg.File)
	if err != nil {
		return err
	}

	if err := store.Write(a.cfg.File, task.Normalize(lines, task.Today())); err != nil {
		return err
	}

	a.autocommit("normalize tasks")
	return nil
}

// editTag extracts the lines bearing tag into a scratch file, opens the edit
// session on it, then writes back the normalized union of the untouched
// remainder and the edited subset, reporting how many lines changed.
func (a *app) editTag(tag string) error {
	lines, err := store.Read(a.cfg.File)
	if err != nil {
		return err
	}

	before, remaining := task.PartitionByTag(lines, tag)
	if len(before) == 0 {
		fmt.Fprintf(a.out, "No tasks found for tag: %s\n", tag)
		return nil
	}

	dir, err := os.MkdirTemp("", "suchi")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "todo.txt")
	if err := store.Write(path, before); err != nil {
		return err
	}
	if err := a.editor.Run(path); err != nil {
		return err
	}

	edited, err := store.Read(path)
	if err != nil {
		return err
	}
	after := task.Normalize(edited, task.Today())

	fmt.Fprintf(a.out, "%d changes\n", task.CountChanges(before, after))

	if err := store.Write(a.cfg.File, task.Normalize(append(remaining, after...), task.Today())); err != nil {
		return err
	}

	a.autocommit("edit " + tag + " tasks")
	return nil
}

// edit opens the whole task file with the cursor on its last line.
func (a *app) edit() error {
	lines, err := store.Read(a.cfg.File)
	if err != nil {
		return err
	}

	line := len(lines)
	if line < 1 {
		line = 1
	}
	if err := a.editor.RunAt(a.cfg.File, line); err != nil {
		return err
	}

	a.autocommit("edit tasks")
	return nil
}

// merge three-way merges leftPath and rightPath against their common
// ancestor rootPath and writes the result into leftPath, the contract git
// expects from a merge driver.
func (a *app) merge(leftPath, rootPath, rightPath string) error {
	left, err := store.Read(leftPath)
	if err != nil {
		return err
	}
	root, err := store.Read(rootPath)
	if err != nil {
		return err
	}
	right, err := store.Read(rightPath)
	if err != nil {
		return err
	}

	return store.Write(leftPath, task.Merge(left, root, right))
}

// overview prints the tag grid sized to the terminal.
func (a *app) overview(width, height int) error {
	lines, err := store.Read(a.cfg.File)
	if err != nil {
		return err
	}

	groups := task.GroupByTag(task.Number(lines))
	fmt.Fprintln(a.out, grid.Render(groups, width, height))
	return nil
}

// tags prints a per-tag task count summary table.
func (a *app) tags() error {
	lines, err := store.Read(a.cfg.File)
	if err != nil {
		return err
	}

	groups := task.GroupByTag(lines)

	var names []string
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows [][]string
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", len(groups[name]))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(a.cfg.Colors.BorderColor))).
		Headers("Tag", "Tasks").
		Rows(rows...)

	fmt.Fprintln(a.out, t)
	return nil
}

// autocommit records the task file in git when enabled. Failures only warn;
// the file operation already succeeded.
func (a *app) autocommit(message string) {
	if !a.cfg.Git.Autocommit {
		return
	}
	if err := git.CommitFile(a.cfg.File, message, a.cfg.Git.Push); err != nil {
		log.Printf("Autocommit failed: %v", err)
	}
}

func terminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 80, 24
	}
	return width, height
}
