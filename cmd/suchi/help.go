package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const helpText = `# suchi - plain text task list

One task per line in a single text file. Lines are date-stamped when added
and carry ` + "`@tags`" + ` anywhere in the text.

## USAGE

    suchi [COMMAND] [ARGS]

## COMMANDS

    (no command)        Show the tag overview grid
    add, a [TEXT]       Add a task (prompts when TEXT is omitted)
    rm N                Remove task number N
    ls, list [TAG]      List tasks, date-stripped and numbered; with TAG only
                        matching lines, numbered as in the full listing
    unfiled             List tasks without any tag
    norm                Normalize the file: trim, date-stamp, sort, dedupe
    edit, e [TAG]       Edit the file with the cursor on the last line; with
                        TAG edit only matching lines and re-merge them
    tags                Show a per-tag task count table
    ui                  Browse tasks interactively
    watch               Live tag overview that refreshes on file changes
    merge A O B         Three-way merge driver (writes the result into A)
    install-driver      Register the merge driver in the enclosing git repo
    mcp                 Start MCP server (stdio) for AI agent integration
    -h, --help, help    Show this help message

## INTERACTIVE MODE (ui)

    /                   Filter tasks by typing
    j/k or arrows       Navigate
    Enter               Edit the selected task at its line
    q, Esc, Ctrl+C      Quit

## CONFIGURATION

Environment: ` + "`TODO_FILE`" + ` sets the task file (default
` + "`~/notes/todo.txt`" + `), ` + "`EDITOR`" + ` sets the editor (default ` + "`vi`" + `).

File: ` + "`~/.config/suchi/config.toml`" + `

    file = "~/notes/todo.txt"
    editor = "vi"

    [git]
    autocommit = true
    push = false
`

func printHelp() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Print(helpText)
		return
	}

	out, err := r.Render(helpText)
	if err != nil {
		fmt.Print(helpText)
		return
	}
	fmt.Print(out)
}
