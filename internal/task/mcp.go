package task

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/vinayprograms/suchi/internal/config"
	"github.com/vinayprograms/suchi/internal/store"
)

// MCP Tool Input/Output types

type ListTasksArgs struct {
	Tag string `json:"tag,omitempty" jsonschema:"tag to filter by (optional, empty for all tasks; 'unfiled' for tasks without any tag)"`
}

type ListTasksResult struct {
	Tasks []TaskInfo `json:"tasks" jsonschema:"list of tasks"`
	Count int        `json:"count" jsonschema:"total number of tasks returned"`
}

type TaskInfo struct {
	Number int      `json:"number" jsonschema:"1-based position in the task file, valid as input to remove_task"`
	Date   string   `json:"date,omitempty" jsonschema:"date the task was recorded (YYYY-MM-DD)"`
	Text   string   `json:"text" jsonschema:"task text without the date prefix"`
	Tags   []string `json:"tags,omitempty" jsonschema:"tags the task is annotated with (without @)"`
}

type AddTaskArgs struct {
	Text string `json:"text" jsonschema:"task text; words starting with @ become tags"`
}

type AddTaskResult struct {
	Line string `json:"line" jsonschema:"the date-stamped line appended to the task file"`
}

type RemoveTaskArgs struct {
	Number int `json:"number" jsonschema:"1-based task number as reported by list_tasks"`
}

type RemoveTaskResult struct {
	Success bool   `json:"success" jsonschema:"whether the task was removed"`
	Message string `json:"message" jsonschema:"status message"`
	Removed string `json:"removed,omitempty" jsonschema:"the removed task line"`
}

type ListTagsArgs struct{}

type ListTagsResult struct {
	Tags  []TagInfo `json:"tags" jsonschema:"tags with task counts, sorted by name"`
	Count int       `json:"count" jsonschema:"total number of tags"`
}

type TagInfo struct {
	Name      string `json:"name" jsonschema:"tag name (without @)"`
	TaskCount int    `json:"task_count" jsonschema:"number of task lines referencing the tag"`
}

type NormalizeArgs struct{}

type NormalizeResult struct {
	Changes int `json:"changes" jsonschema:"number of lines added or removed by normalization"`
	Count   int `json:"count" jsonschema:"number of tasks after normalization"`
}

// MCPServer wraps the MCP server with task file operations
type MCPServer struct {
	config *config.Config
	server *mcp.Server
}

// NewMCPServer creates a new MCP server for task file operations
func NewMCPServer(cfg *config.Config) *MCPServer {
	s := &MCPServer{
		config: cfg,
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "suchi",
		Version: "1.0.0",
	}, nil)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport
func (s *MCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *MCPServer) registerTools() {
	// List tasks
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "View all tasks in file order with their numbers, dates and tags. Filter by tag for a focused list; tag 'unfiled' selects tasks without any tag. Task numbers feed remove_task.",
	}, s.listTasks)

	// Add task
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_task",
		Description: "Record a new task. The text is stamped with today's date unless it already starts with one, then appended to the task file. Annotate with @tags anywhere in the text.",
	}, s.addTask)

	// Remove task
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_task",
		Description: "Remove a task by its 1-based number. Numbers follow current file order, so call list_tasks first when in doubt.",
	}, s.removeTask)

	// List tags
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tags",
		Description: "Summarize all tags with the number of task lines referencing each. Tasks without tags are counted under 'unfiled'.",
	}, s.listTags)

	// Normalize
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "normalize",
		Description: "Rewrite the task file in canonical form: trim whitespace, drop empty lines, date-stamp undated lines, sort and deduplicate. Reports how many lines changed.",
	}, s.normalize)
}

func lineToInfo(number int, line string) TaskInfo {
	date, text := SplitDate(line)
	return TaskInfo{
		Number: number,
		Date:   date,
		Text:   text,
		Tags:   ExtractTags(line),
	}
}

func (s *MCPServer) listTasks(ctx context.Context, req *mcp.CallToolRequest, args ListTasksArgs) (*mcp.CallToolResult, ListTasksResult, error) {
	lines, err := store.Read(s.config.File)
	if err != nil {
		return nil, ListTasksResult{}, fmt.Errorf("failed to read tasks: %w", err)
	}

	infos := []TaskInfo{}
	for i, line := range lines {
		if args.Tag != "" {
			tags := ExtractTags(line)
			if args.Tag == Unfiled {
				if len(tags) != 0 {
					continue
				}
			} else if !contains(tags, args.Tag) {
				continue
			}
		}
		infos = append(infos, lineToInfo(i+1, line))
	}

	return nil, ListTasksResult{
		Tasks: infos,
		Count: len(infos),
	}, nil
}

func (s *MCPServer) addTask(ctx context.Context, req *mcp.CallToolRequest, args AddTaskArgs) (*mcp.CallToolResult, AddTaskResult, error) {
	text := strings.TrimSpace(args.Text)
	if text == "" {
		return nil, AddTaskResult{}, fmt.Errorf("task text is required")
	}

	line := Stamp(text, Today())
	if err := store.Append(s.config.File, line); err != nil {
		return nil, AddTaskResult{}, fmt.Errorf("failed to add task: %w", err)
	}

	return nil, AddTaskResult{Line: line}, nil
}

func (s *MCPServer) removeTask(ctx context.Context, req *mcp.CallToolRequest, args RemoveTaskArgs) (*mcp.CallToolResult, RemoveTaskResult, error) {
	lines, err := store.Read(s.config.File)
	if err != nil {
		return nil, RemoveTaskResult{}, fmt.Errorf("failed to read tasks: %w", err)
	}

	if args.Number < 1 || args.Number > len(lines) {
		return nil, RemoveTaskResult{
			Success: false,
			Message: "invalid n",
		}, nil
	}

	removed := lines[args.Number-1]
	lines = append(lines[:args.Number-1], lines[args.Number:]...)

	if err := store.Write(s.config.File, lines); err != nil {
		return nil, RemoveTaskResult{}, fmt.Errorf("failed to write tasks: %w", err)
	}

	return nil, RemoveTaskResult{
		Success: true,
		Message: fmt.Sprintf("removed task %d", args.Number),
		Removed: removed,
	}, nil
}

func (s *MCPServer) listTags(ctx context.Context, req *mcp.CallToolRequest, args ListTagsArgs) (*mcp.CallToolResult, ListTagsResult, error) {
	lines, err := store.Read(s.config.File)
	if err != nil {
		return nil, ListTagsResult{}, fmt.Errorf("failed to read tasks: %w", err)
	}

	groups := GroupByTag(lines)

	var names []string
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	tags := make([]TagInfo, len(names))
	for i, name := range names {
		tags[i] = TagInfo{
			Name:      name,
			TaskCount: len(groups[name]),
		}
	}

	return nil, ListTagsResult{
		Tags:  tags,
		Count: len(tags),
	}, nil
}

func (s *MCPServer) normalize(ctx context.Context, req *mcp.CallToolRequest, args NormalizeArgs) (*mcp.CallToolResult, NormalizeResult, error) {
	lines, err := store.Read(s.config.File)
	if err != nil {
		return nil, NormalizeResult{}, fmt.Errorf("failed to read tasks: %w", err)
	}

	normalized := Normalize(lines, Today())
	changes := CountChanges(lines, normalized)

	if err := store.Write(s.config.File, normalized); err != nil {
		return nil, NormalizeResult{}, fmt.Errorf("failed to write tasks: %w", err)
	}

	return nil, NormalizeResult{
		Changes: changes,
		Count:   len(normalized),
	}, nil
}
