package task

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vinayprograms/suchi/internal/config"
	"github.com/vinayprograms/suchi/internal/store"
)

func mcpFixture(t *testing.T, content string) (*MCPServer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return NewMCPServer(&config.Config{File: path}), path
}

func TestMCPListTasks(t *testing.T) {
	server, _ := mcpFixture(t, "2024-06-01 buy milk @home\n2024-06-02 call mom\n")

	_, result, err := server.listTasks(context.Background(), nil, ListTasksArgs{})
	if err != nil {
		t.Fatalf("listTasks failed: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("Count = %d, want 2", result.Count)
	}

	first := result.Tasks[0]
	if first.Number != 1 || first.Date != "2024-06-01" || first.Text != "buy milk @home" {
		t.Errorf("unexpected first task: %+v", first)
	}
	if len(first.Tags) != 1 || first.Tags[0] != "home" {
		t.Errorf("first task tags = %v, want [home]", first.Tags)
	}
}

func TestMCPListTasksFiltered(t *testing.T) {
	server, _ := mcpFixture(t, "2024-06-01 buy milk @home\n2024-06-02 call mom\n")

	_, result, err := server.listTasks(context.Background(), nil, ListTasksArgs{Tag: "home"})
	if err != nil {
		t.Fatalf("listTasks failed: %v", err)
	}
	if result.Count != 1 || result.Tasks[0].Number != 1 {
		t.Errorf("tag filter = %+v, want task 1 only", result.Tasks)
	}

	_, result, err = server.listTasks(context.Background(), nil, ListTasksArgs{Tag: Unfiled})
	if err != nil {
		t.Fatalf("listTasks failed: %v", err)
	}
	if result.Count != 1 || result.Tasks[0].Text != "call mom" {
		t.Errorf("unfiled filter = %+v, want call mom only", result.Tasks)
	}
}

func TestMCPAddTask(t *testing.T) {
	server, path := mcpFixture(t, "")

	_, result, err := server.addTask(context.Background(), nil, AddTaskArgs{Text: "  pay rent @home  "})
	if err != nil {
		t.Fatalf("addTask failed: %v", err)
	}
	if !HasDate(result.Line) || !strings.HasSuffix(result.Line, " pay rent @home") {
		t.Errorf("added line = %q, want date-stamped trimmed text", result.Line)
	}

	lines, err := store.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != result.Line {
		t.Errorf("file lines = %v, want [%s]", lines, result.Line)
	}

	if _, _, err := server.addTask(context.Background(), nil, AddTaskArgs{Text: "   "}); err == nil {
		t.Error("expected error for blank task text")
	}
}

func TestMCPRemoveTask(t *testing.T) {
	server, path := mcpFixture(t, "2024-06-01 a\n2024-06-02 b\n2024-06-03 c\n")

	_, result, err := server.removeTask(context.Background(), nil, RemoveTaskArgs{Number: 2})
	if err != nil {
		t.Fatalf("removeTask failed: %v", err)
	}
	if !result.Success || result.Removed != "2024-06-02 b" {
		t.Errorf("remove result = %+v", result)
	}

	lines, err := store.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "2024-06-01 a" || lines[1] != "2024-06-03 c" {
		t.Errorf("file lines after remove = %v", lines)
	}
}

func TestMCPRemoveTaskInvalidNumber(t *testing.T) {
	content := "2024-06-01 a\n2024-06-02 b\n"
	server, path := mcpFixture(t, content)

	for _, n := range []int{0, 3, -1} {
		_, result, err := server.removeTask(context.Background(), nil, RemoveTaskArgs{Number: n})
		if err != nil {
			t.Fatalf("removeTask(%d) failed: %v", n, err)
		}
		if result.Success || result.Message != "invalid n" {
			t.Errorf("removeTask(%d) = %+v, want invalid n", n, result)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Errorf("file modified by invalid removes: %q", string(data))
	}
}

func TestMCPListTags(t *testing.T) {
	server, _ := mcpFixture(t, "2024-06-01 a @work\n2024-06-02 b @home @work\n2024-06-03 c\n")

	_, result, err := server.listTags(context.Background(), nil, ListTagsArgs{})
	if err != nil {
		t.Fatalf("listTags failed: %v", err)
	}

	want := []TagInfo{
		{Name: "home", TaskCount: 1},
		{Name: "unfiled", TaskCount: 1},
		{Name: "work", TaskCount: 2},
	}
	if result.Count != len(want) {
		t.Fatalf("Count = %d, want %d", result.Count, len(want))
	}
	for i, w := range want {
		if result.Tags[i] != w {
			t.Errorf("Tags[%d] = %+v, want %+v", i, result.Tags[i], w)
		}
	}
}

func TestMCPNormalize(t *testing.T) {
	server, path := mcpFixture(t, "b\n2024-01-01 a\n2024-01-01 a\n\n")

	_, result, err := server.normalize(context.Background(), nil, NormalizeArgs{})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("Count = %d, want 2", result.Count)
	}

	lines, err := store.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "2024-01-01 a" {
		t.Fatalf("normalized file = %v", lines)
	}
	if !HasDate(lines[1]) || !strings.HasSuffix(lines[1], " b") {
		t.Errorf("undated line not stamped: %q", lines[1])
	}
}
