package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Read returns the file's lines, each trimmed of surrounding whitespace.
// Blank lines stay in the result as empty entries so positional numbering
// keeps matching the file.
func Read(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	return lines, scanner.Err()
}

// Write replaces the file's content with the given lines, one per line with
// a trailing final newline. The content is staged in a temporary file next
// to the target and renamed into place, so a failed write leaves the
// previous content untouched.
func Write(path string, lines []string) error {
	tempPath := path + ".tmp"
	defer func() { _ = os.Remove(tempPath) }()

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(tempPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Append adds one line to the end of the file, creating the file if needed.
func Append(path, line string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = fmt.Fprintln(file, line)
	return err
}
