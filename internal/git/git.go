package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// IsGitRepo checks if the given path is inside a git repository
func IsGitRepo(path string) bool {
	_, err := FindRepoRoot(path)
	return err == nil
}

// FindRepoRoot finds the root of the git repository containing the given path
func FindRepoRoot(path string) (string, error) {
	// Walk up the directory tree looking for .git
	current := path
	if info, err := os.Stat(current); err == nil && !info.IsDir() {
		current = filepath.Dir(current)
	}

	for {
		gitDir := filepath.Join(current, ".git")
		if _, err := os.Stat(gitDir); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			return "", os.ErrNotExist
		}
		current = parent
	}
}

// CommitFile stages and commits a single file with the given message.
// If push is true and remotes exist, it will also push to the remote.
// Returns nil if the file is not in a git repo.
func CommitFile(filePath, message string, push bool) error {
	filePath, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}

	repoRoot, err := FindRepoRoot(filePath)
	if err != nil {
		// Not a git repo, silently return
		return nil
	}

	// Open the repository
	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return err
	}

	// Get the working tree
	w, err := repo.Worktree()
	if err != nil {
		return err
	}

	// Get relative path from repo root
	relPath, err := filepath.Rel(repoRoot, filePath)
	if err != nil {
		return err
	}

	// Stage the file
	if _, err := w.Add(relPath); err != nil {
		return err
	}

	// Check if there are any changes to commit
	status, err := w.Status()
	if err != nil {
		return err
	}

	if status.IsClean() {
		return nil
	}

	// Commit the changes
	_, err = w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Suchi",
			Email: "suchi@local",
		},
	})
	if err != nil {
		return err
	}

	if !push {
		return nil
	}

	// Check for remotes
	remotes, err := repo.Remotes()
	if err != nil || len(remotes) == 0 {
		return nil
	}

	// Push to remote
	err = repo.Push(&git.PushOptions{})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return err
	}

	return nil
}

// InstallMergeDriver registers suchi as the merge driver for filePath in the
// repository containing it. The repository's local config gains a
// [merge "suchi"] section and a .gitattributes entry at the repo root routes
// the file to it.
func InstallMergeDriver(filePath string) error {
	filePath, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}

	repoRoot, err := FindRepoRoot(filePath)
	if err != nil {
		return fmt.Errorf("%s is not inside a git repository", filePath)
	}

	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return err
	}

	cfg, err := repo.Config()
	if err != nil {
		return err
	}

	driver := cfg.Raw.Section("merge").Subsection("suchi")
	driver.SetOption("name", "three-way union of task lines")
	driver.SetOption("driver", "suchi merge %A %O %B")

	if err := repo.SetConfig(cfg); err != nil {
		return err
	}

	relPath, err := filepath.Rel(repoRoot, filePath)
	if err != nil {
		return err
	}

	return addAttribute(filepath.Join(repoRoot, ".gitattributes"), relPath+" merge=suchi")
}

// addAttribute appends line to the attributes file unless it is already there.
func addAttribute(path, line string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, existing := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(existing) == line {
			return nil
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		if _, err := fmt.Fprintln(f); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(f, line)
	return err
}
