// Package git shells out to git to supply file lists and file content for
// diffing. Every error here means "feature unavailable" to callers: the diff
// engine itself never requires a repository.
package git

import (
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// ErrNotRepo reports that the directory is not inside a git repository.
var ErrNotRepo = errors.New("not a git repository")

// CommandError carries the raw diagnostic output of a failed git command.
type CommandError struct {
	Output string
}

func (e *CommandError) Error() string {
	return "git command failed: " + strings.TrimSpace(e.Output)
}

// FileStatus is the status of a file reported by git.
type FileStatus int

const (
	StatusModified FileStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusUntracked
)

func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusUntracked:
		return "untracked"
	default:
		return "unknown"
	}
}

// ChangedFile is one changed path reported by git.
type ChangedFile struct {
	Path   string
	Status FileStatus
	// OldPath is the original path of a renamed file.
	OldPath string
}

// run executes git -C dir with the given arguments and returns stdout.
func run(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CommandError{Output: string(exitErr.Stderr)}
		}
		return nil, fmt.Errorf("failed to launch git: %w", err)
	}
	return out, nil
}

// IsRepo reports whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := run(dir, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the current branch name.
func CurrentBranch(dir string) (string, error) {
	out, err := run(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return "", ErrNotRepo
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// RepoRoot returns the absolute path of the repository root.
func RepoRoot(dir string) (string, error) {
	out, err := run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return "", ErrNotRepo
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// UncommittedChanges lists staged, unstaged, and untracked files,
// deduplicated by path.
func UncommittedChanges(repoDir string) ([]ChangedFile, error) {
	var changes []ChangedFile

	if out, err := run(repoDir, "diff", "--cached", "--name-status"); err == nil {
		changes = parseNameStatus(string(out), changes)
	}
	if out, err := run(repoDir, "diff", "--name-status"); err == nil {
		changes = parseNameStatus(string(out), changes)
	}
	out, err := run(repoDir, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		changes = append(changes, ChangedFile{Path: line, Status: StatusUntracked})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	deduped := changes[:0]
	for _, c := range changes {
		if len(deduped) == 0 || deduped[len(deduped)-1].Path != c.Path {
			deduped = append(deduped, c)
		}
	}
	return deduped, nil
}

// ChangesBetween lists the files changed between two refs.
func ChangesBetween(repoDir, from, to string) ([]ChangedFile, error) {
	out, err := run(repoDir, "diff", "--name-status", fmt.Sprintf("%s..%s", from, to))
	if err != nil {
		return nil, err
	}
	return parseNameStatus(string(out), nil), nil
}

// FileAtCommit returns the content of a file at the given commit or ref.
func FileAtCommit(repoDir, commit, file string) (string, error) {
	out, err := run(repoDir, "show", fmt.Sprintf("%s:%s", commit, file))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// StagedContent returns the staged content of a file, falling back to HEAD
// when the file is not staged.
func StagedContent(repoDir, file string) (string, error) {
	out, err := run(repoDir, "show", ":"+file)
	if err != nil {
		return FileAtCommit(repoDir, "HEAD", file)
	}
	return string(out), nil
}

// HeadContent returns the HEAD content of a file.
func HeadContent(repoDir, file string) (string, error) {
	return FileAtCommit(repoDir, "HEAD", file)
}

// parseNameStatus parses line-oriented "status<TAB>path" records. Renames
// carry the old path when at least three tab-separated fields are present.
func parseNameStatus(output string, changes []ChangedFile) []ChangedFile {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		var status FileStatus
		switch parts[0][0] {
		case 'M':
			status = StatusModified
		case 'A':
			status = StatusAdded
		case 'D':
			status = StatusDeleted
		case 'R':
			status = StatusRenamed
		default:
			continue
		}

		if len(parts) < 2 {
			continue
		}
		change := ChangedFile{Path: parts[len(parts)-1], Status: status}
		if status == StatusRenamed && len(parts) >= 3 {
			change.OldPath = parts[1]
		}
		changes = append(changes, change)
	}
	return changes
}
