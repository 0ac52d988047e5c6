// Package morph wires the diff engine, the git collaborator, and the
// multi-document composer together behind one App, the way the binary and
// library callers consume them.
package morph

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/morphtui/morph/cli"
	"github.com/morphtui/morph/diff"
	"github.com/morphtui/morph/git"
	"github.com/morphtui/morph/internal/source"
	"github.com/morphtui/morph/internal/ui"
	"github.com/morphtui/morph/multi"
)

// App orchestrates loading diffs from the configured source.
type App struct {
	cfg            *cli.Config
	engine         *diff.Engine
	sourceProvider *source.Provider
}

// New creates a new App instance.
func New(cfg *cli.Config) *App {
	engine := diff.NewEngine(diff.Config{
		ContextLines: cfg.ContextLines,
		WordLevel:    cfg.WordLevel,
	})
	return &App{
		cfg:            cfg,
		engine:         engine,
		sourceProvider: source.New(),
	}
}

// Load resolves the configured source into a composed set of file diffs.
func (a *App) Load() (*multi.MultiDiff, error) {
	switch a.cfg.Mode() {
	case cli.ModeFiles:
		return a.loadFiles()
	case cli.ModeClipboard:
		return a.loadClipboard()
	case cli.ModeRefs:
		return a.loadRefs()
	default:
		return a.loadUncommitted()
	}
}

// PrintStat prints the per-file summary for --stat mode.
func (a *App) PrintStat(m *multi.MultiDiff) {
	stats := make([]ui.FileStat, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		entry, _ := m.Entry(i)
		path := entry.Diff.NewPath
		if path == "" {
			path = entry.Diff.OldPath
		}
		stats = append(stats, ui.FileStat{
			Path:       path,
			Status:     entry.Status,
			Insertions: entry.Diff.Result.Insertions,
			Deletions:  entry.Diff.Result.Deletions,
		})
	}
	ui.PrintDiffStat(stats)
}

func (a *App) loadFiles() (*multi.MultiDiff, error) {
	fd, err := a.engine.DiffFiles(a.cfg.OldPath, a.cfg.NewPath)
	if err != nil {
		return nil, err
	}

	m := multi.New()
	m.Add(fd, git.StatusModified.String())
	return m, nil
}

func (a *App) loadClipboard() (*multi.MultiDiff, error) {
	content, err := os.ReadFile(a.cfg.ClipboardPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", a.cfg.ClipboardPath, err)
	}
	clip, err := a.sourceProvider.GetContent()
	if err != nil {
		return nil, err
	}

	m := multi.New()
	m.Add(diff.FileDiff{
		OldPath: a.cfg.ClipboardPath,
		NewPath: "clipboard",
		Result:  a.engine.DiffStrings(string(content), clip),
	}, git.StatusModified.String())
	return m, nil
}

func (a *App) loadRefs() (*multi.MultiDiff, error) {
	root, err := git.RepoRoot(".")
	if err != nil {
		return nil, err
	}
	changed, err := git.ChangesBetween(root, a.cfg.FromRef, a.cfg.ToRef)
	if err != nil {
		return nil, err
	}

	m := multi.New()
	for _, file := range changed {
		oldPath := file.Path
		if file.OldPath != "" {
			oldPath = file.OldPath
		}

		var oldContent, newContent string
		if file.Status != git.StatusAdded {
			oldContent, err = git.FileAtCommit(root, a.cfg.FromRef, oldPath)
			if err != nil {
				ui.Warning("skipping %s: %v", file.Path, err)
				continue
			}
		}
		if file.Status != git.StatusDeleted {
			newContent, err = git.FileAtCommit(root, a.cfg.ToRef, file.Path)
			if err != nil {
				ui.Warning("skipping %s: %v", file.Path, err)
				continue
			}
		}

		m.Add(diff.FileDiff{
			OldPath: oldPath,
			NewPath: file.Path,
			Result:  a.engine.DiffStrings(oldContent, newContent),
		}, file.Status.String())
	}
	return m, nil
}

func (a *App) loadUncommitted() (*multi.MultiDiff, error) {
	root, err := git.RepoRoot(".")
	if err != nil {
		return nil, err
	}
	changed, err := git.UncommittedChanges(root)
	if err != nil {
		return nil, err
	}

	m := multi.New()
	for _, file := range changed {
		oldContent, newContent, err := a.uncommittedSides(root, file)
		if err != nil {
			ui.Warning("skipping %s: %v", file.Path, err)
			continue
		}
		oldPath := file.Path
		if file.OldPath != "" {
			oldPath = file.OldPath
		}
		m.Add(diff.FileDiff{
			OldPath: oldPath,
			NewPath: file.Path,
			Result:  a.engine.DiffStrings(oldContent, newContent),
		}, file.Status.String())
	}
	return m, nil
}

// uncommittedSides resolves the old and new content of one uncommitted
// change: old from HEAD (empty for added and untracked files), new from the
// index with --cached or from the working tree otherwise (empty for deleted
// files).
func (a *App) uncommittedSides(root string, file git.ChangedFile) (oldContent, newContent string, err error) {
	oldPath := file.Path
	if file.OldPath != "" {
		oldPath = file.OldPath
	}

	switch file.Status {
	case git.StatusAdded, git.StatusUntracked:
	default:
		oldContent, err = git.HeadContent(root, oldPath)
		if err != nil {
			return "", "", err
		}
	}

	if file.Status == git.StatusDeleted {
		return oldContent, "", nil
	}

	if a.cfg.Cached {
		newContent, err = git.StagedContent(root, file.Path)
		if err != nil {
			return "", "", err
		}
		return oldContent, newContent, nil
	}

	data, err := os.ReadFile(filepath.Join(root, file.Path))
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", file.Path, err)
	}
	return oldContent, string(data), nil
}
