package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values plus the resolved diff
// source. It is parsed once and never mutated afterwards.
type Config struct {
	// Explicit file pair.
	OldPath string
	NewPath string
	// Ref range ("from..to").
	FromRef string
	ToRef   string
	// Clipboard mode: diff ClipboardPath against the clipboard content.
	Clipboard     bool
	ClipboardPath string

	Cached       bool
	WordLevel    bool
	ContextLines int
	HunkMode     bool
	NoAnimation  bool
	Stat         bool
}

// Mode is the resolved diff source.
type Mode int

const (
	// ModeUncommitted diffs the working tree against HEAD (or the index
	// with --cached). The default with no positional arguments.
	ModeUncommitted Mode = iota
	// ModeFiles diffs two explicit files.
	ModeFiles
	// ModeRefs diffs two git refs.
	ModeRefs
	// ModeClipboard diffs a file against the clipboard content.
	ModeClipboard
)

// Mode returns the diff source selected by the parsed arguments.
func (c *Config) Mode() Mode {
	switch {
	case c.Clipboard:
		return ModeClipboard
	case c.FromRef != "":
		return ModeRefs
	case c.OldPath != "":
		return ModeFiles
	default:
		return ModeUncommitted
	}
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.BoolVar(&cfg.Cached, "cached", false, "Diff staged changes instead of the working tree.")
	pflag.BoolVarP(&cfg.WordLevel, "word-level", "w", true, "Pair replaced lines into word-level changes.")
	pflag.IntVarP(&cfg.ContextLines, "context", "c", 3, "Number of context lines (reserved).")
	pflag.BoolVar(&cfg.HunkMode, "hunk", false, "Step one hunk at a time instead of one change.")
	pflag.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable transition animation between steps.")
	pflag.BoolVar(&cfg.Stat, "stat", false, "Print a per-file change summary and exit.")
	pflag.BoolVar(&cfg.Clipboard, "clipboard", false, "Diff the given file against the clipboard content.")

	pflag.Usage = func() {
		fmt.Println("Usage: morph [flags] [<old> <new> | <from>..<to> | <file>]")
		fmt.Println("\nStep through a diff one change at a time.")
		fmt.Println("\nWith no arguments, morph shows the uncommitted changes of the")
		fmt.Println("current repository.")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if err := ResolveArgs(cfg, pflag.Args()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveArgs maps positional arguments onto a diff source.
func ResolveArgs(cfg *Config, args []string) error {
	if cfg.Clipboard {
		if len(args) != 1 {
			return fmt.Errorf("error: --clipboard takes exactly one file argument")
		}
		cfg.ClipboardPath = args[0]
		return nil
	}

	switch len(args) {
	case 0:
		return nil
	case 1:
		from, to, ok := strings.Cut(args[0], "..")
		if !ok || from == "" || to == "" {
			return fmt.Errorf("error: expected <from>..<to> or two file paths, got %q", args[0])
		}
		cfg.FromRef = from
		cfg.ToRef = strings.TrimPrefix(to, ".")
		return nil
	case 2:
		cfg.OldPath = args[0]
		cfg.NewPath = args[1]
		return nil
	default:
		return fmt.Errorf("error: too many arguments")
	}
}
