package main

import (
	"fmt"
	"os"

	"github.com/morphtui/morph/cli"
	"github.com/morphtui/morph/internal/tui"
	"github.com/morphtui/morph/morph"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := morph.New(cfg)
	m, err := app.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Stat {
		app.PrintStat(m)
		return
	}

	if m.Len() == 0 {
		fmt.Println("No changes to show.")
		return
	}

	if err := tui.Run(m, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
