package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgCyan)
	FaintColor   = color.New(color.Faint)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

// FileStat is one row of the --stat summary.
type FileStat struct {
	Path       string
	Status     string
	Insertions int
	Deletions  int
}

// PrintDiffStat prints a per-file change summary to stdout.
func PrintDiffStat(stats []FileStat) {
	if len(stats) == 0 {
		FaintColor.Println("No changes.")
		return
	}

	var totalIns, totalDel int
	for _, s := range stats {
		fmt.Printf("  %s %s %s %s\n",
			PathColor.Sprint(s.Path),
			FaintColor.Sprintf("(%s)", s.Status),
			SuccessColor.Sprintf("+%d", s.Insertions),
			ErrorColor.Sprintf("-%d", s.Deletions),
		)
		totalIns += s.Insertions
		totalDel += s.Deletions
	}

	fmt.Printf("  %d file(s) changed, %s, %s\n",
		len(stats),
		SuccessColor.Sprintf("%d insertion(s)", totalIns),
		ErrorColor.Sprintf("%d deletion(s)", totalDel),
	)
}
