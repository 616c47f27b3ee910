package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("validate-email", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	noDNS := fs.Bool("no-dns", false, "skip the DNS resolution check")
	noDisposable := fs.Bool("no-disposable-check", false, "skip the disposable-domain check")
	noVerify := fs.Bool("no-verify", false, "skip the SMTP mailbox-existence probe")
	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "print every check stage")
	fs.BoolVar(&verbose, "v", false, "shorthand for -verbose")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: validate-email <email> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Validates an email address: regex format, DNS liveness, disposable-domain\n")
		fmt.Fprintf(os.Stderr, "list and an SMTP mailbox probe. Exit code 0 = valid, 1 = invalid.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}
	// stdlib flag stops at the first positional; re-parse whatever
	// follows it so flags may come after the email as well.
	rest := fs.Args()
	var positionals []string
	for len(rest) > 0 {
		positionals = append(positionals, rest[0])
		if err := fs.Parse(rest[1:]); err != nil {
			return 1
		}
		rest = fs.Args()
	}
	if len(positionals) != 1 {
		fs.Usage()
		return 1
	}
	email := positionals[0]

	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	v := NewValidator(Options{
		CheckDNS:        !*noDNS,
		CheckDisposable: !*noDisposable,
		VerifyExistence: !*noVerify,
	})

	// Progress bar on stderr so stdout stays clean; verbose runs show
	// the stage table instead.
	var bar *progressbar.ProgressBar
	if !verbose {
		bar = progressbar.NewOptions(v.StageCount(), progressbar.OptionSetWriter(os.Stderr))
		v.Progress = func(string) { _ = bar.Add(1) }
	}

	rep := v.Validate(context.Background(), email)

	if bar != nil {
		// leave the cursor on a fresh line after the bar
		fmt.Fprintln(os.Stderr)
	}

	if verbose {
		printStages(rep)
	}
	printSummary(rep)

	if rep.Valid {
		return 0
	}
	return 1
}

func printStages(rep Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"", "Stage", "Detail"})
	for _, line := range rep.Lines {
		t.AppendRow(table.Row{marker(line.Status), line.Stage, line.Message})
	}
	t.Render()
}

func marker(s Status) string {
	switch s {
	case StatusOK:
		return color.GreenString("✓")
	case StatusWarn:
		return color.YellowString("!")
	default:
		return color.RedString("✗")
	}
}

func printSummary(rep Report) {
	if rep.Valid {
		fmt.Printf("%s %s is a valid email address.\n", color.GreenString("✓"), rep.Email)
	} else {
		fmt.Printf("%s %s is NOT a valid email address.\n", color.RedString("✗"), rep.Email)
	}
}
