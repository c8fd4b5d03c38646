package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"digital.vasic.gauntlet/pkg/prompt"
	"digital.vasic.gauntlet/pkg/registry"
	"digital.vasic.gauntlet/pkg/report"
)

func runPrompt(cmd *Command) func(
	args []string, stdout, stderr io.Writer,
) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		bankPath := fs.String(
			"bank", defaultBankPath, "Path to challenge bank",
		)
		challengeID := fs.String(
			"challenge", "", "Specific challenge ID",
		)
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		rep := report.NewConsoleReporter(stderr, false)

		reg, err := registry.Load(*bankPath)
		if err != nil {
			rep.Errorf("Failed to load bank: %v", err)
			return ExitError
		}

		target, err := selectChallenges(reg, *challengeID)
		if err != nil {
			rep.Errorf(
				"Challenge '%s' not found.", *challengeID,
			)
			fmt.Fprintf(stderr, "  %v\n", err)
			return ExitError
		}

		rule := strings.Repeat("=", 60)
		for _, c := range target {
			fmt.Fprintf(stdout, "\n%s\n", rule)
			fmt.Fprintf(
				stdout,
				"Challenge: %s (difficulty: %s)\n",
				c.Name, c.Difficulty,
			)
			fmt.Fprintf(stdout, "%s\n", rule)
			fmt.Fprintln(stdout, prompt.Build(c))
		}
		return ExitOK
	}
}
