package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"digital.vasic.gauntlet/pkg/env"
	"digital.vasic.gauntlet/pkg/eval"
	"digital.vasic.gauntlet/pkg/registry"
	"digital.vasic.gauntlet/pkg/report"
)

func runVerify(cmd *Command) func(
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
		engineURL := fs.String(
			"engine-url", "", "Truth Engine base URL",
		)
		verbose := fs.Bool(
			"verbose", false, "List resolved occurrences",
		)
		output := fs.String(
			"output", "",
			"Write verified challenges to file",
		)
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		rep := report.NewConsoleReporter(stdout, *verbose)

		reg, err := registry.Load(*bankPath)
		if err != nil {
			rep.Errorf("Failed to load bank: %v", err)
			return ExitError
		}

		rep.Header()
		fmt.Fprintln(
			stdout,
			"  Verifying challenges against Truth Engine...",
		)
		fmt.Fprintln(stdout)

		resolver := newResolver(*engineURL, env.NewLoader())
		challenges := reg.List()
		rows := eval.Verify(
			context.Background(), resolver, challenges,
		)

		errored := 0
		for i, row := range rows {
			if row.Err != nil {
				errored++
			}
			mode := string(challenges[i].Truth.Mode())
			rep.VerificationRow(row, mode)
		}

		if *output != "" && errored == 0 {
			err := registry.SaveResolved(
				*output, reg, eval.Answers(rows),
			)
			if err != nil {
				rep.Errorf(
					"Failed to write bank: %v", err,
				)
				return ExitError
			}
			rep.Notice("Written to " + *output)
		} else if errored > 0 {
			rep.Errorf(
				"%d challenge(s) failed verification.",
				errored,
			)
			return ExitError
		}

		fmt.Fprintln(stdout)
		return ExitOK
	}
}
