// Package cli implements the gauntlet command line: verify,
// prompt, and test subcommands over a shared challenge bank.
package cli

import (
	"fmt"
	"io"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command is one gauntlet subcommand.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

// Run dispatches to a subcommand and returns its exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(
			stderr, "Unknown command: %s\n\n", args[0],
		)
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gauntlet <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(
			w, "  %-8s %s\n", cmd.Name, cmd.Summary,
		)
	}
	fmt.Fprintln(
		w,
		"\nUse \"gauntlet <command> --help\" for more "+
			"information.",
	)
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(
	name, summary string,
	usage []string,
	runner func(cmd *Command) func(
		args []string, stdout, stderr io.Writer,
	) int,
) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command(
		"verify",
		"Verify challenges against the Truth Engine",
		[]string{
			"gauntlet verify [--bank <path>] [--verbose]" +
				" [--output <path>]",
		},
		runVerify,
	),
	command(
		"prompt",
		"Print LLM prompts for challenges",
		[]string{
			"gauntlet prompt [--bank <path>]" +
				" [--challenge <id>]",
		},
		runPrompt,
	),
	command(
		"test",
		"Run an LLM against the gauntlet",
		[]string{
			"gauntlet test [--model <name>]" +
				" [--provider openai|anthropic]" +
				" [--challenge <id>] [--output <path>]",
		},
		runTest,
	),
}
