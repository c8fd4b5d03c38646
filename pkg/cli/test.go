package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"digital.vasic.gauntlet/pkg/agent"
	"digital.vasic.gauntlet/pkg/challenge"
	"digital.vasic.gauntlet/pkg/env"
	"digital.vasic.gauntlet/pkg/eval"
	"digital.vasic.gauntlet/pkg/logging"
	"digital.vasic.gauntlet/pkg/metrics"
	"digital.vasic.gauntlet/pkg/monitor"
	"digital.vasic.gauntlet/pkg/registry"
	"digital.vasic.gauntlet/pkg/report"
)

// newAgent is swapped in tests to avoid real provider calls.
var newAgent = agent.New

func runTest(cmd *Command) func(
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
		model := fs.String(
			"model", "gpt-4o", "Model name",
		)
		provider := fs.String(
			"provider", agent.ProviderOpenAI,
			"LLM provider (openai or anthropic)",
		)
		challengeID := fs.String(
			"challenge", "", "Specific challenge ID",
		)
		engineURL := fs.String(
			"engine-url", "", "Truth Engine base URL",
		)
		output := fs.String(
			"output", "", "Save results to JSON file",
		)
		summaryPath := fs.String(
			"summary", "", "Save Markdown summary to file",
		)
		historyPath := fs.String(
			"history", "", "Append run to history file",
		)
		logPath := fs.String(
			"log-file", "", "Write structured JSON logs",
		)
		monitorAddr := fs.String(
			"monitor", "",
			"Serve live progress on this address",
		)
		verbose := fs.Bool(
			"verbose", false,
			"Show diagnostics for passing challenges",
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

		target, err := selectChallenges(reg, *challengeID)
		if err != nil {
			rep.Errorf(
				"Challenge '%s' not found.", *challengeID,
			)
			return ExitError
		}

		loader := env.NewLoader()
		if _, statErr := os.Stat(".env"); statErr == nil {
			_ = loader.Load(".env")
		}

		ag, err := newAgent(
			*provider, *model, loader.GetAPIKey(*provider),
		)
		if err != nil {
			rep.Errorf("%v", err)
			return ExitUsage
		}

		logger, cleanup, err := buildLogger(
			*logPath, *verbose,
		)
		if err != nil {
			rep.Errorf("Failed to open log file: %v", err)
			return ExitError
		}
		defer cleanup()

		ctx := context.Background()
		collector := monitor.NewCollector()
		runMetrics := metrics.NewRunMetrics()

		if *monitorAddr != "" {
			srv := monitor.NewServer(*monitorAddr, collector)
			monitorCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() {
				if err := srv.Start(monitorCtx); err != nil {
					logger.Warn(
						"monitor server stopped",
						logging.ErrorField(err),
					)
				}
			}()
		}

		rep.Header()
		rep.RunInfo(*model, *provider, len(target))

		runner := eval.NewRunner(
			newResolver(*engineURL, loader), ag,
			eval.WithModel(*model),
			eval.WithProvider(*provider),
			eval.WithLogger(logger),
			eval.WithCollector(collector),
			eval.WithMetrics(runMetrics),
		)
		runReport := runner.Run(ctx, target)

		whyHard := make(map[challenge.ID]string, len(target))
		for _, c := range target {
			whyHard[c.ID] = c.WhyHard
		}
		for _, res := range runReport.Results {
			rep.ChallengeResult(res, whyHard[res.ChallengeID])
		}

		passed := runReport.Passed()
		rep.Summary(passed, len(runReport.Results))

		if *verbose {
			if id, d, ok := runMetrics.Slowest(); ok {
				rep.Notice(fmt.Sprintf(
					"Total evaluation time: %s (slowest: %s, %s)",
					runMetrics.TotalDuration().Round(
						time.Millisecond,
					),
					id,
					d.Round(time.Millisecond),
				))
			}
		}

		if *output != "" {
			err := report.NewJSONReporter(true).
				SaveReport(*output, &runReport)
			if err != nil {
				rep.Errorf("Failed to save results: %v", err)
				return ExitError
			}
			rep.Notice("Results saved to " + *output)
		}
		if *summaryPath != "" {
			err := report.SaveMarkdownSummary(
				*summaryPath, &runReport,
			)
			if err != nil {
				rep.Errorf("Failed to save summary: %v", err)
				return ExitError
			}
		}
		if *historyPath != "" {
			err := report.AppendToHistory(
				*historyPath, &runReport,
			)
			if err != nil {
				rep.Errorf(
					"Failed to append history: %v", err,
				)
				return ExitError
			}
		}

		if passed < len(runReport.Results) {
			return ExitError
		}
		return ExitOK
	}
}

// buildLogger assembles the run logger: a JSON file logger when
// a path is given, the console logger in verbose mode, both when
// both apply, and the null logger otherwise.
func buildLogger(
	logPath string, verbose bool,
) (logging.Logger, func(), error) {
	console := logging.NewConsoleLogger(verbose)
	if logPath == "" {
		if verbose {
			return console, func() {}, nil
		}
		return logging.NullLogger{}, func() {}, nil
	}

	jsonLogger, err := logging.NewJSONLogger(
		logging.JSONLoggerConfig{
			OutputPath: logPath,
			Level:      logging.LevelInfo,
		},
	)
	if err != nil {
		return nil, nil, err
	}

	var logger logging.Logger = jsonLogger
	if verbose {
		logger = logging.NewMultiLogger(console, jsonLogger)
	}
	return logger, func() { _ = jsonLogger.Close() }, nil
}
