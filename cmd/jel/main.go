package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwtan/jelconsole/internal/core"
	"github.com/mwtan/jelconsole/internal/repl"
	"github.com/mwtan/jelconsole/internal/repl/config"
	"github.com/mwtan/jelconsole/internal/styles"
	"github.com/mwtan/jelconsole/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath          string
	historyPath         string
	prompt              string
	logLevelFlag        string
	dumb                bool
	noHistory           bool
	consumeTrailingLine bool

	// consoleStarted is set once the log file is open.
	consoleStarted bool
)

var rootCmd = &cobra.Command{
	Use:   "jel",
	Short: "Interactive console for JEL expressions",
	Long: `jel reads expressions one line at a time, evaluates them against a
session of named variables and prints the results.

Console commands:
  show            list the variables of the session
  remove <name>   delete a variable
  help            print the command list
  quit, exit      leave the console`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("jel %s\n", version.String()))

	rootCmd.PersistentFlags().StringVar(&historyPath, "history", "", "history database (default ~/.jel/history.db)")
	addConsoleFlags(rootCmd)
}

func addConsoleFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "startup file (default ~/.jelrc)")
	flags.StringVar(&prompt, "prompt", "", "prompt shown before each line")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&dumb, "dumb", false, "use a plain line reader without editing features")
	flags.BoolVar(&noHistory, "no-history", false, "do not read or record command history")
	flags.BoolVar(&consumeTrailingLine, "consume-trailing-line", false, "discard one extra line after each command")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR("jel: "+err.Error()))
		if consoleStarted {
			fmt.Fprintln(os.Stderr, styles.HINT("details in "+core.LogFile()))
		}
		os.Exit(1)
	}
}

func runConsole(cmd *cobra.Command, _ []string) error {
	logger, logLevel, err := initializeLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync() // Flush any buffered log entries
	consoleStarted = true

	logger.Info("-------- new jel session --------", zap.Any("args", os.Args))

	console, err := repl.NewREPL(newREPLOptions(cmd, logger))
	if err != nil {
		logger.Error("failed to start console", zap.Error(err))
		return err
	}
	defer console.Close()

	// Release builds follow the configured level; dev builds stay at debug.
	if !version.IsDev() {
		if level, err := console.Config().ZapLevel(); err == nil {
			logLevel.SetLevel(level)
		} else {
			logger.Warn("invalid log level", zap.String("level", console.Config().LogLevel), zap.Error(err))
		}
	}

	// SIGTERM ends the session; SIGINT is left to the line reader.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	err = console.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("unhandled error", zap.Error(err))
		return err
	}
	return nil
}

// newREPLOptions maps the command line onto console options. Flags are only
// applied when given, so that the startup file can set the same values.
func newREPLOptions(cmd *cobra.Command, logger *zap.Logger) repl.Options {
	flags := cmd.Flags()

	opts := repl.Options{
		ConfigPath: configPath,
		Dumb:       dumb,
		Logger:     logger,
		Output:     cmd.OutOrStdout(),
		ConfigOverrides: func(cfg *config.Config) {
			if flags.Changed("prompt") {
				cfg.Prompt = prompt
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevelFlag
			}
			if flags.Changed("consume-trailing-line") {
				cfg.ConsumeTrailingLine = consumeTrailingLine
			}
		},
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = core.RcFile()
	}
	if in, ok := cmd.InOrStdin().(*os.File); ok {
		opts.Input = in
	}
	if !noHistory {
		opts.HistoryPath = resolveHistoryPath()
	}
	return opts
}

func resolveHistoryPath() string {
	if historyPath != "" {
		return historyPath
	}
	return core.HistoryFile()
}

func initializeLogger() (*zap.Logger, zap.AtomicLevel, error) {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if version.IsDev() {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	// Logs only go to file to keep the terminal clean.
	// Use `tail -f ~/.jel/jel.log` to follow them.
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	return logger, logLevel, nil
}
