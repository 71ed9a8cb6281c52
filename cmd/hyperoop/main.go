package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/hyperoop/internal/config"
	"github.com/vango-dev/hyperoop/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬ ┬┬ ┬┌─┐┌─┐┬─┐┌─┐┌─┐┌─┐
  ├─┤└┬┘├─┘├┤ ├┬┘│ ││ │├─┘
  ┴ ┴ ┴ ┴  └─┘┴└─└─┘└─┘┴
`

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// useColor is set when stdout is a terminal.
var useColor = isTerminal(os.Stdout)

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	if !isTerminal(os.Stderr) {
		errors.DisableColors()
	}
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "hyperoop",
		Short: "Render, serve and snapshot hyperoop example apps",
		Long: `hyperoop renders virtual DOM apps with keyed reconciliation,
reactive state and undo history.

The command works on the bundled example apps:

  • counter     a number with two buttons
  • todo        a filterable todo list
  • todo-hist   the todo list with undo and redo`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to hyperoop.json (default: nearest in working directory)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		snapshotCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the configuration named by --config, or the nearest
// hyperoop.json. Without one the defaults are used.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if errors.HasCode(err, "E141") {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	mark := "✓"
	if useColor {
		mark = "\033[32m✓\033[0m"
	}
	fmt.Fprintf(w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
