package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vertti/deploycheck/pkg/logger"
	"github.com/vertti/deploycheck/pkg/output"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, ErrChecksFailed) {
			reportError(err)
		}
		os.Exit(1)
	}
}

// reportError logs a command error to stderr with a console logger.
func reportError(err error) {
	l, logErr := logger.New(&logger.Config{Level: "error", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
}

var (
	configFile string
	rootDir    string
	logLevel   string
	logFormat  string
	logFile    string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "deploycheck",
	Short: "Pre-deployment smoke test for the coaching class application",
	Long: `deploycheck verifies that a checkout is ready to deploy:

  - the backend, frontend and upload directories exist and are writable
  - the backend's Python dependencies can be imported
  - a test PDF can be generated and saved

Run without arguments to execute every check. Exit status is 0 when all
checks pass and 1 otherwise.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSuite,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to config file (default: <root>/deploycheck.toml if present)")
	pf.StringVar(&rootDir, "root", ".", "directory the checked paths are relative to")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: console or json")
	pf.StringVar(&logFile, "log-file", "", "also write logs to this file")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if noColor {
			output.DisableColor()
		}
	}
}
