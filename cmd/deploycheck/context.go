package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vertti/deploycheck/pkg/config"
	"github.com/vertti/deploycheck/pkg/depcheck"
	"github.com/vertti/deploycheck/pkg/logger"
	"github.com/vertti/deploycheck/pkg/suite"
)

// depRunner executes dependency probes; tests replace it.
var depRunner depcheck.Runner = &depcheck.RealRunner{}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rootDir, configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSuite loads configuration and builds a logger and suite for a command.
func newSuite(cmd *cobra.Command) (*config.Config, *suite.Suite, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	log = log.With(zap.String("run_id", uuid.NewString()), zap.String("command", cmd.Name()))
	if cfg.Source != "" {
		log.Debug("loaded config", zap.String("path", cfg.Source))
	}

	s, err := suite.New(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}
	s.Runner = depRunner

	return cfg, s, func() { _ = log.Sync() }, nil
}
