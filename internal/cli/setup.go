package cli

import (
	"fmt"
	"io"

	"digital.vasic.testnames/pkg/config"
	"digital.vasic.testnames/pkg/logging"
	"digital.vasic.testnames/pkg/metrics"
	"digital.vasic.testnames/pkg/naming"
	"digital.vasic.testnames/pkg/suite"
)

// session bundles what every command needs to run a suite.
type session struct {
	cfg    *config.Config
	suite  *suite.Suite
	logger logging.Logger
	engine *naming.Engine
}

// newSession loads the configuration and suite and builds the
// logger and naming engine.
func newSession(
	opts *RootOptions, suitePath string, errW io.Writer, m metrics.NamingMetrics,
) (*session, error) {
	env := config.NewEnv()
	if opts.EnvFile != "" {
		if err := env.LoadFile(opts.EnvFile); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load env file", err)
		}
	}
	cfg, err := config.LoadWithEnv(opts.Config, env)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	s, err := suite.Load(suitePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load suite", err)
	}
	logger, err := newLogger(cfg, opts.Verbose, errW)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to set up logging", err)
	}
	if m == nil {
		m = metrics.NoopMetrics{}
	}

	engineOpts := append(cfg.EngineOptions(),
		naming.WithLogger(logger),
		naming.WithMetrics(m),
	)
	return &session{
		cfg:    cfg,
		suite:  s,
		logger: logger,
		engine: naming.NewEngine(naming.NewRepeatCounter(), engineOpts...),
	}, nil
}

// newLogger writes to errW at warn level, or debug when verbose,
// and additionally to the configured log file at the configured
// level.
func newLogger(
	cfg *config.Config, verbose bool, errW io.Writer,
) (logging.Logger, error) {
	consoleLevel := logging.LevelWarn
	if verbose {
		consoleLevel = logging.LevelDebug
	}
	console := logging.NewConsoleLogger(errW, consoleLevel)
	if cfg.Log.File == "" {
		return console, nil
	}

	file, err := logging.NewJSONLogger(logging.LoggerConfig{
		OutputPath: cfg.Log.File,
		Level:      cfg.LogLevel(),
		Fields:     map[string]any{"component": "testnames"},
	})
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.NewMultiLogger(console, file), nil
}
