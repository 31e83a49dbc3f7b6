package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"digital.vasic.testnames/pkg/listener"
	"digital.vasic.testnames/pkg/logging"
	"digital.vasic.testnames/pkg/metrics"
	"digital.vasic.testnames/pkg/monitor"
	"digital.vasic.testnames/pkg/runner"
)

// ServeOptions holds flags of the serve command.
type ServeOptions struct {
	Addr string
	Once bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve <suite-file>",
		Short: "Run a suite while streaming named invocation events",
		Long: `Run a suite dry and stream every invocation event, tagged with its
display name, over WebSocket at /ws. /events returns a JSON snapshot and
/metrics exposes Prometheus metrics. The server keeps running until
interrupted unless --once is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(
				cmd.Context(), syscall.SIGINT, syscall.SIGTERM,
			)
			defer stop()
			return runServe(ctx, cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config, :8089)")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "stop serving after the suite finishes")

	return cmd
}

func runServe(
	ctx context.Context, cmd *cobra.Command, rootOpts *RootOptions,
	opts *ServeOptions, suitePath string,
) error {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewPrometheusMetrics(reg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to register metrics", err)
	}

	sess, err := newSession(rootOpts, suitePath, cmd.ErrOrStderr(), m)
	if err != nil {
		return err
	}
	defer func() { _ = sess.logger.Close() }()

	addr := opts.Addr
	if addr == "" {
		addr = sess.cfg.Monitor.Addr
	}

	collector := monitor.NewCollector()
	server := monitor.NewServer(addr, collector, sess.logger)
	server.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// failures is set by the run goroutine and read after Wait.
	var failures error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		r := runner.NewRunner(sess.engine,
			runner.WithRegistry(runner.Default),
			runner.WithLogger(sess.logger),
			runner.WithMetrics(m),
			runner.WithListeners(
				listener.NewMonitorListener(sess.engine, collector),
			),
		)
		results, err := r.Run(gctx, sess.suite)
		if err != nil {
			return WrapExitError(ExitFailure, "run failed", err)
		}
		if err := writeResults(cmd.OutOrStdout(), rootOpts.Format, results); err != nil {
			return err
		}
		stats := collector.Stats()
		sess.logger.Info("suite streamed",
			logging.IntField("passed", stats.Passed),
			logging.IntField("failed", stats.Failed),
			logging.IntField("skipped", stats.Skipped),
		)
		failures = checkFailures(results)
		if opts.Once {
			cancel()
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return failures
}
