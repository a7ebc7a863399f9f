package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peter-kozarec/riskblend/internal/dbg"
	"github.com/peter-kozarec/riskblend/pkg/middleware"
	"github.com/peter-kozarec/riskblend/pkg/tools/metrics"
	"github.com/peter-kozarec/riskblend/pkg/tools/risk"
	"github.com/peter-kozarec/riskblend/pkg/transport/ws"
)

type options struct {
	source sourceOptions

	riskFreeRate float64
	score        float64
	weight       float64
	scoreSet     bool

	listen     string
	production bool
	debug      bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	opts := options{
		source: sourceOptions{from: minTime, to: maxTime},
	}

	fs := flag.NewFlagSet("riskblend", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.source.csvPath, "csv", "", "CSV file with a header row")
	fs.StringVar(&opts.source.binPath, "bin", "", "binary returns file of (int64 ts, float64 value) records")
	fs.StringVar(&opts.source.duckdbDSN, "duckdb", "", "duckdb database (empty for in-memory)")
	fs.StringVar(&opts.source.postgres, "postgres", "", "postgres connection string")
	fs.StringVar(&opts.source.table, "table", "returns", "table holding the returns series")
	fs.StringVar(&opts.source.column, "column", DefaultReturnsColumn, "column holding the returns series")
	fs.Func("from", "only use -bin records at or after this RFC 3339 time", func(value string) error {
		from, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
		opts.source.from, opts.source.ranged = from, true
		return nil
	})
	fs.Func("to", "only use -bin records at or before this RFC 3339 time", func(value string) error {
		to, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
		opts.source.to, opts.source.ranged = to, true
		return nil
	})
	fs.Float64Var(&opts.riskFreeRate, "rf", metrics.DefaultRiskFreeRate, "per period risk free rate for the Sharpe report")
	fs.Float64Var(&opts.score, "score", 0, "existing risk score to blend with the Sharpe ratio")
	fs.Float64Var(&opts.weight, "weight", risk.DefaultSharpeRatioWeight, "weight of the Sharpe ratio in the blend")
	fs.StringVar(&opts.listen, "listen", DefaultListenAddress, "serve the websocket scoring endpoint on this address")
	fs.BoolVar(&opts.production, "prod", false, "JSON production logging")
	fs.BoolVar(&opts.debug, "debug", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duckdb":
			opts.source.duckdbUsed = true
		case "score":
			opts.scoreSet = true
		}
	})

	return opts, nil
}

func run(ctx context.Context, logger *zap.Logger, opts options) error {
	if opts.listen != "" {
		return serve(ctx, logger, opts.listen)
	}

	loadCtx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()

	returns, err := loadReturns(loadCtx, opts.source)
	if err != nil {
		return fmt.Errorf("unable to load returns: %w", err)
	}
	logger.Debug("returns loaded", zap.Int("observations", len(returns)))

	if !opts.scoreSet {
		metrics.NewReport(returns, opts.riskFreeRate).Print(logger)
		return nil
	}

	if opts.riskFreeRate != metrics.DefaultRiskFreeRate {
		logger.Warn("risk score blend always uses the default risk free rate",
			zap.Float64("requested", opts.riskFreeRate),
			zap.Float64("used", metrics.DefaultRiskFreeRate))
	}
	risk.NewScoreReport(returns, opts.score, opts.weight).Print(logger)
	return nil
}

func serve(ctx context.Context, logger *zap.Logger, addr string) error {
	monitor := middleware.NewMonitor(logger, MonitorFlags)
	telemetry := middleware.NewTelemetry()
	defer telemetry.PrintStatistics(logger)

	handler := middleware.Chain(monitor.WithScore, telemetry.WithScore)(ws.Handle)
	server := &http.Server{
		Addr:    addr,
		Handler: ws.NewRouter(ws.NewServer(logger, handler)),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("scoring endpoint listening", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	level := zapcore.InfoLevel
	if opts.debug {
		level = zapcore.DebugLevel
	}
	logger, err := dbg.NewLogger(opts.production, level)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "unable to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("riskblend started", zap.String("version", Version))
	defer logger.Info("riskblend finished")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("riskblend failed", zap.Error(err))
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}
}
