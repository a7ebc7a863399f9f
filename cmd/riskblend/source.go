package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/peter-kozarec/riskblend/pkg/data/db/psql"
	"github.com/peter-kozarec/riskblend/pkg/data/duckdb"
	"github.com/peter-kozarec/riskblend/pkg/datasource/historical"
)

var (
	errNoSource       = errors.New("one of -csv, -bin, -duckdb or -postgres is required")
	errTooManySources = errors.New("only one of -csv, -bin, -duckdb or -postgres may be set")
	errRangeNeedsBin  = errors.New("-from and -to only apply to -bin")
)

var (
	minTime = time.Unix(0, math.MinInt64)
	maxTime = time.Unix(0, math.MaxInt64)
)

type sourceOptions struct {
	csvPath    string
	binPath    string
	duckdbDSN  string
	postgres   string
	table      string
	column     string
	duckdbUsed bool

	// from and to bound the -bin records when ranged is set.
	from   time.Time
	to     time.Time
	ranged bool
}

func loadReturns(ctx context.Context, opts sourceOptions) ([]float64, error) {
	selected := 0
	for _, set := range []bool{opts.csvPath != "", opts.binPath != "", opts.duckdbUsed, opts.postgres != ""} {
		if set {
			selected++
		}
	}
	switch {
	case selected == 0:
		return nil, errNoSource
	case selected > 1:
		return nil, errTooManySources
	case opts.ranged && opts.binPath == "":
		return nil, errRangeNeedsBin
	}

	switch {
	case opts.csvPath != "":
		return historical.LoadCSVReturns(opts.csvPath, opts.column)

	case opts.binPath != "" && opts.ranged:
		return historical.LoadBinaryReturnsRange(opts.binPath, opts.from, opts.to)

	case opts.binPath != "":
		return historical.LoadBinaryReturns(opts.binPath)

	case opts.duckdbUsed:
		reader := duckdb.NewReader(opts.duckdbDSN)
		if err := reader.Connect(); err != nil {
			return nil, err
		}
		defer reader.Close()
		return reader.Returns(ctx, opts.table, opts.column)

	default:
		db, err := psql.Connect(ctx, opts.postgres)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = db.Close()
		}()
		returns, err := psql.Returns(ctx, db, opts.table, opts.column)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return returns, nil
	}
}
