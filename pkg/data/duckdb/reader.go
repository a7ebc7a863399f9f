package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/peter-kozarec/riskblend/pkg/data"
)

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

// NewReader takes a duckdb data source name; an empty name opens an in-memory database.
func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	if r.db != nil {
		_ = r.db.Close()
	}
}

func (r *Reader) DB() *sql.DB {
	return r.db
}

// LoadReturns streams column of table, ordered by ts, into handler.
func (r *Reader) LoadReturns(ctx context.Context, table, column string, handler func(value float64) error) error {
	query, err := data.ReturnsQuery(table, column)
	if err != nil {
		return err
	}
	return data.ScanReturns(ctx, r.db, query, handler)
}

func (r *Reader) Returns(ctx context.Context, table, column string) ([]float64, error) {
	query, err := data.ReturnsQuery(table, column)
	if err != nil {
		return nil, err
	}
	return data.CollectReturns(ctx, r.db, query)
}
