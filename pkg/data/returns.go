package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"regexp"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")

	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ReturnsQuery selects one column of a table ordered by its ts column.
// Table and column names are interpolated, so both must be plain identifiers.
func ReturnsQuery(table, column string) (string, error) {
	for _, name := range []string{table, column} {
		if !identifierPattern.MatchString(name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return fmt.Sprintf(`SELECT %s FROM %s ORDER BY ts`, column, table), nil
}

// ScanReturns runs query and hands every row to handler. NULL rows are
// passed on as NaN.
func ScanReturns(ctx context.Context, db *sql.DB, query string, handler func(float64) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var value sql.NullFloat64
		if err := rows.Scan(&value); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if !value.Valid {
			value.Float64 = math.NaN()
		}
		if err := handler(value.Float64); err != nil {
			return fmt.Errorf("error processing return: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}
	return nil
}

// CollectReturns is ScanReturns into a slice.
func CollectReturns(ctx context.Context, db *sql.DB, query string) ([]float64, error) {
	var returns []float64
	err := ScanReturns(ctx, db, query, func(value float64) error {
		returns = append(returns, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return returns, nil
}
