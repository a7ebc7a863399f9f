package psql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/peter-kozarec/riskblend/pkg/data"
)

func ConnString(host, port, user, pass, db string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, db)
}

// Connect opens a postgres connection from a lib/pq connection string and pings it.
func Connect(ctx context.Context, connStr string) (*sql.DB, error) {
	dbConn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := dbConn.PingContext(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("unable to reach postgres: %w", err)
	}

	return dbConn, nil
}

// Returns reads column of table ordered by ts.
func Returns(ctx context.Context, db *sql.DB, table, column string) ([]float64, error) {
	query, err := data.ReturnsQuery(table, column)
	if err != nil {
		return nil, err
	}
	return data.CollectReturns(ctx, db, query)
}
