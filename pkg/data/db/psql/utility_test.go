package psql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/peter-kozarec/riskblend/pkg/data"
)

func TestPsql_ConnString(t *testing.T) {
	got := ConnString("localhost", "5432", "quant", "secret", "markets")
	want := "host=localhost port=5432 user=quant password=secret dbname=markets sslmode=disable"
	if got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}
}

func TestPsql_ConnectUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// port 1 is reserved and never serves postgres
	_, err := Connect(ctx, ConnString("127.0.0.1", "1", "quant", "secret", "markets")+" connect_timeout=1")
	if err == nil {
		t.Error("Expected error for unreachable server")
	}
}

func TestPsql_ReturnsRejectsBadIdentifier(t *testing.T) {
	_, err := Returns(context.Background(), nil, "returns where 1=1", "ret")
	if !errors.Is(err, data.ErrInvalidIdentifier) {
		t.Errorf("Expected ErrInvalidIdentifier, got %v", err)
	}
}
