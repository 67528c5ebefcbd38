package impl

import (
	"context"
	"io"
	"log/slog"

	"parlaseramik/config"
	"parlaseramik/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var mockAnyTxFunc = mock.AnythingOfType("func(repository.RepositoryFactory) error")

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(seed config.SeedConfig) *config.Config {
	return &config.Config{Seed: seed}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// runWith makes a mocked TransactionManager hand factory to the callback.
func runWith(factory repository.RepositoryFactory) func(context.Context, func(repository.RepositoryFactory) error) error {
	return func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
		return fn(factory)
	}
}
