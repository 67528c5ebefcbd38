package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"parlaseramik/config"
	deliverycontext "parlaseramik/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestGormLogger(logs *bytes.Buffer, debug bool) *gormSlogLogger {
	cfg := &config.Config{}
	cfg.Env.Debug = debug
	cfg.Database.SlowQueryThreshold = 100 * time.Millisecond

	return newGormSlogLogger(slog.New(slog.NewJSONHandler(logs, nil)), cfg).(*gormSlogLogger)
}

func stockUpdate() (string, int64) {
	return `UPDATE "products" SET "stock"=stock + -2 WHERE id = 'x' AND stock + -2 >= 0`, 1
}

func TestGormLogger_SlowQueryUsesRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	l := newTestGormLogger(&logs, false)

	reqLogger := slog.New(slog.NewJSONHandler(&logs, nil)).With(slog.String("request_id", "req-9"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	l.Trace(ctx, time.Now().Add(-time.Second), stockUpdate, nil)

	out := logs.String()
	assert.Contains(t, out, "GORM slow query")
	assert.Contains(t, out, `"request_id":"req-9"`)
	assert.Contains(t, out, `"rows":1`)
}

func TestGormLogger_RecordNotFoundIsQuiet(t *testing.T) {
	var logs bytes.Buffer
	l := newTestGormLogger(&logs, false)

	l.Trace(context.Background(), time.Now(), stockUpdate, errors.Wrap(gorm.ErrRecordNotFound, "first"))
	assert.Empty(t, logs.String())

	l.Trace(context.Background(), time.Now(), stockUpdate, errors.New("deadlock detected"))
	assert.Contains(t, logs.String(), "GORM query failed")
	assert.Contains(t, logs.String(), "deadlock detected")
}

func TestGormLogger_FastQueriesOnlyInDebug(t *testing.T) {
	var quiet, verbose bytes.Buffer

	newTestGormLogger(&quiet, false).Trace(context.Background(), time.Now(), stockUpdate, nil)
	newTestGormLogger(&verbose, true).Trace(context.Background(), time.Now(), stockUpdate, nil)

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), `"msg":"GORM query"`)
}

func TestPoolMonitor_ReportsOnlyWaits(t *testing.T) {
	var logs bytes.Buffer
	m := poolMonitor{
		logger:   slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		warnWait: 50 * time.Millisecond,
	}

	m.report(context.Background(), sql.DBStats{WaitCount: 3}, sql.DBStats{WaitCount: 3})
	assert.Empty(t, logs.String())

	m.report(context.Background(),
		sql.DBStats{WaitCount: 3, WaitDuration: time.Millisecond},
		sql.DBStats{WaitCount: 5, WaitDuration: 201 * time.Millisecond, InUse: 20, MaxOpenConnections: 20},
	)
	out := logs.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"waits":2`)
	assert.Contains(t, out, `"avgWait":100000000`)
}
