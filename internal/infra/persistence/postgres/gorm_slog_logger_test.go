package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"storefront/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormLogger(debug bool) (logger.Interface, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newGormSlogLogger(base, cfg), buf
}

func sqlFn() (string, int64) {
	return "SELECT 1", 1
}

func TestGormSlogLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("failed statement", func(t *testing.T) {
		l, buf := newTestGormLogger(false)
		l.Trace(ctx, time.Now(), sqlFn, errors.New("connection reset"))

		assert.Contains(t, buf.String(), "SQL statement failed")
		assert.Contains(t, buf.String(), "connection reset")
		assert.Contains(t, buf.String(), "component=gorm")
	})

	t.Run("record not found is silent", func(t *testing.T) {
		l, buf := newTestGormLogger(true)
		l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)

		assert.NotContains(t, buf.String(), "failed")
	})

	t.Run("slow statement", func(t *testing.T) {
		l, buf := newTestGormLogger(false)
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)

		assert.Contains(t, buf.String(), "Slow SQL statement")
	})

	t.Run("fast statement only in debug", func(t *testing.T) {
		quiet, quietBuf := newTestGormLogger(false)
		quiet.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Empty(t, quietBuf.String())

		verbose, verboseBuf := newTestGormLogger(true)
		verbose.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Contains(t, verboseBuf.String(), "SELECT 1")
	})

	t.Run("silent mode", func(t *testing.T) {
		l, buf := newTestGormLogger(true)
		l.LogMode(logger.Silent).Trace(ctx, time.Now(), sqlFn, errors.New("x"))

		assert.Empty(t, buf.String())
	})
}
