package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFunc(query string, rows int64) func() (string, int64) {
	return func() (string, int64) { return query, rows }
}

func TestGormLogger_LogMode(t *testing.T) {
	g := NewGormLogger(zap.NewNop(), gormlogger.Info, 0)
	changed, ok := g.LogMode(gormlogger.Silent).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, g.level)
	assert.Equal(t, gormlogger.Silent, changed.level)
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-7")

	t.Run("errors are logged", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Warn, time.Second)

		g.Trace(ctx, time.Now(), sqlFunc("SELECT 1", 0), errors.New("connection refused"))

		entries := recorded.FilterMessage("sql error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "gorm", entries[0].LoggerName)
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Info, time.Second)

		g.Trace(ctx, time.Now(), sqlFunc("SELECT 1", 0), gorm.ErrRecordNotFound)

		assert.Zero(t, recorded.FilterMessage("sql error").Len())
	})

	t.Run("slow queries warn", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond)

		g.Trace(ctx, time.Now().Add(-time.Second), sqlFunc("SELECT * FROM homepage_displays", 1), nil)

		entries := recorded.FilterMessage("slow sql").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})

	t.Run("info level traces every query at debug", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Info, 0)

		g.Trace(ctx, time.Now(), sqlFunc("SELECT 1", 1), nil)

		entries := recorded.FilterMessage("sql").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Silent, 0)

		g.Trace(ctx, time.Now(), sqlFunc("SELECT 1", 1), errors.New("boom"))

		assert.Zero(t, recorded.Len())
	})
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Warn, GormLevel("warn"))
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLevel("whatever"))
}
