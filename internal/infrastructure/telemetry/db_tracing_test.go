package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func recordingSpan(t *testing.T) (context.Context, *tracetest.SpanRecorder, func()) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "query")
	return ctx, sr, func() { span.End() }
}

func TestNewDBTracingPlugin_Defaults(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, nil)
	assert.Equal(t, DefaultSlowQueryThreshold, p.config.SlowQueryThresh)

	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, "postgres", cfg.DBSystem)
}

func TestDBTracingPlugin_RegisterDisabled(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, NewDBTracingPlugin(DefaultDBTracingConfig(), nil).Register(db))
	assert.Nil(t, db.Callback().Query().Get("sellerops:annotate_query"))
}

func TestDBTracingPlugin_RegisterEnabled(t *testing.T) {
	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, nil)
	require.NoError(t, p.Register(db))

	assert.NotNil(t, db.Callback().Query().Get("sellerops:annotate_query"))
	assert.NotNil(t, db.Callback().Create().Get("sellerops:start_create"))

	require.NoError(t, db.Create(&tracedRow{Name: "a"}).Error)
	var rows []tracedRow
	require.NoError(t, db.Find(&rows).Error)
	assert.Len(t, rows, 1)
}

func TestDBTracingPlugin_AnnotateRowsAndTable(t *testing.T) {
	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, nil)
	ctx, sr, end := recordingSpan(t)

	tx := db.WithContext(ctx).Session(&gorm.Session{})
	tx.Statement.Table = "traced_rows"
	tx.Statement.RowsAffected = 3
	p.annotate(tx)
	end()

	attrs := map[string]any{}
	for _, kv := range sr.Ended()[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, int64(3), attrs["db.rows_affected"])
	assert.Equal(t, "traced_rows", attrs["db.sql.table"])
	assert.NotContains(t, attrs, "db.slow_query")
}

func TestDBTracingPlugin_AnnotateSlowQuery(t *testing.T) {
	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Millisecond}, nil)
	ctx, sr, end := recordingSpan(t)

	tx := db.WithContext(context.WithValue(ctx, queryStartKey{}, time.Now().Add(-50*time.Millisecond))).Session(&gorm.Session{})
	p.annotate(tx)
	end()

	span := sr.Ended()[0]
	require.Len(t, span.Events(), 1)
	assert.Equal(t, "slow_query", span.Events()[0].Name)
}

func TestDBTracingPlugin_AnnotateError(t *testing.T) {
	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, nil)

	t.Run("real error marks span", func(t *testing.T) {
		ctx, sr, end := recordingSpan(t)
		tx := db.WithContext(ctx).Session(&gorm.Session{})
		tx.Error = errors.New("constraint violated")
		p.annotate(tx)
		end()
		assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		ctx, sr, end := recordingSpan(t)
		tx := db.WithContext(ctx).Session(&gorm.Session{})
		tx.Error = gorm.ErrRecordNotFound
		p.annotate(tx)
		end()
		assert.Equal(t, codes.Unset, sr.Ended()[0].Status().Code)
	})
}

func TestDBTracingPlugin_MarkStart(t *testing.T) {
	db := setupTestDB(t).WithContext(context.Background()).Session(&gorm.Session{})
	p := NewDBTracingPlugin(DBTracingConfig{}, nil)
	p.markStart(db)

	_, ok := db.Statement.Context.Value(queryStartKey{}).(time.Time)
	assert.True(t, ok)
}
