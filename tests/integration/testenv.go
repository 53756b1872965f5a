// Package integration runs the persistence and lock layers against real
// PostgreSQL and Redis containers started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/erp/sellerops/internal/infrastructure/migration"
)

// lazyContainer starts one container for the whole package on first use.
// A failed start is remembered so later tests fail fast.
type lazyContainer struct {
	mu       sync.Mutex
	c        testcontainers.Container
	endpoint string
	err      error
	start    func(ctx context.Context) (testcontainers.Container, string, error)
}

func (l *lazyContainer) get(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.c == nil && l.err == nil {
		l.c, l.endpoint, l.err = l.start(context.Background())
	}
	require.NoError(t, l.err)
	return l.endpoint
}

func (l *lazyContainer) terminate(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.c != nil {
		_ = l.c.Terminate(ctx)
		l.c = nil
	}
}

var postgresContainer = &lazyContainer{start: startPostgres}

// startPostgres returns the DSN of a fresh database with every embedded
// migration applied.
func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	c, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("sellerops_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute)),
	)
	if err != nil {
		return nil, "", err
	}
	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return c, "", err
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return c, "", err
	}
	defer sqlDB.Close()
	m, err := migration.NewEmbedded(sqlDB, zap.NewNop())
	if err != nil {
		return c, "", err
	}
	if err := m.Up(); err != nil {
		_ = m.Close()
		return c, "", err
	}
	return c, dsn, m.Close()
}

var redisContainer = &lazyContainer{start: func(ctx context.Context) (testcontainers.Container, string, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, "", err
	}
	addr, err := c.Endpoint(ctx, "")
	return c, addr, err
}}

// TestDB is a connection to the shared, migrated postgres database
type TestDB struct {
	DB  *gorm.DB
	DSN string
}

// NewTestDB truncates every application table so each test starts empty
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	dsn := postgresContainer.get(t)
	db, _ := connect(t, dsn)

	var tables []string
	require.NoError(t, db.Raw(`SELECT tablename FROM pg_tables
		WHERE schemaname = 'public' AND tablename <> 'schema_migrations'`).Scan(&tables).Error)
	for _, table := range tables {
		require.NoError(t, db.Exec(`TRUNCATE TABLE "`+table+`" CASCADE`).Error)
	}
	return &TestDB{DB: db, DSN: dsn}
}

// connect opens a small pool closed at test cleanup. TEST_DB_DEBUG=1 logs SQL.
func connect(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()
	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(level),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db, sqlDB
}

// NewTestRedis returns a client on the shared redis with an empty keyspace
func NewTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: redisContainer.get(t)})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.FlushDB(context.Background()).Err())
	return client
}

func terminateShared() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	postgresContainer.terminate(ctx)
	redisContainer.terminate(ctx)
}
