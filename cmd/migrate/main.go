package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/infrastructure/config"
	"github.com/erp/sellerops/internal/infrastructure/logger"
	"github.com/erp/sellerops/internal/infrastructure/migration"
)

const defaultMigrationsPath = "migrations"

// invocation is what a command sees once flags and args are resolved
type invocation struct {
	log  *zap.Logger
	dir  string
	args []string
	m    *migration.Migrator
}

type command struct {
	usage   string
	nargs   int
	needsDB bool
	run     func(inv *invocation) error
}

var commands = map[string]command{
	"up":      {usage: "up", needsDB: true, run: func(inv *invocation) error { return inv.m.Up() }},
	"down":    {usage: "down", needsDB: true, run: func(inv *invocation) error { return inv.m.Down() }},
	"step":    {usage: "step <n>", nargs: 1, needsDB: true, run: runStep},
	"version": {usage: "version", needsDB: true, run: runVersion},
	"force":   {usage: "force <version>", nargs: 1, needsDB: true, run: runForce},
	"create":  {usage: "create <name>", nargs: 1, run: runCreate},
	"list":    {usage: "list", run: runList},
}

func main() {
	dir := flag.String("path", "", "Migrations directory (default: ./migrations)")
	embedded := flag.Bool("embedded", false, "Use the migrations compiled into the binary")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		printUsage()
		os.Exit(1)
	}
	if len(rest) < cmd.nargs {
		fmt.Fprintf(os.Stderr, "usage: migrate %s\n", cmd.usage)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{Level: *logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	inv := &invocation{log: log, dir: resolveDir(*dir), args: rest}
	log.Info("Running migration command", zap.String("command", name), zap.String("dir", inv.dir), zap.Bool("embedded", *embedded))

	if cmd.needsDB {
		db, err := openDB()
		if err != nil {
			log.Fatal("Database unavailable", zap.Error(err))
		}
		defer func() { _ = db.Close() }()

		if *embedded {
			inv.m, err = migration.NewEmbedded(db, log)
		} else {
			inv.m, err = migration.New(db, inv.dir, log)
		}
		if err != nil {
			log.Fatal("Cannot build migrator", zap.Error(err))
		}
		defer func() { _ = inv.m.Close() }()
	}

	if err := cmd.run(inv); err != nil {
		log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
	}
}

func openDB() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

// resolveDir prefers an explicit path, then ./migrations, then the
// directory two levels above the executable.
func resolveDir(explicit string) string {
	dir := explicit
	if dir == "" {
		dir = defaultMigrationsPath
		if _, err := os.Stat(dir); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					dir = candidate
				}
			}
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func runStep(inv *invocation) error {
	n, err := strconv.Atoi(inv.args[0])
	if err != nil || n == 0 {
		return fmt.Errorf("step count must be a non-zero integer, got %q", inv.args[0])
	}
	return inv.m.Steps(n)
}

func runForce(inv *invocation) error {
	v, err := strconv.Atoi(inv.args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q", inv.args[0])
	}
	inv.log.Warn("Forcing schema version without running migrations", zap.Int("version", v))
	return inv.m.Force(v)
}

func runVersion(inv *invocation) error {
	v, dirty, err := inv.m.Version()
	if err != nil {
		return err
	}
	if v == 0 {
		inv.log.Info("Schema is empty")
		return nil
	}
	inv.log.Info("Schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	return nil
}

func runCreate(inv *invocation) error {
	mf, err := migration.CreateMigration(inv.dir, inv.args[0])
	if err != nil {
		return err
	}
	inv.log.Info("Migration pair written",
		zap.Uint("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
	return nil
}

func runList(inv *invocation) error {
	files, err := migration.ListMigrations(inv.dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no migrations found in " + inv.dir)
	}
	for _, f := range files {
		fmt.Printf("%06d  %s\n", f.Version, f.Name)
	}
	return nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Schema migrations for sellerops.

Usage:
  migrate [flags] <command> [args]

Commands:
  up                 apply every pending migration
  down               roll back every migration
  step <n>           move n migrations (negative rolls back)
  version            print the applied version and dirty flag
  force <version>    record a version without running it
  create <name>      write an empty up/down pair
  list               list migration files on disk

Flags:
  -path string       migrations directory (default ./migrations)
  -embedded          use migrations compiled into the binary
  -log-level string  debug, info, warn or error (default info)

The database is configured through SELLEROPS_DATABASE_HOST, _PORT, _USER,
_PASSWORD, _DBNAME and _SSLMODE.
`)
}
