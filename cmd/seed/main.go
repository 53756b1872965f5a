package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/erp/sellerops/internal/infrastructure/config"
	"github.com/erp/sellerops/internal/infrastructure/csvimport"
	"github.com/erp/sellerops/internal/infrastructure/logger"
	"github.com/erp/sellerops/internal/infrastructure/persistence"
)

var encodings = map[string]encoding.Encoding{
	"windows-1254": charmap.Windows1254,
	"windows-1252": charmap.Windows1252,
	"iso-8859-9":   charmap.ISO8859_9,
	"iso-8859-1":   charmap.ISO8859_1,
}

func main() {
	var (
		dryRun    bool
		delimiter string
		enc       string
		maxErrors int
		logLevel  string
	)

	flag.BoolVar(&dryRun, "dry-run", false, "Validate the file without writing to the database")
	flag.StringVar(&delimiter, "delimiter", ",", "Field delimiter")
	flag.StringVar(&enc, "encoding", "", "Fallback encoding for non UTF-8 files (windows-1254, windows-1252, iso-8859-9, iso-8859-1)")
	flag.IntVar(&maxErrors, "max-errors", csvimport.DefaultMaxErrors, "Maximum row errors to report")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		printUsage()
		os.Exit(1)
	}
	kind, path := args[0], args[1]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	parserOpts := []csvimport.ParserOption{}
	if r := []rune(delimiter); len(r) == 1 {
		parserOpts = append(parserOpts, csvimport.WithDelimiter(r[0]))
	} else {
		log.Fatal("Delimiter must be a single character", zap.String("delimiter", delimiter))
	}
	if enc != "" {
		e, ok := encodings[strings.ToLower(enc)]
		if !ok {
			log.Fatal("Unsupported encoding", zap.String("encoding", enc))
		}
		parserOpts = append(parserOpts, csvimport.WithFallbackEncoding(e))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	f, err := os.Open(path)
	if err != nil {
		log.Fatal("Failed to open file", zap.String("path", path), zap.Error(err))
	}
	defer func() {
		_ = f.Close()
	}()

	parser, err := csvimport.NewParser(f, parserOpts...)
	if err != nil {
		log.Fatal("Failed to read CSV", zap.String("path", path), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loaderOpts := []csvimport.LoaderOption{
		csvimport.WithDryRun(dryRun),
		csvimport.WithMaxErrors(maxErrors),
		csvimport.WithLogger(log),
	}

	var result *csvimport.LoadResult
	switch kind {
	case "products":
		result, err = csvimport.NewProductLoader(persistence.NewGormProductRepository(db.DB), loaderOpts...).Load(ctx, parser)
	case "stores":
		result, err = csvimport.NewStoreLoader(persistence.NewGormStoreRepository(db.DB), loaderOpts...).Load(ctx, parser)
	default:
		log.Error("Unknown kind", zap.String("kind", kind))
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("Seed failed", zap.String("kind", kind), zap.Error(err))
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	if result.ErrorCount > 0 {
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println(`Seed CLI

Loads products or stores from a CSV file. Rows are upserted: products by
barcode, stores by id.

Usage:
  seed [flags] <products|stores> <file.csv>

Flags:
  -dry-run          Validate without writing
  -delimiter <c>    Field delimiter (default ",")
  -encoding <name>  Fallback encoding for non UTF-8 files
  -max-errors <n>   Maximum row errors to report (default 100)
  -log-level <lvl>  Log level (default "info")

Columns:
  products  barcode (required), title, merchant_sku, store_id
  stores    name (required), id, seller_id, api_key, api_secret, proxy_url, active

Environment Variables:
  SELLEROPS_DATABASE_HOST      Database host (default: localhost)
  SELLEROPS_DATABASE_PORT      Database port (default: 5432)
  SELLEROPS_DATABASE_USER      Database user (default: postgres)
  SELLEROPS_DATABASE_PASSWORD  Database password
  SELLEROPS_DATABASE_DBNAME    Database name (default: sellerops)
  SELLEROPS_DATABASE_DRIVER    postgres or sqlite (default: postgres)`)
}
