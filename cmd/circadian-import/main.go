// circadian-import loads dataset CSV files into TimescaleDB so they can be
// served with source: timescaledb.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/chrissnell/circadian/internal/database"
	"github.com/chrissnell/circadian/internal/log"
	"github.com/chrissnell/circadian/internal/series"
	"github.com/chrissnell/circadian/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	Host      string
	Port      int
	Database  string
	User      string
	Password  string
	SSLMode   string
	Dataset   string
	CSVFile   string
	ConfigDir string
}

func main() {
	var cfg Config

	flag.StringVar(&cfg.Host, "host", "localhost", "Database host")
	flag.IntVar(&cfg.Port, "port", 5432, "Database port")
	flag.StringVar(&cfg.Database, "database", "circadian", "Database name")
	flag.StringVar(&cfg.User, "user", "postgres", "Database user")
	flag.StringVar(&cfg.Password, "password", "", "Database password")
	flag.StringVar(&cfg.SSLMode, "sslmode", "disable", "SSL mode (disable, require, etc)")
	flag.StringVar(&cfg.Dataset, "dataset", "", "Dataset name to import a single file as")
	flag.StringVar(&cfg.CSVFile, "file", "", "CSV file to import (requires -dataset)")
	flag.StringVar(&cfg.ConfigDir, "dir", "", "Import the four standard CSV files from this directory")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	imports, err := importList(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	connStr := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password, cfg.SSLMode)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Infof("Connected to database %s@%s:%d", cfg.Database, cfg.Host, cfg.Port)

	if _, err := pool.Exec(ctx, database.CreateSamplesTableSQL); err != nil {
		log.Fatalf("Failed to create %s: %v", database.SamplesTable, err)
	}

	for _, imp := range imports {
		start := time.Now()
		n, err := importFile(ctx, pool, imp.name, imp.path)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", imp.name, err)
		}
		log.Infof("Imported %d samples into dataset %s in %v", n, imp.name, time.Since(start))
	}
}

type fileImport struct {
	name string
	path string
}

func importList(cfg Config) ([]fileImport, error) {
	switch {
	case cfg.ConfigDir != "":
		var imports []fileImport
		for _, d := range config.DefaultDatasets(cfg.ConfigDir) {
			imports = append(imports, fileImport{name: d.Name, path: d.Path})
		}
		return imports, nil
	case cfg.CSVFile != "" && cfg.Dataset != "":
		return []fileImport{{name: cfg.Dataset, path: cfg.CSVFile}}, nil
	}
	return nil, fmt.Errorf("either -dir or both -file and -dataset are required")
}

// importFile replaces every stored sample of dataset with the contents of path
func importFile(ctx context.Context, pool *pgxpool.Pool, dataset, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	raw, err := series.ParseCSV(f)
	if err != nil {
		return 0, err
	}
	log.Debugf("parsed %d rows from %s", raw.Len(), path)

	if missing := countMissing(raw); missing > 0 {
		log.Warnf("dataset %s: %d unparseable samples will be stored as NULL", dataset, missing)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM "+database.SamplesTable+" WHERE dataset = $1", dataset); err != nil {
		return 0, fmt.Errorf("failed to clear dataset: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{database.SamplesTable},
		[]string{"dataset", "minute", "value"},
		pgx.CopyFromSlice(raw.Len(), func(i int) ([]any, error) {
			return sampleRow(dataset, i, raw.Value(i)), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy failed: %w", err)
	}

	return n, tx.Commit(ctx)
}

// sampleRow stores an unparseable sample as NULL
func sampleRow(dataset string, minute int, v float64) []any {
	if math.IsNaN(v) {
		return []any{dataset, minute, nil}
	}
	return []any{dataset, minute, v}
}

func countMissing(raw series.RawSeries) int {
	missing := 0
	for i := 0; i < raw.Len(); i++ {
		if math.IsNaN(raw.Value(i)) {
			missing++
		}
	}
	return missing
}
