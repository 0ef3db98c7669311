package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/excel"
	"backoffice/internal/logger"
	"backoffice/internal/repository"
	"backoffice/internal/service"
	"backoffice/internal/validation"

	"go.uber.org/zap"
)

type options struct {
	filePath  string
	errorsCSV string
	dryRun    bool
	batchSize int
}

type totals struct {
	parsed   int
	accepted int
	rejected int
}

func main() {
	opts := parseFlags()

	load := config.Load
	if opts.dryRun {
		load = config.LoadOffline
	}
	cfg, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New("backoffice-import", cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	rows, err := readWorkbook(opts.filePath)
	if err != nil {
		log.Fatal("read workbook", zap.String("file", opts.filePath), zap.Error(err))
	}
	log.Info("workbook parsed", zap.String("file", opts.filePath), zap.Int("rows", len(rows)))

	var (
		sum      totals
		failures []domain.ImportRowError
	)
	if opts.dryRun {
		sum, failures = validateRows(rows)
	} else {
		batchSize := opts.batchSize
		if batchSize <= 0 {
			batchSize = cfg.ImportMaxRows
		}
		sum, failures, err = importRows(context.Background(), cfg, log, rows, batchSize)
		if err != nil {
			log.Fatal("import failed", zap.Error(err))
		}
	}

	if opts.errorsCSV != "" && len(failures) > 0 {
		if err := writeErrorsCSV(opts.errorsCSV, failures); err != nil {
			log.Fatal("write errors csv", zap.String("path", opts.errorsCSV), zap.Error(err))
		}
	}

	log.Info("import complete",
		zap.Bool("dry_run", opts.dryRun),
		zap.Int("parsed", sum.parsed),
		zap.Int("accepted", sum.accepted),
		zap.Int("rejected", sum.rejected),
	)
	if sum.accepted == 0 && sum.rejected > 0 {
		os.Exit(2)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(
		&opts.filePath,
		"file",
		"reports.xlsx",
		"path to an .xlsx or .xls workbook of reports",
	)
	flag.BoolVar(
		&opts.dryRun,
		"dry-run",
		false,
		"validate rows without connecting to the database",
	)
	flag.IntVar(
		&opts.batchSize,
		"batch-size",
		0,
		"rows per import batch (defaults to IMPORT_MAX_ROWS)",
	)
	flag.StringVar(
		&opts.errorsCSV,
		"errors-csv",
		"",
		"optional path for a CSV listing rejected rows",
	)
	flag.Parse()
	if opts.batchSize < 0 {
		fmt.Fprintf(os.Stderr, "invalid --batch-size: %d\n", opts.batchSize)
		os.Exit(1)
	}
	return opts
}

func readWorkbook(path string) ([]domain.RawReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return excel.ParseReportWorkbook(path, file)
}

// validateRows runs the row checks the service applies before saving. Only
// duplicates inside the workbook are found; stored reports are not consulted.
func validateRows(rows []domain.RawReport) (totals, []domain.ImportRowError) {
	sum := totals{parsed: len(rows)}
	var failures []domain.ImportRowError
	seen := make(map[string]struct{}, len(rows))
	reject := func(raw domain.RawReport, message string) {
		sum.rejected++
		failures = append(failures, domain.ImportRowError{
			Message:   message,
			SheetName: raw.SheetName,
			RowIndex:  raw.RowIndex,
		})
	}
	for _, raw := range rows {
		report, verr := validation.ParseReport(raw)
		if verr != nil {
			reject(raw, verr.Error())
			continue
		}
		key := naturalKeyString(report.NaturalKey())
		if _, dup := seen[key]; dup {
			reject(raw, "Duplicate report: the same date, user, agent, sport, event and market appears earlier in the workbook")
			continue
		}
		seen[key] = struct{}{}
		sum.accepted++
	}
	return sum, failures
}

func naturalKeyString(key domain.NaturalKey) string {
	return strings.ToLower(strings.Join([]string{
		key.Date.Format(time.DateOnly),
		key.UserName,
		key.Agent,
		key.SportName,
		key.EventName,
		key.MarketName,
	}, "\x1f"))
}

// importRows feeds the workbook to the service in batches no larger than the
// service's per-call row limit.
func importRows(ctx context.Context, cfg config.Config, log *zap.Logger, rows []domain.RawReport, batchSize int) (totals, []domain.ImportRowError, error) {
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return totals{}, nil, fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	if err := db.RunMigrations(ctx, pool, log); err != nil {
		return totals{}, nil, fmt.Errorf("migrations: %w", err)
	}

	svc := service.New(repository.New(pool), service.Options{MaxImportRows: batchSize, Logger: log})
	sum := totals{parsed: len(rows)}
	var failures []domain.ImportRowError
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		batchStart := time.Now()
		result := svc.ImportReports(ctx, rows[start:end])
		sum.accepted += len(result.Accepted)
		sum.rejected += len(result.Errors)
		failures = append(failures, result.Errors...)
		log.Info("batch imported",
			zap.Int("from_row", start+1),
			zap.Int("to_row", end),
			zap.Int("accepted", len(result.Accepted)),
			zap.Int("rejected", len(result.Errors)),
			zap.Duration("duration", time.Since(batchStart)),
		)
	}
	return sum, failures, nil
}

func writeErrorsCSV(path string, failures []domain.ImportRowError) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"sheet", "row", "error"}); err != nil {
		return err
	}
	for _, failure := range failures {
		row := ""
		if failure.RowIndex != nil {
			row = strconv.Itoa(*failure.RowIndex)
		}
		if err := writer.Write([]string{failure.SheetName, row, failure.Message}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
