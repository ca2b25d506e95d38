// Package dataset reads invoice exception records from JSON, CSV and XLSX
// exports and validates them before they reach the dashboard.
package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Loader reads a record collection from path
type Loader interface {
	Load(ctx context.Context, path string) ([]models.InvoiceRecord, error)
}

// Options controls how files are decoded
type Options struct {
	Sheet       string   // XLSX sheet, first sheet when empty
	DateLayouts []string // extra layouts normalized to YYYY-MM-DD
	SkipInvalid bool     // drop invalid rows with a warning instead of failing
}

// FileLoader loads records from local files
type FileLoader struct {
	opts     Options
	validate *validator.Validate
	logger   *zap.Logger
}

// NewFileLoader creates a new file loader
func NewFileLoader(opts Options, logger *zap.Logger) *FileLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileLoader{
		opts:     opts,
		validate: validator.New(),
		logger:   logger,
	}
}

// Load reads path according to its extension
func (l *FileLoader) Load(ctx context.Context, path string) ([]models.InvoiceRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l.logger.Info("Loading dataset", zap.String("path", path), zap.String("format", ext))

	var (
		rows []map[string]any
		err  error
	)
	switch ext {
	case ".json":
		rows, err = readJSON(path)
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = l.readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		l.logger.Error("Failed to read dataset", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := decoder{dateLayouts: l.opts.DateLayouts, serialDates: ext == ".xlsx"}
	records, err := l.decode(ctx, dec, rows)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Dataset loaded",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
		zap.Int("records", len(records)))
	return records, nil
}

func (l *FileLoader) decode(ctx context.Context, dec decoder, rows []map[string]any) ([]models.InvoiceRecord, error) {
	records := make([]models.InvoiceRecord, 0, len(rows))
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := i + 1

		rec, err := dec.record(row)
		if err == nil {
			err = l.validate.Struct(rec)
		}
		if err != nil {
			if l.opts.SkipInvalid {
				l.logger.Warn("Skipping invalid record", zap.Int("row", line), zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidRecord, line, err)
		}

		if first, dup := seen[rec.InvoiceID]; dup {
			return nil, fmt.Errorf("%w: %s in rows %d and %d", ErrDuplicateInvoice, rec.InvoiceID, first, line)
		}
		seen[rec.InvoiceID] = line
		records = append(records, rec)
	}
	return records, nil
}

func readJSON(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var table [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		table = append(table, rec)
	}
	return zipRows(header, table), nil
}

func (l *FileLoader) readXLSX(path string) ([]map[string]any, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := l.opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySheet
		}
		sheet = sheets[0]
	}

	table, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: sheet %q", ErrEmptySheet, sheet)
	}
	return zipRows(table[0], table[1:]), nil
}

// zipRows keys every row by the header. Blank lines are dropped and short
// rows leave the missing trailing columns unset.
func zipRows(header []string, table [][]string) []map[string]any {
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	rows := make([]map[string]any, 0, len(table))
	for _, cells := range table {
		if blank(cells) {
			continue
		}
		row := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(cells) && name != "" {
				row[name] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
