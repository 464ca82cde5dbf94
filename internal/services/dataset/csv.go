package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"StockPulse/internal/domain/models"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// CSVNewsSource reads news records from a CSV file with a header row.
// Recognized columns: symbol, title, description, source, date (or
// published_at).
type CSVNewsSource struct {
	path string
	l    *applogger.Logger
}

func NewCSVNewsSource(path string) *CSVNewsSource {
	return &CSVNewsSource{path: path}
}

// SetLogger injects a structured logger.
func (s *CSVNewsSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CSVNewsSource) FetchNews(ctx context.Context, symbols []string) ([]models.NewsRecord, error) {
	rows, header, err := readCSV(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("news csv: %w", err)
	}

	want := symbolSet(symbols)
	out := make([]models.NewsRecord, 0, len(rows))
	for _, row := range rows {
		symbol := strings.ToUpper(strings.TrimSpace(header.get(row, "symbol")))
		if symbol == "" || (len(want) > 0 && !want[symbol]) {
			continue
		}
		dateRaw := header.get(row, "date")
		if dateRaw == "" {
			dateRaw = header.get(row, "published_at")
		}
		publishedAt, ok := util.ParseTime(dateRaw)
		if !ok {
			continue
		}
		out = append(out, models.NewsRecord{
			Symbol:      symbol,
			Title:       header.get(row, "title"),
			Description: header.get(row, "description"),
			Source:      header.get(row, "source"),
			PublishedAt: publishedAt,
		})
	}

	if s.l != nil {
		s.l.Info("csv news loaded",
			applogger.String("path", s.path),
			applogger.Int("rows", len(out)),
		)
	}
	return out, nil
}

// CSVBarSource reads daily bars from a CSV file with a header row.
// Recognized columns: symbol, date, open, high, low, close, volume.
// Derived fields are filled by EnrichBars after loading.
type CSVBarSource struct {
	path string
	l    *applogger.Logger
}

func NewCSVBarSource(path string) *CSVBarSource {
	return &CSVBarSource{path: path}
}

// SetLogger injects a structured logger.
func (s *CSVBarSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CSVBarSource) FetchBars(ctx context.Context, symbols []string) ([]models.Bar, error) {
	rows, header, err := readCSV(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("bars csv: %w", err)
	}

	want := symbolSet(symbols)
	out := make([]models.Bar, 0, len(rows))
	for _, row := range rows {
		symbol := strings.ToUpper(strings.TrimSpace(header.get(row, "symbol")))
		if symbol == "" || (len(want) > 0 && !want[symbol]) {
			continue
		}
		date, ok := util.ParseTime(header.get(row, "date"))
		if !ok {
			continue
		}
		out = append(out, models.Bar{
			Symbol: symbol,
			Date:   util.DateOnly(date),
			Open:   header.getFloat(row, "open"),
			High:   header.getFloat(row, "high"),
			Low:    header.getFloat(row, "low"),
			Close:  header.getFloat(row, "close"),
			Volume: header.getFloat(row, "volume"),
		})
	}

	EnrichBars(out)
	if s.l != nil {
		s.l.Info("csv bars loaded",
			applogger.String("path", s.path),
			applogger.Int("rows", len(out)),
		)
	}
	return out, nil
}

// columnIndex maps lowercased header names to their positions.
type columnIndex map[string]int

func (h columnIndex) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h columnIndex) getFloat(row []string, name string) float64 {
	v, err := strconv.ParseFloat(h.get(row, name), 64)
	if err != nil {
		return 0
	}
	return v
}

func readCSV(ctx context.Context, path string) ([][]string, columnIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headerRow, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	header := make(columnIndex, len(headerRow))
	for i, name := range headerRow {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func symbolSet(symbols []string) map[string]bool {
	set := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			set[s] = true
		}
	}
	return set
}
