package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	pkgch "StockPulse/pkg/clickhouse"
	applogger "StockPulse/pkg/logger"
)

// CHRowStore persists matched news/price rows in ClickHouse.
type CHRowStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHRowStore(ch *pkgch.Client) *CHRowStore {
	return &CHRowStore{db: ch.DB(), table: "stockpulse.matched_rows"}
}

// SetLogger injects a structured logger.
func (s *CHRowStore) SetLogger(l *applogger.Logger) { s.l = l }

var rowStoreSchema = []string{
	`CREATE DATABASE IF NOT EXISTS stockpulse`,
	`CREATE TABLE IF NOT EXISTS stockpulse.matched_rows (
        symbol             LowCardinality(String),
        news_date          Date,
        stock_date         Date,
        news_title         String,
        news_description   String,
        news_source        LowCardinality(String),
        sentiment_label    LowCardinality(String),
        sentiment_score    Float64,
        sentiment_compound Float64,
        open               Float64,
        high               Float64,
        low                Float64,
        close              Float64,
        volume             Float64,
        price_change_pct   Float64,
        high_low_pct       Float64,
        rsi                Float64,
        price_direction    Int8,
        inserted_at        DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(inserted_at)
    ORDER BY (symbol, stock_date, news_title)`,
}

// Init ensures the database and table exist (idempotent).
func (s *CHRowStore) Init(ctx context.Context) error {
	for _, stmt := range rowStoreSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init row store schema: %w", err)
		}
	}
	return nil
}

// StoreMatched batch-inserts matched rows. Rows without a symbol are skipped.
func (s *CHRowStore) StoreMatched(ctx context.Context, rows []models.MatchedRow) error {
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()

	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 2000
	inserted := 0
	for begin := 0; begin < len(rows); begin += chunkSize {
		end := begin + chunkSize
		if end > len(rows) {
			end = len(rows)
		}

		values := make([]string, 0, end-begin)
		args := make([]interface{}, 0, (end-begin)*18)
		for _, r := range rows[begin:end] {
			if r.Symbol == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				r.Symbol,
				r.NewsDate,
				r.StockDate,
				r.NewsTitle,
				r.NewsDescription,
				r.NewsSource,
				r.Sentiment.Label,
				r.Sentiment.Score,
				r.Sentiment.Compound,
				r.Open,
				r.High,
				r.Low,
				r.Close,
				r.Volume,
				r.PriceChangePct,
				r.HighLowPct,
				r.RSI,
				int8(r.PriceDirection),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(`INSERT INTO %s
            (symbol, news_date, stock_date, news_title, news_description, news_source,
             sentiment_label, sentiment_score, sentiment_compound,
             open, high, low, close, volume,
             price_change_pct, high_low_pct, rsi, price_direction)
            VALUES %s`, s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_matched insert error",
					applogger.String("table", s.table),
					applogger.Int("batch", len(values)),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store matched rows: %w", err)
		}
		inserted += len(values)
	}

	if s.l != nil {
		s.l.Info("clickhouse store_matched ok",
			applogger.String("table", s.table),
			applogger.Int("rows", inserted),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHRowStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHRowStore) Close() error {
	return nil // Connection pool managed by pkg
}
