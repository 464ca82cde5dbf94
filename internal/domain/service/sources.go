package service

import (
	"context"

	"StockPulse/internal/domain/models"
)

// SentimentAnalyzer scores text polarity. Implementations must tolerate
// empty text by returning the neutral zero record.
type SentimentAnalyzer interface {
	Analyze(text string) models.Sentiment
	AnalyzeBatch(texts []string) []models.Sentiment
	Name() string
}

// NewsSource supplies dated news rows per symbol set.
type NewsSource interface {
	FetchNews(ctx context.Context, symbols []string) ([]models.NewsRecord, error)
}

// BarSource supplies per-symbol daily bars already carrying the derived
// technical fields.
type BarSource interface {
	FetchBars(ctx context.Context, symbols []string) ([]models.Bar, error)
}
