package repository

import (
	"context"

	"StockPulse/internal/domain/models"
)

// RowStore persists matched rows produced by the pipeline.
type RowStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreMatched(ctx context.Context, rows []models.MatchedRow) error
	Health(ctx context.Context) error
	Close() error
}

// ArtifactStore saves and loads serialized training artifacts by key.
// The feature contract and the trained model are persisted independently
// but are logically paired; loading a mismatched pair is a caller error.
type ArtifactStore interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) error
	Close() error
}

// Artifact keys shared by the training and serving paths.
const (
	ArtifactFeatureContract = "feature_contract"
	ArtifactPredictor       = "stock_predictor"
)

// Metrics records pipeline and serving measurements.
type Metrics interface {
	RecordRowsMatched(symbol string, n int)
	RecordPrediction(direction string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordAccuracy(split string, value float64)
}
