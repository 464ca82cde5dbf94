package usecase

import (
	"context"
	"errors"
	"testing"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/features"
	"StockPulse/internal/services/model"
	"StockPulse/internal/services/sentiment"
)

func trainedArtifacts(t *testing.T) *memArtifacts {
	t.Helper()
	ns, bs := fixtureSources("AAPL", "TSLA")
	store := newMemArtifacts()
	p := testPipeline(ns, bs, store, []string{"AAPL", "TSLA"})
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("train fixture: %v", err)
	}
	return store
}

func TestLoadServingAndPredict(t *testing.T) {
	store := trainedArtifacts(t)
	sc, err := LoadServing(context.Background(), store, sentiment.NewAnalyzer(), model.Config{Trees: 5, MaxDepth: 4, Seed: 42})
	if err != nil {
		t.Fatalf("load serving: %v", err)
	}

	resp, err := sc.PredictOne(models.PredictRequest{
		Symbol:     "AAPL",
		NewsText:   "profits surge on record growth",
		OpenPrice:  100,
		ClosePrice: 103,
		Volume:     50000,
	})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if resp.Prediction.Direction == "" {
		t.Fatalf("missing direction: %+v", resp.Prediction)
	}
	if resp.Prediction.Confidence < 0 || resp.Prediction.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", resp.Prediction.Confidence)
	}
	wantPct := (103.0 - 100.0) / 100.0 * 100
	if resp.Input.PriceChangePct != wantPct {
		t.Fatalf("echoed price_change_pct: got %v want %v", resp.Input.PriceChangePct, wantPct)
	}
	if resp.Sentiment.Label != models.SentimentPositive {
		t.Fatalf("expected positive sentiment: %+v", resp.Sentiment)
	}
}

func TestLoadServingMissingArtifacts(t *testing.T) {
	store := newMemArtifacts()
	if _, err := LoadServing(context.Background(), store, sentiment.NewAnalyzer(), model.DefaultConfig()); err == nil {
		t.Fatalf("expected error for empty artifact store")
	}
}

func TestPredictOneWithoutModel(t *testing.T) {
	store := trainedArtifacts(t)

	var contract models.FeatureContract
	if err := store.Load(context.Background(), "feature_contract", &contract); err != nil {
		t.Fatalf("load contract: %v", err)
	}
	engineer := features.New()
	engineer.SetContract(&contract)

	sc := NewServingContext(engineer, model.NewPredictor(model.DefaultConfig()), sentiment.NewAnalyzer())
	_, err := sc.PredictOne(models.PredictRequest{NewsText: "anything", OpenPrice: 1, ClosePrice: 1})
	if !errors.Is(err, models.ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
	if h := sc.Health(); h.Status != "degraded" || h.PredictorModel {
		t.Fatalf("health must report degraded: %+v", h)
	}
}

func TestServingStats(t *testing.T) {
	store := trainedArtifacts(t)
	sc, err := LoadServing(context.Background(), store, sentiment.NewAnalyzer(), model.Config{Trees: 5, MaxDepth: 4, Seed: 42})
	if err != nil {
		t.Fatalf("load serving: %v", err)
	}
	stats := sc.Stats()
	if stats.ModelType != "random_forest" || stats.TreeCount != 5 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.SentimentAnalyzer != "lexicon" {
		t.Fatalf("analyzer name: %+v", stats)
	}
	if h := sc.Health(); h.Status != "healthy" {
		t.Fatalf("health: %+v", h)
	}
}
