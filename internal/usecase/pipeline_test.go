package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/services/features"
	"StockPulse/internal/services/matching"
	"StockPulse/internal/services/model"
	"StockPulse/internal/services/sentiment"
)

type fakeNewsSource struct {
	news map[string][]models.NewsRecord
	errs map[string]error
}

func (f *fakeNewsSource) FetchNews(_ context.Context, symbols []string) ([]models.NewsRecord, error) {
	var out []models.NewsRecord
	for _, s := range symbols {
		if err := f.errs[s]; err != nil {
			return nil, err
		}
		out = append(out, f.news[s]...)
	}
	return out, nil
}

type fakeBarSource struct {
	bars map[string][]models.Bar
}

func (f *fakeBarSource) FetchBars(_ context.Context, symbols []string) ([]models.Bar, error) {
	var out []models.Bar
	for _, s := range symbols {
		out = append(out, f.bars[s]...)
	}
	return out, nil
}

// memArtifacts is an in-memory ArtifactStore for tests.
type memArtifacts struct {
	blobs map[string][]byte
}

func newMemArtifacts() *memArtifacts {
	return &memArtifacts{blobs: map[string][]byte{}}
}

func (m *memArtifacts) Save(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.blobs[key] = b
	return nil
}

func (m *memArtifacts) Load(_ context.Context, key string, dest any) error {
	b, ok := m.blobs[key]
	if !ok {
		return fmt.Errorf("no artifact %q", key)
	}
	return json.Unmarshal(b, dest)
}

func (m *memArtifacts) Close() error { return nil }

func tradingDay(n int) time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func fixtureSources(symbols ...string) (*fakeNewsSource, *fakeBarSource) {
	ns := &fakeNewsSource{news: map[string][]models.NewsRecord{}, errs: map[string]error{}}
	bs := &fakeBarSource{bars: map[string][]models.Bar{}}

	headlines := []string{
		"profits surge on record growth",
		"shares plunge after weak guidance",
		"company holds annual meeting",
		"strong earnings beat expectations",
		"losses widen amid fraud probe",
		"new product launch announced",
	}
	for _, symbol := range symbols {
		for d := 0; d < 24; d++ {
			open := 100.0 + float64(d)
			closePrice := open + float64((d%5)-2)
			bs.bars[symbol] = append(bs.bars[symbol], models.Bar{
				Symbol:         symbol,
				Date:           tradingDay(d),
				Open:           open,
				High:           closePrice + 2,
				Low:            open - 2,
				Close:          closePrice,
				Volume:         1000 + float64(d*10),
				PriceChangePct: (closePrice - open) / open * 100,
				HighLowPct:     1.0,
				RSI:            50,
				PriceDirection: models.DirectionOf(closePrice - open),
			})
			ns.news[symbol] = append(ns.news[symbol], models.NewsRecord{
				Symbol:      symbol,
				Title:       headlines[d%len(headlines)],
				Source:      "wire",
				PublishedAt: tradingDay(d),
			})
		}
	}
	return ns, bs
}

func testPipeline(ns *fakeNewsSource, bs *fakeBarSource, store domrepo.ArtifactStore, symbols []string) *Pipeline {
	cfg := model.Config{Trees: 5, MaxDepth: 4, Seed: 42, Workers: 2}
	return NewPipeline(
		ns, bs,
		sentiment.NewAnalyzer(),
		matching.New(),
		features.New(),
		model.NewPredictor(cfg),
		store,
		symbols,
		0.8,
	)
}

func TestPipelineRunTrainsAndPersists(t *testing.T) {
	ns, bs := fixtureSources("AAPL", "TSLA")
	store := newMemArtifacts()
	p := testPipeline(ns, bs, store, []string{"AAPL", "TSLA"})

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.MatchedRows == 0 {
		t.Fatalf("expected matched rows")
	}
	if result.NewsRows != 48 || result.BarRows != 48 {
		t.Fatalf("unexpected input counts: %+v", result)
	}

	var contract models.FeatureContract
	if err := store.Load(context.Background(), domrepo.ArtifactFeatureContract, &contract); err != nil {
		t.Fatalf("contract not persisted: %v", err)
	}
	if !contract.Fitted() {
		t.Fatalf("persisted contract must be fitted: %+v", contract)
	}

	var trained model.TrainedModel
	if err := store.Load(context.Background(), domrepo.ArtifactPredictor, &trained); err != nil {
		t.Fatalf("model not persisted: %v", err)
	}
	if len(trained.Trees) != 5 {
		t.Fatalf("expected 5 trees, got %d", len(trained.Trees))
	}
	if trained.NumFeatures != len(contract.Columns) {
		t.Fatalf("model/contract feature count mismatch: %d vs %d",
			trained.NumFeatures, len(contract.Columns))
	}
}

func TestPipelineIsolatesSymbolFailures(t *testing.T) {
	ns, bs := fixtureSources("AAPL", "TSLA")
	ns.errs["TSLA"] = errors.New("upstream 500")
	store := newMemArtifacts()
	p := testPipeline(ns, bs, store, []string{"AAPL", "TSLA"})

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("run must survive one bad symbol: %v", err)
	}
	if result.NewsRows != 24 {
		t.Fatalf("expected only AAPL news, got %d", result.NewsRows)
	}
}

func TestPipelineEmptyInputs(t *testing.T) {
	ns := &fakeNewsSource{news: map[string][]models.NewsRecord{}, errs: map[string]error{}}
	bs := &fakeBarSource{bars: map[string][]models.Bar{}}
	p := testPipeline(ns, bs, newMemArtifacts(), []string{"AAPL"})

	if _, err := p.Run(context.Background()); !errors.Is(err, models.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}
