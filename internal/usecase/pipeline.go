package usecase

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	domsvc "StockPulse/internal/domain/service"
	"StockPulse/internal/services/features"
	"StockPulse/internal/services/matching"
	"StockPulse/internal/services/model"
	"StockPulse/internal/services/sentiment"
	applogger "StockPulse/pkg/logger"
)

// Pipeline runs the full training flow: fetch -> match -> annotate ->
// persist -> engineer features -> train -> persist artifacts.
type Pipeline struct {
	news     domsvc.NewsSource
	bars     domsvc.BarSource
	analyzer *sentiment.Analyzer
	matcher  *matching.Matcher
	engineer *features.Engineer
	pred     *model.Predictor

	rows      domrepo.RowStore
	artifacts domrepo.ArtifactStore
	metrics   domrepo.Metrics

	symbols    []string
	trainRatio float64

	l *applogger.Logger
}

// PipelineResult summarizes one training run.
type PipelineResult struct {
	NewsRows      int
	BarRows       int
	MatchedRows   int
	TrainAccuracy float64
	TestAccuracy  float64
	Duration      time.Duration
}

func NewPipeline(
	news domsvc.NewsSource,
	bars domsvc.BarSource,
	analyzer *sentiment.Analyzer,
	matcher *matching.Matcher,
	engineer *features.Engineer,
	pred *model.Predictor,
	artifacts domrepo.ArtifactStore,
	symbols []string,
	trainRatio float64,
) *Pipeline {
	return &Pipeline{
		news:       news,
		bars:       bars,
		analyzer:   analyzer,
		matcher:    matcher,
		engineer:   engineer,
		pred:       pred,
		artifacts:  artifacts,
		symbols:    symbols,
		trainRatio: trainRatio,
	}
}

// SetRowStore enables persisting matched rows. Optional; the pipeline runs
// without a row store.
func (p *Pipeline) SetRowStore(s domrepo.RowStore) { p.rows = s }

// SetMetrics injects a metrics recorder.
func (p *Pipeline) SetMetrics(m domrepo.Metrics) { p.metrics = m }

// SetLogger injects a structured logger.
func (p *Pipeline) SetLogger(l *applogger.Logger) { p.l = l }

// Run executes the pipeline once. Source failures are isolated per symbol;
// training failures propagate.
func (p *Pipeline) Run(ctx context.Context) (*PipelineResult, error) {
	start := time.Now()

	news := p.fetchNews(ctx)
	bars := p.fetchBars(ctx)
	if len(news) == 0 || len(bars) == 0 {
		return nil, fmt.Errorf("pipeline: no input data (news=%d bars=%d): %w",
			len(news), len(bars), models.ErrEmptyDataset)
	}

	matched := p.matcher.Match(news, bars)
	if len(matched) == 0 {
		return nil, fmt.Errorf("pipeline: no news matched any bar: %w", models.ErrEmptyDataset)
	}
	p.analyzer.Annotate(matched)
	p.recordMatched(matched)

	if p.rows != nil {
		if err := p.matcher.Save(ctx, matched); err != nil {
			// Persistence is best-effort; training continues on store errors.
			if p.l != nil {
				p.l.Error("pipeline: store matched rows failed", applogger.Error(err))
			}
			p.recordError("row_store")
		}
	}

	featRows := p.engineer.CreateFeatures(matched)
	x, y, err := p.engineer.PrepareForTraining(featRows)
	if err != nil {
		return nil, fmt.Errorf("pipeline: prepare features: %w", err)
	}

	xTrain, xTest, yTrain, yTest := p.engineer.TrainTestSplit(x, y, p.trainRatio)
	trained, err := p.pred.Train(xTrain, yTrain, xTest, yTest)
	if err != nil {
		return nil, fmt.Errorf("pipeline: train: %w", err)
	}

	trainAcc, testAcc := p.pred.TrainTestAccuracy(xTrain, yTrain, xTest, yTest)
	if p.metrics != nil {
		p.metrics.RecordAccuracy("train", trainAcc)
		p.metrics.RecordAccuracy("test", testAcc)
	}

	if err := p.persistArtifacts(ctx, trained); err != nil {
		return nil, err
	}

	result := &PipelineResult{
		NewsRows:      len(news),
		BarRows:       len(bars),
		MatchedRows:   len(matched),
		TrainAccuracy: trainAcc,
		TestAccuracy:  testAcc,
		Duration:      time.Since(start),
	}
	if p.metrics != nil {
		p.metrics.RecordLatency("pipeline_run", result.Duration.Seconds())
	}
	if p.l != nil {
		p.l.Info("pipeline: run complete",
			applogger.Int("news", result.NewsRows),
			applogger.Int("bars", result.BarRows),
			applogger.Int("matched", result.MatchedRows),
			applogger.Any("train_accuracy", trainAcc),
			applogger.Any("test_accuracy", testAcc),
			applogger.Duration("duration_ms", result.Duration),
		)
	}
	return result, nil
}

// fetchNews pulls news one symbol at a time so a single bad symbol cannot
// sink the whole run.
func (p *Pipeline) fetchNews(ctx context.Context) []models.NewsRecord {
	out := make([]models.NewsRecord, 0, 256)
	for _, symbol := range p.symbols {
		rows, err := p.news.FetchNews(ctx, []string{symbol})
		if err != nil {
			if p.l != nil {
				p.l.Warn("pipeline: fetch news failed",
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			p.recordError("news_source")
			continue
		}
		out = append(out, rows...)
	}
	return out
}

func (p *Pipeline) fetchBars(ctx context.Context) []models.Bar {
	out := make([]models.Bar, 0, 256)
	for _, symbol := range p.symbols {
		rows, err := p.bars.FetchBars(ctx, []string{symbol})
		if err != nil {
			if p.l != nil {
				p.l.Warn("pipeline: fetch bars failed",
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			p.recordError("bar_source")
			continue
		}
		out = append(out, rows...)
	}
	return out
}

func (p *Pipeline) persistArtifacts(ctx context.Context, trained *model.TrainedModel) error {
	if p.artifacts == nil {
		return nil
	}
	if err := p.artifacts.Save(ctx, domrepo.ArtifactFeatureContract, p.engineer.Contract()); err != nil {
		return fmt.Errorf("pipeline: save feature contract: %w", err)
	}
	if err := p.artifacts.Save(ctx, domrepo.ArtifactPredictor, trained); err != nil {
		return fmt.Errorf("pipeline: save model: %w", err)
	}
	return nil
}

func (p *Pipeline) recordMatched(rows []models.MatchedRow) {
	if p.metrics == nil {
		return
	}
	perSymbol := map[string]int{}
	for _, r := range rows {
		perSymbol[r.Symbol]++
	}
	for symbol, n := range perSymbol {
		p.metrics.RecordRowsMatched(symbol, n)
	}
}

// Close releases the stores held by the pipeline.
func (p *Pipeline) Close() error {
	var first error
	if p.rows != nil {
		if err := p.rows.Close(); err != nil {
			first = err
		}
	}
	if p.artifacts != nil {
		if err := p.artifacts.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p *Pipeline) recordError(kind string) {
	if p.metrics != nil {
		p.metrics.RecordError(kind)
	}
}
