package usecase

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	domsvc "StockPulse/internal/domain/service"
	"StockPulse/internal/services/features"
	"StockPulse/internal/services/model"
	applogger "StockPulse/pkg/logger"
)

// ServingContext holds everything one prediction needs: the trained model,
// the frozen feature contract, and the sentiment analyzer. Constructed
// explicitly, immutable afterwards, safe for concurrent requests.
type ServingContext struct {
	engineer *features.Engineer
	pred     *model.Predictor
	analyzer domsvc.SentimentAnalyzer
	metrics  domrepo.Metrics
	l        *applogger.Logger
}

func NewServingContext(engineer *features.Engineer, pred *model.Predictor, analyzer domsvc.SentimentAnalyzer) *ServingContext {
	return &ServingContext{engineer: engineer, pred: pred, analyzer: analyzer}
}

// SetMetrics injects a metrics recorder.
func (s *ServingContext) SetMetrics(m domrepo.Metrics) { s.metrics = m }

// SetLogger injects a structured logger.
func (s *ServingContext) SetLogger(l *applogger.Logger) { s.l = l }

// LoadServing builds a serving context from persisted artifacts. Both the
// feature contract and the model must exist; they were produced by the same
// pipeline run and are only valid as a pair.
func LoadServing(ctx context.Context, store domrepo.ArtifactStore, analyzer domsvc.SentimentAnalyzer, cfg model.Config) (*ServingContext, error) {
	var contract models.FeatureContract
	if err := store.Load(ctx, domrepo.ArtifactFeatureContract, &contract); err != nil {
		return nil, fmt.Errorf("load feature contract: %w", err)
	}
	if !contract.Fitted() {
		return nil, fmt.Errorf("load feature contract: %w", models.ErrContractNotFitted)
	}

	var trained model.TrainedModel
	if err := store.Load(ctx, domrepo.ArtifactPredictor, &trained); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if trained.NumFeatures != len(contract.Columns) {
		return nil, fmt.Errorf("artifact mismatch: model expects %d features, contract has %d",
			trained.NumFeatures, len(contract.Columns))
	}

	engineer := features.New()
	engineer.SetContract(&contract)
	pred := model.NewPredictor(cfg)
	pred.SetModel(&trained)

	return NewServingContext(engineer, pred, analyzer), nil
}

// AnalyzeText scores one text for the sentiment endpoint.
func (s *ServingContext) AnalyzeText(text string) models.SentimentResponse {
	return models.SentimentResponse{
		Text:      text,
		Sentiment: s.analyzer.Analyze(text),
	}
}

// PredictOne scores the news text, builds the degraded single-row feature
// map, applies the frozen contract, and runs the model.
func (s *ServingContext) PredictOne(req models.PredictRequest) (models.PredictResponse, error) {
	start := time.Now()

	sent := s.analyzer.Analyze(req.NewsText)
	raw := features.InferenceFeatures(sent, req.OpenPrice, req.ClosePrice, req.Volume)

	vec, err := s.engineer.TransformOne(raw)
	if err != nil {
		s.recordError("transform")
		return models.PredictResponse{}, err
	}

	pred, err := s.pred.Predict(vec)
	if err != nil {
		s.recordError("predict")
		return models.PredictResponse{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordPrediction(pred.Direction)
		s.metrics.RecordLatency("predict_one", time.Since(start).Seconds())
	}

	return models.PredictResponse{
		Symbol:     req.Symbol,
		NewsText:   req.NewsText,
		Sentiment:  sent,
		Prediction: pred,
		Input: models.PredictInputs{
			OpenPrice:      req.OpenPrice,
			ClosePrice:     req.ClosePrice,
			PriceChangePct: raw[models.ColPriceChangePct],
			Volume:         req.Volume,
		},
	}, nil
}

// Health reports component readiness.
func (s *ServingContext) Health() models.HealthResponse {
	modelLoaded := s.pred != nil && s.pred.Model() != nil
	status := "healthy"
	if !modelLoaded {
		status = "degraded"
	}
	return models.HealthResponse{
		Status:            status,
		SentimentAnalyzer: s.analyzer != nil,
		PredictorModel:    modelLoaded,
	}
}

// Stats reports model shape for the stats endpoint.
func (s *ServingContext) Stats() models.StatsResponse {
	resp := models.StatsResponse{
		ModelType:         "random_forest",
		SentimentAnalyzer: s.analyzer.Name(),
	}
	if m := s.pred.Model(); m != nil {
		resp.FeatureCount = m.NumFeatures
		resp.TreeCount = len(m.Trees)
	}
	return resp
}

func (s *ServingContext) recordError(kind string) {
	if s.metrics != nil {
		s.metrics.RecordError(kind)
	}
}
