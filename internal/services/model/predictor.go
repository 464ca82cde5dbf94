package model

import (
	"runtime"

	"StockPulse/internal/domain/models"
	applogger "StockPulse/pkg/logger"
)

// Config holds the ensemble hyperparameters. Defaults reproduce the
// reference setup: 50 trees, depth 10, seed 42.
type Config struct {
	Trees    int
	MaxDepth int
	Seed     int64
	Workers  int
}

func DefaultConfig() Config {
	return Config{Trees: 50, MaxDepth: 10, Seed: 42, Workers: runtime.NumCPU()}
}

// Predictor trains and serves the direction classifier.
type Predictor struct {
	cfg   Config
	model *TrainedModel
	l     *applogger.Logger
}

func NewPredictor(cfg Config) *Predictor {
	if cfg.Trees <= 0 {
		cfg.Trees = 50
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Predictor{cfg: cfg}
}

// SetLogger injects a structured logger.
func (p *Predictor) SetLogger(l *applogger.Logger) { p.l = l }

// Model returns the trained model, nil before Train or SetModel.
func (p *Predictor) Model() *TrainedModel { return p.model }

// SetModel installs a previously persisted model, e.g. in the serving
// process. Treated as immutable from here on.
func (p *Predictor) SetModel(m *TrainedModel) { p.model = m }

// Train fits the forest on the scaled training matrix. When a test set is
// supplied, train/test accuracy and the per-class breakdown are computed
// and logged; the report covers only classes actually observed in the test
// labels or the predictions.
func (p *Predictor) Train(xTrain [][]float64, yTrain []int, xTest [][]float64, yTest []int) (*TrainedModel, error) {
	if len(xTrain) == 0 {
		return nil, models.ErrEmptyDataset
	}

	m := fitForest(xTrain, yTrain, p.cfg.Trees, p.cfg.MaxDepth, p.cfg.Workers, p.cfg.Seed)
	p.model = m

	trainAcc := Accuracy(m.predictAll(xTrain), yTrain)
	if p.l != nil {
		p.l.Info("model: trained",
			applogger.Int("trees", p.cfg.Trees),
			applogger.Int("samples", len(xTrain)),
			applogger.Any("train_accuracy", trainAcc),
		)
	}

	if len(xTest) > 0 && len(yTest) > 0 {
		yPred := m.predictAll(xTest)
		testAcc := Accuracy(yPred, yTest)
		report := Classify(yTest, yPred)
		if p.l != nil {
			p.l.Info("model: evaluated",
				applogger.Any("test_accuracy", testAcc),
				applogger.Any("report", report),
			)
		}
	}
	return m, nil
}

// Predict scores one already-transformed feature vector.
func (p *Predictor) Predict(vec []float64) (models.Prediction, error) {
	if p.model == nil {
		return models.Prediction{}, models.ErrModelNotLoaded
	}
	return p.model.Prediction(vec), nil
}

// TrainTestAccuracy recomputes accuracies for an existing model, used by
// the pipeline's metrics reporting.
func (p *Predictor) TrainTestAccuracy(xTrain [][]float64, yTrain []int, xTest [][]float64, yTest []int) (train, test float64) {
	if p.model == nil {
		return 0, 0
	}
	train = Accuracy(p.model.predictAll(xTrain), yTrain)
	if len(xTest) > 0 {
		test = Accuracy(p.model.predictAll(xTest), yTest)
	}
	return train, test
}

func (m *TrainedModel) predictAll(x [][]float64) []int {
	out := make([]int, len(x))
	for i := range x {
		out[i], _ = m.PredictClass(x[i])
	}
	return out
}
