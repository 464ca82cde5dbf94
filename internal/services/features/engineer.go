package features

import (
	"math"
	"sort"

	"StockPulse/internal/domain/models"
	applogger "StockPulse/pkg/logger"
)

// declaredColumns is the full feature schema in its canonical order. The
// contract frozen at fit time is this list intersected with the columns
// actually present, resolved once and never re-derived per call.
var declaredColumns = []string{
	models.ColSentimentCompound,
	models.ColSentimentScore,
	models.ColSentimentLag1,
	models.ColSentimentLag3,
	models.ColSentimentRollingMean3,
	models.ColPriceChangePct,
	models.ColPriceChangeLag1,
	models.ColPriceChangeLag3,
	models.ColHighLowPct,
	models.ColVolume,
	models.ColRSI,
	models.ColSentimentVolumeInteraction,
}

// Engineer computes the lag/rolling/interaction feature set and owns the
// feature contract. Fit once via PrepareForTraining; read-only afterwards,
// so concurrent TransformOne calls need no locking.
type Engineer struct {
	contract *models.FeatureContract
	l        *applogger.Logger
}

func New() *Engineer { return &Engineer{} }

// SetLogger injects a structured logger.
func (e *Engineer) SetLogger(l *applogger.Logger) { e.l = l }

// Contract returns the frozen feature contract, nil before fit.
func (e *Engineer) Contract() *models.FeatureContract { return e.contract }

// SetContract installs a previously persisted contract, e.g. in the
// serving process. The contract is treated as immutable from here on.
func (e *Engineer) SetContract(c *models.FeatureContract) { e.contract = c }

// CreateFeatures computes lag, rolling and interaction features over the
// matched rows. The (symbol, stock date) sort happens here, not in the
// caller: the ordering is load-bearing for every windowed value below.
// All windows run strictly per symbol so one symbol's rows can never leak
// into another's features.
func (e *Engineer) CreateFeatures(rows []models.MatchedRow) []models.FeatureRow {
	sorted := make([]models.MatchedRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Symbol != sorted[j].Symbol {
			return sorted[i].Symbol < sorted[j].Symbol
		}
		return sorted[i].StockDate.Before(sorted[j].StockDate)
	})

	out := make([]models.FeatureRow, 0, len(sorted))
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Symbol == sorted[start].Symbol {
			end++
		}
		out = append(out, engineerSymbol(sorted[start:end])...)
		start = end
	}

	if e.l != nil {
		e.l.Info("features: engineered rows", applogger.Int("rows", len(out)))
	}
	return out
}

// engineerSymbol computes windowed features for one symbol's chronological
// sequence. Leading lag values are missing by construction; they are
// backward-filled from the next valid value within this sequence, then any
// remainder is zero-filled.
func engineerSymbol(seq []models.MatchedRow) []models.FeatureRow {
	n := len(seq)
	sentLag1 := lagSeries(seq, 1, func(r models.MatchedRow) float64 { return r.Sentiment.Compound })
	sentLag3 := lagSeries(seq, 3, func(r models.MatchedRow) float64 { return r.Sentiment.Compound })
	chgLag1 := lagSeries(seq, 1, func(r models.MatchedRow) float64 { return r.PriceChangePct })
	chgLag3 := lagSeries(seq, 3, func(r models.MatchedRow) float64 { return r.PriceChangePct })
	for _, s := range [][]float64{sentLag1, sentLag3, chgLag1, chgLag3} {
		backwardFill(s)
		zeroFill(s)
	}

	rows := make([]models.FeatureRow, n)
	rollSum := 0.0
	for i := 0; i < n; i++ {
		rollSum += seq[i].Sentiment.Compound
		window := 3
		if i+1 < window {
			window = i + 1
		}
		if i >= 3 {
			rollSum -= seq[i-3].Sentiment.Compound
		}

		rows[i] = models.FeatureRow{
			MatchedRow:                 seq[i],
			SentimentLag1:              sentLag1[i],
			SentimentLag3:              sentLag3[i],
			PriceChangeLag1:            chgLag1[i],
			PriceChangeLag3:            chgLag3[i],
			SentimentRollingMean3:      rollSum / float64(window),
			SentimentVolumeInteraction: seq[i].Sentiment.Compound * math.Log1p(seq[i].Volume),
		}
	}
	return rows
}

// lagSeries returns value(seq[i-k]) per position, NaN where i < k.
func lagSeries(seq []models.MatchedRow, k int, value func(models.MatchedRow) float64) []float64 {
	out := make([]float64, len(seq))
	for i := range seq {
		if i < k {
			out[i] = math.NaN()
			continue
		}
		out[i] = value(seq[i-k])
	}
	return out
}

// backwardFill propagates the next valid value backward over NaN runs.
func backwardFill(s []float64) {
	next := math.NaN()
	for i := len(s) - 1; i >= 0; i-- {
		if math.IsNaN(s[i]) {
			s[i] = next
		} else {
			next = s[i]
		}
	}
}

// zeroFill replaces any remaining NaN with 0.
func zeroFill(s []float64) {
	for i := range s {
		if math.IsNaN(s[i]) {
			s[i] = 0
		}
	}
}

// PrepareForTraining selects the declared feature columns present in the
// rows, fits the zero-mean/unit-variance scaler and freezes the resulting
// order plus scaler state into the feature contract. Returns the scaled
// matrix and the untouched price-direction labels.
func (e *Engineer) PrepareForTraining(rows []models.FeatureRow) ([][]float64, []int, error) {
	if len(rows) == 0 {
		return nil, nil, models.ErrEmptyDataset
	}

	available := make([]string, 0, len(declaredColumns))
	probe := rows[0].Features()
	for _, col := range declaredColumns {
		if _, ok := probe[col]; ok {
			available = append(available, col)
		}
	}

	x := make([][]float64, 0, len(rows))
	y := make([]int, 0, len(rows))
	for _, r := range rows {
		feats := r.Features()
		vec := make([]float64, len(available))
		for j, col := range available {
			v := feats[col]
			if math.IsNaN(v) {
				v = 0
			}
			vec[j] = v
		}
		x = append(x, vec)
		y = append(y, r.PriceDirection)
	}
	if len(x) == 0 {
		return nil, nil, models.ErrEmptyDataset
	}

	means, stds := fitScaler(x)
	e.contract = &models.FeatureContract{Columns: available, Means: means, Stds: stds}
	for i := range x {
		scaleInPlace(x[i], means, stds)
	}

	if e.l != nil {
		e.l.Info("features: prepared training matrix",
			applogger.Int("rows", len(x)),
			applogger.Int("columns", len(available)),
			applogger.Any("label_counts", labelCounts(y)),
		)
	}
	return x, y, nil
}

// TrainTestSplit splits chronologically by positional index: the first
// ratio fraction trains, the remainder tests. Never random, so no test row
// precedes a train row within the continuous sequence.
func (e *Engineer) TrainTestSplit(x [][]float64, y []int, ratio float64) (xTrain, xTest [][]float64, yTrain, yTest []int) {
	split := int(float64(len(x)) * ratio)
	xTrain, xTest = x[:split], x[split:]
	yTrain, yTest = y[:split], y[split:]
	if e.l != nil {
		e.l.Info("features: split", applogger.Int("train", len(xTrain)), applogger.Int("test", len(xTest)))
	}
	return
}

// TransformOne builds the scaled vector for a single inference-time sample.
// Missing contract columns are zero-padded, extras dropped, and the fitted
// scaler applied exactly as at training time. This is the train/serve
// consistency contract: for identical raw values the output must equal the
// training-time scaled row.
func (e *Engineer) TransformOne(raw map[string]float64) ([]float64, error) {
	c := e.contract
	if !c.Fitted() {
		return nil, models.ErrContractNotFitted
	}
	vec := make([]float64, len(c.Columns))
	for j, col := range c.Columns {
		if v, ok := raw[col]; ok && !math.IsNaN(v) {
			vec[j] = v
		}
	}
	scaleInPlace(vec, c.Means, c.Stds)
	return vec, nil
}

// InferenceFeatures is the documented degraded feature mapping for ad-hoc
// single requests with no history: lags are 0, the rolling mean collapses
// to the current compound, and RSI defaults to its neutral midpoint.
func InferenceFeatures(s models.Sentiment, openPrice, closePrice, volume float64) map[string]float64 {
	changePct := 0.0
	if openPrice != 0 {
		changePct = (closePrice - openPrice) / openPrice * 100
	}
	return map[string]float64{
		models.ColSentimentCompound:          s.Compound,
		models.ColSentimentScore:             s.Score,
		models.ColSentimentLag1:              0,
		models.ColSentimentLag3:              0,
		models.ColSentimentRollingMean3:      s.Compound,
		models.ColPriceChangePct:             changePct,
		models.ColPriceChangeLag1:            0,
		models.ColPriceChangeLag3:            0,
		models.ColHighLowPct:                 0,
		models.ColVolume:                     volume,
		models.ColRSI:                        50,
		models.ColSentimentVolumeInteraction: s.Compound * math.Log1p(volume),
	}
}

func labelCounts(y []int) map[int]int {
	counts := make(map[int]int, 3)
	for _, v := range y {
		counts[v]++
	}
	return counts
}
