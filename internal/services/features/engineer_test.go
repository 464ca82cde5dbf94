package features

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func row(symbol string, d int, compound, changePct float64) models.MatchedRow {
	return models.MatchedRow{
		Symbol:         symbol,
		StockDate:      time.Date(2024, 10, d, 0, 0, 0, 0, time.UTC),
		Sentiment:      models.Sentiment{Label: models.SentimentNeutral, Score: math.Abs(compound), Compound: compound},
		Close:          100,
		Volume:         1000,
		PriceChangePct: changePct,
		PriceDirection: models.DirectionOf(changePct),
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCreateFeaturesLagValues(t *testing.T) {
	e := New()
	rows := e.CreateFeatures([]models.MatchedRow{
		row("AAPL", 3, 0.3, 3),
		row("AAPL", 1, 0.1, 1),
		row("AAPL", 2, 0.2, 2),
		row("AAPL", 4, 0.4, 4),
	})
	// Rows come back sorted by stock date; lag_1 at row i is row i-1's value.
	if !almostEqual(rows[1].SentimentLag1, 0.1) {
		t.Fatalf("lag_1 at row 1 = %v, want 0.1", rows[1].SentimentLag1)
	}
	if !almostEqual(rows[3].PriceChangeLag1, 3) {
		t.Fatalf("price lag_1 at row 3 = %v, want 3", rows[3].PriceChangeLag1)
	}
	if !almostEqual(rows[3].SentimentLag3, 0.1) {
		t.Fatalf("lag_3 at row 3 = %v, want 0.1", rows[3].SentimentLag3)
	}
}

func TestCreateFeaturesBackwardThenZeroFill(t *testing.T) {
	e := New()
	rows := e.CreateFeatures([]models.MatchedRow{
		row("AAPL", 1, 0.1, 1),
		row("AAPL", 2, 0.2, 2),
	})
	// lag_1 at row 0 is missing; the next valid value (row 1's lag_1 = 0.1)
	// is propagated backward.
	if !almostEqual(rows[0].SentimentLag1, 0.1) {
		t.Fatalf("backward fill: lag_1 at row 0 = %v, want 0.1", rows[0].SentimentLag1)
	}
	// lag_3 never has a valid value in a 2-row series: zero-filled.
	if rows[0].SentimentLag3 != 0 || rows[1].SentimentLag3 != 0 {
		t.Fatalf("zero fill: lag_3 = %v,%v, want 0,0", rows[0].SentimentLag3, rows[1].SentimentLag3)
	}
}

func TestCreateFeaturesRollingMeanShrinksAtStart(t *testing.T) {
	e := New()
	rows := e.CreateFeatures([]models.MatchedRow{
		row("AAPL", 1, 0.3, 1),
		row("AAPL", 2, 0.6, 1),
		row("AAPL", 3, 0.9, 1),
		row("AAPL", 4, 0.0, 1),
	})
	want := []float64{0.3, 0.45, 0.6, 0.5}
	for i, w := range want {
		if !almostEqual(rows[i].SentimentRollingMean3, w) {
			t.Fatalf("rolling mean at %d = %v, want %v", i, rows[i].SentimentRollingMean3, w)
		}
	}
}

func TestCreateFeaturesNoCrossSymbolLeakage(t *testing.T) {
	e := New()
	base := []models.MatchedRow{
		row("AAPL", 1, 0.1, 1),
		row("AAPL", 2, 0.2, 2),
		row("AAPL", 3, 0.3, 3),
	}
	other := []models.MatchedRow{
		row("TSLA", 1, -0.9, -5),
		row("TSLA", 2, -0.8, -4),
	}
	shuffled := []models.MatchedRow{other[1], other[0]}

	pick := func(rows []models.FeatureRow) []models.FeatureRow {
		var out []models.FeatureRow
		for _, r := range rows {
			if r.Symbol == "AAPL" {
				out = append(out, r)
			}
		}
		return out
	}

	a := pick(e.CreateFeatures(append(append([]models.MatchedRow{}, base...), other...)))
	b := pick(e.CreateFeatures(append(append([]models.MatchedRow{}, base...), shuffled...)))
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].SentimentLag1 != b[i].SentimentLag1 ||
			a[i].SentimentRollingMean3 != b[i].SentimentRollingMean3 ||
			a[i].PriceChangeLag3 != b[i].PriceChangeLag3 {
			t.Fatalf("row %d changed when another symbol was shuffled: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCreateFeaturesOrderingInvariant(t *testing.T) {
	e := New()
	// Features at row i must depend only on rows at or before i: changing a
	// later row's compound must not change earlier lag/rolling values.
	mk := func(last float64) []models.FeatureRow {
		return e.CreateFeatures([]models.MatchedRow{
			row("AAPL", 1, 0.1, 1),
			row("AAPL", 2, 0.2, 2),
			row("AAPL", 3, 0.3, 3),
			row("AAPL", 4, 0.4, 4),
			row("AAPL", 5, last, 5),
		})
	}
	a := mk(0.5)
	b := mk(-0.5)
	for i := 0; i < 4; i++ {
		if a[i].SentimentLag1 != b[i].SentimentLag1 ||
			a[i].SentimentLag3 != b[i].SentimentLag3 ||
			a[i].SentimentRollingMean3 != b[i].SentimentRollingMean3 {
			t.Fatalf("row %d depends on a later row", i)
		}
	}
}

func TestPrepareForTrainingEmpty(t *testing.T) {
	e := New()
	if _, _, err := e.PrepareForTraining(nil); err != models.ErrEmptyDataset {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestPrepareForTrainingFreezesContract(t *testing.T) {
	e := New()
	rows := e.CreateFeatures([]models.MatchedRow{
		row("AAPL", 1, 0.1, 1),
		row("AAPL", 2, -0.2, -2),
		row("AAPL", 3, 0.3, 3),
	})
	x, y, err := e.PrepareForTraining(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := e.Contract()
	if !c.Fitted() {
		t.Fatalf("contract not fitted")
	}
	if len(c.Columns) != len(declaredColumns) {
		t.Fatalf("expected all declared columns, got %d", len(c.Columns))
	}
	if len(x) != 3 || len(y) != 3 {
		t.Fatalf("unexpected shapes: %d x, %d y", len(x), len(y))
	}
	if y[1] != models.DirectionDown {
		t.Fatalf("label must be untouched price direction, got %d", y[1])
	}
	// Scaled columns have zero mean (within tolerance).
	for j := range c.Columns {
		sum := 0.0
		for i := range x {
			sum += x[i][j]
		}
		if math.Abs(sum/float64(len(x))) > 1e-9 {
			t.Fatalf("column %s not centered: mean %v", c.Columns[j], sum/float64(len(x)))
		}
	}
}

func TestTrainTestSplitChronological(t *testing.T) {
	e := New()
	x := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}}
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	xtr, xte, ytr, yte := e.TrainTestSplit(x, y, 0.8)
	if len(xtr) != 8 || len(xte) != 2 || len(ytr) != 8 || len(yte) != 2 {
		t.Fatalf("unexpected split sizes %d/%d", len(xtr), len(xte))
	}
	// Every train index precedes every test index.
	if xtr[len(xtr)-1][0] >= xte[0][0] {
		t.Fatalf("test rows precede train rows")
	}
}

func TestTransformOneBeforeFit(t *testing.T) {
	e := New()
	if _, err := e.TransformOne(map[string]float64{}); err != models.ErrContractNotFitted {
		t.Fatalf("expected ErrContractNotFitted, got %v", err)
	}
}

func TestTransformOneMatchesTrainingScaling(t *testing.T) {
	e := New()
	matched := []models.MatchedRow{
		row("AAPL", 1, 0.1, 1),
		row("AAPL", 2, -0.2, -2),
		row("AAPL", 3, 0.3, 3),
		row("AAPL", 4, 0.25, 2),
	}
	rows := e.CreateFeatures(matched)
	x, _, err := e.PrepareForTraining(rows)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	// Feed the raw (pre-scaling) values of row 2 through the single-sample
	// path: the result must equal the training matrix row bit for bit in
	// semantics (floating tolerance).
	got, err := e.TransformOne(rows[2].Features())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	for j := range got {
		if math.Abs(got[j]-x[2][j]) > 1e-9 {
			t.Fatalf("column %d: transform_one %v != training %v", j, got[j], x[2][j])
		}
	}
}

func TestTransformOnePadsAndDrops(t *testing.T) {
	e := New()
	rows := e.CreateFeatures([]models.MatchedRow{
		row("AAPL", 1, 0.1, 1),
		row("AAPL", 2, 0.2, 2),
	})
	if _, _, err := e.PrepareForTraining(rows); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	vec, err := e.TransformOne(map[string]float64{
		models.ColSentimentCompound: 0.1,
		"unknown_extra_column":      99,
	})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if len(vec) != len(e.Contract().Columns) {
		t.Fatalf("vector length %d != contract %d", len(vec), len(e.Contract().Columns))
	}
}

func TestInferenceFeaturesDegradedVector(t *testing.T) {
	s := models.Sentiment{Label: models.SentimentPositive, Score: 0.8, Compound: 0.8}
	f := InferenceFeatures(s, 100, 104, 2000)
	if !almostEqual(f[models.ColPriceChangePct], 4) {
		t.Fatalf("price change pct = %v, want 4", f[models.ColPriceChangePct])
	}
	if f[models.ColSentimentLag1] != 0 || f[models.ColPriceChangeLag3] != 0 {
		t.Fatalf("lags must default to 0 with no history")
	}
	if !almostEqual(f[models.ColSentimentRollingMean3], 0.8) {
		t.Fatalf("rolling mean must collapse to compound")
	}
	if f[models.ColRSI] != 50 {
		t.Fatalf("rsi must default to the neutral midpoint")
	}
	if !almostEqual(f[models.ColSentimentVolumeInteraction], 0.8*math.Log1p(2000)) {
		t.Fatalf("interaction = %v", f[models.ColSentimentVolumeInteraction])
	}
	// Zero open price must not divide by zero.
	f = InferenceFeatures(s, 0, 104, 0)
	if f[models.ColPriceChangePct] != 0 {
		t.Fatalf("zero open must yield zero change")
	}
}
