package dataset

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/features"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestEnrichBarsDerivedFields(t *testing.T) {
	bars := []models.Bar{
		{Symbol: "AAPL", Date: day(0), Open: 100, High: 110, Low: 95, Close: 105, Volume: 1000},
		{Symbol: "AAPL", Date: day(1), Open: 105, High: 106, Low: 100, Close: 101, Volume: 900},
	}
	EnrichBars(bars)

	// The first bar of a symbol has no previous close: change 0, neutral.
	if bars[0].PriceChangePct != 0 || bars[0].PriceDirection != models.DirectionNeutral {
		t.Fatalf("first bar must be neutral: %+v", bars[0])
	}
	wantHL := (110.0 - 95.0) / 95.0 * 100
	if math.Abs(bars[0].HighLowPct-wantHL) > 1e-9 {
		t.Fatalf("high_low_pct: got %v want %v", bars[0].HighLowPct, wantHL)
	}
	wantPct := (101.0 - 105.0) / 105.0 * 100
	if math.Abs(bars[1].PriceChangePct-wantPct) > 1e-9 {
		t.Fatalf("price_change_pct: got %v want %v", bars[1].PriceChangePct, wantPct)
	}
	if bars[1].PriceDirection != models.DirectionDown {
		t.Fatalf("direction: got %d want down", bars[1].PriceDirection)
	}
}

func TestEnrichBarsDayOverDayCloseSeries(t *testing.T) {
	// Five-day close series 100,102,101,105,103 with opens chosen so every
	// bar's intraday move has the opposite sign of the day-over-day move:
	// the change, and with it the training label, must track the previous
	// close, not the bar's own open.
	closes := []float64{100, 102, 101, 105, 103}
	opens := []float64{100, 103, 100.5, 106, 102}
	bars := make([]models.Bar, len(closes))
	for i := range bars {
		bars[i] = models.Bar{
			Symbol: "AAPL", Date: day(i),
			Open: opens[i], High: closes[i] + 1, Low: closes[i] - 1, Close: closes[i],
		}
	}
	EnrichBars(bars)

	wantPct := []float64{0, 2, (101.0 - 102.0) / 102.0 * 100, (105.0 - 101.0) / 101.0 * 100, (103.0 - 105.0) / 105.0 * 100}
	wantDir := []int{0, 1, -1, 1, -1}
	for i := range bars {
		if math.Abs(bars[i].PriceChangePct-wantPct[i]) > 1e-9 {
			t.Fatalf("bar %d: price_change_pct %v, want %v", i, bars[i].PriceChangePct, wantPct[i])
		}
		if bars[i].PriceDirection != wantDir[i] {
			t.Fatalf("bar %d: direction %d, want %d", i, bars[i].PriceDirection, wantDir[i])
		}
	}

	// The lag features inherit the day-over-day values: lag_1 at bar 3 is
	// bar 2's change.
	matched := make([]models.MatchedRow, len(bars))
	for i, b := range bars {
		matched[i] = models.MatchedRow{
			Symbol: b.Symbol, StockDate: b.Date,
			Close: b.Close, PriceChangePct: b.PriceChangePct, PriceDirection: b.PriceDirection,
		}
	}
	rows := features.New().CreateFeatures(matched)
	if math.Abs(rows[3].PriceChangeLag1-wantPct[2]) > 1e-9 {
		t.Fatalf("lag_1 at row 3: got %v, want %v", rows[3].PriceChangeLag1, wantPct[2])
	}
}

func TestEnrichBarsZeroCloseGuard(t *testing.T) {
	bars := []models.Bar{
		{Symbol: "X", Date: day(0), Open: 1, High: 1, Low: 0, Close: 0},
		{Symbol: "X", Date: day(1), Open: 1, High: 1, Low: 0, Close: 1},
	}
	EnrichBars(bars)
	if bars[1].PriceChangePct != 0 || bars[0].HighLowPct != 0 {
		t.Fatalf("zero previous close/low must not divide: %+v %+v", bars[0], bars[1])
	}
}

func TestEnrichBarsSortsBySymbolAndDate(t *testing.T) {
	bars := []models.Bar{
		{Symbol: "TSLA", Date: day(1), Open: 1, High: 1, Low: 1, Close: 1},
		{Symbol: "AAPL", Date: day(2), Open: 1, High: 1, Low: 1, Close: 1},
		{Symbol: "AAPL", Date: day(0), Open: 1, High: 1, Low: 1, Close: 1},
	}
	EnrichBars(bars)
	if bars[0].Symbol != "AAPL" || !bars[0].Date.Equal(day(0)) {
		t.Fatalf("expected AAPL day 0 first, got %+v", bars[0])
	}
	if bars[2].Symbol != "TSLA" {
		t.Fatalf("expected TSLA last, got %+v", bars[2])
	}
}

func TestRSINeutralWithoutFullWindow(t *testing.T) {
	bars := make([]models.Bar, rsiPeriod)
	for i := range bars {
		bars[i] = models.Bar{Symbol: "A", Date: day(i), Open: 1, High: 1, Low: 1, Close: float64(i + 1)}
	}
	EnrichBars(bars)
	for i, b := range bars {
		if b.RSI != 50 {
			t.Fatalf("bar %d: expected neutral rsi without full window, got %v", i, b.RSI)
		}
	}
}

func TestRSIAllGainsSaturates(t *testing.T) {
	bars := make([]models.Bar, rsiPeriod+3)
	for i := range bars {
		bars[i] = models.Bar{Symbol: "A", Date: day(i), Open: 1, High: 1, Low: 1, Close: float64(i + 1)}
	}
	EnrichBars(bars)
	if got := bars[len(bars)-1].RSI; got != 100 {
		t.Fatalf("monotone gains must saturate rsi at 100, got %v", got)
	}
}

func TestRSIBalancedMoves(t *testing.T) {
	// Alternating +1/-1 closes: equal average gain and loss, RSI 50.
	bars := make([]models.Bar, rsiPeriod+5)
	for i := range bars {
		c := 10.0
		if i%2 == 1 {
			c = 11.0
		}
		bars[i] = models.Bar{Symbol: "A", Date: day(i), Open: c, High: c, Low: c, Close: c}
	}
	EnrichBars(bars)
	if got := bars[len(bars)-1].RSI; math.Abs(got-50) > 1e-9 {
		t.Fatalf("balanced moves must give rsi 50, got %v", got)
	}
}
