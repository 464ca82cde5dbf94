package dataset

import (
	"sort"

	"StockPulse/internal/domain/models"
)

// rsiPeriod is the lookback window for the relative strength index.
const rsiPeriod = 14

// EnrichBars fills the derived technical fields (price_change_pct,
// high_low_pct, rsi, price_direction) on bars that arrive without them.
// Bars are sorted by (symbol, date) in place; price change and RSI both
// need the per-symbol chronological order.
func EnrichBars(bars []models.Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		if bars[i].Symbol != bars[j].Symbol {
			return bars[i].Symbol < bars[j].Symbol
		}
		return bars[i].Date.Before(bars[j].Date)
	})

	for begin := 0; begin < len(bars); {
		end := begin
		for end < len(bars) && bars[end].Symbol == bars[begin].Symbol {
			end++
		}
		enrichSymbol(bars[begin:end])
		begin = end
	}
}

// enrichSymbol derives the per-bar fields for one symbol's chronological
// sequence. price_change_pct is close over the previous close; the first
// bar of a symbol has no previous close and stays at 0 with a neutral
// direction.
func enrichSymbol(bars []models.Bar) {
	for i := range bars {
		b := &bars[i]
		if i > 0 && bars[i-1].Close != 0 {
			b.PriceChangePct = (b.Close - bars[i-1].Close) / bars[i-1].Close * 100
		}
		if b.Low != 0 {
			b.HighLowPct = (b.High - b.Low) / b.Low * 100
		}
		b.PriceDirection = models.DirectionOf(b.PriceChangePct)
	}
	fillRSI(bars)
}

// fillRSI computes a simple-average RSI over rsiPeriod close deltas. Rows
// without a full window keep the neutral value 50.
func fillRSI(bars []models.Bar) {
	for i := range bars {
		bars[i].RSI = 50
	}
	if len(bars) <= rsiPeriod {
		return
	}

	deltas := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		deltas[i] = bars[i].Close - bars[i-1].Close
	}

	for i := rsiPeriod; i < len(bars); i++ {
		var gain, loss float64
		for j := i - rsiPeriod + 1; j <= i; j++ {
			if deltas[j] > 0 {
				gain += deltas[j]
			} else {
				loss -= deltas[j]
			}
		}
		switch {
		case gain == 0 && loss == 0:
			bars[i].RSI = 50
		case loss == 0:
			bars[i].RSI = 100
		default:
			rs := gain / loss
			bars[i].RSI = 100 - 100/(1+rs)
		}
	}
}
