package models

import "time"

// MatchedRow joins one news item with the bar chosen for it. NewsDate and
// StockDate carry date granularity only (time-of-day is dropped by the
// matcher).
type MatchedRow struct {
	Symbol          string
	NewsTitle       string
	NewsDescription string
	NewsSource      string
	NewsDate        time.Time
	StockDate       time.Time

	Sentiment Sentiment

	Open           float64
	High           float64
	Low            float64
	Close          float64
	Volume         float64
	PriceChangePct float64
	HighLowPct     float64
	RSI            float64
	PriceDirection int
}

// FeatureRow extends a MatchedRow with the engineered lag/rolling and
// interaction features. Lag and rolling values are computed per symbol over
// rows sorted by StockDate.
type FeatureRow struct {
	MatchedRow

	SentimentLag1              float64
	SentimentLag3              float64
	PriceChangeLag1            float64
	PriceChangeLag3            float64
	SentimentRollingMean3      float64
	SentimentVolumeInteraction float64
}

// Feature column names shared between training and serving. The ordered
// list frozen into the FeatureContract is drawn from these.
const (
	ColSentimentCompound          = "sentiment_compound"
	ColSentimentScore             = "sentiment_score"
	ColSentimentLag1              = "sentiment_lag_1"
	ColSentimentLag3              = "sentiment_lag_3"
	ColSentimentRollingMean3      = "sentiment_rolling_mean_3"
	ColPriceChangePct             = "price_change_pct"
	ColPriceChangeLag1            = "price_change_lag_1"
	ColPriceChangeLag3            = "price_change_lag_3"
	ColHighLowPct                 = "high_low_pct"
	ColVolume                     = "volume"
	ColRSI                        = "rsi"
	ColSentimentVolumeInteraction = "sentiment_volume_interaction"
)

// Features flattens the row into the name -> value mapping the feature
// engineer selects columns from.
func (r FeatureRow) Features() map[string]float64 {
	return map[string]float64{
		ColSentimentCompound:          r.Sentiment.Compound,
		ColSentimentScore:             r.Sentiment.Score,
		ColSentimentLag1:              r.SentimentLag1,
		ColSentimentLag3:              r.SentimentLag3,
		ColSentimentRollingMean3:      r.SentimentRollingMean3,
		ColPriceChangePct:             r.PriceChangePct,
		ColPriceChangeLag1:            r.PriceChangeLag1,
		ColPriceChangeLag3:            r.PriceChangeLag3,
		ColHighLowPct:                 r.HighLowPct,
		ColVolume:                     r.Volume,
		ColRSI:                        r.RSI,
		ColSentimentVolumeInteraction: r.SentimentVolumeInteraction,
	}
}
