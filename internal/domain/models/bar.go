package models

import "time"

// Bar is one trading day's OHLCV record for a symbol plus derived
// indicators. Exactly one bar exists per (symbol, trading date); bars must
// be sorted by date within a symbol before any lag/rolling computation.
type Bar struct {
	Symbol         string
	Date           time.Time
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

// Direction values for the training label.
const (
	DirectionDown    = -1
	DirectionNeutral = 0
	DirectionUp      = 1
)

// DirectionOf discretizes a percentage price change into {-1,0,1}.
func DirectionOf(changePct float64) int {
	switch {
	case changePct > 0:
		return DirectionUp
	case changePct < 0:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}

// DirectionLabel maps a class value to its wire name.
func DirectionLabel(v int) string {
	switch v {
	case DirectionUp:
		return "UP"
	case DirectionDown:
		return "DOWN"
	default:
		return "NEUTRAL"
	}
}
