package matching

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// Matcher aligns news records to the nearest trading-day bar per symbol.
type Matcher struct {
	store domrepo.RowStore
	l     *applogger.Logger
}

func New() *Matcher { return &Matcher{} }

// SetStore injects the optional row store used by Save.
func (m *Matcher) SetStore(s domrepo.RowStore) { m.store = s }

// SetLogger injects a structured logger.
func (m *Matcher) SetLogger(l *applogger.Logger) { m.l = l }

// Match produces one joined row per news record whose symbol has at least
// one bar. Same-day bars win; otherwise the bar minimizing absolute day
// distance is chosen, with equidistant candidates resolved to the earlier
// date. News for symbols without bars is logged and dropped. Empty inputs
// yield an empty result, not an error.
func (m *Matcher) Match(news []models.NewsRecord, bars []models.Bar) []models.MatchedRow {
	if len(news) == 0 || len(bars) == 0 {
		if m.l != nil {
			m.l.Warn("matcher: empty input",
				applogger.Int("news", len(news)),
				applogger.Int("bars", len(bars)),
			)
		}
		return nil
	}

	barsBySymbol := make(map[string][]models.Bar, 16)
	for _, b := range bars {
		barsBySymbol[b.Symbol] = append(barsBySymbol[b.Symbol], b)
	}

	out := make([]models.MatchedRow, 0, len(news))
	dropped := 0
	for _, n := range news {
		candidates := barsBySymbol[n.Symbol]
		if len(candidates) == 0 {
			dropped++
			continue
		}
		bar := pickBar(n.PublishedAt, candidates)
		out = append(out, joinRow(n, bar))
	}

	if m.l != nil {
		m.l.Info("matcher: matched news to bars",
			applogger.Int("matched", len(out)),
			applogger.Int("dropped_no_bars", dropped),
		)
	}
	return out
}

// Save persists matched rows through the configured row store.
func (m *Matcher) Save(ctx context.Context, rows []models.MatchedRow) error {
	if m.store == nil || len(rows) == 0 {
		return nil
	}
	return m.store.StoreMatched(ctx, rows)
}

// pickBar selects the bar for a news timestamp. Date granularity only: a
// bar on the same calendar day always wins, regardless of time-of-day.
// Among non-same-day candidates the smallest day distance wins; on a tie
// the earlier bar date is kept so the choice never depends on input order.
func pickBar(newsAt time.Time, candidates []models.Bar) models.Bar {
	best := candidates[0]
	bestDist := util.DayDistance(newsAt, best.Date)
	for _, b := range candidates[1:] {
		if util.SameDay(b.Date, newsAt) {
			return b
		}
		d := util.DayDistance(newsAt, b.Date)
		if d < bestDist || (d == bestDist && b.Date.Before(best.Date)) {
			best = b
			bestDist = d
		}
	}
	return best
}

func joinRow(n models.NewsRecord, b models.Bar) models.MatchedRow {
	return models.MatchedRow{
		Symbol:          n.Symbol,
		NewsTitle:       n.Title,
		NewsDescription: n.Description,
		NewsSource:      n.Source,
		NewsDate:        util.DateOnly(n.PublishedAt),
		StockDate:       util.DateOnly(b.Date),
		Open:            b.Open,
		High:            b.High,
		Low:             b.Low,
		Close:           b.Close,
		Volume:          b.Volume,
		PriceChangePct:  b.PriceChangePct,
		HighLowPct:      b.HighLowPct,
		RSI:             b.RSI,
		PriceDirection:  b.PriceDirection,
	}
}
