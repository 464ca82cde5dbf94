package matching

import (
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func day(d int) time.Time {
	return time.Date(2024, 10, d, 0, 0, 0, 0, time.UTC)
}

func barOn(symbol string, d int) models.Bar {
	return models.Bar{Symbol: symbol, Date: day(d), Close: 100}
}

func newsOn(symbol string, d int) models.NewsRecord {
	return models.NewsRecord{Symbol: symbol, Title: "headline", PublishedAt: day(d).Add(14 * time.Hour)}
}

func TestMatchEmptyInputs(t *testing.T) {
	m := New()
	if got := m.Match(nil, []models.Bar{barOn("AAPL", 10)}); len(got) != 0 {
		t.Fatalf("expected empty result for empty news, got %d", len(got))
	}
	if got := m.Match([]models.NewsRecord{newsOn("AAPL", 10)}, nil); len(got) != 0 {
		t.Fatalf("expected empty result for empty bars, got %d", len(got))
	}
}

func TestMatchSameDayPrecedence(t *testing.T) {
	m := New()
	bars := []models.Bar{barOn("AAPL", 9), barOn("AAPL", 10), barOn("AAPL", 11)}
	rows := m.Match([]models.NewsRecord{newsOn("AAPL", 10)}, bars)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !rows[0].StockDate.Equal(day(10)) {
		t.Fatalf("expected same-day bar, got %v", rows[0].StockDate)
	}
}

func TestMatchNearestBar(t *testing.T) {
	m := New()
	bars := []models.Bar{barOn("AAPL", 7), barOn("AAPL", 14)}
	rows := m.Match([]models.NewsRecord{newsOn("AAPL", 12)}, bars)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !rows[0].StockDate.Equal(day(14)) {
		t.Fatalf("expected nearest bar 14, got %v", rows[0].StockDate)
	}
}

func TestMatchEquidistantPrefersEarlierDate(t *testing.T) {
	m := New()
	// 10 and 14 are both two days from 12; order in the slice must not matter.
	bars := []models.Bar{barOn("AAPL", 14), barOn("AAPL", 10)}
	rows := m.Match([]models.NewsRecord{newsOn("AAPL", 12)}, bars)
	if !rows[0].StockDate.Equal(day(10)) {
		t.Fatalf("expected earlier bar 10, got %v", rows[0].StockDate)
	}

	bars = []models.Bar{barOn("AAPL", 10), barOn("AAPL", 14)}
	rows = m.Match([]models.NewsRecord{newsOn("AAPL", 12)}, bars)
	if !rows[0].StockDate.Equal(day(10)) {
		t.Fatalf("expected earlier bar 10 regardless of order, got %v", rows[0].StockDate)
	}
}

func TestMatchDropsSymbolsWithoutBars(t *testing.T) {
	m := New()
	news := []models.NewsRecord{newsOn("AAPL", 10), newsOn("TSLA", 10)}
	rows := m.Match(news, []models.Bar{barOn("AAPL", 10)})
	if len(rows) != 1 {
		t.Fatalf("expected TSLA news dropped, got %d rows", len(rows))
	}
	if rows[0].Symbol != "AAPL" {
		t.Fatalf("unexpected symbol %s", rows[0].Symbol)
	}
}

func TestMatchCopiesBarFields(t *testing.T) {
	m := New()
	bar := models.Bar{
		Symbol: "AAPL", Date: day(10),
		Open: 100, High: 105, Low: 99, Close: 103, Volume: 1e6,
		PriceChangePct: 3, HighLowPct: 6.06, RSI: 61, PriceDirection: 1,
	}
	rows := m.Match([]models.NewsRecord{newsOn("AAPL", 10)}, []models.Bar{bar})
	r := rows[0]
	if r.Close != 103 || r.PriceChangePct != 3 || r.PriceDirection != 1 || r.RSI != 61 {
		t.Fatalf("bar fields not carried over: %+v", r)
	}
	if !r.NewsDate.Equal(day(10)) {
		t.Fatalf("news date should be truncated to the day, got %v", r.NewsDate)
	}
}
