package sentiment

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"math"
	"strings"
	"time"
	"unicode"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/cache"
	applogger "StockPulse/pkg/logger"
)

// Thresholds on the compound score for the ternary label, matching the
// conventional polarity cutoffs.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05

	// normalization constant for compound = sum / sqrt(sum^2 + alpha)
	normAlpha = 15.0

	cacheTTL = 12 * time.Hour
)

// Analyzer scores text polarity with a weighted financial lexicon plus
// negation and intensity handling. Stateless apart from the optional
// result cache, so safe for concurrent use.
type Analyzer struct {
	cache cache.Service
	l     *applogger.Logger
}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// SetCache injects an optional per-text result cache.
func (a *Analyzer) SetCache(c cache.Service) { a.cache = c }

// SetLogger injects a structured logger.
func (a *Analyzer) SetLogger(l *applogger.Logger) { a.l = l }

func (a *Analyzer) Name() string { return "lexicon" }

// Analyze scores one text. Empty or blank text yields the neutral zero
// record rather than an error.
func (a *Analyzer) Analyze(text string) models.Sentiment {
	if strings.TrimSpace(text) == "" {
		return models.NeutralSentiment()
	}

	if a.cache != nil {
		var cached models.Sentiment
		if err := a.cache.Get(context.Background(), cacheKey(text), &cached); err == nil {
			return cached
		}
	}

	s := score(text)
	if a.cache != nil {
		_ = a.cache.Set(context.Background(), cacheKey(text), s, cacheTTL)
	}
	return s
}

// AnalyzeBatch scores each text with identical per-item semantics.
func (a *Analyzer) AnalyzeBatch(texts []string) []models.Sentiment {
	out := make([]models.Sentiment, len(texts))
	for i, t := range texts {
		out[i] = a.Analyze(t)
	}
	return out
}

// Annotate fills the sentiment fields on matched rows in place, scoring
// each row's news text.
func (a *Analyzer) Annotate(rows []models.MatchedRow) {
	counts := map[string]int{}
	for i := range rows {
		text := rows[i].NewsTitle
		if rows[i].NewsDescription != "" {
			text += ". " + rows[i].NewsDescription
		}
		rows[i].Sentiment = a.Analyze(text)
		counts[rows[i].Sentiment.Label]++
	}
	if a.l != nil {
		a.l.Info("sentiment: annotated rows",
			applogger.Int("rows", len(rows)),
			applogger.Any("distribution", counts),
		)
	}
}

func score(text string) models.Sentiment {
	tokens := tokenize(text)
	sum := 0.0
	for i, tok := range tokens {
		valence, ok := lexicon[tok]
		if !ok {
			continue
		}
		// intensity boosters directly before the sentiment word
		if i > 0 {
			if b, ok := boosters[tokens[i-1]]; ok {
				if valence > 0 {
					valence += b
				} else {
					valence -= b
				}
			}
		}
		// negation within the three preceding tokens
		for j := i - 1; j >= 0 && j >= i-3; j-- {
			if negations[tokens[j]] {
				valence = -0.74 * valence
				break
			}
		}
		sum += valence
	}

	compound := sum / math.Sqrt(sum*sum+normAlpha)
	label := models.SentimentNeutral
	switch {
	case compound >= positiveThreshold:
		label = models.SentimentPositive
	case compound <= negativeThreshold:
		label = models.SentimentNegative
	}
	return models.Sentiment{Label: label, Score: math.Abs(compound), Compound: compound}
}

func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}

func cacheKey(text string) string {
	h := sha1.Sum([]byte(text))
	return "sentiment:" + hex.EncodeToString(h[:])
}
