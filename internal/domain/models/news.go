package models

import "time"

// NewsRecord is one fetched news item. Immutable once created by a news
// source; consumed exactly once by the matcher.
type NewsRecord struct {
	Symbol      string
	Title       string
	Description string
	Source      string
	PublishedAt time.Time
}

// Text returns the content used for sentiment scoring.
func (n NewsRecord) Text() string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ". " + n.Description
}

// Sentiment holds one scored text.
// Compound is the signed polarity in [-1,1]; Score is its magnitude.
type Sentiment struct {
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
	Compound float64 `json:"compound"`
}

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// NeutralSentiment is returned for empty or unscorable text.
func NeutralSentiment() Sentiment {
	return Sentiment{Label: SentimentNeutral, Score: 0, Compound: 0}
}
