package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// HTTPSource fetches news and bars from a JSON data service. One instance
// covers both roles when the service exposes both endpoints; separate
// instances with distinct base URLs work too.
type HTTPSource struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	l       *applogger.Logger
}

// HTTPSourceOption configures HTTPSource.
type HTTPSourceOption func(*HTTPSource)

func NewHTTPSource(baseURL string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(30 * time.Second)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithAPIKey sets the token sent as a query parameter.
func WithAPIKey(key string) HTTPSourceOption {
	return func(s *HTTPSource) { s.apiKey = key }
}

// WithSourceTimeout overrides the HTTP client timeout.
func WithSourceTimeout(timeout time.Duration) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.client = xhttp.NewClient(xhttp.WithTimeout(timeout))
	}
}

// WithSourceLogger injects a structured logger.
func WithSourceLogger(l *applogger.Logger) HTTPSourceOption {
	return func(s *HTTPSource) { s.l = l }
}

type newsItem struct {
	Symbol      string `json:"symbol"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Date        string `json:"date"`
}

type barItem struct {
	Symbol string  `json:"symbol"`
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

func (s *HTTPSource) FetchNews(ctx context.Context, symbols []string) ([]models.NewsRecord, error) {
	var items []newsItem
	if err := s.getJSON(ctx, "/news", symbols, &items); err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}

	out := make([]models.NewsRecord, 0, len(items))
	for _, it := range items {
		publishedAt, ok := util.ParseTime(it.Date)
		if !ok || it.Symbol == "" {
			continue
		}
		out = append(out, models.NewsRecord{
			Symbol:      strings.ToUpper(it.Symbol),
			Title:       it.Title,
			Description: it.Description,
			Source:      it.Source,
			PublishedAt: publishedAt,
		})
	}
	if s.l != nil {
		s.l.Info("http news fetched",
			applogger.String("base_url", s.baseURL),
			applogger.Int("rows", len(out)),
		)
	}
	return out, nil
}

func (s *HTTPSource) FetchBars(ctx context.Context, symbols []string) ([]models.Bar, error) {
	var items []barItem
	if err := s.getJSON(ctx, "/bars", symbols, &items); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	out := make([]models.Bar, 0, len(items))
	for _, it := range items {
		date, ok := util.ParseTime(it.Date)
		if !ok || it.Symbol == "" {
			continue
		}
		out = append(out, models.Bar{
			Symbol: strings.ToUpper(it.Symbol),
			Date:   util.DateOnly(date),
			Open:   it.Open,
			High:   it.High,
			Low:    it.Low,
			Close:  it.Close,
			Volume: it.Volume,
		})
	}

	EnrichBars(out)
	if s.l != nil {
		s.l.Info("http bars fetched",
			applogger.String("base_url", s.baseURL),
			applogger.Int("rows", len(out)),
		)
	}
	return out, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, symbols []string, dest interface{}) error {
	if s.client == nil || s.baseURL == "" {
		return fmt.Errorf("http source not initialized")
	}
	params := map[string][]string{
		"symbols": {strings.Join(symbols, ",")},
	}
	if s.apiKey != "" {
		params["token"] = []string{s.apiKey}
	}
	return s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         s.baseURL + path,
		QueryParams: params,
	}, dest)
}
