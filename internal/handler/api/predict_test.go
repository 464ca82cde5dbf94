package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/features"
	"StockPulse/internal/services/model"
	"StockPulse/internal/services/sentiment"
	"StockPulse/internal/usecase"

	"github.com/labstack/echo/v4"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func servingFixture(t *testing.T, withModel bool) *usecase.ServingContext {
	t.Helper()

	contract := &models.FeatureContract{
		Columns: []string{models.ColSentimentCompound, models.ColPriceChangePct, models.ColVolume},
		Means:   []float64{0, 0, 0},
		Stds:    []float64{1, 1, 1},
	}
	engineer := features.New()
	engineer.SetContract(contract)

	pred := model.NewPredictor(model.Config{Trees: 5, MaxDepth: 3, Seed: 42, Workers: 1})
	if withModel {
		x := [][]float64{
			{0.8, 3, 1000}, {0.7, 2, 1100}, {0.9, 4, 900}, {0.6, 2.5, 1050},
			{-0.8, -3, 1000}, {-0.7, -2, 1100}, {-0.9, -4, 900}, {-0.6, -2.5, 950},
		}
		y := []int{1, 1, 1, 1, -1, -1, -1, -1}
		if _, err := pred.Train(x, y, nil, nil); err != nil {
			t.Fatalf("train fixture: %v", err)
		}
	}
	return usecase.NewServingContext(engineer, pred, sentiment.NewAnalyzer())
}

func doRequest(h *PredictHandler, method, path, body string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestPredictEndpoint(t *testing.T) {
	h := NewPredictHandler(nil, servingFixture(t, true))
	rec := doRequest(h, http.MethodPost, "/predict",
		`{"symbol":"AAPL","news_text":"record profits and strong growth","open_price":100,"close_price":103,"volume":1000}`)

	env := decode(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status: %d (%s)", env.Status, rec.Body.String())
	}
	var resp models.PredictResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Prediction.Direction != "UP" {
		t.Fatalf("clear bullish case must predict UP: %+v", resp.Prediction)
	}
	if resp.Symbol != "AAPL" {
		t.Fatalf("symbol echo: %+v", resp)
	}
}

func TestPredictValidation(t *testing.T) {
	h := NewPredictHandler(nil, servingFixture(t, true))
	rec := doRequest(h, http.MethodPost, "/predict", `{"open_price":100}`)

	env := decode(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("missing news_text must be rejected: %d (%s)", env.Status, rec.Body.String())
	}
}

func TestPredictModelNotLoaded(t *testing.T) {
	h := NewPredictHandler(nil, servingFixture(t, false))
	rec := doRequest(h, http.MethodPost, "/predict",
		`{"news_text":"anything","open_price":1,"close_price":1,"volume":1}`)

	env := decode(t, rec)
	if env.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 envelope, got %d (%s)", env.Status, rec.Body.String())
	}
}

func TestSentimentEndpoint(t *testing.T) {
	h := NewPredictHandler(nil, servingFixture(t, true))
	rec := doRequest(h, http.MethodPost, "/sentiment", `{"text":"shares plunge on fraud probe"}`)

	env := decode(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status: %d (%s)", env.Status, rec.Body.String())
	}
	var resp models.SentimentResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Sentiment.Label != models.SentimentNegative {
		t.Fatalf("expected negative: %+v", resp.Sentiment)
	}
}

func TestHealthAndStats(t *testing.T) {
	h := NewPredictHandler(nil, servingFixture(t, true))

	env := decode(t, doRequest(h, http.MethodGet, "/health", ""))
	var health models.HealthResponse
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "healthy" || !health.PredictorModel {
		t.Fatalf("health: %+v", health)
	}

	env = decode(t, doRequest(h, http.MethodGet, "/stats", ""))
	var stats models.StatsResponse
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TreeCount != 5 || stats.FeatureCount != 3 {
		t.Fatalf("stats: %+v", stats)
	}
}
