package api

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"StockPulse/internal/domain/models"
	icache "StockPulse/internal/service/cache"
	"StockPulse/internal/service/metrics"
	"StockPulse/internal/service/ratelimit"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictHandler serves the prediction API over Echo.
type PredictHandler struct {
	serving *usecase.ServingContext
	cache   icache.BytesCache
	rl      *ratelimit.Limiter
	l       *applogger.Logger
}

func NewPredictHandler(l *applogger.Logger, serving *usecase.ServingContext) *PredictHandler {
	metrics.Register()
	return &PredictHandler{serving: serving, rl: ratelimit.New(), l: l}
}

// SetCache enables response caching for the sentiment endpoint.
func (h *PredictHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *PredictHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/stats", h.Stats)
	e.GET("/dashboard", h.Dashboard)
	e.POST("/sentiment", h.Sentiment)
	e.POST("/predict", h.Predict)
}

func (h *PredictHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"service": "StockPulse",
		"message": "financial news sentiment and price direction API",
		"endpoints": []string{
			"GET /health",
			"GET /stats",
			"GET /dashboard",
			"POST /sentiment",
			"POST /predict",
		},
	})
}

func (h *PredictHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.serving.Health())
}

func (h *PredictHandler) Stats(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.serving.Stats())
}

func (h *PredictHandler) Sentiment(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.ServingLatency.WithLabelValues("sentiment").Observe(time.Since(start).Seconds())
	}()

	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":sentiment", 10, 5) {
		if h.l != nil {
			h.l.Warn("sentiment rate_limited", applogger.String("remote", c.RealIP()))
		}
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", 429))
	}

	cacheKey := sentimentCacheKey(req.Text)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			if h.l != nil {
				h.l.Warn("sentiment cache_get_error", applogger.Error(err))
			}
		} else if ok {
			var cached models.SentimentResponse
			if err := json.Unmarshal(b, &cached); err == nil {
				return xhttp.SuccessResponse(c, cached)
			}
		}
	}

	res := h.serving.AnalyzeText(req.Text)
	if h.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := h.cache.SetBytes(cacheKey, b, 60*time.Second); err != nil && h.l != nil {
				h.l.Warn("sentiment cache_set_error", applogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictHandler) Predict(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.ServingLatency.WithLabelValues("predict").Observe(time.Since(start).Seconds())
	}()

	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":predict", 5, 2) {
		if h.l != nil {
			h.l.Warn("predict rate_limited", applogger.String("remote", c.RealIP()))
		}
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", 429))
	}

	res, err := h.serving.PredictOne(*req)
	if err != nil {
		metrics.ServingErrors.WithLabelValues("predict").Inc()
		if errors.Is(err, models.ErrModelNotLoaded) || errors.Is(err, models.ErrContractNotFitted) {
			return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("model not loaded, run the training pipeline first"))
		}
		if h.l != nil {
			h.l.Error("predict usecase error", applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, xhttp.InternalError("prediction failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func sentimentCacheKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return "api:sentiment:" + hex.EncodeToString(sum[:])
}
