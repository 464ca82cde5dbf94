package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	domrepo "StockPulse/internal/domain/repository"
	domsvc "StockPulse/internal/domain/service"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/services/dataset"
	"StockPulse/internal/services/features"
	"StockPulse/internal/services/matching"
	"StockPulse/internal/services/model"
	"StockPulse/internal/services/sentiment"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideArtifactStore opens the Badger artifact database.
func ProvideArtifactStore(cfg *config.Config) (*internalrepo.BadgerArtifactStore, error) {
	store, err := internalrepo.NewBadgerArtifactStore(cfg.Artifacts.Dir)
	if err != nil {
		return nil, fmt.Errorf("artifact store: %w", err)
	}
	return store, nil
}

// ProvideCache builds the sentiment result cache: in-memory always, layered
// over Redis when enabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	maxSize := cfg.Cache.Memory.MaxSize
	if maxSize <= 0 {
		maxSize = 10000
	}
	local := cache.NewMemoryCache(cache.WithMemoryMaxSize(maxSize))

	if !cfg.Cache.Redis.Enabled {
		return local, nil
	}

	remote, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(local, remote, 5*time.Minute), nil
}

// ProvideAnalyzer creates the lexicon sentiment analyzer.
func ProvideAnalyzer(c cache.Service) *sentiment.Analyzer {
	a := sentiment.NewAnalyzer()
	a.SetCache(c)
	return a
}

// ProvideModelConfig maps YAML model settings to predictor hyperparameters.
func ProvideModelConfig(cfg *config.Config) model.Config {
	mc := model.DefaultConfig()
	if cfg.Model.Trees > 0 {
		mc.Trees = cfg.Model.Trees
	}
	if cfg.Model.MaxDepth > 0 {
		mc.MaxDepth = cfg.Model.MaxDepth
	}
	if cfg.Model.Seed != 0 {
		mc.Seed = cfg.Model.Seed
	}
	if cfg.Model.Workers > 0 {
		mc.Workers = cfg.Model.Workers
	}
	return mc
}

// ProvideServingContext loads persisted artifacts into a serving context.
// A missing artifact pair yields a degraded context that serves health and
// sentiment but answers predictions with a model-not-loaded error.
func ProvideServingContext(
	store *internalrepo.BadgerArtifactStore,
	analyzer *sentiment.Analyzer,
	mc model.Config,
	m domrepo.Metrics,
) (*usecase.ServingContext, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sc, err := usecase.LoadServing(ctx, store, analyzer, mc)
	if err != nil {
		if !errors.Is(err, internalrepo.ErrArtifactNotFound) {
			return nil, err
		}
		sc = usecase.NewServingContext(features.New(), model.NewPredictor(mc), analyzer)
	}
	sc.SetMetrics(m)
	return sc, nil
}

// ProvideApp creates the serving application.
func ProvideApp(cfg *config.Config, sc *usecase.ServingContext, store *internalrepo.BadgerArtifactStore) *server.App {
	return server.New(cfg, sc, store)
}

// ProvideNewsSource selects the configured news source.
func ProvideNewsSource(cfg *config.Config) domsvc.NewsSource {
	if cfg.Pipeline.Source == "http" {
		return dataset.NewHTTPSource(cfg.Pipeline.News.BaseURL,
			dataset.WithAPIKey(cfg.Pipeline.News.APIKey),
			dataset.WithSourceTimeout(sourceTimeout(cfg.Pipeline.News.Timeout)),
		)
	}
	return dataset.NewCSVNewsSource(cfg.Pipeline.News.CSVPath)
}

// ProvideBarSource selects the configured bar source.
func ProvideBarSource(cfg *config.Config) domsvc.BarSource {
	if cfg.Pipeline.Source == "http" {
		return dataset.NewHTTPSource(cfg.Pipeline.Bars.BaseURL,
			dataset.WithAPIKey(cfg.Pipeline.Bars.APIKey),
			dataset.WithSourceTimeout(sourceTimeout(cfg.Pipeline.Bars.Timeout)),
		)
	}
	return dataset.NewCSVBarSource(cfg.Pipeline.Bars.CSVPath)
}

func sourceTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}

// ProvideClickHouseClient creates a ClickHouse client with the matched-rows
// schema initialized. Returns nil when ClickHouse persistence is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideRowStore wraps the ClickHouse client as a matched-row store; nil
// when ClickHouse is disabled.
func ProvideRowStore(ch *pkgch.Client) (domrepo.RowStore, error) {
	if ch == nil {
		return nil, nil
	}
	store := internalrepo.NewCHRowStore(ch)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvidePipeline assembles the training pipeline.
func ProvidePipeline(
	cfg *config.Config,
	news domsvc.NewsSource,
	bars domsvc.BarSource,
	analyzer *sentiment.Analyzer,
	mc model.Config,
	store *internalrepo.BadgerArtifactStore,
	rows domrepo.RowStore,
	m domrepo.Metrics,
) *usecase.Pipeline {
	matcher := matching.New()
	if rows != nil {
		matcher.SetStore(rows)
	}
	p := usecase.NewPipeline(
		news, bars, analyzer,
		matcher, features.New(), model.NewPredictor(mc),
		store,
		cfg.Pipeline.Symbols,
		cfg.Pipeline.TrainRatio,
	)
	if rows != nil {
		p.SetRowStore(rows)
	}
	p.SetMetrics(m)
	return p
}
