package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"commission-calculator/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"resty.dev/v3"
)

type Config struct {
	BinProviderUrl   string
	CurrencyRatesUrl string
	RatesApiKey      string
	LookupTimeout    time.Duration
	LogLevel         string
	ResultsStore     string
	RedisAddr        string
	MongoEndpoint    string
	MongoDatabase    string
	Port             string
	EnableProfiling  bool
}

func LoadConfig() Config {
	return Config{
		BinProviderUrl:   strings.TrimRight(utils.GetEnvOrSetDefault("BIN_PROVIDER_URL", "https://lookup.binlist.net"), "/"),
		CurrencyRatesUrl: utils.GetEnvOrSetDefault("CURRENCY_RATES_URL", "https://api.exchangeratesapi.io/latest"),
		RatesApiKey:      utils.GetEnvOrSetDefault("CURRENCY_RATES_API_KEY", ""),
		LookupTimeout:    utils.GetEnvDuration("LOOKUP_TIMEOUT", 5*time.Second),
		LogLevel:         utils.GetEnvOrSetDefault("LOG_LEVEL", "info"),
		ResultsStore:     utils.GetEnvOrSetDefault("RESULTS_STORE", ""),
		RedisAddr:        utils.GetEnvOrSetDefault("REDIS_ADDR", "localhost:6379"),
		MongoEndpoint:    utils.GetEnvOrSetDefault("MONGO_ENDPOINT", "mongodb://localhost:27017"),
		MongoDatabase:    utils.GetEnvOrSetDefault("MONGO_DATABASE", "commissions-db"),
		Port:             utils.GetEnvOrSetDefault("PORT", "9999"),
		EnableProfiling:  utils.GetEnvOrSetDefault("ENABLE_PROFILING", "false") == "true",
	}
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHTTPClient builds the client shared by both lookup providers. Requests
// are single attempt.
func NewHTTPClient(timeout time.Duration) *resty.Client {
	tr := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return resty.New().
		SetTimeout(timeout).
		SetTransport(tr).
		SetRetryCount(0)
}

func NewCalculatorFromConfig(cfg Config, client *resty.Client) *Calculator {
	return NewCalculator(
		NewBinListClient(client, cfg.BinProviderUrl),
		NewExchangeRatesClient(client, cfg.CurrencyRatesUrl, cfg.RatesApiKey),
	)
}

// OpenRunRepository connects the configured results store. It returns a nil
// repository and a no-op close func when no store is configured.
func OpenRunRepository(ctx context.Context, cfg Config) (RunRepository, func(), error) {
	switch cfg.ResultsStore {
	case "":
		return nil, func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: "",
			DB:       0,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisRunRepository(rdb), func() { rdb.Close() }, nil
	case "mongo":
		opts := options.
			Client().
			ApplyURI(cfg.MongoEndpoint).
			SetServerSelectionTimeout(time.Second * 5)
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
		}
		return NewMongoRunRepository(client.Database(cfg.MongoDatabase)), func() { client.Disconnect(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown results store %q", cfg.ResultsStore)
	}
}

func WarnUnrecognizedEUCodes() {
	for _, code := range UnrecognizedEUCodes() {
		slog.Warn("EU country list contains a code that is not ISO 3166-1 alpha-2", "code", code)
	}
}
