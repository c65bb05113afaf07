package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"salonpos/backend/internal/config"
	"salonpos/backend/internal/store"
	"salonpos/backend/internal/store/file"
	"salonpos/backend/internal/store/memory"
	mongostore "salonpos/backend/internal/store/mongo"
	pgstore "salonpos/backend/internal/store/postgres"
	redisstore "salonpos/backend/internal/store/redis"
)

// Open connects the key-value store selected by cfg.StoreBackend. The
// returned closers release it and must run on shutdown.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.KV, []func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	closers := make([]func() error, 0, 1)

	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Warn("store: in-memory, data is lost on exit")
		return memory.New(), closers, nil
	case config.BackendFile:
		fs, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("store: file", zap.String("dir", cfg.DataDir))
		return fs, closers, nil
	case config.BackendRedis:
		rs := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("redis unavailable: %w", err)
		}
		logger.Info("store: redis", zap.String("addr", cfg.RedisAddr))
		return rs, append(closers, rs.Close), nil
	case config.BackendPostgres:
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres unavailable: %w", err)
		}
		logger.Info("store: postgres")
		return pg, append(closers, pg.Close), nil
	case config.BackendMongo:
		ms, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("store: mongo", zap.String("db", cfg.MongoDBName))
		return ms, append(closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return ms.Close(closeCtx)
		}), nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
