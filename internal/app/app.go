package app

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-leaveflow/internal/config"
	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/shared/connection"
)

// Infra holds the shared connections of one process.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close() error {
	var errs []error
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.SQLDB != nil {
		errs = append(errs, i.SQLDB.Close())
	}
	return errors.Join(errs...)
}

func connectDatabase(cfg config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.DBMaxRetries,
	)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

// BuildApp connects Postgres and Redis, migrates the schema and mounts every
// module on router. The returned Infra must be closed by the caller.
func BuildApp(router *gin.Engine, cfg config.Config) (*Infra, error) {
	log := zap.L().Named("app")

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}

	if err := Migrate(context.Background(), gormDB); err != nil {
		_ = infra.Close()
		return nil, err
	}
	log.Info("database schema ready")

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	infra.Redis = rdb

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.SecureHeaders(cfg.IsProduction()),
	)

	if err := registerModules(router, infra, cfg); err != nil {
		_ = infra.Close()
		return nil, err
	}
	return infra, nil
}
