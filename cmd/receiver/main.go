package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/RoGogDBD/metric-pusher/internal/config"
	"github.com/RoGogDBD/metric-pusher/internal/config/db"
	"github.com/RoGogDBD/metric-pusher/internal/handler"
	"github.com/RoGogDBD/metric-pusher/internal/repository"
	"github.com/RoGogDBD/metric-pusher/internal/service"
	"github.com/RoGogDBD/metric-pusher/internal/version"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	version.PrintBuildInfo()

	addr := config.ParseAddressFlag()
	dsn := flag.String(config.FlagDatabaseDSN, "", "PostgreSQL DSN (empty for in-memory storage)")
	logLevel := flag.String(config.FlagLogLevel, "info", "Log level")
	cfgPath := flag.String(config.FlagConfig, "", "Path to JSON config file")
	flag.Parse()

	if path := config.EnvString(config.EnvConfig); path != "" {
		*cfgPath = path
	}
	if fileCfg, err := config.LoadReceiverConfig(*cfgPath); err != nil {
		log.Printf("%v", err)
	} else if fileCfg != nil {
		if fileCfg.Address != "" {
			if err := addr.Set(fileCfg.Address); err != nil {
				log.Printf("invalid address in config file: %v", err)
			}
		}
		if fileCfg.DatabaseDSN != "" {
			*dsn = fileCfg.DatabaseDSN
		}
	}

	if err := config.EnvServer(addr, config.EnvAddress); err != nil {
		log.Fatalf("failed to apply env override: %v", err)
	}
	if env := config.EnvString(config.EnvDatabaseDSN); env != "" {
		*dsn = env
	}
	if lvl := config.EnvString(config.EnvLogLevel); lvl != "" {
		*logLevel = lvl
	}

	if err := config.Initialize(*logLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer config.Log.Sync()

	var (
		storage repository.Storage
		pool    *pgxpool.Pool
	)
	if *dsn != "" {
		var err error
		pool, err = db.InitDB(context.Background(), *dsn)
		if err != nil {
			log.Fatalf("failed to init database: %v", err)
		}
		defer pool.Close()
		storage = repository.NewPostgres(pool)
	} else {
		storage = repository.NewMemStorage()
	}

	h := handler.NewHandler(storage, pool, config.Log)
	router := service.NewRouter(h, config.Log)

	config.Log.Info("receiver listening", zap.String("address", addr.String()))
	if err := http.ListenAndServe(addr.String(), router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
