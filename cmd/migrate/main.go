package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/clinicrecords/internal/adapters/collection"
	"github.com/zatekoja/clinicrecords/internal/adapters/store"
	"github.com/zatekoja/clinicrecords/internal/domain/providers"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"github.com/zatekoja/clinicrecords/pkg/config"
)

// migrate copies every collection from one store driver to another, for
// example from the file store to PostgreSQL. Both sides are configured from
// the same environment; only the driver differs.
func main() {
	var from, to string

	flag.StringVar(&from, "from", config.StoreDriverFile, "Source store driver")
	flag.StringVar(&to, "to", config.StoreDriverPostgres, "Destination store driver")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger(cfg.App.Name+"-migrate", cfg.App.Env)
	logger := observability.GetLogger()

	from, to = strings.ToLower(from), strings.ToLower(to)
	if from == to {
		logger.Fatal().Str("driver", from).Msg("source and destination drivers must differ")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src, srcCloser, err := openDriver(ctx, cfg, from)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", from).Msg("failed to open source store")
	}
	defer srcCloser.Close()

	dst, dstCloser, err := openDriver(ctx, cfg, to)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", to).Msg("failed to open destination store")
	}
	defer dstCloser.Close()

	start := time.Now()
	copied, err := store.Copy(ctx, src, dst, collection.Keys())
	if err != nil {
		logger.Fatal().Err(err).Int("copied", copied).Msg("migration failed")
	}

	logger.Info().
		Str("from", from).
		Str("to", to).
		Int("keys", copied).
		Dur("duration", time.Since(start)).
		Msg("migration complete")
}

func openDriver(ctx context.Context, cfg *config.Config, driver string) (providers.KVStore, io.Closer, error) {
	scoped := *cfg
	scoped.Store.Driver = driver
	return store.Open(ctx, &scoped, nil)
}
