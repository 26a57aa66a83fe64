package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/config"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/db"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/redis"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/storage"
)

const exportRoute = "/exports"

// InitStorage selects and returns the configured asset and export backend
func InitStorage(cfg *config.Config) storage.Storage {
	if cfg.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesCDNURL,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", cfg.SpacesCDNURL).Msg("using DigitalOcean Spaces storage")
		return spacesStorage
	}

	log.Info().Str("themes", cfg.ThemeDir).Str("exports", cfg.ExportDir).Msg("using local file storage")
	return storage.NewLocalStorage(cfg.ThemeDir, cfg.ExportDir, exportRoute)
}

// exportFiles returns the local export store, or nil when exports live in
// Spaces and are downloaded from the CDN.
func exportFiles(s storage.Storage) *storage.LocalStorage {
	ls, _ := s.(*storage.LocalStorage)
	return ls
}

// sweepExports removes local exports that outlived every session able to
// download them.
func sweepExports(ctx context.Context, ls *storage.LocalStorage, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := ls.Sweep(now.Add(-maxAge))
			if err != nil {
				log.Warn().Err(err).Msg("export sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int("removed", n).Msg("expired exports removed")
			}
		}
	}
}

// InitSettingsStore selects where font settings are persisted.
func InitSettingsStore(ctx context.Context, cfg *config.Config) fontsettings.Store {
	switch cfg.SettingsBackend {
	case config.BackendFile:
		log.Info().Str("dir", cfg.SettingsFile).Msg("font settings stored on disk")
		return fontsettings.NewFileStore(cfg.SettingsFile)

	case config.BackendRedis:
		rdb := redis.NewClient(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redis.Ping(pingCtx, rdb); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddress).Msg("redis unavailable")
		}
		log.Info().Str("addr", cfg.RedisAddress).Msg("font settings stored in redis")
		return redis.NewStore(rdb)

	case config.BackendPostgres:
		if err := db.Init(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("db init")
		}
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("db migrate")
		}
		log.Info().Msg("font settings stored in postgres")
		return db.NewStore(db.DB)
	}

	log.Info().Msg("font settings kept in memory")
	return fontsettings.NewMemoryStore()
}
