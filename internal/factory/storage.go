package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/moodshot/moodshot/internal/config"
	storepkg "github.com/moodshot/moodshot/internal/store"
	storepg "github.com/moodshot/moodshot/internal/store/postgres"
	storesqlite "github.com/moodshot/moodshot/internal/store/sqlite"
)

// NewStore returns a store.Store for the configured driver.
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		s, err := storesqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return s, nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("MOODSHOT_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		s, err := storepg.New(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("postgres store ready")
		return s, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
