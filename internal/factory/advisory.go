package factory

import (
	"github.com/rs/zerolog"

	"github.com/moodshot/moodshot/internal/advisory"
	"github.com/moodshot/moodshot/internal/config"
)

// NewAdvisoryProvider creates an advisory provider based on config.
func NewAdvisoryProvider(cfg *config.Config, log zerolog.Logger) advisory.Provider {
	switch cfg.AdvisoryProvider {
	case "ollama":
		log.Info().Str("url", cfg.AdvisoryURL).Str("model", cfg.AdvisoryModel).Msg("using ollama advisory provider")
		return advisory.NewOllamaProvider(cfg.AdvisoryURL, cfg.AdvisoryModel)
	case "", "static":
		return advisory.NewStaticProvider()
	default:
		log.Warn().Str("provider", cfg.AdvisoryProvider).Msg("unknown advisory provider; using static rotation")
		return advisory.NewStaticProvider()
	}
}
