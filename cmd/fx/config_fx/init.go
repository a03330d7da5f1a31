package config_fx

import (
	"tripzy/internal/infra"
	"tripzy/internal/models/trip_models"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	infra.LoadConfig,
	ProvideVocabulary,
	infra.NewMetrics,
)

func ProvideVocabulary(cfg infra.Config) (*trip_models.Vocabulary, error) {
	return infra.LoadVocabulary(cfg.VocabularyFile)
}
