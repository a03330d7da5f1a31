package questionnaire_fx

import (
	"tripzy/internal/infra"
	"tripzy/internal/models/trip_models"
	"tripzy/internal/services"
	mem "tripzy/pkg/memcache"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	ProvideFlowConfig,
	ProvideLocationService,
	ProvideQuestionnaireService,
)

func ProvideFlowConfig(cfg infra.Config) (services.FlowConfig, error) {
	return services.FlowConfigByName(cfg.FlowVariant)
}

func ProvideLocationService(vocab *trip_models.Vocabulary, cfg infra.Config) services.LocationServiceInterface {
	return services.NewLocationService(vocab.Gazetteer, cfg.SuggestionLimit)
}

func ProvideQuestionnaireService(
	flow services.FlowConfig,
	vocab *trip_models.Vocabulary,
	locations services.LocationServiceInterface,
	chat services.ChatServiceInterface,
	sessions mem.SessionStore[*services.QuestionnaireSession],
	metrics *infra.Metrics,
) services.QuestionnaireServiceInterface {
	return services.NewQuestionnaireService(flow, vocab, locations, chat, sessions, metrics)
}
