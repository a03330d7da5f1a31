package memcache_fx

import (
	"tripzy/internal/infra"
	"tripzy/internal/services"
	mem "tripzy/pkg/memcache"

	"go.uber.org/fx"
)

var Module = fx.Provide(provideSessionStore)

func provideSessionStore(cfg infra.Config) mem.SessionStore[*services.QuestionnaireSession] {
	return mem.NewTTLSessions[*services.QuestionnaireSession](cfg.SessionTTL)
}
