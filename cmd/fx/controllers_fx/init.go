package controllers_fx

import (
	"go.uber.org/fx"
	"tripzy/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewQuestionnaireController),
	fx.Provide(controllers.NewChatController))
