package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
	"tripzy/cmd/fx/chat_fx"
	"tripzy/cmd/fx/config_fx"
	"tripzy/cmd/fx/controllers_fx"
	"tripzy/cmd/fx/memcache_fx"
	"tripzy/cmd/fx/questionnaire_fx"
	"tripzy/internal/api/controllers"
	"tripzy/internal/infra"
	"tripzy/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(appOptions())
	app.Run()
}

func appOptions() fx.Option {
	return fx.Options(
		config_fx.Module,
		memcache_fx.Module,
		chat_fx.Module,
		questionnaire_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg infra.Config) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg infra.Config,
	metrics *infra.Metrics,
	questionnaireController *controllers.QuestionnaireController,
	chatController *controllers.ChatController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	RegisterRoutes(api, questionnaireController, chatController)

	return r
}

func RegisterRoutes(r *gin.RouterGroup,
	questionnaireController *controllers.QuestionnaireController,
	chatController *controllers.ChatController) {

	questionnaireGroup := r.Group("/questionnaire")
	questionnaireGroup.GET("/vocabulary", questionnaireController.VocabularyHandler)
	questionnaireGroup.GET("/locations", questionnaireController.SuggestLocationsHandler)
	questionnaireGroup.POST("/sessions", questionnaireController.StartSessionHandler)
	questionnaireGroup.GET("/sessions/:sessionId", questionnaireController.GetSessionHandler)
	questionnaireGroup.POST("/sessions/:sessionId/edits", questionnaireController.ApplyEditHandler)
	questionnaireGroup.POST("/sessions/:sessionId/advance", questionnaireController.AdvanceHandler)
	questionnaireGroup.POST("/sessions/:sessionId/retreat", questionnaireController.RetreatHandler)

	chatGroup := r.Group("/chat")
	chatGroup.POST("/:conversationId/messages", chatController.SendMessageHandler)
	chatGroup.GET("/:conversationId/ws", chatController.StreamHandler)
}
