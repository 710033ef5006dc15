package bootstrap

import (
	"time"

	"yuktadhara-be/internal/config"
	"yuktadhara-be/internal/controller"
	"yuktadhara-be/internal/pkg/logger"
	"yuktadhara-be/internal/repository/memory"
	"yuktadhara-be/internal/service"
	"yuktadhara-be/internal/websocket"
	"yuktadhara-be/pkg/catalog"
	"yuktadhara-be/pkg/geoai/gemini"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	PlannerController controller.IPlannerController

	// Background Services (Exposed for main.go to run)
	EncoderService service.IEncoderService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	cat := catalog.Default()
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.App.SessionTTLMinutes) * time.Minute)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// WebSocket Hub
	wsHub := websocket.NewHub(sysLogger)
	go wsHub.Run()

	// 3. Services
	analysisTimeout := time.Duration(cfg.Ai.AnalysisTimeoutSeconds) * time.Second
	provider := gemini.NewProvider(cfg.Keys.GoogleGemini, cfg.Ai.Model, analysisTimeout)

	publisherService := service.NewPublisherService(cfg.App.EncodeTopic, pubSub)
	encoderService := service.NewEncoderService(
		pubSub,
		cfg.App.EncodeTopic,
		sessionRepo,
		wsHub,
	)

	plannerService := service.NewPlannerService(
		sessionRepo,
		cat,
		provider,
		publisherService,
		wsHub,
		sysLogger,
		cfg.Keys.GoogleGemini != "",
		analysisTimeout,
		cfg.Ai.CatalogExcerptSize,
	)

	// 4. Controllers
	return &Container{
		PlannerController: controller.NewPlannerController(plannerService, cat, wsHub),
		EncoderService:    encoderService,
		WebSocketHub:      wsHub,
	}
}
