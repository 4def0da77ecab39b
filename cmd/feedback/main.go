// feedback: post-session feedback collector. Asks the patient about the
// treatment they just received, how their pain changed, and how satisfied
// they were, then saves the responses for the clinic.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/physiobotics/go-nao/internal/config"
	"github.com/physiobotics/go-nao/internal/log"
	"github.com/physiobotics/go-nao/pkg/dialogue"
	"github.com/physiobotics/go-nao/pkg/gesture"
	"github.com/physiobotics/go-nao/pkg/listen"
	"github.com/physiobotics/go-nao/pkg/llm"
	"github.com/physiobotics/go-nao/pkg/nao"
	"github.com/physiobotics/go-nao/pkg/session"
	"github.com/physiobotics/go-nao/pkg/web"
)

const apology = "I'm experiencing a technical issue. Let me notify the staff."

func main() {
	log.Init(os.Getenv("LOG_LEVEL"))
	logger := log.With("cmd", "feedback")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	robotIP := config.RobotIPRequired()
	bridge := nao.NewBridge(config.BridgeURL(robotIP))
	prepareRobot(bridge, logger)

	model := llm.NewClient(
		llm.WithBaseURL(config.OllamaURL()),
		llm.WithModel(config.OllamaModel()),
		llm.WithLogger(log.L()),
	)
	llmUp := true
	if err := model.Health(ctx); err != nil {
		llmUp = false
		logger.Warn("LLM unreachable, canned replies will be used", "error", err)
	} else {
		logger.Info("LLM connected", "url", config.OllamaURL(), "model", config.OllamaModel())
	}

	store, err := session.NewJSONStore(config.DataDir("patient_feedback"), "_feedback")
	if err != nil {
		logger.Error("cannot create feedback store", "error", err)
		os.Exit(1)
	}

	acquirer := listen.New(
		newSource(ctx, bridge, robotIP, logger),
		listen.FeedbackFallbacks(),
		listen.WithBaseVocabulary(dialogue.FeedbackVocabulary()),
		listen.WithSpeaker(bridge),
		listen.WithLogger(log.L()),
	)

	cfg := dialogue.Config{
		Speaker:  bridge,
		Acquirer: acquirer,
		LLM:      model,
		Gestures: gesture.NewPlayer(bridge, bridge, log.L()),
		Store:    store,
		Logger:   log.L(),
	}

	var dashboard *web.Server
	if port := config.DashboardPort(); port != "" {
		dashboard = web.NewServer(port, "feedback", log.L())
		dashboard.SetConnectivity(true, llmUp)
		cfg.Events = dashboard
		go func() {
			if err := dashboard.Start(); err != nil {
				logger.Warn("dashboard stopped", "error", err)
			}
		}()
	}

	feedback := dialogue.NewFeedback(cfg)
	if dashboard != nil {
		dashboard.AttachRecord(feedback.Record())
	}

	driver := session.NewDriver(feedback.Stages(),
		session.WithApology(bridge, apology),
		session.WithDriverLogger(log.L()),
	)
	driver.OnStage = func(name string) {
		if dashboard != nil {
			dashboard.StageStarted(name)
		}
	}

	if err := driver.Run(ctx); err != nil {
		logger.Error("feedback run failed", "error", err)
		os.Exit(1)
	}
	logger.Info("feedback run complete")
}

func prepareRobot(bridge *nao.Bridge, logger *slog.Logger) {
	if err := bridge.SetLanguage("English"); err != nil {
		logger.Warn("set language failed", "error", err)
	}
	if err := bridge.SetSensitivity(0.5); err != nil {
		logger.Warn("set sensitivity failed", "error", err)
	}
	if err := bridge.SetSpeechSpeed(85); err != nil {
		logger.Warn("set speech speed failed", "error", err)
	}
	if err := bridge.GoToPosture("Stand", 0.8); err != nil {
		logger.Warn("stand posture failed", "error", err)
	}
}

func newSource(ctx context.Context, bridge *nao.Bridge, robotIP string, logger *slog.Logger) listen.Source {
	stream := nao.NewWordStream(config.EventURL(robotIP), log.L())
	if err := stream.Connect(ctx); err != nil {
		logger.Warn("event stream unavailable, polling memory slot", "error", err)
		return listen.NewPollSource(bridge, bridge, 0)
	}
	go func() {
		if err := stream.Run(ctx); err != nil {
			logger.Warn("event stream ended", "error", err)
		}
	}()
	return listen.NewStreamSource(bridge, stream)
}
