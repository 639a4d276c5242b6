package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"os"
	"time"

	"sentient-journal/internal/config"
	"sentient-journal/internal/handler"
	"sentient-journal/internal/logger"
	"sentient-journal/internal/middleware"
	"sentient-journal/internal/service"
	"sentient-journal/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	st, fallback := openStore(cfg)
	defer st.Close()

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		// Sessions won't survive a restart without a configured secret,
		// which is acceptable for local use.
		logger.Warn("SESSION_SECRET not set, generating an ephemeral one")
		secret = randomSecret()
	}
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	ai := service.NewAIClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	analyzer := service.NewAnalyzer(ai)
	reporter := service.NewReporter(ai)
	assistant := service.NewAssistant()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	handler.SetupRoutes(r, handler.Handlers{
		Auth:    handler.NewAuthHandler(st, fallback, secret, sessionTTL),
		Journal: handler.NewJournalHandler(st, analyzer),
		Report:  handler.NewReportHandler(st, reporter),
		Export:  handler.NewExportHandler(st),
		Chat:    handler.NewChatHandler(st, assistant),
	}, middleware.SessionAuth(secret, sessionTTL))

	logger.Info("server starting", "addr", cfg.Addr(), "mode", cfg.Mode)
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// openStore picks the backend once at startup. If the hosted backend cannot
// be reached, the configured policy decides between failing loudly and a
// deterministic switch to the embedded store; there is no silent fallback.
// The second return value is the signup retry target used when the hosted
// backend throttles (nil when the deployment forces hosted mode).
func openStore(cfg *config.Config) (store.Store, store.Store) {
	if cfg.Mode != config.ModeHosted {
		st, err := store.OpenEmbedded(cfg.Embedded.Path)
		if err != nil {
			logger.Error("embedded store open failed", "path", cfg.Embedded.Path, "err", err)
			os.Exit(1)
		}
		logger.Info("using embedded store", "path", cfg.Embedded.Path)
		return st, nil
	}

	st, err := store.OpenHosted(cfg.HostedDSN())
	if err != nil {
		if cfg.Hosted.Forced || cfg.Hosted.Fallback != config.FallbackEmbedded {
			logger.Error("hosted store connect failed", "err", err)
			os.Exit(1)
		}
		logger.Warn("hosted store connect failed, falling back to embedded per policy", "err", err)
		emb, embErr := store.OpenEmbedded(cfg.Embedded.Path)
		if embErr != nil {
			logger.Error("embedded fallback open failed", "err", embErr)
			os.Exit(1)
		}
		return emb, nil
	}
	logger.Info("using hosted store")

	if cfg.Hosted.Forced || cfg.Hosted.Fallback != config.FallbackEmbedded {
		return st, nil
	}
	emb, err := store.OpenEmbedded(cfg.Embedded.Path)
	if err != nil {
		logger.Warn("embedded signup-retry store unavailable", "err", err)
		return st, nil
	}
	return st, emb
}

func randomSecret() []byte {
	b := make([]byte, 32)
	rand.Read(b)
	return []byte(hex.EncodeToString(b))
}
