package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"verification-gateway-backend/internal/common/config"
	"verification-gateway-backend/internal/common/logger"
	"verification-gateway-backend/internal/common/middleware"
	verificationhttp "verification-gateway-backend/internal/features/verification/delivery/http"
	"verification-gateway-backend/internal/features/verification/notifier"
	"verification-gateway-backend/internal/features/verification/service"
	"verification-gateway-backend/internal/platform/discord"
	"verification-gateway-backend/internal/platform/geoip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; fail fast on stderr.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init("verification-gateway", cfg.Debug)

	// Bot connection: one persistent gateway session on its own thread of
	// control, used solely as the delivery transport.
	bot, err := discord.NewBot(cfg.Discord.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create bot session")
	}
	if err := bot.Open(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to gateway")
	}
	defer bot.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := discord.NewDispatcher()
	go dispatcher.Run(ctx)

	oauthClient := discord.NewOAuthClient(cfg)
	geoClient := geoip.NewClient(cfg.GeoIP.CacheTTL)
	reportNotifier := notifier.New(bot, dispatcher, cfg.Discord.VerificationChannelID)
	verificationSvc := service.NewVerificationService(oauthClient, geoClient, reportNotifier)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	handler := verificationhttp.NewVerificationHandler(verificationSvc, oauthClient.AuthorizeURL())
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
