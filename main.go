package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/config"
	"github.com/yeremiapane/enterprise-pos/database"
	"github.com/yeremiapane/enterprise-pos/router"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.SetLogLevel(cfg.Server.LogLevel)
	utils.ConfigureJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeDB, err := database.InitDB(ctx, cfg.Store)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB()

	opts := []services.Option{}
	if cfg.Gemini.APIKey != "" {
		opts = append(opts, services.WithInsight(services.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)))
	} else {
		utils.InfoLogger.Println("GEMINI_API_KEY not set, AI insight disabled")
	}

	var notifier *services.SettlementNotifier
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		tg, err := services.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			utils.ErrorLogger.Printf("Telegram notifications disabled: %v", err)
		} else {
			notifier = services.NewSettlementNotifier(tg, nil)
			opts = append(opts, services.WithNotifier(notifier))
		}
	}

	app := services.NewApp(ctx, backend, opts...)
	if notifier != nil {
		notifier.SetCurrency(func() string { return app.Settings.Get().CurrencySymbol })
		notifier.Start()
		defer notifier.Stop()
	}

	monitor := services.NewChangeMonitor(app)
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(app, cfg.Server)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown failed: %v", err)
	}
}
