package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iptv-storefront/internal/client"
	"iptv-storefront/internal/config"
	"iptv-storefront/internal/repository"
	"iptv-storefront/internal/server"
	"iptv-storefront/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db, err := client.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database init: ", err)
	}

	provider := client.NewNowPaymentsClient(&cfg.NowPayments, cfg.SiteURL)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	clientDataRepo := repository.NewClientDataRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	if err := productRepo.Seed(context.Background()); err != nil {
		log.Fatal("seed products: ", err)
	}

	checkoutService := service.NewCheckoutService(db, provider, productRepo, orderRepo, clientDataRepo)
	paymentService := service.NewPaymentService(db, provider, orderRepo, productRepo, subscriptionRepo, webhookEventRepo)
	orderService := service.NewOrderService(db, orderRepo, productRepo, subscriptionRepo)
	authService := service.NewAuthService(&cfg.Admin)
	clientService := service.NewClientService(clientDataRepo)
	analyticsService := service.NewAnalyticsService(orderRepo, productRepo, clientDataRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	srv := server.NewServer(
		checkoutService,
		paymentService,
		orderService,
		authService,
		clientService,
		analyticsService,
		settingsService,
		cfg.Environment.IsProduction(),
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
