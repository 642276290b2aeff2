package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/address"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/auth"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/catalog"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/checkout"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/clients"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/config"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/handlers"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/payment"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/rabbitmq"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/session"
)

func main() {
	cfg := config.LoadConfig()

	log.Printf("Starting Shuttlemate storefront gateway on port %s", cfg.Port)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Outbound clients
	backend := clients.NewBackendClient(cfg.BackendBaseURL, cfg.RequestTimeout)
	gateway := clients.NewGatewayClient(cfg.GatewayBaseURL, cfg.GatewayKey, cfg.RequestTimeout)

	verifier, err := auth.NewFirebaseVerifier(context.Background(), cfg.FirebaseCreds)
	if err != nil {
		log.Fatalf("Failed to initialize token verifier: %v", err)
	}

	// Warehouse hand-off
	channelPool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
	if err != nil {
		log.Fatalf("Failed to create RabbitMQ channel pool: %v", err)
	}
	defer channelPool.Close()
	publisher := rabbitmq.NewPublisher(channelPool, cfg.RabbitMQQueue)

	// Pipeline components
	sessions := session.NewStore(cfg.SessionTTL)
	catalogService := catalog.NewService(backend)
	catalogFilter := catalog.NewFilter(catalogService)
	controller := checkout.NewController(backend)
	addressManager := address.NewManager(backend)
	orchestrator := payment.NewOrchestrator(backend, gateway, publisher)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(verifier, sessions)
	catalogHandler := handlers.NewCatalogHandler(catalogService, catalogFilter)
	checkoutHandler := handlers.NewCheckoutHandler(controller)
	addressHandler := handlers.NewAddressHandler(addressManager)
	paymentHandler := handlers.NewPaymentHandler(orchestrator, controller)

	router := gin.Default()

	// Public routes
	router.POST("/sessions", sessionHandler.CreateSession)
	router.DELETE("/sessions", sessionHandler.DeleteSession)
	router.GET("/catalog", catalogHandler.GetCatalog)
	router.GET("/catalog/categories/:name", catalogHandler.SelectCategory)

	// Purchase pipeline (session required)
	pipeline := router.Group("/", handlers.RequireSession(sessions))
	pipeline.POST("/checkout/drafts", checkoutHandler.CreateDraft)
	pipeline.GET("/checkout/draft", checkoutHandler.GetDraft)
	pipeline.POST("/checkout/draft/increment", checkoutHandler.Increment)
	pipeline.POST("/checkout/draft/decrement", checkoutHandler.Decrement)
	pipeline.POST("/checkout/draft/submit", checkoutHandler.Submit)
	pipeline.DELETE("/checkout/draft", checkoutHandler.DiscardDraft)
	pipeline.GET("/address", addressHandler.GetAddress)
	pipeline.PUT("/address", addressHandler.SaveAddress)
	pipeline.POST("/payment/intents", paymentHandler.CreateIntent)
	pipeline.POST("/payment/confirm", paymentHandler.Confirm)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	log.Fatal(router.Run(":" + cfg.Port))
}
