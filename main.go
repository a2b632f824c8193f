package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"onemsu-server/internal/assistant"
	"onemsu-server/internal/config"
	"onemsu-server/internal/db"
	"onemsu-server/internal/handlers"
	"onemsu-server/internal/middleware"
	"onemsu-server/internal/observability"
	"onemsu-server/internal/rabbitmq"
	"onemsu-server/internal/repositories"
	"onemsu-server/internal/storage"
	"onemsu-server/internal/telemetry"
	"onemsu-server/internal/ws"
)

const serviceName = "onemsu-server"

func main() {
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer database.Close()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.OTLPEndpoint, serviceName)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	} else {
		defer func() {
			if err := shutdownTracing(ctx); err != nil {
				log.Printf("tracing shutdown: %v", err)
			}
		}()
	}

	eventPublisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer eventPublisher.Close()
	audit := telemetry.NewAuditEmitter(eventPublisher, "audit_log.onemsu", serviceName, cfg.Environment)

	if cfg.AMQPURL != "" {
		if amqpPub, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange); err != nil {
			log.Printf("ws event publishing disabled: %v", err)
		} else {
			observability.SetPublisher(amqpPub)
			defer amqpPub.Close()
		}
	}

	var blobStore storage.BlobStore
	if cfg.S3Bucket != "" {
		store, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Printf("s3 store disabled: %v", err)
		} else {
			blobStore = store
		}
	}

	userRepo := repositories.NewUserRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	reactionRepo := repositories.NewReactionRepo(database)
	receiptRepo := repositories.NewReceiptRepo(database)
	followRepo := repositories.NewFollowRepo(database)
	groupRepo := repositories.NewGroupRepo(database)
	freedomRepo := repositories.NewFreedomRepo(database)
	settingsRepo := repositories.NewSettingsRepo(database)

	hub := ws.NewHub()

	authHandler := handlers.NewAuthHandler(userRepo, followRepo, cfg.JWTSecret, cfg.OwnerEmail, audit)
	profileHandler := handlers.NewProfileHandler(userRepo, messageRepo)
	messengerHandler := handlers.NewMessengerHandler(messageRepo, reactionRepo, receiptRepo, hub)
	socialHandler := handlers.NewSocialHandler(followRepo, messageRepo)
	groupHandler := handlers.NewGroupHandler(groupRepo, userRepo, cfg.OwnerEmail)
	freedomHandler := handlers.NewFreedomHandler(freedomRepo)
	uploadHandler := handlers.NewUploadHandler(blobStore)
	assistantHandler := handlers.NewAssistantHandler(assistant.NewClient(cfg.AIAPIURL))
	settingsHandler := handlers.NewSettingsHandler(settingsRepo, userRepo, cfg.OwnerEmail, audit)

	messengerWS := ws.NewMessengerWebSocketHandler(hub, messageRepo, receiptRepo)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	authed.GET("/users/:id", profileHandler.GetUser)
	authed.PUT("/users/me", profileHandler.UpdateProfile)

	authed.POST("/dm/:id/join", messengerHandler.StartDM)
	authed.GET("/messages", messengerHandler.GetHistory)
	authed.POST("/messages/:id/reactions", messengerHandler.React)
	authed.PUT("/messages/:id", messengerHandler.EditMessage)
	authed.DELETE("/messages/:id", messengerHandler.DeleteMessage)
	authed.GET("/receipts", messengerHandler.GetReceipt)
	authed.GET("/presence/:id", messengerHandler.GetPresence)

	authed.POST("/follows", socialHandler.Follow)
	authed.DELETE("/follows", socialHandler.Unfollow)
	authed.GET("/users/:id/follow-stats", socialHandler.FollowStats)
	authed.GET("/feed", socialHandler.GetFeed)

	authed.GET("/groups", groupHandler.ListGroups)
	authed.POST("/groups", groupHandler.CreateGroup)
	authed.POST("/groups/:id/join", groupHandler.JoinGroup)

	authed.GET("/freedom-wall", freedomHandler.ListPosts)
	authed.POST("/freedom-wall", freedomHandler.CreatePost)
	authed.POST("/freedom-wall/:id/like", freedomHandler.LikePost)
	authed.POST("/freedom-wall/:id/report", freedomHandler.ReportPost)

	authed.POST("/uploads", uploadHandler.CreateUpload)
	authed.POST("/assistant/ask", assistantHandler.Ask)
	authed.POST("/feedback", settingsHandler.CreateFeedback)
	authed.GET("/settings", settingsHandler.GetSettings)
	authed.PUT("/settings", settingsHandler.UpdateSettings)

	router.GET("/ws/messenger", messengerWS.Handle)

	handlers.RegisterDebugRoutes(router, audit, cfg.DebugRoutes)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, corsWrapper.Handler(router)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
