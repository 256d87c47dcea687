package main

import (
	"log/slog"
	"os"
	"time"

	"community-portal/config"
	"community-portal/database"
	"community-portal/internal/admission"
	adminapi "community-portal/internal/api/admin"
	authapi "community-portal/internal/api/auth"
	"community-portal/internal/api/billing"
	eventsapi "community-portal/internal/api/events"
	profilesapi "community-portal/internal/api/profiles"
	stripewebhooks "community-portal/internal/api/stripewebhook"
	routes "community-portal/internal/app/http"
	"community-portal/internal/checkout"
	"community-portal/internal/domain/entitlement"
	"community-portal/internal/metrics"
	"community-portal/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	profileRepo := repository.NewProfileRepo(database.DB)
	accountRepo := repository.NewAccountRepo(database.DB)
	subscriptionRepo := repository.NewSubscriptionRepo(database.DB)
	eventRepo := repository.NewEventRepo(database.DB)

	resolver := entitlement.NewResolver(subscriptionRepo)
	controller := admission.NewController(profileRepo, accountRepo, logger)
	initiator := checkout.NewInitiator(checkout.StripeSessionCreator{}, logger)
	collector := metrics.NewCollector()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:         authapi.NewHandler(accountRepo),
		Profiles:     profilesapi.NewHandler(profileRepo, resolver),
		Admin:        adminapi.NewHandler(controller, collector),
		Checkout:     billing.NewHandler(initiator, collector),
		Billing:      billing.NewSubscriptionHandler(resolver, subscriptionRepo),
		Events:       eventsapi.NewHandler(eventRepo),
		Webhook:      stripewebhooks.NewHandler(subscriptionRepo, collector, logger),
		ProfileStore: profileRepo,
		Metrics:      collector,
	})

	r.Run(":" + config.PORT)
}
