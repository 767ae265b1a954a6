package main

import (
	"github.com/inkpress/bookshop-backend-go/cache"
	"github.com/inkpress/bookshop-backend-go/config"
	"github.com/inkpress/bookshop-backend-go/database"
	"github.com/inkpress/bookshop-backend-go/handlers"
	"github.com/inkpress/bookshop-backend-go/mailer"
	"github.com/inkpress/bookshop-backend-go/payment"
	"github.com/inkpress/bookshop-backend-go/pricing"
	"github.com/inkpress/bookshop-backend-go/routes"
	"github.com/inkpress/bookshop-backend-go/service"
	"github.com/inkpress/bookshop-backend-go/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	log := logrus.New()
	if level, err := logrus.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}

	// Missing gateway or admin credentials must stop the server here, not
	// surface mid-checkout.
	paymentCfg, err := config.LoadPayment()
	if err != nil {
		log.Fatal(err)
	}
	adminCfg, err := config.LoadAdmin()
	if err != nil {
		log.Fatal(err)
	}
	smtpCfg, err := config.LoadSMTP()
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if err := database.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	views := cache.Connect(log)
	defer views.Close()

	gateway, err := payment.NewGateway(paymentCfg, log)
	if err != nil {
		log.Fatal(err)
	}

	resolver := pricing.NewResolver()
	svc := service.New(
		store.NewOrderStore(database.DB),
		store.NewDiscountStore(database.DB),
		store.NewStockStore(database.DB),
		store.NewReviewStore(database.DB),
		resolver,
		gateway,
		views,
		mailer.New(smtpCfg, log),
		log,
	)

	h := handlers.New(svc, resolver, views, log)
	routes.SetupRoutes(e, h, handlers.NewPaymentHandler(h, gateway), handlers.NewAdminHandler(h, adminCfg), adminCfg)

	port := config.GetEnv("PORT", "3000")
	log.Infof("Server starting on port %s...", port)
	e.Logger.Fatal(e.Start(":" + port))
}
