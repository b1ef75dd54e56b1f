package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kevinotieno/shamba-storefront/internal/advert"
	"github.com/kevinotieno/shamba-storefront/internal/api"
	"github.com/kevinotieno/shamba-storefront/internal/blog"
	"github.com/kevinotieno/shamba-storefront/internal/cart"
	"github.com/kevinotieno/shamba-storefront/internal/catalog"
	"github.com/kevinotieno/shamba-storefront/internal/checkout"
	"github.com/kevinotieno/shamba-storefront/internal/config"
	"github.com/kevinotieno/shamba-storefront/internal/driver"
	"github.com/kevinotieno/shamba-storefront/internal/geo"
	"github.com/kevinotieno/shamba-storefront/internal/handler"
	"github.com/kevinotieno/shamba-storefront/internal/order"
	"github.com/kevinotieno/shamba-storefront/internal/payment"
	"github.com/kevinotieno/shamba-storefront/internal/testimonial"
	"github.com/kevinotieno/shamba-storefront/internal/transport"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Debug().Str("backend", cfg.Backend.BaseURL).Msg("Configuration loaded")

	client := api.New(cfg.Backend.BaseURL, cfg.Backend.Token)

	cartSvc := cart.NewService(cart.NewRepository(client))
	orderSvc := order.NewService(order.NewRepository(client))
	driverSvc := driver.NewService(driver.NewRepository(client))

	gateway := payment.Select(cfg.Payment.PublicKey, cfg.Payment.CallbackURL, cfg.Payment.CancelURL)
	geocoder := geo.NewGeocoder(cfg.Geocode.BaseURL)
	flow := checkout.NewFlow(checkout.NewRepository(client), order.NewRepository(client), cartSvc, gateway, geocoder, cfg.Backend.Email)

	h := transport.Handlers{
		Cart:     handler.NewCartHandler(cartSvc),
		Checkout: handler.NewCheckoutHandler(flow, payment.NewVerifyRepository(client)),
		Orders:   handler.NewOrderHandler(orderSvc),
		Driver:   handler.NewDriverHandler(driverSvc),
		Content: handler.NewContentHandler(
			catalog.NewStore(client),
			blog.NewStore(client),
			testimonial.NewStore(client),
			advert.NewStore(client),
		),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      transport.NewRouter(h),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
