package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Port string
	}
	Backend struct {
		BaseURL string
		// Token is the bearer token of the authenticated storefront session.
		// Session issuance belongs to the auth service; this process only
		// carries the credential.
		Token string
		Email string
	}
	Payment struct {
		PublicKey   string
		CallbackURL string
		CancelURL   string
	}
	Geocode struct {
		BaseURL string
	}
}

func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.App.Port = getenv("APP_PORT", "8090")

	cfg.Backend.BaseURL = os.Getenv("SERVER_API")
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: SERVER_API is required")
	}
	cfg.Backend.Token = os.Getenv("ACCESS_TOKEN")
	cfg.Backend.Email = os.Getenv("SESSION_EMAIL")

	cfg.Payment.PublicKey = os.Getenv("PAYSTACK_PUBLIC_KEY")
	cfg.Payment.CallbackURL = os.Getenv("PAYMENT_CALLBACK_URL")
	cfg.Payment.CancelURL = os.Getenv("PAYMENT_CANCEL_URL")
	cfg.Geocode.BaseURL = getenv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org")

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
