package config

import "os"

// Config collects the environment-driven settings used across the app.
// godotenv is loaded by main before Load is called.
type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	MPAccessToken   string
	MPBaseURL       string
	PublicBaseURL   string
	FrontendBaseURL string
}

func Load() Config {
	return Config{
		Addr:            getenv("PET_SHOP_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		MPAccessToken:   os.Getenv("MP_ACCESS_TOKEN"),
		MPBaseURL:       getenv("MP_BASE_URL", "https://api.mercadopago.com"),
		PublicBaseURL:   getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
		FrontendBaseURL: getenv("FRONTEND_BASE_URL", "http://localhost:5173"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
