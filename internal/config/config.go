package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process configuration shared by the server, CLI and dbtool.
type Config struct {
	ORSAPIKey        string
	ORSBaseURL       string
	ORSProfile       string
	Geocoder         string
	GeocodeCountry   string
	NominatimBaseURL string
	GeocodeInterval  time.Duration
	HTTPTimeout      time.Duration
	Port             string
	DatabaseURL      string
	DBPath           string
	LogLevel         string
}

// MinGeocodeInterval is the provider-mandated floor between geocoding calls.
const MinGeocodeInterval = time.Second

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("ORS_BASE_URL", "https://api.openrouteservice.org")
	v.SetDefault("ORS_PROFILE", "driving-car")
	v.SetDefault("GEOCODER", "ors")
	v.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODE_INTERVAL", "1s")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	return v
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE,
// and the environment, in increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	v := newViper()
	if path := strings.TrimSpace(v.GetString("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	cfg := &Config{
		ORSAPIKey:        strings.TrimSpace(v.GetString("ORS_API_KEY")),
		ORSBaseURL:       strings.TrimRight(v.GetString("ORS_BASE_URL"), "/"),
		ORSProfile:       v.GetString("ORS_PROFILE"),
		Geocoder:         strings.ToLower(strings.TrimSpace(v.GetString("GEOCODER"))),
		GeocodeCountry:   strings.TrimSpace(v.GetString("GEOCODE_COUNTRY")),
		NominatimBaseURL: strings.TrimRight(v.GetString("NOMINATIM_BASE_URL"), "/"),
		GeocodeInterval:  v.GetDuration("GEOCODE_INTERVAL"),
		HTTPTimeout:      v.GetDuration("HTTP_TIMEOUT"),
		Port:             v.GetString("PORT"),
		DatabaseURL:      strings.TrimSpace(v.GetString("DATABASE_URL")),
		DBPath:           strings.TrimSpace(v.GetString("DB_PATH")),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Geocoder {
	case "ors", "nominatim":
	default:
		return fmt.Errorf("GEOCODER must be \"ors\" or \"nominatim\", got %q", c.Geocoder)
	}

	if c.GeocodeInterval < MinGeocodeInterval {
		return fmt.Errorf("GEOCODE_INTERVAL must be at least %s, got %s", MinGeocodeInterval, c.GeocodeInterval)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}

	return nil
}
