package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Addr   string `env:"HTTP_ADDR" envDefault:":5000"`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	OAuth struct {
		ClientID     string `env:"CLIENT_ID,required"`
		ClientSecret string `env:"CLIENT_SECRET,required"`
		RedirectURI  string `env:"REDIRECT_URI,required"`
	}

	Discord struct {
		BotToken string `env:"BOT_TOKEN,required"`

		// Numeric channel snowflake the verification reports are posted to.
		VerificationChannelID int64 `env:"VERIFICATION_CHANNEL_ID,required"`
	}

	GeoIP struct {
		CacheTTL time.Duration `env:"GEOIP_CACHE_TTL" envDefault:"10m"`
	}
}

// Load reads .env (if present) and parses the environment into a Config.
// Required variables missing from the environment produce an error.
func Load() (*Config, error) {
	// Ignore a missing .env file; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
