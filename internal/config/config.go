package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	TemplateDir string
	RateMax     int
}

// Load reads settings from the environment, after an optional .env file.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "streetsupply.db") // sqlite file in project root
	v.SetDefault("LOG_FILE", "./streetsupply.log")
	v.SetDefault("TEMPLATE_DIR", "./web/templates")
	v.SetDefault("LOW_RATE_MAX", 60)

	cfg := Config{
		Port:        v.GetString("PORT"),
		DBDSN:       v.GetString("DB_DSN"),
		LogFile:     v.GetString("LOG_FILE"),
		TemplateDir: v.GetString("TEMPLATE_DIR"),
		RateMax:     v.GetInt("LOW_RATE_MAX"),
	}
	if cfg.RateMax <= 0 {
		cfg.RateMax = 60
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TEMPLATE_DIR=%s LOW_RATE_MAX=%d",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.TemplateDir, cfg.RateMax)
	return cfg
}
