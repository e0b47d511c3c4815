package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string    `yaml:"env" env:"ENV" env-default:"production"`
	API       API       `yaml:"api"`
	Redis     Redis     `yaml:"redis"`
	Downloads Downloads `yaml:"downloads"`
	Preview   Preview   `yaml:"preview"`
}

type API struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"30s"`
}

type Redis struct {
	Address   string        `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	DB        int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	ListTTL   time.Duration `yaml:"list_ttl" env-default:"45s"`
	BinaryTTL time.Duration `yaml:"binary_ttl" env-default:"10m"`
}

type Downloads struct {
	Dir string `yaml:"dir" env:"DOWNLOADS_DIR" env-default:"."`
}

type Preview struct {
	// MaxDimension bounds the longest side of generated image thumbnails.
	MaxDimension int `yaml:"max_dimension" env-default:"512"`
}

// MustLoad reads configuration from the file named by CONFIG_PATH, falling
// back to environment variables alone when no file is configured.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	var cfg Config

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("config file does not exist at path: %s", configPath)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("failed to read config: %s", err)
		}

		return &cfg
	}

	// No config file; everything must come from the environment.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read config from environment: %s", err)
	}

	return &cfg
}
