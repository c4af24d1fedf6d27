package configloader

import (
	"fmt"
	"log"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvFile is looked up in the working directory.
const EnvFile = "FeistelCipher.env"

// Config holds the settings read from the environment.
type Config struct {
	Key      string `env:"FEISTEL_KEY" env-default:"abcdefgh" env-description:"8 character key or 64 binary digits"`
	Message  string `env:"FEISTEL_MESSAGE" env-default:"this assignment was really hard" env-description:"message for the startup demo"`
	Workers  int    `env:"FEISTEL_WORKERS" env-default:"1" env-description:"goroutines used per message"`
	RSABits  int    `env:"RSA_KEY_BITS" env-default:"512" env-description:"RSA modulus size"`
	NoColor  bool   `env:"FEISTEL_NO_COLOR" env-default:"false" env-description:"disable ANSI colors"`
	LogDebug bool   `env:"FEISTEL_DEBUG" env-default:"false" env-description:"log cipher sessions"`
}

func init() {
	// The .env file is optional; variables already set in the environment win.
	err := godotenv.Load(EnvFile)
	if err != nil {
		log.Printf("CONFIGLOADER: Note: Error loading %s file: %v. Will rely on system-set environment variables if they are present.", EnvFile, err)
	} else {
		log.Printf("CONFIGLOADER: %s loaded successfully.", EnvFile)
	}
}

// Load decodes the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("CONFIGLOADER: cannot read environment: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}

// Usage returns a description of every supported variable.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return text
}
