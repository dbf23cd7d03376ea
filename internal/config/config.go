package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/MassBabyGeek/StepLeague-backend/internal/logger"
)

// Config regroupe la configuration du serveur, chargée depuis
// l'environnement avec un .env optionnel en développement.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

// LoadConfig charge la configuration. Les variables d'environnement priment
// sur le fichier .env ; seules les coordonnées de la base sont obligatoires.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "stepleague"),
	}

	if cfg.DBUser == "" {
		return nil, fmt.Errorf("missing required environment variable DB_USER")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
