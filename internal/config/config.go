package config

import (
	"os"
	"strconv"
	"time"
)

// Config regroupe la configuration du serveur, chargée depuis l'environnement
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Service d'inférence (classification + détection de personnes)
	VisionURL     string
	VisionTimeout time.Duration

	// Fréquence du balayage des challenges à expirer
	LifecycleSweepSpec string
}

// LoadConfig lit la configuration depuis les variables d'environnement
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getString("PORT", "8080"),
		DBHost:              getString("DB_HOST", "localhost"),
		DBPort:              getString("DB_PORT", "5432"),
		DBUser:              getString("DB_USER", "postgres"),
		DBPassword:          getString("DB_PASSWORD", "postgres"),
		DBName:              getString("DB_NAME", "snapquest"),
		CloudinaryCloudName: getString("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getString("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getString("CLOUDINARY_API_SECRET", ""),
		VisionURL:           getString("VISION_URL", "http://localhost:9090"),
		VisionTimeout:       time.Duration(getInt("VISION_TIMEOUT_SECONDS", 15)) * time.Second,
		LifecycleSweepSpec:  getString("LIFECYCLE_SWEEP_SPEC", "@every 1m"),
	}
	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
