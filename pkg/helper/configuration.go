package helper

import "os"

// Config holds runtime settings for the server.
type Config struct {
	Port       string
	OFFBaseURL string
	DBPath     string
	RulesPath  string
}

// LoadConfigFromEnv loads server configuration from environment variables
func LoadConfigFromEnv() Config {
	return Config{
		Port:       getEnvOrDefault("APP_PORT", "8080"),
		OFFBaseURL: getEnvOrDefault("OFF_BASE_URL", "https://world.openfoodfacts.org"),
		DBPath:     getEnvOrDefault("DB_PATH", "greendot.db"),
		RulesPath:  getEnvOrDefault("RULES_PATH", ""),
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
