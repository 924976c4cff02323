package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	MongoURI      string
	MongoDatabase string
	Port          string
	DataDir       string
	GeminiAPIKey  string
	GeminiModel   string
	JWTSecret     string
	AWSRegion     string
	AWSBucketName string

	// Pricing model tunables. These are modeling assumptions, not values
	// derived from the order data, so they live in configuration.
	ConversionRate float64
	DesiredMargin  float64
	PriorityTopN   int
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	MongoDatabase = os.Getenv("MONGO_DATABASE")
	if MongoDatabase == "" {
		MongoDatabase = "bundler"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	// When set, tables are loaded from CSV files in this directory instead of MongoDB.
	DataDir = os.Getenv("DATA_DIR")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiModel = os.Getenv("GEMINI_MODEL")
	if GeminiModel == "" {
		GeminiModel = "gemini-1.5-flash"
	}

	JWTSecret = os.Getenv("JWT_SECRET")

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "ap-south-1"
	}
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	ConversionRate = parseFloatEnv("CONVERSION_RATE", 0.35)
	DesiredMargin = parseFloatEnv("DESIRED_MARGIN", 0.10)
	PriorityTopN = parseIntEnv("PRIORITY_TOP_N", 10)
}

func parseFloatEnv(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Invalid value for %s (%q), using default %v", key, raw, fallback)
		return fallback
	}
	return v
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid value for %s (%q), using default %v", key, raw, fallback)
		return fallback
	}
	return v
}
