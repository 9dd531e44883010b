package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// AdminPinHash is the bcrypt hash of the operator PIN. When empty,
	// AdminPin is compared directly (development only).
	AdminPinHash string
	AdminPin     string

	BackupDir          string
	BackupPollInterval time.Duration
	BackupRetention    time.Duration

	// SheetsMode selects the estimate sync backend: "mock" writes JSON
	// files under SheetsMockDir, "google" talks to the Sheets API.
	SheetsMode            string
	SheetsMockDir         string
	GoogleCredentialsFile string
	GoogleTokenFile       string

	CORSAllowOrigins []string
	RateLimit        string
	MigrationsPath   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("CXEMA_PGSQL_URL", "")
	viper.SetDefault("CXEMA_PORT", "8080")
	viper.SetDefault("CXEMA_IS_PRODUCTION", false)
	viper.SetDefault("CXEMA_ENABLE_DB_CHECK", false)
	viper.SetDefault("CXEMA_JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CXEMA_JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("CXEMA_JWT_ISSUER", "cxema-backend")
	viper.SetDefault("CXEMA_ADMIN_PIN_HASH", "")
	viper.SetDefault("CXEMA_ADMIN_PIN", "")
	viper.SetDefault("CXEMA_BACKUP_DIR", "./backups")
	viper.SetDefault("CXEMA_BACKUP_POLL_INTERVAL", "5m")
	viper.SetDefault("CXEMA_BACKUP_RETENTION", "2880h") // roughly four months
	viper.SetDefault("CXEMA_SHEETS_MODE", "mock")
	viper.SetDefault("CXEMA_SHEETS_MOCK_DIR", "./sheets_mock")
	viper.SetDefault("CXEMA_GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("CXEMA_GOOGLE_TOKEN_FILE", "")
	viper.SetDefault("CXEMA_CORS_ALLOW_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CXEMA_RATE_LIMIT", "300-M")
	viper.SetDefault("CXEMA_MIGRATIONS_PATH", "file://migrations")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("CXEMA_PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: CXEMA_PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("CXEMA_PORT")
	cfg.IsProduction = viper.GetBool("CXEMA_IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("CXEMA_ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("CXEMA_JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction {
		log.Println("Warning: CXEMA_JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("CXEMA_JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for CXEMA_JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("CXEMA_JWT_ISSUER")

	cfg.AdminPinHash = viper.GetString("CXEMA_ADMIN_PIN_HASH")
	cfg.AdminPin = viper.GetString("CXEMA_ADMIN_PIN")
	if cfg.AdminPinHash == "" && cfg.AdminPin == "" {
		log.Println("Warning: neither CXEMA_ADMIN_PIN_HASH nor CXEMA_ADMIN_PIN set. Login is impossible.")
	}

	cfg.BackupDir = viper.GetString("CXEMA_BACKUP_DIR")

	pollStr := viper.GetString("CXEMA_BACKUP_POLL_INTERVAL")
	pollInterval, err := time.ParseDuration(pollStr)
	if err != nil {
		pollInterval = 5 * time.Minute
		log.Printf("Warning: Invalid value for CXEMA_BACKUP_POLL_INTERVAL (%q). Defaulting to %s.\n", pollStr, pollInterval)
	}
	cfg.BackupPollInterval = pollInterval

	retentionStr := viper.GetString("CXEMA_BACKUP_RETENTION")
	retention, err := time.ParseDuration(retentionStr)
	if err != nil {
		retention = 2880 * time.Hour
		log.Printf("Warning: Invalid value for CXEMA_BACKUP_RETENTION (%q). Defaulting to %s.\n", retentionStr, retention)
	}
	cfg.BackupRetention = retention

	cfg.SheetsMode = viper.GetString("CXEMA_SHEETS_MODE")
	cfg.SheetsMockDir = viper.GetString("CXEMA_SHEETS_MOCK_DIR")
	cfg.GoogleCredentialsFile = viper.GetString("CXEMA_GOOGLE_CREDENTIALS_FILE")
	cfg.GoogleTokenFile = viper.GetString("CXEMA_GOOGLE_TOKEN_FILE")
	if cfg.SheetsMode == "google" && cfg.GoogleCredentialsFile == "" {
		log.Println("Warning: CXEMA_GOOGLE_CREDENTIALS_FILE not set. Google Sheets sync will not function.")
	}

	cfg.CORSAllowOrigins = viper.GetStringSlice("CXEMA_CORS_ALLOW_ORIGINS")
	cfg.RateLimit = viper.GetString("CXEMA_RATE_LIMIT")
	cfg.MigrationsPath = viper.GetString("CXEMA_MIGRATIONS_PATH")

	return cfg, nil
}
