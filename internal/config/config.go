package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Schedule     ScheduleConfig
	Geofence     GeofenceConfig
	Face         FaceConfig
	Sync         SyncConfig
	OAuth2Google OAuth2GoogleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// ScheduleConfig holds the work-schedule thresholds the state machine
// derives late/early-leave status from.
type ScheduleConfig struct {
	ClockIn                    string // HH:MM
	ClockOut                   string // HH:MM
	LateThresholdMinutes       int
	EarlyLeaveThresholdMinutes int
}

// GeofenceConfig is the circular boundary around the office coordinate.
type GeofenceConfig struct {
	OfficeLatitude  float64
	OfficeLongitude float64
	RadiusMeters    float64
}

type FaceConfig struct {
	Enabled        bool
	ProviderURL    string
	MatchThreshold float64
}

type SyncConfig struct {
	UpstreamURL string
	Interval    time.Duration
	// DurableQueue persists the offline queue across restarts instead of
	// keeping it in memory.
	DurableQueue bool
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func Load() (*Config, error) {
	// .env is optional; environment variables win regardless
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Work schedule configuration
	lateThreshold, err := strconv.Atoi(getEnv("SCHEDULE_LATE_THRESHOLD_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_LATE_THRESHOLD_MINUTES: %w", err)
	}
	earlyLeaveThreshold, err := strconv.Atoi(getEnv("SCHEDULE_EARLY_LEAVE_THRESHOLD_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_EARLY_LEAVE_THRESHOLD_MINUTES: %w", err)
	}

	config.Schedule = ScheduleConfig{
		ClockIn:                    getEnv("SCHEDULE_CLOCK_IN", "09:00"),
		ClockOut:                   getEnv("SCHEDULE_CLOCK_OUT", "17:00"),
		LateThresholdMinutes:       lateThreshold,
		EarlyLeaveThresholdMinutes: earlyLeaveThreshold,
	}

	// Geofence configuration
	officeLat, err := strconv.ParseFloat(getEnv("GEOFENCE_OFFICE_LATITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_OFFICE_LATITUDE: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("GEOFENCE_OFFICE_LONGITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_OFFICE_LONGITUDE: %w", err)
	}
	radiusMeters, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_METERS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS_METERS: %w", err)
	}

	config.Geofence = GeofenceConfig{
		OfficeLatitude:  officeLat,
		OfficeLongitude: officeLon,
		RadiusMeters:    radiusMeters,
	}

	// Face verification configuration
	matchThreshold, err := strconv.ParseFloat(getEnv("FACE_MATCH_THRESHOLD", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_MATCH_THRESHOLD: %w", err)
	}

	config.Face = FaceConfig{
		Enabled:        getEnv("FACE_ENABLED", "false") == "true",
		ProviderURL:    getEnv("FACE_PROVIDER_URL", ""),
		MatchThreshold: matchThreshold,
	}

	// Sync configuration
	syncInterval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}

	config.Sync = SyncConfig{
		UpstreamURL:  getEnv("SYNC_UPSTREAM_URL", ""),
		Interval:     syncInterval,
		DurableQueue: getEnv("SYNC_DURABLE_QUEUE", "false") == "true",
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Sync.UpstreamURL == "" {
		return fmt.Errorf("SYNC_UPSTREAM_URL is required")
	}
	if c.Face.Enabled && c.Face.ProviderURL == "" {
		return fmt.Errorf("FACE_PROVIDER_URL is required when FACE_ENABLED is true")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
