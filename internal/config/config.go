package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	FirebaseProjectID       string
	FirebaseCredentialsFile string // empty when running on GCP with ADC
	FirestoreEmulatorHost   string // dev only; SDK also honours FIRESTORE_EMULATOR_HOST
	Collections             Collections

	JWTPrivateKeyPath      string
	JWTPublicKeyPath       string
	JWTExpiryDays          int
	RefreshTokenExpiryDays int

	GoogleClientID string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AWSRegion      string
	AWSAccessKeyID string
	AWSSecretKey   string

	FCMTopicPrefix string

	// PublicAppURL is the web client origin used to build RSVP and registry
	// links in outgoing mail and SMS.
	PublicAppURL string

	// AdminEmail, when set, names an account the seeder promotes to admin.
	AdminEmail string

	AllowedOrigins []string // CORS allowed origins
}

// Collections holds the Firestore collection name for each entity. The
// per-user notification state overlay lives in a subcollection under users.
type Collections struct {
	Users              string
	Sessions           string
	Weddings           string
	Broadcasts         string
	Campaigns          string
	NotificationStates string // subcollection of Users
	Guests             string
	BudgetItems        string
	Gifts              string
	TrousseauItems     string
	Inspirations       string
	Verifications      string
	Settings           string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		FirestoreEmulatorHost:   getEnv("FIRESTORE_EMULATOR_HOST", ""),
		Collections: Collections{
			Users:              getEnv("COLLECTION_USERS", "users"),
			Sessions:           getEnv("COLLECTION_SESSIONS", "sessions"),
			Weddings:           getEnv("COLLECTION_WEDDINGS", "weddings"),
			Broadcasts:         getEnv("COLLECTION_BROADCASTS", "notifications"),
			Campaigns:          getEnv("COLLECTION_CAMPAIGNS", "notification_campaigns"),
			NotificationStates: getEnv("COLLECTION_NOTIFICATION_STATES", "notification_states"),
			Guests:             getEnv("COLLECTION_GUESTS", "guests"),
			BudgetItems:        getEnv("COLLECTION_BUDGET_ITEMS", "budget_items"),
			Gifts:              getEnv("COLLECTION_GIFTS", "gifts"),
			TrousseauItems:     getEnv("COLLECTION_TROUSSEAU_ITEMS", "trousseau_items"),
			Inspirations:       getEnv("COLLECTION_INSPIRATIONS", "inspirations"),
			Verifications:      getEnv("COLLECTION_VERIFICATIONS", "verifications"),
			Settings:           getEnv("COLLECTION_SETTINGS", "settings"),
		},
		JWTPrivateKeyPath:      getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:       getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryDays:          getEnvInt("JWT_EXPIRY_DAYS", 7),
		RefreshTokenExpiryDays: getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30),
		GoogleClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		FCMTopicPrefix: getEnv("FCM_TOPIC_PREFIX", "broadcasts"),
		PublicAppURL:   getEnv("PUBLIC_APP_URL", "http://localhost:5173"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
