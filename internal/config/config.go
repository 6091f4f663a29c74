package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; optional ones carry the defaults shown in
// FromEnv.
type Config struct {
	Env  string // application environment (dev, test, prod)
	Port string // HTTP port to listen on

	JWTSecret  string        // secret used to sign access tokens
	SessionTTL time.Duration // lifetime of a signed-in session
	BcryptCost int           // cost used when hashing new passwords

	ReservationsURL string        // reservation proxy base URL
	HousekeepingURL string        // housekeeping API base URL
	UpstreamTimeout time.Duration // per-request timeout for both services
	UpstreamRPS     float64       // outbound request rate, 0 = unlimited
	UpstreamBurst   int
	PropertyID      int64 // property written on new bookings

	Timezone    *time.Location // hotel local time, decides what "today" is
	CatalogFile string         // optional room catalog override
	UsersFile   string         // seed users used when MySQL is not configured

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	RabbitURL     string // broker for booking and room-status events; empty disables publishing
	AuditConsumer bool   // run the audit log consumer inside the server
	AuditLogPath  string
}

// Load reads configuration values from environment variables.  Missing or
// invalid required values cause the program to exit with a fatal log
// message.
func Load() Config {
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv is Load without the exit; every problem found is reported.
func FromEnv() (Config, error) {
	var missing []string
	must := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		JWTSecret:       must("JWT_SECRET"),
		ReservationsURL: must("RESERVATIONS_URL"),
		HousekeepingURL: must("HOUSEKEEPING_URL"),

		SessionTTL: time.Duration(envInt("SESSION_TTL_MIN", 720)) * time.Minute,
		BcryptCost: envInt("BCRYPT_COST", 10),

		UpstreamTimeout: envDur("UPSTREAM_TIMEOUT", 15*time.Second),
		UpstreamRPS:     envFloat("UPSTREAM_RPS", 0),
		UpstreamBurst:   envInt("UPSTREAM_BURST", 5),
		PropertyID:      envInt64("PROPERTY_ID", 0),

		CatalogFile: os.Getenv("CATALOG_FILE"),
		UsersFile:   envStr("USERS_FILE", "users.yaml"),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: envStr("DB_HOST", "127.0.0.1"),
		DBPort: envStr("DB_PORT", "3306"),
		DBName: os.Getenv("DB_NAME"),

		RabbitURL:     envStr("RABBITMQ_URL", os.Getenv("AMQP_URL")),
		AuditConsumer: envBool("AUDIT_CONSUMER", false),
		AuditLogPath:  envStr("AUDIT_LOG_PATH", "logs/frontdesk.log"),
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", ")))
	}
	loc, err := time.LoadLocation(envStr("APP_TIMEZONE", "UTC"))
	if err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
		loc = time.UTC
	}
	cfg.Timezone = loc
	if cfg.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_MIN must be positive"))
	}
	return cfg, errors.Join(errs...)
}

// DatabaseEnabled reports whether MySQL credentials were supplied.  Without
// them users come from UsersFile.
func (c Config) DatabaseEnabled() bool { return c.DBUser != "" && c.DBName != "" }

// Now returns the current time in the hotel's timezone.
func (c Config) Now() time.Time {
	if c.Timezone == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Timezone)
}
