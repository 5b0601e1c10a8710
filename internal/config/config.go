package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Email    EmailConfig    `mapstructure:"email"`
	Reminder ReminderConfig `mapstructure:"reminder" validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication and token issuance settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// EmailConfig contains outbound email (Brevo) settings.
//
// Credentials are deliberately not required here: their absence is a
// per-send configuration fault reported by the sender, not a startup
// failure. A deployment without credentials still serves the API and
// retries reminders once credentials appear.
type EmailConfig struct {
	BrevoAPIKey string `mapstructure:"brevo_api_key"`
	SenderEmail string `mapstructure:"sender_email"`
	SenderName  string `mapstructure:"sender_name"`
	// BaseURL overrides the Brevo API endpoint, primarily for tests.
	BaseURL string `mapstructure:"base_url"`
}

// ReminderConfig contains the reminder engine settings.
type ReminderConfig struct {
	// Timezone is the canonical IANA zone in which every stored due date
	// is interpreted and every reminder timestamp is rendered.
	Timezone string `mapstructure:"timezone" validate:"required"`

	// SweepIntervalMinutes is the fixed period between sweep ticks.
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes" validate:"required,gt=0"`
}
