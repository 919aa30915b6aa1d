// Package config loads app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment. The
// verification secrets and policy knobs that were once hardcoded live here.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	// DatabaseURL is the Postgres connection string. Ignored when Supabase
	// is configured.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// SupabaseURL selects the Supabase-backed user record store when set.
	SupabaseURL string `mapstructure:"SUPABASE_URL"`
	// SupabaseKey is the Supabase service key.
	SupabaseKey string `mapstructure:"SUPABASE_KEY"`

	// ChallengeCode is the expected 6-digit verification code.
	ChallengeCode string `mapstructure:"CHALLENGE_CODE"`
	// AccessCode is the expected access-details value.
	AccessCode string `mapstructure:"ACCESS_CODE"`
	// FeeRate is the transfer fee as a fraction of the user's balance.
	FeeRate float64 `mapstructure:"FEE_RATE"`
	// MaxAttempts is the per-stage verification attempt budget.
	MaxAttempts int `mapstructure:"MAX_ATTEMPTS"`
	// StoreTimeout bounds settlement store writes (e.g. "10s").
	StoreTimeout time.Duration `mapstructure:"STORE_TIMEOUT"`

	// JWTSecret signs session tokens.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTIssuer is the iss claim on session tokens.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTTTL is the session token lifetime (e.g. "12h").
	JWTTTL time.Duration `mapstructure:"JWT_TTL"`
	// BcryptCost is the bcrypt cost factor for passwords and PINs.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// CloudinaryCloud is the Cloudinary cloud name for media uploads.
	CloudinaryCloud string `mapstructure:"CLOUDINARY_CLOUD"`
	// CloudinaryPreset is the unsigned upload preset.
	CloudinaryPreset string `mapstructure:"CLOUDINARY_PRESET"`

	// TelegramToken enables the registration notifier when set.
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	// TelegramChatID is the back-office chat to notify.
	TelegramChatID int64 `mapstructure:"TELEGRAM_CHAT_ID"`

	// EmailJSService enables the welcome email when set, together with the
	// template and public key.
	EmailJSService  string `mapstructure:"EMAILJS_SERVICE"`
	EmailJSTemplate string `mapstructure:"EMAILJS_TEMPLATE"`
	EmailJSKey      string `mapstructure:"EMAILJS_KEY"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment. Missing .env is ignored; env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_KEY", "")
	v.SetDefault("CHALLENGE_CODE", "123456")
	v.SetDefault("ACCESS_CODE", "ACCESS123")
	v.SetDefault("FEE_RATE", 0.10)
	v.SetDefault("MAX_ATTEMPTS", 3)
	v.SetDefault("STORE_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", "dev-secret")
	v.SetDefault("JWT_ISSUER", "holtback")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("CLOUDINARY_CLOUD", "")
	v.SetDefault("CLOUDINARY_PRESET", "")
	v.SetDefault("TELEGRAM_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", 0)
	v.SetDefault("EMAILJS_SERVICE", "")
	v.SetDefault("EMAILJS_TEMPLATE", "")
	v.SetDefault("EMAILJS_KEY", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.FeeRate < 0 || cfg.FeeRate >= 1 {
		return nil, fmt.Errorf("config: FEE_RATE must be in [0, 1), got %v", cfg.FeeRate)
	}
	if cfg.MaxAttempts < 1 {
		return nil, errors.New("config: MAX_ATTEMPTS must be at least 1")
	}
	if cfg.SupabaseURL != "" && cfg.SupabaseKey == "" {
		return nil, errors.New("config: SUPABASE_KEY must be set when SUPABASE_URL is set")
	}

	return &cfg, nil
}
