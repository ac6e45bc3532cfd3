package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr    = ":8080"
	defaultJWTTTL      = "12h"
	defaultOTPTTL      = "10m"
	defaultOTPResend   = "60s"
	defaultUploadDir   = "./uploads"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultOTPPepper   = "change-me-otp-pepper"
	defaultSMTPPort    = "587"
	defaultMailBackend = "console"
)

// Config is the env-driven runtime configuration. Prod-like environments
// refuse to start with default secrets.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	OTPPepper         string
	OTPTTL            time.Duration
	OTPResendCooldown time.Duration

	UploadDir string

	MailBackend string // "console" or "smtp"
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	MailFrom    string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "vendorhub.db"))

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.OTPPepper = strings.TrimSpace(getEnv("OTP_PEPPER", defaultOTPPepper))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.OTPTTL, err = parseDurationEnv("OTP_TTL", defaultOTPTTL)
	if err != nil {
		return nil, err
	}
	cfg.OTPResendCooldown, err = parseDurationEnv("OTP_RESEND_COOLDOWN", defaultOTPResend)
	if err != nil {
		return nil, err
	}

	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))

	cfg.MailBackend = strings.ToLower(strings.TrimSpace(getEnv("MAIL_BACKEND", defaultMailBackend)))
	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	cfg.SMTPPort, err = parseIntEnv("SMTP_PORT", defaultSMTPPort)
	if err != nil {
		return nil, err
	}
	cfg.SMTPUser = strings.TrimSpace(os.Getenv("SMTP_USER"))
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.MailFrom = strings.TrimSpace(getEnv("MAIL_FROM", cfg.SMTPUser))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be > 0")
	}
	if cfg.OTPResendCooldown <= 0 {
		return fmt.Errorf("OTP_RESEND_COOLDOWN must be > 0")
	}
	if cfg.MailBackend != "console" && cfg.MailBackend != "smtp" {
		return fmt.Errorf("MAIL_BACKEND must be console or smtp")
	}
	if cfg.MailBackend == "smtp" && cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when MAIL_BACKEND=smtp")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.OTPPepper, defaultOTPPepper) {
			return fmt.Errorf("in prod/release OTP_PEPPER must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
