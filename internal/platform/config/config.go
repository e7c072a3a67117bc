package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	LogLevel        string
	JWTSecret       string
	FrontendBaseURL string
	MigrationsPath  string

	// Balance cache
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	BalanceCacheTTL time.Duration

	// RateLimit uses the ulule/limiter format, e.g. "30-M".
	RateLimit string

	// Ledger
	LedgerLockTimeout time.Duration
	LedgerPendingTTL  time.Duration
	LedgerAmountScale int32
	DefaultCurrency   string

	// Wallet rules
	PinMaxAttempts            int
	PinLockDuration           time.Duration
	DividendQuarterlyRate     decimal.Decimal
	DepositMinAmount          decimal.Decimal
	InvestorWithdrawMinAmount decimal.Decimal
	WithdrawMinAmount         decimal.Decimal
	WithdrawMaxAmount         decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BALANCE_CACHE_TTL", "30s")
	viper.SetDefault("RATE_LIMIT", "30-M")
	viper.SetDefault("LEDGER_LOCK_TIMEOUT", "2s")
	viper.SetDefault("LEDGER_PENDING_TTL", "5m")
	viper.SetDefault("LEDGER_AMOUNT_SCALE", 2)
	viper.SetDefault("DEFAULT_CURRENCY", "GHS")
	viper.SetDefault("PIN_MAX_ATTEMPTS", 3)
	viper.SetDefault("PIN_LOCK_DURATION", "1h")
	viper.SetDefault("DIVIDEND_QUARTERLY_RATE", "1.25")
	viper.SetDefault("DEPOSIT_MIN_AMOUNT", "1")
	viper.SetDefault("INVESTOR_WITHDRAW_MIN_AMOUNT", "1")
	viper.SetDefault("WITHDRAW_MIN_AMOUNT", "10")
	viper.SetDefault("WITHDRAW_MAX_AMOUNT", "100000")

	// Defaults can be overridden by the .env file, which can then be overridden by actual environment variables.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = strings.ToLower(viper.GetString("LOG_LEVEL"))
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Balance cache is disabled.")
	}
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.BalanceCacheTTL = getDuration("BALANCE_CACHE_TTL", 30*time.Second)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.LedgerLockTimeout = getDuration("LEDGER_LOCK_TIMEOUT", 2*time.Second)
	cfg.LedgerPendingTTL = getDuration("LEDGER_PENDING_TTL", 5*time.Minute)
	cfg.LedgerAmountScale = viper.GetInt32("LEDGER_AMOUNT_SCALE")
	if cfg.LedgerAmountScale < 0 || cfg.LedgerAmountScale > 4 {
		log.Printf("Warning: LEDGER_AMOUNT_SCALE must be between 0 and 4, got %d. Defaulting to 2.\n", cfg.LedgerAmountScale)
		cfg.LedgerAmountScale = 2
	}
	cfg.DefaultCurrency = strings.ToUpper(viper.GetString("DEFAULT_CURRENCY"))

	cfg.PinMaxAttempts = viper.GetInt("PIN_MAX_ATTEMPTS")
	if cfg.PinMaxAttempts <= 0 {
		log.Printf("Warning: Invalid value for PIN_MAX_ATTEMPTS (%d). Defaulting to 3.\n", cfg.PinMaxAttempts)
		cfg.PinMaxAttempts = 3
	}
	cfg.PinLockDuration = getDuration("PIN_LOCK_DURATION", time.Hour)

	cfg.DividendQuarterlyRate = getDecimal("DIVIDEND_QUARTERLY_RATE", decimal.RequireFromString("1.25"))
	cfg.DepositMinAmount = getDecimal("DEPOSIT_MIN_AMOUNT", decimal.NewFromInt(1))
	cfg.InvestorWithdrawMinAmount = getDecimal("INVESTOR_WITHDRAW_MIN_AMOUNT", decimal.NewFromInt(1))
	cfg.WithdrawMinAmount = getDecimal("WITHDRAW_MIN_AMOUNT", decimal.NewFromInt(10))
	cfg.WithdrawMaxAmount = getDecimal("WITHDRAW_MAX_AMOUNT", decimal.NewFromInt(100000))

	return cfg, nil
}

// getDuration reads a duration like "1h" or "500ms", falling back on parse errors.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

// getDecimal reads a decimal amount, falling back on parse errors.
func getDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		return fallback
	}
	return d
}
