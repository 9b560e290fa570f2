package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/calendar"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the token verification secret. Token issuing lives in the
// auth service, not here.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the computation knobs: overtime bracket multipliers,
// caps, the flat per-incident late deduction, declared public holidays and
// worker-pool sizing for run generation.
type PayrollConfig struct {
	Overtime          calendar.OvertimePolicy
	LateDeductionRate decimal.Decimal
	PublicHolidays    []string
	GenerateWorkers   int
	DetailBatchSize   int
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, reading environment directly")
	}

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
		Name:     getEnv("DB_NAME", "payroll-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	payrollCfg, err := loadPayrollConfig()
	if err != nil {
		return nil, err
	}
	config.Payroll = payrollCfg

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayrollConfig() (PayrollConfig, error) {
	policy := calendar.DefaultOvertimePolicy()

	var err error
	if policy.WeekdayRateFirstTwo, err = getEnvDecimal("OT_WEEKDAY_RATE_FIRST_TWO", policy.WeekdayRateFirstTwo); err != nil {
		return PayrollConfig{}, err
	}
	if policy.WeekdayRateAfterTwo, err = getEnvDecimal("OT_WEEKDAY_RATE_AFTER_TWO", policy.WeekdayRateAfterTwo); err != nil {
		return PayrollConfig{}, err
	}
	if policy.HolidayRateFirstEight, err = getEnvDecimal("OT_HOLIDAY_RATE_FIRST_EIGHT", policy.HolidayRateFirstEight); err != nil {
		return PayrollConfig{}, err
	}
	if policy.HolidayRateNineToTen, err = getEnvDecimal("OT_HOLIDAY_RATE_NINE_TO_TEN", policy.HolidayRateNineToTen); err != nil {
		return PayrollConfig{}, err
	}
	if policy.HolidayRateAfterTen, err = getEnvDecimal("OT_HOLIDAY_RATE_AFTER_TEN", policy.HolidayRateAfterTen); err != nil {
		return PayrollConfig{}, err
	}
	if policy.MaxWeekdayHoursPerDay, err = getEnvDecimal("OT_MAX_WEEKDAY_HOURS_PER_DAY", policy.MaxWeekdayHoursPerDay); err != nil {
		return PayrollConfig{}, err
	}
	if policy.MaxHoursPerWeek, err = getEnvDecimal("OT_MAX_HOURS_PER_WEEK", policy.MaxHoursPerWeek); err != nil {
		return PayrollConfig{}, err
	}

	lateRate, err := getEnvDecimal("PAYROLL_LATE_DEDUCTION_RATE", decimal.NewFromInt(25000))
	if err != nil {
		return PayrollConfig{}, err
	}

	workers, err := strconv.Atoi(getEnv("PAYROLL_GENERATE_WORKERS", "8"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_GENERATE_WORKERS: %w", err)
	}

	batchSize, err := strconv.Atoi(getEnv("PAYROLL_DETAIL_BATCH_SIZE", "100"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_DETAIL_BATCH_SIZE: %w", err)
	}

	return PayrollConfig{
		Overtime:          policy,
		LateDeductionRate: lateRate,
		PublicHolidays:    loadPublicHolidays(),
		GenerateWorkers:   workers,
		DetailBatchSize:   batchSize,
	}, nil
}

// loadPublicHolidays keeps only well-formed PUBLIC_HOLIDAYS entries so a
// typo never silently drops a holiday downstream.
func loadPublicHolidays() []string {
	holidays := []string{}
	for _, entry := range getEnvSlice("PUBLIC_HOLIDAYS") {
		if _, err := time.Parse("2006-01-02", entry); err != nil {
			log.Printf("skipping invalid PUBLIC_HOLIDAYS entry %q: expected YYYY-MM-DD", entry)
			continue
		}
		holidays = append(holidays, entry)
	}
	return holidays
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.GenerateWorkers < 1 {
		return fmt.Errorf("PAYROLL_GENERATE_WORKERS must be at least 1")
	}
	if c.Payroll.DetailBatchSize < 1 {
		return fmt.Errorf("PAYROLL_DETAIL_BATCH_SIZE must be at least 1")
	}
	if c.Payroll.LateDeductionRate.IsNegative() {
		return fmt.Errorf("PAYROLL_LATE_DEDUCTION_RATE must be non-negative")
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

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	result := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
