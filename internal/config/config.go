package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	Port string

	BaseCurrency  string
	RatesURL      string
	FallbackRates map[string]decimal.Decimal

	SchedulerIntervalMinutes int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env file is fine; the defaults below match the docker
	// compose setup.
	_ = godotenv.Load()

	env := Config{
		PostgresAddress:          "localhost",
		PostgresPort:             "5433",
		PostgresDB:               "postgres",
		PostgresUsername:         "postgres",
		PostgresPassword:         "testpassword",
		Port:                     "8080",
		BaseCurrency:             "UAH",
		FallbackRates:            map[string]decimal.Decimal{"USD": decimal.NewFromInt(40)},
		SchedulerIntervalMinutes: 60,
	}

	overrideString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	overrideString(&env.PostgresPort, "POSTGRES_PORT")
	overrideString(&env.PostgresDB, "POSTGRES_DB")
	overrideString(&env.PostgresUsername, "POSTGRES_USERNAME")
	overrideString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	overrideString(&env.Port, "PORT")
	overrideString(&env.BaseCurrency, "BASE_CURRENCY")
	overrideString(&env.RatesURL, "RATES_URL")

	if raw := os.Getenv("FALLBACK_RATES"); len(raw) != 0 {
		rates, err := parseRates(raw)
		if err != nil {
			return nil, err
		}
		env.FallbackRates = rates
	}

	if raw := os.Getenv("SCHEDULER_INTERVAL_MINUTES"); len(raw) != 0 {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		env.SchedulerIntervalMinutes = minutes
	}

	return &env, nil
}

func overrideString(target *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*target = value
	}
}

// parseRates reads a "USD=40,EUR=43.5" list into a rate map.
func parseRates(raw string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(raw, ",") {
		code, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, err
		}
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}
