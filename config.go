package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/DillonStreator/identifiable/config"
	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/DillonStreator/identifiable/storage"
	"github.com/go-pg/pg/v10"
	"github.com/joho/godotenv"
)

var dbEnvs = []string{"DB_ADDR", "DB_USER", "DB_PASS", "DB_NAME"}

type appConfig struct {
	Port         string
	LogLevel     string
	DB           pg.Options
	Identifiable identifiable.Configuration
	Declarations storage.Declarations
}

func loadConfig() (appConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return appConfig{}, fmt.Errorf("load .env: %w", err)
	}

	if onlySomeEnvsSet(dbEnvs...) {
		return appConfig{}, fmt.Errorf("set all of %s or none of them", strings.Join(dbEnvs, ", "))
	}

	cfg := appConfig{
		Port:     getEnv("PORT", "4000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: pg.Options{
			Addr:     getEnv("DB_ADDR", "localhost:8200"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASS", "password"),
			Database: getEnv("DB_NAME", "todos"),
		},
		Identifiable: identifiable.DefaultConfiguration(),
		Declarations: storage.DefaultDeclarations(),
	}

	if path := os.Getenv("IDENTIFIABLE_CONFIG"); path != "" {
		f, err := config.Load(path)
		if err != nil {
			return appConfig{}, err
		}
		f.Apply(&cfg.Identifiable, &cfg.Declarations)
	}

	var err error
	if cfg.Identifiable.OverwriteToKey, err = getEnvBool("IDENTIFIABLE_OVERWRITE_TO_KEY", cfg.Identifiable.OverwriteToKey); err != nil {
		return appConfig{}, err
	}
	if cfg.Identifiable.OverwriteToParam, err = getEnvBool("IDENTIFIABLE_OVERWRITE_TO_PARAM", cfg.Identifiable.OverwriteToParam); err != nil {
		return appConfig{}, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// onlySomeEnvsSet reports whether some, but not all, of envs are set.
func onlySomeEnvsSet(envs ...string) bool {
	set := 0
	for _, env := range envs {
		if _, ok := os.LookupEnv(env); ok {
			set++
		}
	}
	return set > 0 && set < len(envs)
}

func noEnvsSet(envs ...string) bool {
	for _, env := range envs {
		if _, ok := os.LookupEnv(env); ok {
			return false
		}
	}
	return true
}
