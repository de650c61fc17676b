package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HUnit struct {
	BaseURL  string
	UserName string
	Password string
	Timeout  time.Duration
}

type Config struct {
	Port                   string
	LogLevel               string
	Env                    string
	Test                   bool
	HUnit                  HUnit
	CatalogRedisURI        string
	CatalogTTL             time.Duration
	JWTSecret              string
	OpenAPILocation        string
	ExposeSupplierRequests bool
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENV", "development")
	v.SetDefault("TEST", false)
	v.SetDefault("HUNIT_BASE_URL", "https://services.hunit.com.br/api/")
	v.SetDefault("HUNIT_USERNAME", "")
	v.SetDefault("HUNIT_PASSWORD", "")
	v.SetDefault("HUNIT_TIMEOUT_MS", 0)
	v.SetDefault("CATALOG_REDIS_URI", "")
	v.SetDefault("CATALOG_TTL_SECONDS", 600)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("OPENAPI_LOCATION", "./api/openapi.json")
	v.SetDefault("EXPOSE_SUPPLIER_REQUESTS", false)
}

// Load builds the configuration from the process environment on top of the optional env files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults(v)

	// env files only replace defaults, the process environment wins
	for _, file := range envFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			continue
		}

		for key, value := range values {
			v.SetDefault(key, value)
		}
	}

	config := &Config{
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Env:      v.GetString("ENV"),
		Test:     v.GetBool("TEST"),
		HUnit: HUnit{
			BaseURL:  v.GetString("HUNIT_BASE_URL"),
			UserName: v.GetString("HUNIT_USERNAME"),
			Password: v.GetString("HUNIT_PASSWORD"),
			Timeout:  time.Duration(v.GetInt("HUNIT_TIMEOUT_MS")) * time.Millisecond,
		},
		CatalogRedisURI:        v.GetString("CATALOG_REDIS_URI"),
		CatalogTTL:             time.Duration(v.GetInt("CATALOG_TTL_SECONDS")) * time.Second,
		JWTSecret:              v.GetString("JWT_SECRET"),
		OpenAPILocation:        v.GetString("OPENAPI_LOCATION"),
		ExposeSupplierRequests: v.GetBool("EXPOSE_SUPPLIER_REQUESTS"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.HUnit.UserName == "" || c.HUnit.Password == "" {
		return fmt.Errorf("HUNIT_USERNAME and HUNIT_PASSWORD are required")
	}

	if c.HUnit.Timeout < 0 {
		return fmt.Errorf("HUNIT_TIMEOUT_MS must not be negative")
	}

	if c.CatalogTTL <= 0 {
		return fmt.Errorf("CATALOG_TTL_SECONDS must be positive")
	}

	return nil
}
