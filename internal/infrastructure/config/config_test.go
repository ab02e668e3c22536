package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"INVOICE_APP_NAME":                   os.Getenv("INVOICE_APP_NAME"),
		"INVOICE_APP_ENV":                    os.Getenv("INVOICE_APP_ENV"),
		"INVOICE_APP_PORT":                   os.Getenv("INVOICE_APP_PORT"),
		"INVOICE_DATABASE_HOST":              os.Getenv("INVOICE_DATABASE_HOST"),
		"INVOICE_DATABASE_PORT":              os.Getenv("INVOICE_DATABASE_PORT"),
		"INVOICE_DATABASE_PASSWORD":          os.Getenv("INVOICE_DATABASE_PASSWORD"),
		"INVOICE_REMOTE_PRODUCT_SERVICE_URL": os.Getenv("INVOICE_REMOTE_PRODUCT_SERVICE_URL"),
		"INVOICE_REMOTE_TIMEOUT_SECONDS":     os.Getenv("INVOICE_REMOTE_TIMEOUT_SECONDS"),
		"INVOICE_TAX_RATE":                   os.Getenv("INVOICE_TAX_RATE"),
		"INVOICE_JWT_SECRET":                 os.Getenv("INVOICE_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "invoice-service", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "invoices", cfg.Database.DBName)
		assert.Equal(t, "http://localhost:8002", cfg.Remote.ProductServiceURL)
		assert.Equal(t, "http://localhost:8003", cfg.Remote.CompanyServiceURL)
		assert.Equal(t, "http://localhost:8004", cfg.Remote.PartnerServiceURL)
		assert.Equal(t, 5, cfg.Remote.TimeoutSeconds)
		assert.Equal(t, "0.22", cfg.Tax.Rate.String())
	})

	t.Run("loads values from environment variables with INVOICE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_APP_NAME", "test-app")
		os.Setenv("INVOICE_APP_PORT", "9000")
		os.Setenv("INVOICE_DATABASE_HOST", "testdb.local")
		os.Setenv("INVOICE_REMOTE_PRODUCT_SERVICE_URL", "http://products.internal:9102")
		os.Setenv("INVOICE_REMOTE_TIMEOUT_SECONDS", "3")
		os.Setenv("INVOICE_TAX_RATE", "0.095")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, "http://products.internal:9102", cfg.Remote.ProductServiceURL)
		assert.Equal(t, 3, cfg.Remote.TimeoutSeconds)
		assert.Equal(t, "0.095", cfg.Tax.Rate.String())
	})

	t.Run("rejects malformed tax rate", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_TAX_RATE", "twenty-two")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects relative remote URL", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_REMOTE_PRODUCT_SERVICE_URL", "products.internal/api")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires jwt secret and db password", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_APP_ENV", "production")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "invoice",
		Password: "p@ss/word",
		DBName:   "invoices",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRemoteConfig_Timeout(t *testing.T) {
	cfg := RemoteConfig{TimeoutSeconds: 5}
	assert.Equal(t, "5s", cfg.Timeout().String())
}
