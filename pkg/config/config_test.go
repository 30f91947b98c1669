package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comex-crm/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SUPABASE_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "comex-crm", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Import.MaxUploadMB)
	assert.Equal(t, 10*1024*1024, cfg.Import.MaxUploadBytes())
	assert.Equal(t, 5000, cfg.Import.MaxRows)
	assert.Equal(t, 30*time.Second, cfg.DB.StatementTimeout)
	assert.Empty(t, cfg.App.BootstrapAdminEmail)
}

func TestLoad_SecretFallback(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy-secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-secret", cfg.JWT.Secret)

	t.Setenv("SUPABASE_JWT_SECRET", "supabase-secret")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, "supabase-secret", cfg.JWT.Secret)
}

func TestLoad_ProductionSinSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SUPABASE_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ValoresDesdeEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("IMPORT_MAX_ROWS", "100")
	t.Setenv("DB_STATEMENT_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", " Dono@Empresa.com ")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 100, cfg.Import.MaxRows)
	assert.Equal(t, 5*time.Second, cfg.DB.StatementTimeout)
	assert.Equal(t, "https://app.example.com", cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "dono@empresa.com", cfg.App.BootstrapAdminEmail)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "crm", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/crm?sslmode=require", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
