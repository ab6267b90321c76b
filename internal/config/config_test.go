package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "booking"
password = "from-file"
dbname = "space_booking"
auto_migrate = true

[logs]
level = "debug"

[metrics]
enabled = true

[auth]
jwt_secret = "file-secret"
admin_login_id = "admin"

[booking]
horizon_months = 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout, "default kept")
	assert.Equal(t, "db", cfg.Database.Host)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 2, cfg.Booking.HorizonMonths)
	assert.Equal(t, "Asia/Seoul", cfg.Booking.Timezone)
	assert.Equal(t, 12, cfg.Auth.AccountTTLMonths)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("ADMIN_PASSWORD", "Admin1234")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "Admin1234", cfg.Auth.AdminPassword)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.Auth.JWTSecret = "secret"
	require.NoError(t, cfg.Validate())

	cfg.Booking.Timezone = "Mars/Olympus"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimezone)

	cfg.Booking.Timezone = "UTC"
	cfg.Booking.HorizonMonths = 0
	assert.Error(t, cfg.Validate())
}

func TestDatabaseStrings(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "booking", Password: "p@ss", DBName: "space", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=booking password=p@ss dbname=space sslmode=disable", d.DSN())
	assert.Equal(t, "postgres://booking:p%40ss@db:5432/space?sslmode=disable", d.URL())
}

func TestLocation(t *testing.T) {
	cfg := defaults()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", loc.String())
}
