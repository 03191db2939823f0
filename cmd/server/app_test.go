package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/bloggers-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewApplication_Memory(t *testing.T) {
	app, err := newApplication(context.Background(), testConfig(), discardLogger())
	require.NoError(t, err)
	defer app.cleanup()

	assert.NotNil(t, app.stores.Users)
	assert.NotNil(t, app.stores.Cleaner)
	assert.NotNil(t, app.authService)
	assert.NotNil(t, app.setupRouter())
}

func TestNewApplication_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "unknown database driver",
			mutate: func(c *config.Config) { c.Database.Driver = "sqlite" },
			want:   `unsupported database driver "sqlite"`,
		},
		{
			name:   "unknown mail driver",
			mutate: func(c *config.Config) { c.Mail.Driver = "pigeon" },
			want:   "failed to initialize mail sender",
		},
		{
			name:   "short jwt secret",
			mutate: func(c *config.Config) { c.Auth.JWTSecret = "short" },
			want:   "failed to initialize JWT service",
		},
		{
			name:   "smtp without host",
			mutate: func(c *config.Config) { c.Mail.Driver = config.MailDriverSMTP },
			want:   "failed to initialize mail sender",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(cfg)
			_, err := newApplication(context.Background(), cfg, discardLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRunMigrations_RequiresPostgres(t *testing.T) {
	err := runMigrations(context.Background(), testConfig(), discardLogger(), "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations require the postgres driver")
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	_, err := loadAppConfig("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
