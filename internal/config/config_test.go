package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, AuthDev, cfg.Auth.Mode)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	assert.False(t, cfg.LegacyFinderCopy)
	assert.Empty(t, cfg.Jobs.MirrorRefreshSchedule)
}

func TestFromViper_DSNImpliesPostgres(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"DB_DSN": "postgres://localhost/petpals"}))
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
}

func TestFromViper_Validation(t *testing.T) {
	cases := map[string]map[string]any{
		"postgres without dsn":   {"STORE_DRIVER": "postgres"},
		"firestore without proj": {"STORE_DRIVER": "firestore"},
		"unknown driver":         {"STORE_DRIVER": "mongo"},
		"jwt without secret":     {"AUTH_MODE": "jwt"},
		"firebase without proj":  {"AUTH_MODE": "firebase"},
		"dev auth in production": {"ENV": "production"},
		"unknown auth mode":      {"AUTH_MODE": "basic"},
		"sendgrid without from":  {"SENDGRID_API_KEY": "SG.key"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fromViper(newViper(values))
			assert.Error(t, err)
		})
	}
}

func TestFromViper_FullProduction(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"ENV":                     "production",
		"STORE_DRIVER":            "firestore",
		"FIREBASE_PROJECT_ID":     "petpals-prod",
		"AUTH_MODE":               "firebase",
		"LEGACY_FINDER_COPY":      true,
		"MIRROR_REFRESH_SCHEDULE": "0 */5 * * * *",
		"CACHE_TTL":               "30m",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StoreFirestore, cfg.Store.Driver)
	assert.True(t, cfg.LegacyFinderCopy)
	assert.Equal(t, "0 */5 * * * *", cfg.Jobs.MirrorRefreshSchedule)
	assert.Equal(t, 30*time.Minute, cfg.Redis.TTL)
}
