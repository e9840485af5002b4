package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expected    func() *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:8081", "-g", ":6000", "-storage", "sqlite", "-sqlite", "/tmp/e.db",
				"-d", "db", "-redis", "r:6379", "-ttl", "24", "-codec", "jwt", "-s", "secret",
				"-log", "zap", "-b", "bucket", "-e", "http://minio", "-otlp", "collector:4317", "-s3",
			},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				c.EndpointAddrHTTP = "127.0.0.1:8081"
				c.EndpointAddrGRPC = ":6000"
				c.StorageBackend = StorageSQLite
				c.SQLitePath = "/tmp/e.db"
				c.DatabaseDSN = "db"
				c.RedisAddr = "r:6379"
				c.SessionTTL = 24 * time.Hour
				c.TokenCodec = CodecJWT
				c.SecretKey = "secret"
				c.LogBackend = "zap"
				c.S3Bucket = "bucket"
				c.S3BaseEndpoint = "http://minio"
				c.OTLPEndpoint = "collector:4317"
				c.S3Enabled = true
				return c
			},
		},
		{
			name: "unrelated flags ignored",
			args: []string{"cmd", "-config", "x.json", "-env-file", ".env", "-a", ":1"},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				c.EndpointAddrHTTP = ":1"
				return c
			},
		},
		{
			name:        "bad int",
			args:        []string{"cmd", "-ttl", "week"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			config.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected(), config))
		})
	}
}

func TestParseFlags_TTLUntouchedWhenAbsent(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-a", ":9"}

	config := &Config{}
	config.LoadDefaults()
	config.SessionTTL = 90 * time.Minute

	parseFlags(config)
	assert.Equal(t, 90*time.Minute, config.SessionTTL)
}
