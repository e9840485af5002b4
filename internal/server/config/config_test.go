package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/edutor/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, StorageCookie, c.StorageBackend)
	assert.Equal(t, 7*24*time.Hour, c.SessionTTL)
	assert.Equal(t, CodecPlain, c.TokenCodec)
	assert.Equal(t, "slog", c.LogBackend)
	assert.False(t, c.S3Enabled)
	assert.Equal(t, 15*time.Minute, c.S3PresignTTL)
	assert.Empty(t, c.OTLPEndpoint)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "redis backend", mutate: func(c *Config) { c.StorageBackend = StorageRedis }},
		{name: "unknown backend", mutate: func(c *Config) { c.StorageBackend = "localStorage" }, wantErr: true},
		{name: "jwt with secret", mutate: func(c *Config) { c.TokenCodec = CodecJWT }},
		{name: "jwt without secret", mutate: func(c *Config) { c.TokenCodec = CodecJWT; c.SecretKey = "" }, wantErr: true},
		{name: "unknown codec", mutate: func(c *Config) { c.TokenCodec = "rot13" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_UnsupportedBackendIsSentinel(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.StorageBackend = "etcd"
	assert.ErrorIs(t, c.Validate(), common.ErrorUnsupported)
}
