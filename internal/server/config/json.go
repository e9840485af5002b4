package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/edutor/internal/flagx"
	"github.com/dmitrijs2005/edutor/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "168h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	StorageBackend   string         `json:"storage_backend"`
	SQLitePath       string         `json:"sqlite_path"`
	DatabaseDSN      string         `json:"database_dsn"`
	RedisAddr        string         `json:"redis_addr"`
	RedisPassword    string         `json:"redis_password"`
	RedisDB          int            `json:"redis_db"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	TokenCodec       string         `json:"token_codec"`
	SecretKey        string         `json:"secret_key"`
	CookieSecure     bool           `json:"cookie_secure"`
	LogBackend       string         `json:"log_backend"`
	S3Enabled        bool           `json:"s3_enabled"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3PresignTTL     timex.Duration `json:"s3_presign_ttl"`
	OTLPEndpoint     string         `json:"otlp_endpoint"`
}

func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrHTTP: c.EndpointAddrHTTP,
		EndpointAddrGRPC: c.EndpointAddrGRPC,
		StorageBackend:   c.StorageBackend,
		SQLitePath:       c.SQLitePath,
		DatabaseDSN:      c.DatabaseDSN,
		RedisAddr:        c.RedisAddr,
		RedisPassword:    c.RedisPassword,
		RedisDB:          c.RedisDB,
		SessionTTL:       timex.Duration{Duration: c.SessionTTL},
		TokenCodec:       c.TokenCodec,
		SecretKey:        c.SecretKey,
		CookieSecure:     c.CookieSecure,
		LogBackend:       c.LogBackend,
		S3Enabled:        c.S3Enabled,
		S3RootUser:       c.S3RootUser,
		S3RootPassword:   c.S3RootPassword,
		S3Bucket:         c.S3Bucket,
		S3Region:         c.S3Region,
		S3BaseEndpoint:   c.S3BaseEndpoint,
		S3PresignTTL:     timex.Duration{Duration: c.S3PresignTTL},
		OTLPEndpoint:     c.OTLPEndpoint,
	}
}

func (j *JsonConfig) apply(c *Config) {
	c.EndpointAddrHTTP = j.EndpointAddrHTTP
	c.EndpointAddrGRPC = j.EndpointAddrGRPC
	c.StorageBackend = j.StorageBackend
	c.SQLitePath = j.SQLitePath
	c.DatabaseDSN = j.DatabaseDSN
	c.RedisAddr = j.RedisAddr
	c.RedisPassword = j.RedisPassword
	c.RedisDB = j.RedisDB
	c.SessionTTL = time.Duration(j.SessionTTL.Duration)
	c.TokenCodec = j.TokenCodec
	c.SecretKey = j.SecretKey
	c.CookieSecure = j.CookieSecure
	c.LogBackend = j.LogBackend
	c.S3Enabled = j.S3Enabled
	c.S3RootUser = j.S3RootUser
	c.S3RootPassword = j.S3RootPassword
	c.S3Bucket = j.S3Bucket
	c.S3Region = j.S3Region
	c.S3BaseEndpoint = j.S3BaseEndpoint
	c.S3PresignTTL = time.Duration(j.S3PresignTTL.Duration)
	c.OTLPEndpoint = j.OTLPEndpoint
}

// parseJson overlays values from the JSON file named by -c or -config.
// Keys missing from the file keep their current values. An unreadable or
// malformed file panics, same as a bad flag.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}
	c.apply(config)
}
