package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/edutor/internal/flagx"
)

var knownFlags = []string{
	"-a", "-g", "-storage", "-sqlite", "-d", "-redis", "-ttl", "-codec", "-s", "-log", "-s3", "-b", "-e", "-otlp",
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g. ":8080")
//	-g string        gRPC health bind address
//	-storage string  storage backend: cookie, memory, sqlite, postgres, redis
//	-sqlite string   SQLite database file
//	-d string        PostgreSQL DSN
//	-redis string    Redis address
//	-ttl int         session lifetime, hours
//	-codec string    session token codec: plain or jwt
//	-s string        JWT secret key
//	-log string      log backend: slog or zap
//	-s3 bool         serve carousel media from S3
//	-b string        S3 bucket
//	-e string        S3 base endpoint
//	-otlp string     OTLP gRPC collector endpoint
//
// Only the flags above are passed to the FlagSet; -c/-config and -env-file
// belong to the other loaders.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the web server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC health server")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "storage backend")
	fs.StringVar(&config.SQLitePath, "sqlite", config.SQLitePath, "sqlite database file")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address")
	sessionTTL := fs.Int("ttl", int(config.SessionTTL.Hours()), "session ttl (in hours)")
	fs.StringVar(&config.TokenCodec, "codec", config.TokenCodec, "session token codec")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogBackend, "log", config.LogBackend, "log backend")
	fs.BoolVar(&config.S3Enabled, "s3", config.S3Enabled, "serve carousel media from S3")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.OTLPEndpoint, "otlp", config.OTLPEndpoint, "OTLP collector endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "ttl" {
			config.SessionTTL = time.Duration(*sessionTTL) * time.Hour
		}
	})
}
