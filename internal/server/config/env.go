package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/edutor/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. EDUTOR_STORAGE.
const EnvPrefix = "EDUTOR"

// parseEnv loads a dotenv file (the -env-file flag, or ./.env when present)
// and then overlays EDUTOR_* environment variables. Variables that are not
// set leave the current value untouched. Variables already present in the
// process environment win over the dotenv file.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		panic(err)
	}
}
