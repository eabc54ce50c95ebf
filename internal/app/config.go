package app

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-portfolio/internal/config"
)

// MustReadEnv reads the configuration from the file named by CONFIG_PATH
// or, when it is unset, from the environment.
func MustReadEnv() {
	path := os.Getenv("CONFIG_PATH")
	cfg, err := config.NewReader(path).Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("config_path", path).
		Msg("read env")

	config.SetGlobal(cfg)
}
