package config

import (
	"errors"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

// NewReader returns a FileReader for a non-empty path and an EnvReader
// otherwise.
func NewReader(path string) Reader {
	if path == "" {
		return NewEnvReader()
	}
	return NewFileReader(path)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// FileReader reads a yaml, json, toml or .env file and lets environment
// variables override it. A missing file falls back to the environment.
type FileReader struct {
	path string
}

func NewFileReader(path string) FileReader {
	return FileReader{path: path}
}

func (r FileReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadConfig(r.path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewEnvReader().Read()
		}
		return nil, err
	}

	return cfg, nil
}
