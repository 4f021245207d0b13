package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	Schema   string `toml:"schema"`
	Message  string `toml:"message"`
	LogLevel string `toml:"log_level"`
}

type config struct {
	Schema   string
	Message  string
	LogLevel string
}

func defaultConfig() config {
	return config{
		LogLevel: "info",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("schema") {
		cfg.Schema = strings.TrimSpace(raw.Schema)
	}

	if meta.IsDefined("message") {
		cfg.Message = strings.TrimSpace(raw.Message)
	}

	if meta.IsDefined("log_level") {
		level := strings.TrimSpace(raw.LogLevel)
		if level != "" {
			cfg.LogLevel = level
		}
	}

	return cfg, nil
}
