// Package config loads termtape's runtime defaults: a YAML file for
// the settings an operator wants to keep between invocations, layered
// under environment variables for the ones a CI pipeline or wrapper
// script wants to override per run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/termtape/termtape/env"
)

// Config holds the settings shared by the record, play and cat
// subcommands. Zero values mean "use the command's own default".
type Config struct {
	Speed         float64 `yaml:"speed" env:"SPEED"`
	IdleTimeLimit float64 `yaml:"idle_time_limit" env:"IDLE_TIME_LIMIT"`
	Title         string  `yaml:"title" env:"TITLE"`
	PauseKey      string  `yaml:"pause_key" env:"PAUSE_KEY"`
	PrefixKey     string  `yaml:"prefix_key" env:"PREFIX_KEY"`
	AddMarkerKey  string  `yaml:"add_marker_key" env:"ADD_MARKER_KEY"`
}

// Load first applies a .env file from the current working directory if
// present (without overwriting variables already set in the process
// environment), then reads yamlPath if it exists (a missing file is not
// an error), then applies TERMTAPE_-prefixed environment variables on
// top of the YAML values.
func Load(yamlPath string) (Config, error) {
	var cfg Config

	if err := env.LoadEnvFile(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", yamlPath, err)
			}
		case os.IsNotExist(err):
			// no config file is a normal, silent default
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", yamlPath, err)
		}
	}

	if err := env.ParseInto(&cfg, env.WithPrefix("TERMTAPE")); err != nil {
		return Config{}, fmt.Errorf("config: apply environment: %w", err)
	}

	return cfg, nil
}
