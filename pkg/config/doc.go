// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv for optional .env files with
// github.com/caarlos0/env/v11 for struct-tag parsing, and caches each
// configuration type after the first successful parse:
//
//	type AppConfig struct {
//		Env  string `env:"APP_ENV" envDefault:"development"`
//		Name string `env:"APP_NAME" envDefault:"notedeck"`
//	}
//
//	var app AppConfig
//	config.MustLoad(&app)
//
// Package-level configs such as toast.Config and httpserver.Config are loaded
// the same way and passed to their NewFromConfig constructors.
package config
