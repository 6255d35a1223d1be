package toast

import "time"

// Config is loaded from the environment with config.Load.
type Config struct {
	DefaultDuration time.Duration `env:"TOAST_DEFAULT_DURATION" envDefault:"5s"`
	EventBuffer     int           `env:"TOAST_EVENT_BUFFER" envDefault:"32"`
	PresetsFile     string        `env:"TOAST_PRESETS_FILE"`
}

// NewFromConfig builds an engine from cfg. Options passed explicitly take
// precedence over cfg values.
func NewFromConfig(cfg Config, opts ...Option) (*Engine, error) {
	base := []Option{
		WithDefaultDuration(cfg.DefaultDuration),
		WithEventBuffer(cfg.EventBuffer),
	}
	if cfg.PresetsFile != "" {
		presets, err := LoadPresetsFile(cfg.PresetsFile)
		if err != nil {
			return nil, err
		}
		base = append(base, WithPresets(presets))
	}
	return New(append(base, opts...)...), nil
}
