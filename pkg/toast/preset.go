package toast

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Preset is a named toast template, e.g. "saved" or "offline".
type Preset struct {
	Title       string
	Description string
	Variant     Variant
	// Duration nil uses the engine default.
	Duration *time.Duration
}

// Presets maps names to templates.
type Presets map[string]Preset

// Options returns publish options for name.
func (p Presets) Options(name string) (Options, error) {
	preset, ok := p[name]
	if !ok {
		return Options{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	o := Options{
		Title:       preset.Title,
		Description: preset.Description,
		Variant:     preset.Variant,
	}
	if preset.Duration != nil {
		o.Duration = Duration(*preset.Duration)
	}
	return o, nil
}

type presetsDocument struct {
	Presets map[string]presetDef `yaml:"presets"`
}

type presetDef struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Variant     string  `yaml:"variant"`
	Duration    *string `yaml:"duration"`
	Persistent  bool    `yaml:"persistent"`
}

// LoadPresets decodes a YAML document of the form
//
//	presets:
//	  saved:
//	    title: Saved
//	    variant: success
//	    duration: 3s
//	  offline:
//	    title: You are offline
//	    variant: warning
//	    persistent: true
//
// Unknown variants fall back to default like Publish does. Durations use
// time.ParseDuration syntax.
func LoadPresets(r io.Reader) (Presets, error) {
	var doc presetsDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Presets{}, nil
		}
		return nil, errors.Join(ErrInvalidPresets, err)
	}

	presets := make(Presets, len(doc.Presets))
	for name, def := range doc.Presets {
		p := Preset{
			Title:       def.Title,
			Description: def.Description,
			Variant:     ParseVariant(def.Variant),
		}
		switch {
		case def.Persistent:
			p.Duration = Persist()
		case def.Duration != nil:
			d, err := time.ParseDuration(*def.Duration)
			if err != nil {
				return nil, errors.Join(ErrInvalidPresets, fmt.Errorf("preset %q: %w", name, err))
			}
			p.Duration = Duration(d)
		}
		presets[name] = p
	}
	return presets, nil
}

// LoadPresetsFile reads presets from a YAML file.
func LoadPresetsFile(path string) (Presets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets file: %w", err)
	}
	defer f.Close()

	return LoadPresets(f)
}
