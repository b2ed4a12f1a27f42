package toast

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Preset is a named notification template. Applications ship a YAML
// document of presets so call sites only pick a name and a message instead
// of repeating durations and flags:
//
//	deploy-progress:
//	  type: info
//	  group_id: deploy
//	  duration: 4s
//	save-error:
//	  type: error
//	  persistent: true
type Preset struct {
	Type       Type          `yaml:"type"`
	Duration   time.Duration `yaml:"-"`
	Persistent bool          `yaml:"persistent"`
	Priority   *Priority     `yaml:"priority"`
	GroupID    string        `yaml:"group_id"`
}

// UnmarshalYAML parses the duration field from its human-readable form
// ("4s", "1.5m") since yaml.v3 only decodes durations as raw nanoseconds.
func (p *Preset) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Type       Type      `yaml:"type"`
		Duration   string    `yaml:"duration"`
		Persistent bool      `yaml:"persistent"`
		Priority   *Priority `yaml:"priority"`
		GroupID    string    `yaml:"group_id"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	p.Type = raw.Type
	p.Persistent = raw.Persistent
	p.Priority = raw.Priority
	p.GroupID = raw.GroupID

	if raw.Duration != "" {
		d, err := time.ParseDuration(raw.Duration)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw.Duration, err)
		}
		p.Duration = d
	}
	return nil
}

// Presets maps template names to notification templates.
type Presets map[string]Preset

// LoadPresets parses a YAML document of presets and validates every type.
func LoadPresets(r io.Reader) (Presets, error) {
	var p Presets
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("toast: parsing presets: %w", err)
	}

	for name, preset := range p {
		if !preset.Type.Valid() {
			return nil, fmt.Errorf("%w: preset %q has type %q", ErrInvalidType, name, preset.Type)
		}
	}
	return p, nil
}

// Options builds Show options from a named preset and a message.
func (p Presets) Options(name, message string) (Options, error) {
	preset, ok := p[name]
	if !ok {
		return Options{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return Options{
		Message:    message,
		Type:       preset.Type,
		Duration:   preset.Duration,
		Persistent: preset.Persistent,
		Priority:   preset.Priority,
		GroupID:    preset.GroupID,
	}, nil
}
