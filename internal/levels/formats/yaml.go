// Package formats provides level pack file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLPack represents the YAML structure for a level pack file.
type YAMLPack struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	DeathScene *YAMLLevel  `yaml:"death_scene,omitempty"`
	Levels     []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents one level: a grid of screens and the start screen.
type YAMLLevel struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name,omitempty"`
	Start   YAMLCoord    `yaml:"start,omitempty"`
	Screens [][]YAMLGrid `yaml:"screens"`
}

// YAMLCoord is a screen coordinate.
type YAMLCoord struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// YAMLGrid is one screen. Cells holds one text row per line.
type YAMLGrid struct {
	Cells  string      `yaml:"cells"`
	Others []YAMLOther `yaml:"others,omitempty"`
}

// YAMLOther is a freeform tile. Sizes are in tiles.
type YAMLOther struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	W        float64 `yaml:"w,omitempty"`
	H        float64 `yaml:"h,omitempty"`
	Behavior string  `yaml:"behavior,omitempty"`
	Glyph    string  `yaml:"glyph,omitempty"`
	Text     string  `yaml:"text,omitempty"`
	Color    string  `yaml:"color,omitempty"`
	Layer    string  `yaml:"layer,omitempty"`
}

// ParseYAML parses a YAML level pack.
func ParseYAML(data []byte) (YAMLPack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return YAMLPack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yp.ID == "" {
		return YAMLPack{}, fmt.Errorf("yaml: pack has no id")
	}
	return yp, nil
}

// MarshalYAML encodes a level pack.
func MarshalYAML(yp YAMLPack) ([]byte, error) {
	data, err := yaml.Marshal(&yp)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
