package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-platformer/internal/levels/formats"
)

// Loader handles loading level packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files.
// Returns packs sorted by ID for deterministic ordering. Any invalid file
// fails the whole scan.
func (l *Loader) LoadAll() ([]Pack, error) {
	var packs []Pack

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		p, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		packs = append(packs, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, nil
}

// LoadFile loads and validates a single pack file.
func (l *Loader) LoadFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isSupportedExtension(ext) {
		return Pack{}, fmt.Errorf("unsupported extension: %s", ext)
	}

	p, err := Parse(data)
	if err != nil {
		return Pack{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return p, nil
}

// LoadByID loads a specific pack by ID.
func (l *Loader) LoadByID(id string) (Pack, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return Pack{}, err
	}
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return Pack{}, fmt.Errorf("pack not found: %s", id)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Parse decodes and validates a YAML pack.
func Parse(data []byte) (Pack, error) {
	yp, err := formats.ParseYAML(data)
	if err != nil {
		return Pack{}, err
	}
	p, err := FromYAML(yp)
	if err != nil {
		return Pack{}, err
	}
	if err := p.Validate(); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// Marshal encodes a pack as YAML.
func Marshal(p *Pack) ([]byte, error) {
	return formats.MarshalYAML(ToYAML(p))
}

// FromYAML converts the file representation into a Pack without validating it.
func FromYAML(yp formats.YAMLPack) (Pack, error) {
	p := Pack{ID: yp.ID, Name: yp.Name}
	if p.Name == "" {
		p.Name = p.ID
	}
	for i, yl := range yp.Levels {
		lvl, err := levelFromYAML(yl)
		if err != nil {
			return Pack{}, fmt.Errorf("level %d: %w", i, err)
		}
		p.Levels = append(p.Levels, lvl)
	}
	if yp.DeathScene != nil {
		death, err := levelFromYAML(*yp.DeathScene)
		if err != nil {
			return Pack{}, fmt.Errorf("death scene: %w", err)
		}
		p.DeathScene = &death
	}
	return p, nil
}

func levelFromYAML(yl formats.YAMLLevel) (Level, error) {
	lvl := Level{
		ID:    yl.ID,
		Name:  yl.Name,
		Start: Coord{Row: yl.Start.Row, Col: yl.Start.Col},
	}
	for r, row := range yl.Screens {
		screens := make([]Grid, len(row))
		for c, yg := range row {
			g, err := ParseGrid(yg.Cells)
			if err != nil {
				return Level{}, fmt.Errorf("screen (%d,%d): %w", r, c, err)
			}
			for i, yo := range yg.Others {
				o, err := otherFromYAML(yo)
				if err != nil {
					return Level{}, fmt.Errorf("screen (%d,%d) other %d: %w", r, c, i, err)
				}
				g.Others = append(g.Others, o)
			}
			screens[c] = g
		}
		lvl.Screens = append(lvl.Screens, screens)
	}
	return lvl, nil
}

func otherFromYAML(yo formats.YAMLOther) (Other, error) {
	o := Other{X: yo.X, Y: yo.Y, W: yo.W, H: yo.H, Text: yo.Text, Color: yo.Color, Layer: yo.Layer}
	if yo.Behavior != "" {
		k, err := ParseKindName(yo.Behavior)
		if err != nil {
			return Other{}, err
		}
		o.Behavior = k
	}
	if yo.Glyph != "" {
		r, _ := utf8.DecodeRuneInString(yo.Glyph)
		o.Glyph = r
	}
	return o, nil
}

// ToYAML converts a Pack into its file representation.
func ToYAML(p *Pack) formats.YAMLPack {
	yp := formats.YAMLPack{ID: p.ID, Name: p.Name}
	for i := range p.Levels {
		yp.Levels = append(yp.Levels, levelToYAML(&p.Levels[i]))
	}
	if p.DeathScene != nil {
		yl := levelToYAML(p.DeathScene)
		yp.DeathScene = &yl
	}
	return yp
}

func levelToYAML(l *Level) formats.YAMLLevel {
	yl := formats.YAMLLevel{
		ID:    l.ID,
		Name:  l.Name,
		Start: formats.YAMLCoord{Row: l.Start.Row, Col: l.Start.Col},
	}
	for _, row := range l.Screens {
		out := make([]formats.YAMLGrid, len(row))
		for c := range row {
			g := &row[c]
			out[c].Cells = g.Text() + "\n"
			for _, o := range g.Others {
				yo := formats.YAMLOther{X: o.X, Y: o.Y, W: o.W, H: o.H, Text: o.Text, Color: o.Color, Layer: o.Layer}
				if o.Behavior != KindNone {
					yo.Behavior = o.Behavior.String()
				}
				if o.Glyph != 0 {
					yo.Glyph = string(o.Glyph)
				}
				out[c].Others = append(out[c].Others, yo)
			}
		}
		yl.Screens = append(yl.Screens, out)
	}
	return yl
}
