package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPreset marks a preset that is structurally malformed or
// geometrically invalid. All validation failures wrap this sentinel.
var ErrInvalidPreset = errors.New("invalid preset")

// DefaultBackground is used when a preset omits background_color.
const DefaultBackground = "white"

// Preset describes one page layout: page dimensions, background and the
// list of cells that images are placed into. Field names follow the
// preset document format exactly.
type Preset struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Page        Page   `json:"page" yaml:"page"`
	Layout      Layout `json:"layout" yaml:"layout"`
}

type Page struct {
	Width           int    `json:"width" yaml:"width"`
	Height          int    `json:"height" yaml:"height"`
	BackgroundColor string `json:"background_color" yaml:"background_color"`
}

// Layout holds the cell list. Rows and Columns are descriptive metadata
// from the preset author; the explicit cell list is authoritative.
type Layout struct {
	Rows    int    `json:"rows" yaml:"rows"`
	Columns int    `json:"columns" yaml:"columns"`
	Margin  int    `json:"margin" yaml:"margin"`
	Gutter  int    `json:"gutter" yaml:"gutter"`
	Cells   []Cell `json:"cells" yaml:"cells"`
}

// Cell is an immutable rectangle in page coordinate space.
type Cell struct {
	ID     int `json:"id" yaml:"id"`
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Rect returns the cell as an image.Rectangle.
func (c Cell) Rect() image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height)
}

// Bounds returns the page rectangle.
func (p *Preset) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Page.Width, p.Page.Height)
}

// Background parses the page background color. An empty value falls back
// to DefaultBackground; anything else must be a hex color (#rgb or
// #rrggbb) or an SVG 1.1 color name.
func (p *Preset) Background() (color.RGBA, error) {
	s := p.Page.BackgroundColor
	if s == "" {
		s = DefaultBackground
	}
	return ParseColor(s)
}

// ParseColor parses a #rgb / #rrggbb hex string or a named SVG color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: unknown color %q", ErrInvalidPreset, s)
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := s[1:]
	var r, g, b uint8
	var err error
	switch len(hex) {
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	default:
		err = fmt.Errorf("length must be 3 or 6 digits")
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: bad hex color %q", ErrInvalidPreset, s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Parse decodes preset data. Format is "json" or "yaml".
func Parse(data []byte, format string) (*Preset, error) {
	var p Preset
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &p)
	case "yaml":
		err = yaml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("unsupported preset format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	return &p, nil
}

// Validate checks the preset and returns non-fatal warnings plus the
// first validation error. Required fields are never default-filled; a
// preset missing geometry must fail here.
func (p *Preset) Validate() ([]string, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: missing required field \"name\"", ErrInvalidPreset)
	}
	if p.Page.Width <= 0 {
		return nil, fmt.Errorf("%w: page width must be positive, got %d", ErrInvalidPreset, p.Page.Width)
	}
	if p.Page.Height <= 0 {
		return nil, fmt.Errorf("%w: page height must be positive, got %d", ErrInvalidPreset, p.Page.Height)
	}
	if _, err := p.Background(); err != nil {
		return nil, err
	}
	if len(p.Layout.Cells) == 0 {
		return nil, fmt.Errorf("%w: layout must define at least one cell", ErrInvalidPreset)
	}

	page := p.Bounds()
	seen := make(map[int]bool, len(p.Layout.Cells))
	for i, cell := range p.Layout.Cells {
		if cell.Width <= 0 || cell.Height <= 0 {
			return nil, fmt.Errorf("%w: cell %d has non-positive size %dx%d",
				ErrInvalidPreset, cell.ID, cell.Width, cell.Height)
		}
		if !cell.Rect().In(page) {
			return nil, fmt.Errorf("%w: cell %d (%v) lies outside the %dx%d page",
				ErrInvalidPreset, cell.ID, cell.Rect(), p.Page.Width, p.Page.Height)
		}
		if seen[cell.ID] {
			return nil, fmt.Errorf("%w: duplicate cell id %d at index %d", ErrInvalidPreset, cell.ID, i)
		}
		seen[cell.ID] = true
	}

	var warnings []string
	if p.Layout.Rows > 0 && p.Layout.Columns > 0 &&
		p.Layout.Rows*p.Layout.Columns != len(p.Layout.Cells) {
		warnings = append(warnings, fmt.Sprintf(
			"layout declares %dx%d grid but defines %d cells; the explicit cell list wins",
			p.Layout.Rows, p.Layout.Columns, len(p.Layout.Cells)))
	}
	return warnings, nil
}

// Load reads and validates a preset file. The format is chosen by file
// extension: .yaml/.yml are YAML, everything else is JSON.
func Load(path string) (*Preset, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	warnings, err := p.Validate()
	if err != nil {
		return nil, nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, warnings, nil
}

// Resolve turns a preset reference into a loaded preset. The reference
// may be a file path, the name of a preset file in searchDir, or the
// name of a built-in preset - tried in that order.
func Resolve(ref, searchDir string) (*Preset, []string, error) {
	if _, err := os.Stat(ref); err == nil {
		return Load(ref)
	}
	if searchDir != "" {
		for _, ext := range []string{".json", ".yaml", ".yml"} {
			path := filepath.Join(searchDir, ref+ext)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}
	}
	if p, err := Builtin(ref); err == nil {
		warnings, verr := p.Validate()
		return p, warnings, verr
	}
	return nil, nil, fmt.Errorf("%w: no preset named %q (searched %s and built-ins %v)",
		ErrInvalidPreset, ref, searchDir, BuiltinNames())
}
