// Package templates generates canned seat blueprints from named presets.
// Generation is deterministic: every cell of the rows x columns grid is
// visited in row-major order and assigned the tier chosen by the preset's
// rule, so the result never contains duplicates.
package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// Rule picks the tier of a cell.
type Rule func(row, column int) model.SeatType

// Preset is a named generator input.
type Preset struct {
	Name        string
	Description string
	Rows        int
	Columns     int
	Rule        Rule
}

// Band assigns a tier to a run of consecutive rows, counted from the front.
type Band struct {
	Type model.SeatType `yaml:"type" json:"type"`
	Rows int            `yaml:"rows" json:"rows"`
}

// BandRule returns a rule that walks bands from the front row; rows past
// the last band get fallback.  Columns listed in aisles are unavailable.
func BandRule(bands []Band, fallback model.SeatType, aisles ...int) Rule {
	aisle := make(map[int]bool, len(aisles))
	for _, c := range aisles {
		aisle[c] = true
	}
	return func(row, column int) model.SeatType {
		if aisle[column] {
			return model.SeatUnavailable
		}
		start := 0
		for _, b := range bands {
			if row < start+b.Rows {
				return b.Type
			}
			start += b.Rows
		}
		return fallback
	}
}

// Uniform returns a rule assigning t to every cell.
func Uniform(t model.SeatType) Rule {
	return func(int, int) model.SeatType { return t }
}

// Generate expands a preset into a template.
func Generate(p Preset) model.TheaterTemplate {
	rule := p.Rule
	if rule == nil {
		rule = Uniform(model.SeatRegular)
	}
	rows, cols := max(p.Rows, 0), max(p.Columns, 0)
	tpl := model.TheaterTemplate{
		Name:        p.Name,
		Description: p.Description,
		Rows:        rows,
		Columns:     cols,
		Seats:       make([]model.TemplateSeat, 0, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tpl.Seats = append(tpl.Seats, model.TemplateSeat{Type: rule(r, c), Row: r, Column: c})
		}
	}
	return tpl
}

// Spec is the declarative form of a preset, as read from the editor
// settings file.
type Spec struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Rows        int    `yaml:"rows" json:"rows"`
	Columns     int    `yaml:"columns" json:"columns"`
	Bands       []Band `yaml:"bands" json:"bands"`
	Fallback    string `yaml:"fallback" json:"fallback"`
	Aisles      []int  `yaml:"aisles" json:"aisles"`
}

// Preset validates the spec and builds the matching preset.
func (s Spec) Preset() (Preset, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return Preset{}, fmt.Errorf("preset: name is required")
	}
	if s.Rows <= 0 || s.Columns <= 0 {
		return Preset{}, fmt.Errorf("preset %q: rows and columns must be positive", name)
	}
	if s.Rows > model.MaxGridIndex+1 || s.Columns > model.MaxGridIndex+1 {
		return Preset{}, fmt.Errorf("preset %q: at most %d rows and columns", name, model.MaxGridIndex+1)
	}
	fallback := model.SeatRegular
	if s.Fallback != "" {
		t, ok := model.ParseSeatType(s.Fallback)
		if !ok {
			return Preset{}, fmt.Errorf("preset %q: unknown fallback tier %q", name, s.Fallback)
		}
		fallback = t
	}
	bands := make([]Band, 0, len(s.Bands))
	for _, b := range s.Bands {
		t, ok := model.ParseSeatType(string(b.Type))
		if !ok {
			return Preset{}, fmt.Errorf("preset %q: unknown band tier %q", name, b.Type)
		}
		if b.Rows < 0 {
			return Preset{}, fmt.Errorf("preset %q: band rows must not be negative", name)
		}
		bands = append(bands, Band{Type: t, Rows: b.Rows})
	}
	return Preset{
		Name:        name,
		Description: s.Description,
		Rows:        s.Rows,
		Columns:     s.Columns,
		Rule:        BandRule(bands, fallback, s.Aisles...),
	}, nil
}

// Catalog is a set of presets addressed by name.
type Catalog struct {
	presets map[string]Preset
}

// NewCatalog returns a catalog holding the built-in presets.
func NewCatalog() *Catalog {
	c := &Catalog{presets: map[string]Preset{}}
	for _, p := range builtins() {
		c.presets[p.Name] = p
	}
	return c
}

// Register adds or replaces a preset.
func (c *Catalog) Register(p Preset) { c.presets[p.Name] = p }

// RegisterSpecs registers presets read from configuration.
func (c *Catalog) RegisterSpecs(specs []Spec) error {
	for _, s := range specs {
		p, err := s.Preset()
		if err != nil {
			return err
		}
		c.Register(p)
	}
	return nil
}

// Lookup generates the template of a named preset.
func (c *Catalog) Lookup(name string) (model.TheaterTemplate, bool) {
	p, ok := c.presets[name]
	if !ok {
		return model.TheaterTemplate{}, false
	}
	return Generate(p), true
}

// List generates every preset, sorted by name.
func (c *Catalog) List() []model.TheaterTemplate {
	names := make([]string, 0, len(c.presets))
	for n := range c.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]model.TheaterTemplate, 0, len(names))
	for _, n := range names {
		out = append(out, Generate(c.presets[n]))
	}
	return out
}

func builtins() []Preset {
	return []Preset{
		{
			Name:        "small-cinema",
			Description: "8 rows of 10, back two rows premium",
			Rows:        8,
			Columns:     10,
			Rule: func(row, _ int) model.SeatType {
				if row >= 6 {
					return model.SeatPremium
				}
				return model.SeatRegular
			},
		},
		{
			Name:        "standard-theater",
			Description: "12 rows of 16, two VIP rows, two premium rows, rest regular",
			Rows:        12,
			Columns:     16,
			Rule: BandRule([]Band{
				{Type: model.SeatVIP, Rows: 2},
				{Type: model.SeatPremium, Rows: 2},
			}, model.SeatRegular),
		},
		{
			Name:        "center-aisle",
			Description: "10 rows of 13 split by a center aisle, front three rows premium",
			Rows:        10,
			Columns:     13,
			Rule:        BandRule([]Band{{Type: model.SeatPremium, Rows: 3}}, model.SeatRegular, 6),
		},
		{
			Name:        "vip-lounge",
			Description: "4 rows of 6 VIP recliners",
			Rows:        4,
			Columns:     6,
			Rule:        Uniform(model.SeatVIP),
		},
	}
}
