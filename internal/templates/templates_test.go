package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

func TestGenerateRowMajorFullGrid(t *testing.T) {
	tpl := Generate(Preset{Name: "tiny", Rows: 2, Columns: 3})
	require.Len(t, tpl.Seats, 6)
	assert.Equal(t, model.TemplateSeat{Type: model.SeatRegular, Row: 0, Column: 0}, tpl.Seats[0])
	assert.Equal(t, model.TemplateSeat{Type: model.SeatRegular, Row: 0, Column: 2}, tpl.Seats[2])
	assert.Equal(t, model.TemplateSeat{Type: model.SeatRegular, Row: 1, Column: 0}, tpl.Seats[3])

	seen := map[[2]int]bool{}
	for _, s := range tpl.Seats {
		key := [2]int{s.Row, s.Column}
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	c := NewCatalog()
	a, ok := c.Lookup("standard-theater")
	require.True(t, ok)
	b, _ := c.Lookup("standard-theater")
	assert.Equal(t, a, b)
}

func TestStandardTheaterBands(t *testing.T) {
	tpl, ok := NewCatalog().Lookup("standard-theater")
	require.True(t, ok)
	assert.Equal(t, 12*16, len(tpl.Seats))
	tier := func(row int) model.SeatType { return tpl.Seats[row*16].Type }
	assert.Equal(t, model.SeatVIP, tier(0))
	assert.Equal(t, model.SeatVIP, tier(1))
	assert.Equal(t, model.SeatPremium, tier(2))
	assert.Equal(t, model.SeatPremium, tier(3))
	assert.Equal(t, model.SeatRegular, tier(4))
	assert.Equal(t, model.SeatRegular, tier(11))
}

func TestBandRuleAisles(t *testing.T) {
	rule := BandRule([]Band{{Type: model.SeatVIP, Rows: 1}}, model.SeatRegular, 2)
	assert.Equal(t, model.SeatVIP, rule(0, 0))
	assert.Equal(t, model.SeatUnavailable, rule(0, 2))
	assert.Equal(t, model.SeatRegular, rule(5, 1))
}

func TestSpecPreset(t *testing.T) {
	p, err := Spec{
		Name:    "balcony",
		Rows:    3,
		Columns: 4,
		Bands:   []Band{{Type: "Premium", Rows: 1}},
		Aisles:  []int{0},
	}.Preset()
	require.NoError(t, err)
	tpl := Generate(p)
	assert.Equal(t, model.SeatUnavailable, tpl.Seats[0].Type)
	assert.Equal(t, model.SeatPremium, tpl.Seats[1].Type)
	assert.Equal(t, model.SeatRegular, tpl.Seats[5].Type)

	_, err = Spec{Name: "bad", Rows: 0, Columns: 1}.Preset()
	assert.Error(t, err)
	_, err = Spec{Name: "bad", Rows: 1, Columns: 1, Fallback: "box"}.Preset()
	assert.Error(t, err)
	_, err = Spec{Rows: 1, Columns: 1}.Preset()
	assert.Error(t, err)
}

func TestCatalogRegisterAndList(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.RegisterSpecs([]Spec{{Name: "aaa-first", Rows: 1, Columns: 2}}))
	list := c.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "aaa-first", list[0].Name)
	_, ok := c.Lookup("missing")
	assert.False(t, ok)
}
