package editor

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// PriceInput is a raw price field from the setup form.  It accepts either
// a JSON number or a JSON string so that non-numeric input reaches
// validation instead of failing at decode time.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*p = ""
		return nil
	}
	if uq, err := strconv.Unquote(s); err == nil {
		s = uq
	}
	*p = PriceInput(strings.TrimSpace(s))
	return nil
}

// SetupForm is the operator input used to start a new layout.
type SetupForm struct {
	Name     string `json:"name"`
	Template string `json:"template"`
	Prices   struct {
		Regular PriceInput `json:"regular"`
		Premium PriceInput `json:"premium"`
		VIP     PriceInput `json:"vip"`
	} `json:"prices"`
}

// Setup is a validated SetupForm.
type Setup struct {
	Name     string
	Template string
	Prices   model.SeatPrice
}

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "invalid setup: " + strings.Join(parts, "; ")
}

// Parse validates the form.  Every price must be a number strictly greater
// than zero and the name must not be blank.  On failure the returned error
// is a FieldErrors.
func (f SetupForm) Parse() (Setup, error) {
	errs := FieldErrors{}
	out := Setup{Name: strings.TrimSpace(f.Name), Template: strings.TrimSpace(f.Template)}
	if out.Name == "" {
		errs["name"] = "name is required"
	}
	out.Prices.Regular = parsePrice(errs, "prices.regular", f.Prices.Regular)
	out.Prices.Premium = parsePrice(errs, "prices.premium", f.Prices.Premium)
	out.Prices.VIP = parsePrice(errs, "prices.vip", f.Prices.VIP)
	if len(errs) > 0 {
		return Setup{}, errs
	}
	return out, nil
}

func parsePrice(errs FieldErrors, field string, raw PriceInput) float64 {
	if raw == "" {
		errs[field] = "price is required"
		return 0
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		errs[field] = "price must be a number"
		return 0
	}
	if v <= 0 {
		errs[field] = "price must be greater than zero"
		return 0
	}
	return v
}
