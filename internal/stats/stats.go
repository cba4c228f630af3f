// Package stats derives read-only pricing and occupancy figures from a
// layout.
package stats

import "github.com/iliyamo/seat-layout-editor/internal/model"

// Tier aggregates one seat tier.
type Tier struct {
	Type    model.SeatType `json:"type"`
	Count   int            `json:"count"`
	Price   float64        `json:"price"`
	Revenue float64        `json:"revenue"`
	Share   float64        `json:"share"`
}

// Summary is the full set of figures for a layout.
//
// TotalSeats counts sellable seats (unavailable excluded) while
// OccupiedCells counts every placed seat.  Shares are percentages of
// OccupiedCells.
type Summary struct {
	TotalSeats    int     `json:"total_seats"`
	OccupiedCells int     `json:"occupied_cells"`
	TotalRevenue  float64 `json:"total_revenue"`
	Tiers         []Tier  `json:"tiers"`
}

// Tier returns the entry for t.
func (s Summary) Tier(t model.SeatType) Tier {
	for _, tr := range s.Tiers {
		if tr.Type == t {
			return tr
		}
	}
	return Tier{Type: t}
}

// Calculate aggregates l.  Unavailable seats are priced as regular.
func Calculate(l model.TheaterLayout) Summary {
	counts := make(map[model.SeatType]int, len(model.SeatTypes))
	for _, s := range l.Seats {
		counts[s.Type]++
	}

	sum := Summary{OccupiedCells: len(l.Seats)}
	denom := float64(sum.OccupiedCells)
	if denom == 0 {
		denom = 1
	}
	for _, t := range model.SeatTypes {
		n := counts[t]
		price := l.Prices.For(t)
		tr := Tier{
			Type:    t,
			Count:   n,
			Price:   price,
			Revenue: float64(n) * price,
			Share:   float64(n) / denom * 100,
		}
		if t != model.SeatUnavailable {
			sum.TotalSeats += n
		}
		sum.TotalRevenue += tr.Revenue
		sum.Tiers = append(sum.Tiers, tr)
	}
	return sum
}
