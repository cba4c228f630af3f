package model

import (
	"strconv"
	"strings"
)

// SeatType is the tier of a seat.  It drives pricing and colour coding
// on the rendering surface.
type SeatType string

const (
	SeatRegular     SeatType = "regular"
	SeatPremium     SeatType = "premium"
	SeatVIP         SeatType = "vip"
	SeatUnavailable SeatType = "unavailable"
)

// SeatTypes lists every tier in display order.
var SeatTypes = []SeatType{SeatRegular, SeatPremium, SeatVIP, SeatUnavailable}

// ParseSeatType normalizes a tier name (case and surrounding space are
// ignored).  The boolean is false for unknown tiers.
func ParseSeatType(raw string) (SeatType, bool) {
	t := SeatType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case SeatRegular, SeatPremium, SeatVIP, SeatUnavailable:
		return t, true
	}
	return "", false
}

// Valid reports whether t is one of the known tiers.
func (t SeatType) Valid() bool {
	_, ok := ParseSeatType(string(t))
	return ok
}

// Title returns the capitalized tier name used in saved documents
// (e.g. "Vip", "Regular").
func (t SeatType) Title() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Seat is a single placed seat of a layout.  Number is derived from the
// position and tier and is recomputed whenever either changes.
type Seat struct {
	ID     string   `json:"id"`
	Type   SeatType `json:"type"`
	Row    int      `json:"row"`
	Column int      `json:"column"`
	Number string   `json:"number"`
}

// NewSeat builds a seat and computes its display number.
func NewSeat(id string, t SeatType, row, column int) Seat {
	return Seat{ID: id, Type: t, Row: row, Column: column, Number: SeatNumber(row, column, t)}
}

// SeatNumber returns the display label of a seat.  Unavailable seats are
// labelled U<row*100+column>; every other tier gets <row letter><column+1>.
func SeatNumber(row, column int, t SeatType) string {
	if t == SeatUnavailable {
		return "U" + strconv.Itoa(row*100+column)
	}
	return RowLabel(row) + strconv.Itoa(column+1)
}

// RowLabel converts a zero-based row index to an alphabetical label like
// A, B, ..., Z, AA, AB.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
