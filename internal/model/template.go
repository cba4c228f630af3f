package model

// TheaterTemplate is a static blueprint used to seed a new layout.
type TheaterTemplate struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Rows        int            `json:"rows"`
	Columns     int            `json:"columns"`
	Seats       []TemplateSeat `json:"seats"`
}

// TemplateSeat is one cell of a template.
type TemplateSeat struct {
	Type   SeatType `json:"type"`
	Row    int      `json:"row"`
	Column int      `json:"column"`
}
