package model

// CalendarRow is one day of the imsakiye as delivered by the remote API.
type CalendarRow struct {
	Lunar     string `json:"hicri"`  // "26 Ramazan 1447"
	Solar     string `json:"miladi"` // "15 Mart 2026 Pazar"
	Fajr      string `json:"imsak"`
	Sunrise   string `json:"gunes"`
	Noon      string `json:"ogle"`
	Afternoon string `json:"ikindi"`
	Sunset    string `json:"aksam"`
	Nightfall string `json:"yatsi"`
}

// Valid reports whether the row carries the fields every rendered row needs.
func (r CalendarRow) Valid() bool {
	return r.Lunar != "" && r.Solar != "" && r.Fajr != ""
}

// Cells returns the row in fixed column order.
func (r CalendarRow) Cells() [ColumnCount]string {
	return [ColumnCount]string{
		r.Lunar, r.Solar, r.Fajr, r.Sunrise,
		r.Noon, r.Afternoon, r.Sunset, r.Nightfall,
	}
}

// FestivalPrayer is the payload of the bayram-namazi endpoint.
type FestivalPrayer struct {
	Time string `json:"vakti"`
}

// Selection is the result of one successful calendar fetch. It is replaced
// wholesale on every new fetch.
type Selection struct {
	Country        string
	State          string
	StateCode      string
	City           string
	Rows           []CalendarRow
	FestivalPrayer Optional[string]
}

// Optional carries a value that may legitimately be missing.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}
