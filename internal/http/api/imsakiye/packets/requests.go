package packets

// REQUESTS FOR /api/*

type CityRequest struct {
	State string `json:"state"`
	City  string `json:"city"`
}

type CalendarRequest struct {
	State string `json:"state" binding:"required"`
	City  string `json:"city"  binding:"required"`
}

// EditRequest carries the markup of an edited cell or title.
type EditRequest struct {
	HTML string `json:"html"`
}

type PasteRequest struct {
	HTML string `json:"html"`
}

type FontChangeRequest struct {
	Scope    string `json:"scope"    binding:"required"`
	Property string `json:"property" binding:"required"`
	Value    string `json:"value"`
}

type ExportRequest struct {
	Theme string `json:"theme"`
}
