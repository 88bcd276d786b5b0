package model

// CourtRevenue is the revenue of one court over a date range.
type CourtRevenue struct {
	CourtID    uint64 `json:"court_id"`
	CourtName  string `json:"court_name"`
	Bookings   int64  `json:"bookings"`
	TotalCents int64  `json:"total_amount_cents"`
}

// RevenueReport aggregates CONFIRMED and COMPLETED bookings of an owner's
// courts within [StartDate, EndDate].
type RevenueReport struct {
	OwnerID    uint64         `json:"owner_id"`
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date"`
	Courts     []CourtRevenue `json:"courts"`
	Bookings   int64          `json:"bookings"`
	TotalCents int64          `json:"total_amount_cents"`
}

// CourtStatistics counts bookings of a court per status.
type CourtStatistics struct {
	CourtID   uint64           `json:"court_id"`
	CourtName string           `json:"court_name"`
	Total     int64            `json:"total_bookings"`
	ByStatus  map[Status]int64 `json:"by_status"`
}

// DayAvailability describes a court's calendar for a single day.
type DayAvailability struct {
	CourtID uint64     `json:"court_id"`
	Date    string     `json:"date"`
	Hours   Interval   `json:"operating_hours"`
	Booked  []Interval `json:"booked"`
	Free    []Interval `json:"free"`
}
