package models

// RevenuePoint is one calendar-month bucket of collected payments.
type RevenuePoint struct {
	Month string  `json:"month"` // "Jan 2026"
	Total float64 `json:"total"`
}

// SourcePoint is the inquiry count for one humanized inquiry type.
type SourcePoint struct {
	Source string `json:"source"` // "Package Booking"
	Count  int    `json:"count"`
}

// TrendPoint is the inquiry count for one calendar day of the 30-day trend.
type TrendPoint struct {
	Day   string `json:"day"` // "02 Jan"
	Count int    `json:"count"`
}

// DashboardData is the full aggregate bundle the console dashboard renders.
// A partial read failure degrades to the zero value of this struct rather
// than surfacing an error to the dashboard.
type DashboardData struct {
	LeadsToday     int              `json:"leads_today"`
	LeadsMonth     int              `json:"leads_month"`
	BookingsToday  int              `json:"bookings_today"`
	BookingsMonth  int              `json:"bookings_month"`
	PaymentBalance float64          `json:"payment_balance"`
	ConversionRate float64          `json:"conversion_rate"`
	RevenueData    []RevenuePoint   `json:"revenue_data"`
	SourceData     []SourcePoint    `json:"source_data"`
	ChartData      []TrendPoint     `json:"chart_data"`
	RecentActivity []InquirySummary `json:"recent_activity"`
	Subscribers    int              `json:"subscribers"`
	OpenJobs       int              `json:"open_jobs"`
}
