package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). All calendar
// windowing on the dashboard (today, month, trend buckets) uses IST.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST converts any time to IST
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// ParseInIST parses a time string and returns it in IST
func ParseInIST(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, IST)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns the start of day (00:00:00) in IST for the given time
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// StartOfMonth returns the first instant of the month in IST for the given time
func StartOfMonth(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), 1, 0, 0, 0, 0, IST)
}

// MonthStartsBack returns the first instants of the n calendar months ending
// with the month of t, in chronological order. Used to seed revenue buckets
// so months with no activity still appear as zero.
func MonthStartsBack(t time.Time, n int) []time.Time {
	starts := make([]time.Time, 0, n)
	first := StartOfMonth(t).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		starts = append(starts, first.AddDate(0, i, 0))
	}
	return starts
}

// DayStartsBack returns the starts of the n calendar days ending with the day
// of t (inclusive), in chronological order.
func DayStartsBack(t time.Time, n int) []time.Time {
	starts := make([]time.Time, 0, n)
	first := StartOfDay(t).AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		starts = append(starts, first.AddDate(0, 0, i))
	}
	return starts
}

// MonthLabel formats a month bucket for charts ("Jan 2026")
func MonthLabel(t time.Time) string {
	return t.In(IST).Format("Jan 2006")
}

// DayLabel formats a day bucket for charts ("02 Jan")
func DayLabel(t time.Time) string {
	return t.In(IST).Format("02 Jan")
}

// Common layouts for IST formatting
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
