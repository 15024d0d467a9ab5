package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-backend/internal/models"
	"travel-backend/internal/timeutil"
)

type fakeDashboardLeads struct {
	today, month int
	active       int
	byType       map[models.InquiryType]int
	byDay        map[time.Time]int
	recent       []models.InquirySummary
	failActive   bool
}

func (f *fakeDashboardLeads) CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error) {
	if cutoff.Day() == 1 && cutoff.Hour() == 0 {
		return f.month, nil
	}
	return f.today, nil
}

func (f *fakeDashboardLeads) CountActive(ctx context.Context) (int, error) {
	if f.failActive {
		return 0, errors.New("connection refused")
	}
	return f.active, nil
}

func (f *fakeDashboardLeads) CountByType(ctx context.Context) (map[models.InquiryType]int, error) {
	return f.byType, nil
}

func (f *fakeDashboardLeads) CountByDaySince(ctx context.Context, cutoff time.Time) (map[time.Time]int, error) {
	return f.byDay, nil
}

func (f *fakeDashboardLeads) RecentActive(ctx context.Context, limit int) ([]models.InquirySummary, error) {
	return f.recent, nil
}

type fakeDashboardBookings struct {
	created   int
	confirmed int
	agreed    float64
}

func (f *fakeDashboardBookings) CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error) {
	return f.created, nil
}

func (f *fakeDashboardBookings) CountConfirmed(ctx context.Context) (int, error) {
	return f.confirmed, nil
}

func (f *fakeDashboardBookings) ConfirmedTotalAmount(ctx context.Context) (float64, error) {
	return f.agreed, nil
}

type fakeDashboardPayments struct {
	collected float64
	monthly   map[time.Time]float64
}

func (f *fakeDashboardPayments) TotalCollected(ctx context.Context) (float64, error) {
	return f.collected, nil
}

func (f *fakeDashboardPayments) MonthlyTotalsSince(ctx context.Context, cutoff time.Time) (map[time.Time]float64, error) {
	return f.monthly, nil
}

type fakeCounter struct{ n int }

func (f fakeCounter) CountActive(ctx context.Context) (int, error) { return f.n, nil }
func (f fakeCounter) CountOpen(ctx context.Context) (int, error)   { return f.n, nil }

func newTestDashboard(leads *fakeDashboardLeads, bookings *fakeDashboardBookings, payments *fakeDashboardPayments) *DashboardService {
	svc := NewDashboardService(leads, bookings, payments, fakeCounter{n: 120}, fakeCounter{n: 3})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 30, 0, 0, timeutil.IST)
	}
	return svc
}

func TestDashboardConversionRate(t *testing.T) {
	cases := []struct {
		name      string
		active    int
		confirmed int
		want      float64
	}{
		{"zero leads", 0, 5, 0},
		{"exact half", 40, 20, 50.0},
		{"one decimal rounding", 3, 1, 33.3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			leads := &fakeDashboardLeads{active: tc.active}
			bookings := &fakeDashboardBookings{confirmed: tc.confirmed}
			svc := newTestDashboard(leads, bookings, &fakeDashboardPayments{})

			bundle := svc.GetDashboard(context.Background())
			if bundle.ConversionRate != tc.want {
				t.Fatalf("conversion rate = %v, want %v", bundle.ConversionRate, tc.want)
			}
		})
	}
}

func TestDashboardRevenueSeriesZeroSeeded(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, timeutil.IST)
	monthly := map[time.Time]float64{
		time.Date(2026, 1, 1, 0, 0, 0, 0, timeutil.IST): 42000,
		time.Date(2026, 3, 1, 0, 0, 0, 0, timeutil.IST): 15000,
	}
	svc := newTestDashboard(&fakeDashboardLeads{}, &fakeDashboardBookings{}, &fakeDashboardPayments{monthly: monthly})

	bundle := svc.GetDashboard(context.Background())
	if len(bundle.RevenueData) != revenueMonths {
		t.Fatalf("expected %d revenue buckets, got %d", revenueMonths, len(bundle.RevenueData))
	}

	// Chronological, ending with the current month.
	wantLabels := make([]string, 0, revenueMonths)
	for _, start := range timeutil.MonthStartsBack(now, revenueMonths) {
		wantLabels = append(wantLabels, timeutil.MonthLabel(start))
	}
	for i, p := range bundle.RevenueData {
		if p.Month != wantLabels[i] {
			t.Fatalf("bucket %d label = %q, want %q", i, p.Month, wantLabels[i])
		}
	}

	byMonth := make(map[string]float64)
	for _, p := range bundle.RevenueData {
		byMonth[p.Month] = p.Total
	}
	if byMonth["Jan 2026"] != 42000 || byMonth["Mar 2026"] != 15000 {
		t.Fatalf("unexpected totals: %+v", byMonth)
	}
	if byMonth["Feb 2026"] != 0 {
		t.Fatalf("empty month must be zero, got %v", byMonth["Feb 2026"])
	}
}

func TestDashboardTrendSeries(t *testing.T) {
	byDay := map[time.Time]int{
		time.Date(2026, 3, 15, 0, 0, 0, 0, timeutil.IST): 4,
		time.Date(2026, 3, 1, 0, 0, 0, 0, timeutil.IST):  2,
	}
	svc := newTestDashboard(&fakeDashboardLeads{byDay: byDay}, &fakeDashboardBookings{}, &fakeDashboardPayments{})

	bundle := svc.GetDashboard(context.Background())
	if len(bundle.ChartData) != trendDays {
		t.Fatalf("expected %d trend buckets, got %d", trendDays, len(bundle.ChartData))
	}
	last := bundle.ChartData[len(bundle.ChartData)-1]
	if last.Day != "15 Mar" || last.Count != 4 {
		t.Fatalf("last bucket = %+v, want 15 Mar / 4", last)
	}
}

func TestDashboardSourceSeriesHumanizedAndSorted(t *testing.T) {
	byType := map[models.InquiryType]int{
		models.TypeGeneral:        3,
		models.TypePlanMyTrip:     9,
		models.TypePackageBooking: 3,
	}
	svc := newTestDashboard(&fakeDashboardLeads{byType: byType}, &fakeDashboardBookings{}, &fakeDashboardPayments{})

	bundle := svc.GetDashboard(context.Background())
	if len(bundle.SourceData) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(bundle.SourceData))
	}
	if bundle.SourceData[0].Source != "Plan My Trip" || bundle.SourceData[0].Count != 9 {
		t.Fatalf("largest source first, got %+v", bundle.SourceData[0])
	}
	// Ties break alphabetically.
	if bundle.SourceData[1].Source != "General" || bundle.SourceData[2].Source != "Package Booking" {
		t.Fatalf("unexpected tie order: %+v", bundle.SourceData)
	}
}

func TestDashboardBalanceAndTiles(t *testing.T) {
	svc := newTestDashboard(
		&fakeDashboardLeads{},
		&fakeDashboardBookings{agreed: 300000},
		&fakeDashboardPayments{collected: 120000},
	)

	bundle := svc.GetDashboard(context.Background())
	if bundle.PaymentBalance != 180000 {
		t.Fatalf("payment balance = %v, want 180000", bundle.PaymentBalance)
	}
	if bundle.Subscribers != 120 || bundle.OpenJobs != 3 {
		t.Fatalf("tiles = %d subscribers / %d jobs", bundle.Subscribers, bundle.OpenJobs)
	}
}

func TestDashboardDegradesToZeroBundle(t *testing.T) {
	svc := newTestDashboard(&fakeDashboardLeads{failActive: true}, &fakeDashboardBookings{}, &fakeDashboardPayments{})

	bundle := svc.GetDashboard(context.Background())
	if bundle == nil {
		t.Fatal("dashboard must always return a bundle")
	}
	if bundle.ConversionRate != 0 || bundle.LeadsToday != 0 {
		t.Fatalf("zero bundle expected, got %+v", bundle)
	}
	if len(bundle.RevenueData) != revenueMonths {
		t.Fatalf("zero bundle must keep %d revenue buckets, got %d", revenueMonths, len(bundle.RevenueData))
	}
	if len(bundle.ChartData) != trendDays {
		t.Fatalf("zero bundle must keep %d trend buckets, got %d", trendDays, len(bundle.ChartData))
	}
	if bundle.RecentActivity == nil || bundle.SourceData == nil {
		t.Fatal("zero bundle slices must be empty, not nil")
	}
}
