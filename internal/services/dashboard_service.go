package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"sort"
	"time"

	"travel-backend/internal/cache"
	"travel-backend/internal/models"
	"travel-backend/internal/timeutil"
)

const (
	revenueMonths = 6
	trendDays     = 30
	recentLimit   = 5

	dashboardTTL = 5 * time.Minute
)

// DashboardLeadStore is the lead-side aggregate surface.
type DashboardLeadStore interface {
	CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountByType(ctx context.Context) (map[models.InquiryType]int, error)
	CountByDaySince(ctx context.Context, cutoff time.Time) (map[time.Time]int, error)
	RecentActive(ctx context.Context, limit int) ([]models.InquirySummary, error)
}

// DashboardBookingStore is the booking-side aggregate surface.
type DashboardBookingStore interface {
	CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error)
	CountConfirmed(ctx context.Context) (int, error)
	ConfirmedTotalAmount(ctx context.Context) (float64, error)
}

// DashboardPaymentStore is the payment-side aggregate surface.
type DashboardPaymentStore interface {
	TotalCollected(ctx context.Context) (float64, error)
	MonthlyTotalsSince(ctx context.Context, cutoff time.Time) (map[time.Time]float64, error)
}

// SubscriberCounter and JobCounter feed the marketing tiles.
type SubscriberCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type JobCounter interface {
	CountOpen(ctx context.Context) (int, error)
}

// DashboardService is the aggregation engine. It computes the console's
// summary bundle from the same soft-delete and status scopes the rest of
// the system uses, and never mutates state.
type DashboardService struct {
	leads       DashboardLeadStore
	bookings    DashboardBookingStore
	payments    DashboardPaymentStore
	subscribers SubscriberCounter
	jobs        JobCounter
	now         func() time.Time
}

func NewDashboardService(leads DashboardLeadStore, bookings DashboardBookingStore, payments DashboardPaymentStore, subscribers SubscriberCounter, jobs JobCounter) *DashboardService {
	return &DashboardService{
		leads:       leads,
		bookings:    bookings,
		payments:    payments,
		subscribers: subscribers,
		jobs:        jobs,
		now:         timeutil.Now,
	}
}

// GetDashboard returns the full bundle, served from Redis when fresh. A
// failed computation degrades to a zeroed bundle so the console always
// renders; the error is logged, not surfaced.
func (s *DashboardService) GetDashboard(ctx context.Context) *models.DashboardData {
	if data, ok := cache.GetCached(ctx, cache.DashboardKey); ok {
		var cached models.DashboardData
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached
		}
	}

	bundle, err := s.compute(ctx)
	if err != nil {
		log.Printf("[Dashboard] Aggregate computation failed, serving zeroed bundle: %v", err)
		return s.zeroBundle()
	}

	if payload, err := json.Marshal(bundle); err == nil {
		cache.SetCached(ctx, cache.DashboardKey, payload, dashboardTTL)
	}

	return bundle
}

func (s *DashboardService) compute(ctx context.Context) (*models.DashboardData, error) {
	now := s.now()
	dayStart := timeutil.StartOfDay(now)
	monthStart := timeutil.StartOfMonth(now)

	bundle := &models.DashboardData{}

	var err error
	if bundle.LeadsToday, err = s.leads.CountCreatedSince(ctx, dayStart); err != nil {
		return nil, err
	}
	if bundle.LeadsMonth, err = s.leads.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, err
	}
	if bundle.BookingsToday, err = s.bookings.CountCreatedSince(ctx, dayStart); err != nil {
		return nil, err
	}
	if bundle.BookingsMonth, err = s.bookings.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, err
	}

	// Outstanding balance: agreed totals on live CONFIRMED bookings minus
	// everything collected on live bookings.
	agreed, err := s.bookings.ConfirmedTotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	collected, err := s.payments.TotalCollected(ctx)
	if err != nil {
		return nil, err
	}
	bundle.PaymentBalance = agreed - collected

	// Conversion rate: confirmed bookings over all active inquiries, as a
	// percentage with one decimal. Zero inquiries means zero, not NaN.
	totalLeads, err := s.leads.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.bookings.CountConfirmed(ctx)
	if err != nil {
		return nil, err
	}
	if totalLeads > 0 {
		bundle.ConversionRate = math.Round(float64(confirmed)/float64(totalLeads)*1000) / 10
	}

	if bundle.RevenueData, err = s.revenueSeries(ctx, now); err != nil {
		return nil, err
	}
	if bundle.SourceData, err = s.sourceSeries(ctx); err != nil {
		return nil, err
	}
	if bundle.ChartData, err = s.trendSeries(ctx, now); err != nil {
		return nil, err
	}

	if bundle.RecentActivity, err = s.leads.RecentActive(ctx, recentLimit); err != nil {
		return nil, err
	}
	if bundle.RecentActivity == nil {
		bundle.RecentActivity = []models.InquirySummary{}
	}

	// Marketing tiles are optional collaborators.
	if s.subscribers != nil {
		if bundle.Subscribers, err = s.subscribers.CountActive(ctx); err != nil {
			return nil, err
		}
	}
	if s.jobs != nil {
		if bundle.OpenJobs, err = s.jobs.CountOpen(ctx); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}

// revenueSeries seeds the last six calendar months with zeros and fills in
// collected payment totals, chronologically.
func (s *DashboardService) revenueSeries(ctx context.Context, now time.Time) ([]models.RevenuePoint, error) {
	starts := timeutil.MonthStartsBack(now, revenueMonths)
	totals, err := s.payments.MonthlyTotalsSince(ctx, starts[0])
	if err != nil {
		return nil, err
	}

	points := make([]models.RevenuePoint, 0, revenueMonths)
	for _, start := range starts {
		total := 0.0
		for bucket, sum := range totals {
			if bucket.Year() == start.Year() && bucket.Month() == start.Month() {
				total += sum
			}
		}
		points = append(points, models.RevenuePoint{
			Month: timeutil.MonthLabel(start),
			Total: total,
		})
	}
	return points, nil
}

// sourceSeries humanizes the inquiry-type counts, largest first.
func (s *DashboardService) sourceSeries(ctx context.Context) ([]models.SourcePoint, error) {
	counts, err := s.leads.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]models.SourcePoint, 0, len(counts))
	for t, n := range counts {
		points = append(points, models.SourcePoint{Source: t.Display(), Count: n})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Count != points[j].Count {
			return points[i].Count > points[j].Count
		}
		return points[i].Source < points[j].Source
	})
	return points, nil
}

// trendSeries seeds a 30-day window with zeros and fills in per-day lead
// counts, chronologically.
func (s *DashboardService) trendSeries(ctx context.Context, now time.Time) ([]models.TrendPoint, error) {
	starts := timeutil.DayStartsBack(now, trendDays)
	counts, err := s.leads.CountByDaySince(ctx, starts[0])
	if err != nil {
		return nil, err
	}

	points := make([]models.TrendPoint, 0, trendDays)
	for _, start := range starts {
		count := 0
		for bucket, n := range counts {
			if bucket.Year() == start.Year() && bucket.Month() == start.Month() && bucket.Day() == start.Day() {
				count += n
			}
		}
		points = append(points, models.TrendPoint{
			Day:   timeutil.DayLabel(start),
			Count: count,
		})
	}
	return points, nil
}

// zeroBundle keeps the chart axes populated so the console renders even
// when the store is unreachable.
func (s *DashboardService) zeroBundle() *models.DashboardData {
	now := s.now()

	revenue := make([]models.RevenuePoint, 0, revenueMonths)
	for _, start := range timeutil.MonthStartsBack(now, revenueMonths) {
		revenue = append(revenue, models.RevenuePoint{Month: timeutil.MonthLabel(start)})
	}

	trend := make([]models.TrendPoint, 0, trendDays)
	for _, start := range timeutil.DayStartsBack(now, trendDays) {
		trend = append(trend, models.TrendPoint{Day: timeutil.DayLabel(start)})
	}

	return &models.DashboardData{
		RevenueData:    revenue,
		SourceData:     []models.SourcePoint{},
		ChartData:      trend,
		RecentActivity: []models.InquirySummary{},
	}
}
