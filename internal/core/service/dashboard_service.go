package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// SummaryCache abstracts the dashboard cache (Redis). A miss is reported as
// (nil, nil); cache failures degrade to recomputation.
type SummaryCache interface {
	Get(ctx context.Context, ownerID string) (*ports.DashboardSummary, error)
	Set(ctx context.Context, ownerID string, summary *ports.DashboardSummary) error
}

type dashboardService struct {
	productRepo ports.ProductRepository
	cache       SummaryCache
	now         func() time.Time
	log         zerolog.Logger
}

// NewDashboardService returns a DashboardService. cache may be nil, in which
// case every call recomputes.
func NewDashboardService(productRepo ports.ProductRepository, cache SummaryCache, log zerolog.Logger) ports.DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		cache:       cache,
		now:         func() time.Time { return time.Now().UTC() },
		log:         log,
	}
}

// Summary aggregates the owner's listings into dashboard figures. Sold-out
// listings count as sales; the sale date is the listing's last update.
func (s *dashboardService) Summary(ctx context.Context, ownerID string) (*ports.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, ownerID)
		if err != nil {
			s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("dashboard cache read failed, recomputing")
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := s.productRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := s.aggregate(products)

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, summary); err != nil {
			s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("dashboard cache write failed")
		}
	}

	return summary, nil
}

func (s *dashboardService) aggregate(products []*domain.Product) *ports.DashboardSummary {
	summary := &ports.DashboardSummary{
		TotalProducts: len(products),
		MonthlySales:  make([]ports.MonthlySales, 0, 12),
	}

	var sold []*domain.Product
	for _, p := range products {
		switch p.Status {
		case domain.StatusActive:
			summary.ActiveListing++
		case domain.StatusDraft:
			summary.DraftListing++
		case domain.StatusSoldOut:
			sold = append(sold, p)
		}
	}
	summary.SoldProducts = len(sold)

	for _, p := range sold {
		summary.TotalRevenue += p.Price
	}

	now := s.now()
	// Anchor to the first of the month so AddDate arithmetic never skips a
	// month on the 29th-31st.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	curYear, curMonth := monthStart.Year(), monthStart.Month()
	prev := monthStart.AddDate(0, -1, 0)
	prevYear, prevMonth := prev.Year(), prev.Month()

	for _, p := range sold {
		y, m := p.UpdatedAt.Year(), p.UpdatedAt.Month()
		if y == curYear && m == curMonth {
			summary.CurrentMonthRevenue += p.Price
		}
		if y == prevYear && m == prevMonth {
			summary.PrevMonthRevenue += p.Price
		}
	}

	if summary.PrevMonthRevenue == 0 {
		summary.RevenueChangePercentage = 100
	} else {
		summary.RevenueChangePercentage = (summary.CurrentMonthRevenue - summary.PrevMonthRevenue) / summary.PrevMonthRevenue * 100
	}

	// Trailing 12 months, oldest first.
	for i := 11; i >= 0; i-- {
		bucket := monthStart.AddDate(0, -i, 0)
		y, m := bucket.Year(), bucket.Month()

		var count int
		var revenue float64
		for _, p := range sold {
			if p.UpdatedAt.Year() == y && p.UpdatedAt.Month() == m {
				count++
				revenue += p.Price
			}
		}

		summary.MonthlySales = append(summary.MonthlySales, ports.MonthlySales{
			Month:   bucket.Format("Jan"),
			Sales:   count,
			Revenue: revenue,
		})
	}

	byName := make(map[string]*ports.ProductSales)
	for _, p := range sold {
		entry, ok := byName[p.Name]
		if !ok {
			entry = &ports.ProductSales{Name: p.Name}
			byName[p.Name] = entry
		}
		entry.Value++
		entry.Revenue += p.Price
	}

	distribution := make([]ports.ProductSales, 0, len(byName))
	for _, entry := range byName {
		distribution = append(distribution, *entry)
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Value != distribution[j].Value {
			return distribution[i].Value > distribution[j].Value
		}
		return distribution[i].Name < distribution[j].Name
	})
	summary.ProductDistribution = distribution

	return summary
}
