package ports

import "context"

// MonthlySales is one bucket of the trailing 12-month sales series.
type MonthlySales struct {
	Month   string  `json:"month"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// ProductSales is one slice of the per-product sales distribution.
type ProductSales struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Revenue float64 `json:"revenue"`
}

// DashboardSummary aggregates an entrepreneur's listings for charting.
type DashboardSummary struct {
	TotalProducts           int            `json:"total_products"`
	ActiveListing           int            `json:"active_listing"`
	DraftListing            int            `json:"draft_listing"`
	SoldProducts            int            `json:"sold_products"`
	TotalRevenue            float64        `json:"total_revenue"`
	CurrentMonthRevenue     float64        `json:"current_month_revenue"`
	PrevMonthRevenue        float64        `json:"prev_month_revenue"`
	RevenueChangePercentage float64        `json:"revenue_change_percentage"`
	MonthlySales            []MonthlySales `json:"monthly_sales"`
	ProductDistribution     []ProductSales `json:"product_distribution"`
}

// DashboardService computes sales summaries for an owner's listings.
type DashboardService interface {
	Summary(ctx context.Context, ownerID string) (*DashboardSummary, error)
}
