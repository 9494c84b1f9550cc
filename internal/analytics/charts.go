package analytics

import "time"

// topSellerCount caps the best-sellers card.
const topSellerCount = 3

// Summary carries the stat cards shown above the charts.
type Summary struct {
	TotalSales float64 `json:"total_sales"`
	Cash       float64 `json:"cash"`
	UPI        float64 `json:"upi"`
	Other      float64 `json:"other"`
	BillCount  int     `json:"bill_count"`
}

// ChartData is the label-aligned structure handed to the rendering
// layer. All bucketed series share Labels as their category axis;
// Payments is deliberately untrimmed and unbucketed.
type ChartData struct {
	Selector RangeSelector `json:"selector"`
	Labels   []string      `json:"labels"`

	Payments          PaymentTotals        `json:"payments"`
	CumulativeRevenue []float64            `json:"cumulative_revenue"`
	CumulativeBills   []float64            `json:"cumulative_bills"`
	RevenueVelocity   []float64            `json:"revenue_velocity"`
	BillVelocity      []float64            `json:"bill_velocity"`
	ProductTrend      []ProductTrendSeries `json:"product_trend"`

	Summary    Summary     `json:"summary"`
	TopSellers []TopSeller `json:"top_sellers"`

	GeneratedAt time.Time `json:"generated_at"`
}

// BuildChartData assembles the six chart series from one aggregation
// pass. nowIndex comes from the plan's own mapping of the current
// instant, so the trim stays consistent with the bucket fill.
func BuildChartData(plan *Plan, agg Aggregation, nowIndex int, now time.Time) *ChartData {
	labels, cumRevenue, revenue := TrimFuture(plan.Labels, Cumulative(agg.RevenueBuckets), agg.RevenueBuckets, nowIndex)
	_, cumBills, bills := TrimFuture(plan.Labels, Cumulative(agg.BillCountBuckets), agg.BillCountBuckets, nowIndex)

	return &ChartData{
		Selector:          plan.Selector,
		Labels:            labels,
		Payments:          agg.Payments,
		CumulativeRevenue: cumRevenue,
		CumulativeBills:   cumBills,
		RevenueVelocity:   revenue,
		BillVelocity:      bills,
		ProductTrend:      SelectTrendProducts(agg.Products, defaultTrendLimit, len(labels)),
		Summary: Summary{
			TotalSales: agg.TotalSales,
			Cash:       agg.Payments.Cash,
			UPI:        agg.Payments.UPI,
			Other:      agg.Payments.Other,
			BillCount:  agg.BillCount,
		},
		TopSellers:  TopSellers(agg.Products, topSellerCount),
		GeneratedAt: now,
	}
}
