package analytics

import "sort"

// defaultTrendLimit is how many products each of the top and bottom
// slices contributes to the trend chart.
const defaultTrendLimit = 5

var brightPalette = []string{
	"#EF4444", "#F97316", "#F59E0B", "#10B981", "#3B82F6",
	"#6366F1", "#8B5CF6", "#EC4899", "#14B8A6", "#F43F5E",
}

var dullPalette = []string{
	"#78716c", "#a8a29e", "#d6d3d1", "#9ca3af", "#94a3b8",
	"#64748b", "#475569", "#52525b", "#71717a", "#a1a1aa",
}

// ProductTrendSeries is one selected product's line on the trend chart.
type ProductTrendSeries struct {
	Name          string    `json:"name"`
	TotalQuantity float64   `json:"total_quantity"`
	Buckets       []float64 `json:"buckets"`
	Cumulative    []float64 `json:"cumulative"`
	Color         string    `json:"color"`
}

// SelectTrendProducts ranks products by total quantity sold and picks
// the top and bottom slices for the trend chart. The combined set lists
// the top slice best-selling first, then the bottom-only products
// least-selling first; palette indices follow the combined position.
// When the universe is smaller than twice the limit the slices overlap;
// products appearing in both keep the bright palette. bucketLimit caps
// each series at the trimmed label axis length.
func SelectTrendProducts(products []ProductSales, limit, bucketLimit int) []ProductTrendSeries {
	if limit <= 0 {
		limit = defaultTrendLimit
	}
	if len(products) == 0 {
		return nil
	}

	ranked := make([]ProductSales, len(products))
	copy(ranked, products)
	// Stable keeps first-encountered order for quantity ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	topEnd := limit
	if topEnd > len(ranked) {
		topEnd = len(ranked)
	}
	bottomStart := len(ranked) - limit
	if bottomStart < 0 {
		bottomStart = 0
	}

	series := make([]ProductTrendSeries, 0, topEnd+(len(ranked)-bottomStart))
	build := func(p ProductSales, palette []string) ProductTrendSeries {
		buckets := p.Buckets
		if bucketLimit >= 0 && bucketLimit < len(buckets) {
			buckets = buckets[:bucketLimit]
		}
		return ProductTrendSeries{
			Name:          p.Name,
			TotalQuantity: p.Total,
			Buckets:       buckets,
			Cumulative:    Cumulative(buckets),
			Color:         palette[len(series)%len(palette)],
		}
	}

	for i := 0; i < topEnd; i++ {
		series = append(series, build(ranked[i], brightPalette))
	}
	for i := len(ranked) - 1; i >= bottomStart; i-- {
		if i < topEnd {
			// Already in the top slice; it keeps the bright color.
			continue
		}
		series = append(series, build(ranked[i], dullPalette))
	}
	return series
}

// TopSeller is one entry of the "best sellers" card.
type TopSeller struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// TopSellers returns the best-selling products by quantity, at most n.
func TopSellers(products []ProductSales, n int) []TopSeller {
	ranked := make([]ProductSales, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]TopSeller, 0, n)
	for _, p := range ranked[:n] {
		out = append(out, TopSeller{Name: p.Name, Quantity: p.Total})
	}
	return out
}
