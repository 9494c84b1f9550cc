package analytics

import (
	"fmt"
	"testing"
)

func makeProducts(totals ...float64) []ProductSales {
	out := make([]ProductSales, 0, len(totals))
	for i, total := range totals {
		out = append(out, ProductSales{
			Name:    fmt.Sprintf("p%d", i),
			Total:   total,
			Buckets: []float64{total},
		})
	}
	return out
}

func TestSelectTrendProductsUnionSize(t *testing.T) {
	cases := []struct {
		universe int
		want     int
	}{
		{0, 0},
		{3, 3},
		{7, 7},
		{10, 10},
		{25, 10},
	}
	for _, tc := range cases {
		totals := make([]float64, tc.universe)
		for i := range totals {
			totals[i] = float64(i + 1)
		}
		got := SelectTrendProducts(makeProducts(totals...), 5, 1)
		if len(got) != tc.want {
			t.Fatalf("universe %d: selected %d, want %d", tc.universe, len(got), tc.want)
		}
	}
}

func TestSelectTrendProductsColors(t *testing.T) {
	totals := make([]float64, 12)
	for i := range totals {
		totals[i] = float64(100 - i)
	}
	series := SelectTrendProducts(makeProducts(totals...), 5, 1)
	if len(series) != 10 {
		t.Fatalf("selected %d", len(series))
	}
	// Ranked descending: p0..p4 top (bright, best first), then the
	// bottom five least-selling first (dull, combined positions 5..9).
	for i := 0; i < 5; i++ {
		if series[i].Name != fmt.Sprintf("p%d", i) {
			t.Fatalf("top %d = %s", i, series[i].Name)
		}
		if series[i].Color != brightPalette[i] {
			t.Fatalf("top %d color = %s, want %s", i, series[i].Color, brightPalette[i])
		}
	}
	for i := 5; i < 10; i++ {
		wantName := fmt.Sprintf("p%d", 16-i) // p11, p10, p9, p8, p7
		if series[i].Name != wantName {
			t.Fatalf("bottom %d = %s, want %s", i, series[i].Name, wantName)
		}
		if series[i].Color != dullPalette[i] {
			t.Fatalf("bottom %d color = %s, want %s", i, series[i].Color, dullPalette[i])
		}
	}
}

func TestSelectTrendProductsOverlapKeepsBright(t *testing.T) {
	// Universe of 6 with limit 5: ranks 1..4 are in both slices.
	series := SelectTrendProducts(makeProducts(6, 5, 4, 3, 2, 1), 5, 1)
	if len(series) != 6 {
		t.Fatalf("selected %d", len(series))
	}
	for i := 0; i < 5; i++ {
		if series[i].Color != brightPalette[i] {
			t.Fatalf("rank %d should stay bright, got %s", i, series[i].Color)
		}
	}
	// The single bottom-only product sits at combined position 5.
	if series[5].Name != "p5" || series[5].Color != dullPalette[5] {
		t.Fatalf("bottom-only = %s %s, want p5 %s", series[5].Name, series[5].Color, dullPalette[5])
	}
}

func TestSelectTrendProductsStableTies(t *testing.T) {
	products := []ProductSales{
		{Name: "first", Total: 5, Buckets: []float64{5}},
		{Name: "second", Total: 5, Buckets: []float64{5}},
		{Name: "third", Total: 5, Buckets: []float64{5}},
	}
	series := SelectTrendProducts(products, 5, 1)
	if series[0].Name != "first" || series[1].Name != "second" || series[2].Name != "third" {
		t.Fatalf("tie order changed: %s, %s, %s", series[0].Name, series[1].Name, series[2].Name)
	}
}

func TestSelectTrendProductsTrimsBucketsAndCumulates(t *testing.T) {
	products := []ProductSales{
		{Name: "chai", Total: 6, Buckets: []float64{1, 2, 3, 0, 0}},
	}
	series := SelectTrendProducts(products, 5, 3)
	if len(series[0].Buckets) != 3 {
		t.Fatalf("bucket length = %d", len(series[0].Buckets))
	}
	if series[0].Cumulative[2] != 6 {
		t.Fatalf("cumulative end = %.2f", series[0].Cumulative[2])
	}
}

func TestTopSellers(t *testing.T) {
	products := makeProducts(2, 9, 5, 7)
	top := TopSellers(products, 3)
	if len(top) != 3 {
		t.Fatalf("len = %d", len(top))
	}
	if top[0].Name != "p1" || top[1].Name != "p3" || top[2].Name != "p2" {
		t.Fatalf("order: %s, %s, %s", top[0].Name, top[1].Name, top[2].Name)
	}
	if top[0].Quantity != 9 {
		t.Fatalf("top quantity = %.2f", top[0].Quantity)
	}
}

func TestTopSellersFewerProductsThanLimit(t *testing.T) {
	top := TopSellers(makeProducts(1, 2), 3)
	if len(top) != 2 {
		t.Fatalf("len = %d", len(top))
	}
}
