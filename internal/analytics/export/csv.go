// Package export renders chart snapshots into downloadable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dukaan-pos/dukaan-pos/internal/analytics"
)

// WriteCSV streams the bucketed series of a chart snapshot as CSV.
// One row per label with the four shared series, then a blank line,
// the payment split, and the top sellers.
func WriteCSV(w io.Writer, data *analytics.ChartData) error {
	cw := csv.NewWriter(w)

	header := []string{"label", "revenue", "cumulative_revenue", "bills", "cumulative_bills"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, label := range data.Labels {
		row := []string{
			label,
			money(at(data.RevenueVelocity, i)),
			money(at(data.CumulativeRevenue, i)),
			strconv.Itoa(int(at(data.BillVelocity, i))),
			strconv.Itoa(int(at(data.CumulativeBills, i))),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write(nil); err != nil {
		return err
	}
	payments := [][]string{
		{"payment_mode", "amount"},
		{"CASH", money(data.Payments.Cash)},
		{"UPI", money(data.Payments.UPI)},
		{"OTHER", money(data.Payments.Other)},
	}
	for _, row := range payments {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write(nil); err != nil {
		return err
	}
	if err := cw.Write([]string{"top_seller", "quantity"}); err != nil {
		return err
	}
	for _, seller := range data.TopSellers {
		if err := cw.Write([]string{seller.Name, money(seller.Quantity)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func at(series []float64, i int) float64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	return series[i]
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
