package analytics

import "time"

// Payment modes recorded on bills.
const (
	PaymentCash  = "CASH"
	PaymentUPI   = "UPI"
	PaymentOther = "OTHER"
)

// BillRow is the read contract for one completed bill, scoped by the
// repository to a tenant and time window.
type BillRow struct {
	ID          string
	FinalAmount float64
	PaymentMode string
	CreatedAt   time.Time
}

// LineItemRow is one product line within a bill. ProductName is the
// snapshot taken at sale time, not a live catalog reference.
type LineItemRow struct {
	ProductName string
	Quantity    float64
	Price       float64
	CreatedAt   time.Time
}

// PaymentTotals holds revenue grouped by payment mode over the whole
// filtered row set. These are never bucketed.
type PaymentTotals struct {
	Cash  float64 `json:"cash"`
	UPI   float64 `json:"upi"`
	Other float64 `json:"other"`
}

// ProductSales accumulates one product's quantities across buckets.
// Order of appearance in the row set is preserved so ranking ties stay
// stable.
type ProductSales struct {
	Name    string
	Total   float64
	Buckets []float64
}

// Aggregation is the per-bucket output of one refresh before the
// cumulative transform and future trim are applied.
type Aggregation struct {
	RevenueBuckets   []float64
	BillCountBuckets []float64
	Payments         PaymentTotals
	BillCount        int
	TotalSales       float64
	Products         []ProductSales
}

// Aggregate buckets the raw rows under the plan's index mapping. Rows
// whose timestamp maps outside the plan are dropped from the bucketed
// sums but still count toward the unbucketed payment totals.
func Aggregate(bills []BillRow, items []LineItemRow, plan *Plan) Aggregation {
	agg := Aggregation{
		RevenueBuckets:   make([]float64, plan.BucketCount),
		BillCountBuckets: make([]float64, plan.BucketCount),
		BillCount:        len(bills),
	}

	for _, bill := range bills {
		agg.TotalSales += bill.FinalAmount
		switch bill.PaymentMode {
		case PaymentCash:
			agg.Payments.Cash += bill.FinalAmount
		case PaymentUPI:
			agg.Payments.UPI += bill.FinalAmount
		default:
			agg.Payments.Other += bill.FinalAmount
		}
		if idx, ok := plan.IndexOf(bill.CreatedAt); ok {
			agg.RevenueBuckets[idx] += bill.FinalAmount
			agg.BillCountBuckets[idx]++
		}
	}

	position := make(map[string]int, len(items))
	for _, item := range items {
		pos, seen := position[item.ProductName]
		if !seen {
			pos = len(agg.Products)
			position[item.ProductName] = pos
			agg.Products = append(agg.Products, ProductSales{
				Name:    item.ProductName,
				Buckets: make([]float64, plan.BucketCount),
			})
		}
		agg.Products[pos].Total += item.Quantity
		if idx, ok := plan.IndexOf(item.CreatedAt); ok {
			agg.Products[pos].Buckets[idx] += item.Quantity
		}
	}

	return agg
}
