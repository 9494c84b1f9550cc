package analytics

import (
	"testing"
	"time"
)

func TestAggregateSumConservation(t *testing.T) {
	plan := mustPlan(t, RangeToday, time.Time{}, time.Time{})
	bills := []BillRow{
		{ID: "a", FinalAmount: 100, PaymentMode: PaymentCash, CreatedAt: time.Date(2025, 3, 12, 9, 10, 0, 0, time.UTC)},
		{ID: "b", FinalAmount: 50, PaymentMode: PaymentUPI, CreatedAt: time.Date(2025, 3, 12, 9, 40, 0, 0, time.UTC)},
		{ID: "c", FinalAmount: 200, PaymentMode: PaymentOther, CreatedAt: time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)},
	}

	agg := Aggregate(bills, nil, plan)

	var bucketSum float64
	for _, v := range agg.RevenueBuckets {
		bucketSum += v
	}
	if bucketSum != 350 {
		t.Fatalf("bucket sum = %.2f, want 350", bucketSum)
	}
	if agg.TotalSales != 350 {
		t.Fatalf("total sales = %.2f", agg.TotalSales)
	}
	paySum := agg.Payments.Cash + agg.Payments.UPI + agg.Payments.Other
	if paySum != 350 {
		t.Fatalf("payment sum = %.2f", paySum)
	}
	if agg.RevenueBuckets[9] != 150 || agg.RevenueBuckets[14] != 200 {
		t.Fatalf("revenue buckets: 9=%.2f 14=%.2f", agg.RevenueBuckets[9], agg.RevenueBuckets[14])
	}
	if agg.BillCountBuckets[9] != 2 || agg.BillCountBuckets[14] != 1 {
		t.Fatalf("bill count buckets: 9=%.0f 14=%.0f", agg.BillCountBuckets[9], agg.BillCountBuckets[14])
	}
	if agg.BillCount != 3 {
		t.Fatalf("bill count = %d", agg.BillCount)
	}
}

func TestAggregateUnbucketableRowsKeepPaymentTotals(t *testing.T) {
	plan := mustPlan(t, RangeCustom, date(2025, 3, 1), date(2025, 3, 10))
	bills := []BillRow{
		{ID: "in", FinalAmount: 80, PaymentMode: PaymentCash, CreatedAt: date(2025, 3, 5)},
		// Outside the custom span: excluded from buckets, kept in totals.
		{ID: "out", FinalAmount: 20, PaymentMode: PaymentCash, CreatedAt: date(2025, 2, 20)},
	}

	agg := Aggregate(bills, nil, plan)

	var bucketSum float64
	for _, v := range agg.RevenueBuckets {
		bucketSum += v
	}
	if bucketSum != 80 {
		t.Fatalf("bucket sum = %.2f, want 80", bucketSum)
	}
	if agg.Payments.Cash != 100 {
		t.Fatalf("cash total = %.2f, want 100", agg.Payments.Cash)
	}
	if agg.TotalSales != 100 {
		t.Fatalf("total sales = %.2f, want 100", agg.TotalSales)
	}
}

func TestAggregateUnknownPaymentModeCountsAsOther(t *testing.T) {
	plan := mustPlan(t, RangeToday, time.Time{}, time.Time{})
	bills := []BillRow{
		{ID: "x", FinalAmount: 40, PaymentMode: "CARD", CreatedAt: time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)},
	}
	agg := Aggregate(bills, nil, plan)
	if agg.Payments.Other != 40 {
		t.Fatalf("other total = %.2f", agg.Payments.Other)
	}
}

func TestAggregateProductsKeepInsertionOrder(t *testing.T) {
	plan := mustPlan(t, RangeToday, time.Time{}, time.Time{})
	ts := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	items := []LineItemRow{
		{ProductName: "Chai", Quantity: 2, Price: 10, CreatedAt: ts},
		{ProductName: "Samosa", Quantity: 1, Price: 15, CreatedAt: ts},
		{ProductName: "Chai", Quantity: 3, Price: 10, CreatedAt: ts},
	}

	agg := Aggregate(nil, items, plan)

	if len(agg.Products) != 2 {
		t.Fatalf("products = %d", len(agg.Products))
	}
	if agg.Products[0].Name != "Chai" || agg.Products[1].Name != "Samosa" {
		t.Fatalf("order: %q, %q", agg.Products[0].Name, agg.Products[1].Name)
	}
	if agg.Products[0].Total != 5 {
		t.Fatalf("chai total = %.2f", agg.Products[0].Total)
	}
	if agg.Products[0].Buckets[10] != 5 {
		t.Fatalf("chai bucket 10 = %.2f", agg.Products[0].Buckets[10])
	}
}

func TestAggregateEmptyRowsYieldZeroFilledBuckets(t *testing.T) {
	plan := mustPlan(t, RangeWeek, time.Time{}, time.Time{})
	agg := Aggregate(nil, nil, plan)
	if len(agg.RevenueBuckets) != 7 || len(agg.BillCountBuckets) != 7 {
		t.Fatalf("bucket lengths: %d, %d", len(agg.RevenueBuckets), len(agg.BillCountBuckets))
	}
	for i, v := range agg.RevenueBuckets {
		if v != 0 {
			t.Fatalf("bucket %d = %.2f", i, v)
		}
	}
	if agg.Products != nil {
		t.Fatalf("products = %v", agg.Products)
	}
}
