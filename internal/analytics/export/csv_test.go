package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/dukaan-pos/dukaan-pos/internal/analytics"
)

func sampleChartData() *analytics.ChartData {
	return &analytics.ChartData{
		Selector:          analytics.RangeToday,
		Labels:            []string{"12 AM", "1 AM", "2 AM"},
		Payments:          analytics.PaymentTotals{Cash: 150, UPI: 50, Other: 0},
		RevenueVelocity:   []float64{100, 0, 100},
		CumulativeRevenue: []float64{100, 100, 200},
		BillVelocity:      []float64{1, 0, 1},
		CumulativeBills:   []float64{1, 1, 2},
		TopSellers: []analytics.TopSeller{
			{Name: "Chai", Quantity: 12},
		},
		GeneratedAt: time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC),
	}
}

func TestWriteCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleChartData()); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "label,revenue,cumulative_revenue,bills,cumulative_bills" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "12 AM,100.00,100.00,1,1" {
		t.Fatalf("first row = %q", lines[1])
	}
	if !strings.Contains(out, "CASH,150.00") {
		t.Fatalf("missing cash row: %s", out)
	}
	if !strings.Contains(out, "Chai,12.00") {
		t.Fatalf("missing top seller row: %s", out)
	}
}

func TestWriteCSVParsesBack(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleChartData()); err != nil {
		t.Fatalf("write: %v", err)
	}

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	// Header + 3 label rows + payment header + 3 modes + seller header + 1 seller.
	if len(records) != 9 {
		t.Fatalf("records = %d", len(records))
	}
}

func TestWriteCSVHandlesShortSeries(t *testing.T) {
	data := sampleChartData()
	// Velocity shorter than labels must not panic; missing cells are zero.
	data.RevenueVelocity = data.RevenueVelocity[:1]

	var buf bytes.Buffer
	if err := WriteCSV(&buf, data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "1 AM,0.00") {
		t.Fatalf("missing zero fill: %s", buf.String())
	}
}
