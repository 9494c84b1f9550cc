package analytics

// Cumulative converts a per-bucket array into a running total.
func Cumulative(buckets []float64) []float64 {
	out := make([]float64, len(buckets))
	running := 0.0
	for i, v := range buckets {
		running += v
		out[i] = running
	}
	return out
}

// TrimFuture drops the buckets past the current instant so trend lines
// never show a drop to zero caused by unrealized future periods. The
// bucket holding nowIndex is kept (it may be partial); a negative
// nowIndex means the whole range is in the future and everything is
// trimmed.
func TrimFuture(labels []string, cumulative, raw []float64, nowIndex int) ([]string, []float64, []float64) {
	cut := nowIndex + 1
	if cut < 0 {
		cut = 0
	}
	if cut >= len(labels) {
		return labels, cumulative, raw
	}
	return labels[:cut], cumulative[:cut], raw[:cut]
}
