/*
aggregate.go - On-demand KPI computation over collection snapshots

PURPOSE:
  Derives summary statistics (counts by status/category, monetary sums,
  ratios) from an immutable snapshot at call time. Nothing is cached or
  incrementally maintained: collections are small (hundreds of records)
  and recomputation on every call is the expected cost model.

NUMERIC SEMANTICS:
  Ratios are 0.0 when the denominator is 0 - never a divide-by-zero fault.
  Percentages are plain floats and are NOT clamped here; display-level
  clamping is the caller's concern via ClampPercent.
*/
package lifecycle

// CountBy partitions items by key and counts each partition.
func CountBy[E any, K comparable](items []E, key func(E) K) map[K]int {
	counts := make(map[K]int)
	for _, e := range items {
		counts[key(e)]++
	}
	return counts
}

// CountWhere counts the items satisfying the predicate.
func CountWhere[E any](items []E, pred func(E) bool) int {
	n := 0
	for _, e := range items {
		if pred(e) {
			n++
		}
	}
	return n
}

// SumBy totals a numeric projection of each item.
func SumBy[E any](items []E, value func(E) float64) float64 {
	total := 0.0
	for _, e := range items {
		total += value(e)
	}
	return total
}

// SumMoney totals a Money projection in decimal, avoiding float drift.
func SumMoney[E any](items []E, value func(E) Money) Money {
	total := ZeroMoney(DefaultCurrency)
	for i, e := range items {
		m := value(e)
		if i == 0 {
			total.Currency = m.Currency
		}
		total = total.Add(m)
	}
	return total
}

// Ratio returns numerator/denominator, 0.0 when the denominator is 0.
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	return numerator / denominator
}

// Percent returns numerator/denominator as a percentage, 0.0 when the
// denominator is 0.
func Percent(numerator, denominator float64) float64 {
	return Ratio(numerator, denominator) * 100.0
}

// ClampPercent bounds a percentage to [0, 100] for display (progress bars).
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
