// Package aggregate holds the pure functions behind every dashboard figure. Nothing here
// performs I/O or reads the clock; callers pass the anchor month explicitly.
package aggregate

import (
	"math"
	"slices"
	"time"
)

// UnknownCategory labels items whose category key is empty.
const UnknownCategory = "Unknown"

// Percent returns round(100 * numerator / max(denominator, 1)). A zero denominator yields 0.
func Percent(numerator, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(numerator) / float64(denominator)))
}

// Clamp bounds v to [0, 100].
func Clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// Ratio is a numerator over a denominator, kept unreduced so it can be pooled later.
type Ratio struct {
	Matched int
	Total   int
}

func (r Ratio) Percent() int {
	return Percent(r.Matched, r.Total)
}

// Rate counts the items matching pred.
func Rate[T any](items []T, pred func(T) bool) Ratio {
	r := Ratio{Total: len(items)}
	for _, item := range items {
		if pred(item) {
			r.Matched++
		}
	}
	return r
}

// Where returns the items matching pred, in order.
func Where[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Bucket is one slice of a distribution chart.
type Bucket struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

// Tally counts items per category. order lists categories by first appearance, after any
// predeclared categories, and includes zero counts for predeclared ones.
func Tally[T any](items []T, key func(T) string, predeclared ...string) (order []string, counts map[string]int) {
	counts = make(map[string]int, len(predeclared))
	for _, c := range predeclared {
		if _, seen := counts[c]; !seen {
			counts[c] = 0
			order = append(order, c)
		}
	}
	for _, item := range items {
		c := key(item)
		if c == "" {
			c = UnknownCategory
		}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}
	return order, counts
}

// Distribution groups items by key. Percentages are relative to len(items); zero-count
// categories are dropped.
func Distribution[T any](items []T, key func(T) string, predeclared ...string) []Bucket {
	order, counts := Tally(items, key, predeclared...)
	buckets := make([]Bucket, 0, len(order))
	for _, c := range order {
		n := counts[c]
		if n == 0 {
			continue
		}
		buckets = append(buckets, Bucket{
			Category: c,
			Count:    n,
			Percent:  Percent(n, len(items)),
		})
	}
	return buckets
}

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Key formats the month as YYYY-MM.
func (m Month) Key() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Label is the short month name used on chart axes.
func (m Month) Label() string {
	return m.Month.String()[:3]
}

// LastMonths lists the n months ending at anchor's month, oldest first.
func LastMonths(anchor time.Time, n int) []Month {
	if n <= 0 {
		return []Month{}
	}
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	months := make([]Month, n)
	for i := range months {
		months[i] = MonthOf(first.AddDate(0, i, 0))
	}
	return months
}

// BucketByMonth splits items across months. The result always has len(months) entries;
// items outside the window, or without a date, are dropped.
func BucketByMonth[T any](items []T, at func(T) (time.Time, bool), months []Month) [][]T {
	index := make(map[Month]int, len(months))
	for i, m := range months {
		index[m] = i
	}
	buckets := make([][]T, len(months))
	for i := range buckets {
		buckets[i] = []T{}
	}
	for _, item := range items {
		t, ok := at(item)
		if !ok {
			continue
		}
		if i, found := index[MonthOf(t)]; found {
			buckets[i] = append(buckets[i], item)
		}
	}
	return buckets
}

// Weighting selects how member ratios combine into a population score.
type Weighting string

const (
	// WeightEqual averages member percentages, every member counting once.
	WeightEqual Weighting = "equal"
	// WeightVolume weights members by their denominators, which is the pooled rate.
	WeightVolume Weighting = "volume"
)

func ParseWeighting(s string) (Weighting, bool) {
	switch Weighting(s) {
	case "", WeightEqual:
		return WeightEqual, true
	case WeightVolume:
		return WeightVolume, true
	}
	return "", false
}

// Average combines per-member ratios into one clamped, rounded percentage.
func Average(ratios []Ratio, w Weighting) int {
	if len(ratios) == 0 {
		return 0
	}
	var sum, weights float64
	for _, r := range ratios {
		switch w {
		case WeightVolume:
			sum += float64(r.Matched)
			weights += float64(r.Total)
		default:
			sum += float64(r.Percent())
			weights++
		}
	}
	if weights == 0 {
		return 0
	}
	if w == WeightVolume {
		return int(math.Round(Clamp(100 * sum / weights)))
	}
	return int(math.Round(Clamp(sum / weights)))
}

// TopN sorts a copy of items by score, highest first, keeping input order on ties, and
// truncates to n.
func TopN[T any](items []T, score func(T) float64, n int) []T {
	if n <= 0 {
		return []T{}
	}
	type scored struct {
		item  T
		score float64
	}
	ranked := make([]scored, len(items))
	for i, item := range items {
		ranked[i] = scored{item: item, score: score(item)}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}
