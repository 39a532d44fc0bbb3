package cpih

import "time"

// IndexRecord is one published monthly snapshot of year-over-year CPIH
// percentages: one value per budget category plus the all-category headline
// aggregate. Records are immutable once published.
type IndexRecord struct {
	Date     time.Time
	Values   map[Category]float64
	Headline float64
}

// Value returns the year-over-year percentage for a category
func (r *IndexRecord) Value(c Category) (float64, bool) {
	v, ok := r.Values[c]
	return v, ok
}

// MonthLabel renders the record's month the way it is shown to users,
// e.g. "Mar 2025".
func (r *IndexRecord) MonthLabel() string {
	return r.Date.Format("Jan 2006")
}
