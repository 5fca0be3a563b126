package models

import "time"

// IndicatorRow maps indicator names (sma_20, rsi, macd_hist, ...) to values
// for one timestamp. Indicators with insufficient lookback at that timestamp
// are absent from the map rather than stored as NaN.
type IndicatorRow struct {
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// Get returns the named indicator value and whether it is defined for this row
func (r IndicatorRow) Get(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// IndicatorMeta carries table-level metadata, set once at computation time
// and never mutated afterward.
type IndicatorMeta struct {
	InsufficientHistory bool `json:"insufficient_history"`
	Observations        int  `json:"observations"`
	MinRequired         int  `json:"min_required"`
}

// IndicatorTable is the output of the indicator engine: rows aligned with a
// subset of the price series timestamps, plus immutable metadata.
type IndicatorTable struct {
	Rows []IndicatorRow `json:"rows"`
	Meta IndicatorMeta  `json:"meta"`
}

// Empty reports whether the table has no rows
func (t *IndicatorTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Latest returns the most recent row and whether the table is non-empty
func (t *IndicatorTable) Latest() (IndicatorRow, bool) {
	if t.Empty() {
		return IndicatorRow{}, false
	}
	return t.Rows[len(t.Rows)-1], true
}
