package models

import "time"

// PriceBar represents OHLCV price data for a single trading period
type PriceBar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// PriceSeries is an ordered-by-time sequence of price bars.
// Timestamps must be strictly increasing.
type PriceSeries []PriceBar

// Closes returns the closing prices in order
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// Returns computes simple period-over-period returns from closing prices.
// The result has len(s)-1 entries; empty series yield an empty slice.
func (s PriceSeries) Returns() []float64 {
	if len(s) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		prev := s[i-1].Close
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, s[i].Close/prev-1)
	}
	return returns
}

// Last returns the most recent bar and whether the series is non-empty
func (s PriceSeries) Last() (PriceBar, bool) {
	if len(s) == 0 {
		return PriceBar{}, false
	}
	return s[len(s)-1], true
}
