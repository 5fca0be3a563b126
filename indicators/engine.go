package indicators

import (
	"math"
	"strconv"

	"investment-company/models"
)

// DefaultWindows are the lookback windows used when none are configured
var DefaultWindows = []int{5, 10, 20, 50, 100, 200}

// Fixed oscillator parameters
const (
	rsiPeriod      = 14
	macdFastSpan   = 12
	macdSlowSpan   = 26
	macdSignalSpan = 9
	bollingerSpan  = 20
)

// Engine derives a table of technical indicators from a price series:
// simple and exponential moving averages per window, RSI(14),
// MACD(12/26/9) and Bollinger bands (20, +-2 sigma).
type Engine struct {
	windows []int
}

// NewEngine creates an indicator engine for the given lookback windows.
// Passing no windows selects DefaultWindows.
func NewEngine(windows []int) *Engine {
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	return &Engine{windows: windows}
}

// Compute builds the indicator table for the series. Rows where every
// indicator is undefined are dropped. When the series is shorter than the
// largest configured window, or no rows survive, the table metadata flags
// insufficient history; that flag is the single signal downstream agents
// use to avoid acting on partial derivatives.
func (e *Engine) Compute(series models.PriceSeries) *models.IndicatorTable {
	maxWindow := 0
	for _, w := range e.windows {
		if w > maxWindow {
			maxWindow = w
		}
	}

	n := len(series)
	table := &models.IndicatorTable{
		Meta: models.IndicatorMeta{
			Observations: n,
			MinRequired:  maxWindow,
		},
	}

	if n == 0 {
		table.Meta.InsufficientHistory = true
		return table
	}

	closes := series.Closes()

	columns := make(map[string][]float64, 2*len(e.windows)+6)
	for _, w := range e.windows {
		columns[smaName(w)] = rollingMean(closes, w)
		columns[emaName(w)] = ema(closes, 2.0/float64(w+1))
	}
	columns["rsi"] = rsi(closes, rsiPeriod)

	ema12 := ema(closes, 2.0/float64(macdFastSpan+1))
	ema26 := ema(closes, 2.0/float64(macdSlowSpan+1))
	macdLine := make([]float64, n)
	for i := range closes {
		macdLine[i] = ema12[i] - ema26[i]
	}
	signal := ema(macdLine, 2.0/float64(macdSignalSpan+1))
	hist := make([]float64, n)
	for i := range macdLine {
		hist[i] = macdLine[i] - signal[i]
	}
	columns["macd"] = macdLine
	columns["macd_signal"] = signal
	columns["macd_hist"] = hist

	sma20 := rollingMean(closes, bollingerSpan)
	std20 := rollingStd(closes, bollingerSpan)
	upper := make([]float64, n)
	lower := make([]float64, n)
	for i := range closes {
		if math.IsNaN(sma20[i]) || math.IsNaN(std20[i]) {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
			continue
		}
		upper[i] = sma20[i] + 2*std20[i]
		lower[i] = sma20[i] - 2*std20[i]
	}
	columns["bb_upper"] = upper
	columns["bb_lower"] = lower

	for i := 0; i < n; i++ {
		values := make(map[string]float64, len(columns))
		for name, column := range columns {
			if !math.IsNaN(column[i]) {
				values[name] = column[i]
			}
		}
		if len(values) == 0 {
			continue
		}
		table.Rows = append(table.Rows, models.IndicatorRow{
			Timestamp: series[i].Timestamp,
			Values:    values,
		})
	}

	if len(table.Rows) == 0 || n < maxWindow {
		table.Meta.InsufficientHistory = true
	}

	return table
}

// rollingMean computes the trailing mean over window observations.
// Entries before a full window are NaN (SMA warm-up).
func rollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingStd computes the trailing sample standard deviation over window
// observations, NaN until a full window exists.
func rollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window < 2 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		slice := values[i-window+1 : i+1]
		var sum float64
		for _, v := range slice {
			sum += v
		}
		mean := sum / float64(window)
		var sq float64
		for _, v := range slice {
			sq += (v - mean) * (v - mean)
		}
		out[i] = math.Sqrt(sq / float64(window-1))
	}
	return out
}

// ema computes recursive exponential smoothing seeded by the first
// observation. Unlike the SMA it requires no warm-up.
func ema(values []float64, alpha float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if i == 0 {
			out[i] = v
			continue
		}
		out[i] = out[i-1] + alpha*(v-out[i-1])
	}
	return out
}

// rsi computes the Relative Strength Index with Wilder-style exponential
// smoothing (alpha = 1/period) of average gains and losses. A zero average
// loss saturates the oscillator at 100 instead of dividing by zero.
func rsi(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if len(closes) < 2 {
		return out
	}
	alpha := 1.0 / float64(period)
	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		if i == 1 {
			avgGain, avgLoss = gain, loss
		} else {
			avgGain += alpha * (gain - avgGain)
			avgLoss += alpha * (loss - avgLoss)
		}
		switch {
		case avgLoss > 0:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		case avgGain > 0:
			out[i] = 100
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func smaName(window int) string { return "sma_" + strconv.Itoa(window) }
func emaName(window int) string { return "ema_" + strconv.Itoa(window) }
