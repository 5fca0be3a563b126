package backtest

import (
	"math"

	"investment-company/models"
)

// DefaultPeriodsPerYear is the daily-bar annualization factor. Weekly
// series use 52; the caller states the frequency explicitly rather than
// having the evaluator infer it.
const (
	DefaultPeriodsPerYear = 252
	WeeklyPeriodsPerYear  = 52
)

// minSharpeWeight keeps the Sharpe denominator non-zero for tiny weights
const minSharpeWeight = 1e-9

// Evaluator replays a decision's implied portfolio weight against the
// historical price series: weight fraction of capital in the asset, the
// remainder in cash at zero return.
type Evaluator struct {
	PeriodsPerYear int
}

// NewEvaluator creates an evaluator annualizing with the given frequency.
// Non-positive values select the daily default.
func NewEvaluator(periodsPerYear int) *Evaluator {
	if periodsPerYear <= 0 {
		periodsPerYear = DefaultPeriodsPerYear
	}
	return &Evaluator{PeriodsPerYear: periodsPerYear}
}

// Evaluate produces the performance report for the decision over the
// series. All metrics are finite; zero-denominator divisions are guarded
// at the point of computation.
func (e *Evaluator) Evaluate(decision *models.Decision, series models.PriceSeries) models.BacktestReport {
	weight := decision.BuyWeight()

	report := models.BacktestReport{
		CumulativeReturns: map[string]float64{"portfolio": 0},
	}
	if len(series) == 0 {
		return report
	}
	report.StartDate = series[0].Timestamp.Format("2006-01-02")
	report.EndDate = series[len(series)-1].Timestamp.Format("2006-01-02")

	// Simple returns with the missing leading value treated as 0
	returns := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		if prev != 0 {
			returns[i] = series[i].Close/prev - 1
		}
	}

	curve := make([]float64, len(returns))
	cumulative := 1.0
	for i, r := range returns {
		cumulative *= 1 + r
		curve[i] = 1 + weight*(cumulative-1)
	}

	report.TotalReturn = finiteOrZero(curve[len(curve)-1] - 1)
	report.CumulativeReturns["portfolio"] = report.TotalReturn

	avgReturn := mean(returns) * float64(e.PeriodsPerYear) * weight
	report.AnnualizedReturn = finiteOrZero(avgReturn)

	sharpeWeight := weight
	if sharpeWeight < minSharpeWeight {
		sharpeWeight = minSharpeWeight
	}
	volatility := sampleStd(returns) * math.Sqrt(float64(e.PeriodsPerYear)) * sharpeWeight
	if volatility > 0 {
		report.SharpeRatio = finiteOrZero(avgReturn / volatility)
	}

	report.MaxDrawdown = finiteOrZero(maxDrawdown(curve))

	return report
}

// maxDrawdown returns the most negative peak-to-trough decline of the curve
func maxDrawdown(curve []float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	runningMax := curve[0]
	var worst float64
	for _, v := range curve {
		if v > runningMax {
			runningMax = v
		}
		if runningMax == 0 {
			continue
		}
		dd := (v - runningMax) / runningMax
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	avg := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - avg) * (v - avg)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
