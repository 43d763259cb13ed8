package linear_regression

import (
	"fmt"
	"math"
)

// RoundToThousandth rounds to three decimal places
func RoundToThousandth(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// LinearRegression fits a least-squares line through the points
func LinearRegression(points []DataPoint) (*RegressionResult, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("linear regression needs at least 2 points, got %d", len(points))
	}

	firstYear := points[0].Year
	lastYear := points[0].Year
	for _, p := range points {
		if p.Year < firstYear {
			firstYear = p.Year
		}
		if p.Year > lastYear {
			lastYear = p.Year
		}
	}

	// a = (n*sum(x*y) - sum(x)*sum(y)) / (n*sum(x^2) - (sum(x))^2)
	// b = (sum(y) - a*sum(x)) / n
	n := float64(len(points))
	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumX2 := 0.0
	sumY2 := 0.0

	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumX2 += p.X * p.X
		sumY2 += p.Y * p.Y
	}

	denominator := n*sumX2 - sumX*sumX
	if math.Abs(denominator) < 1e-10 {
		return nil, fmt.Errorf("all X values are equal, slope is undefined")
	}

	a := (n*sumXY - sumX*sumY) / denominator
	b := (sumY - a*sumX) / n

	// Pearson r
	numerator := n*sumXY - sumX*sumY
	denominator = math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))

	var r float64
	if math.Abs(denominator) < 1e-10 {
		r = 0 // constant series
	} else {
		r = numerator / denominator
	}

	r2 := r * r

	return &RegressionResult{
		A:          RoundToThousandth(a),
		B:          RoundToThousandth(b),
		R:          RoundToThousandth(r),
		R2:         RoundToThousandth(r2),
		FirstYear:  firstYear,
		LastYear:   lastYear,
		DataPoints: points,
	}, nil
}

// Predict returns the fitted value at x
func Predict(result *RegressionResult, x float64) float64 {
	return RoundToThousandth(result.A*x + result.B)
}

// CalculateConfidenceInterval returns the prediction interval at x
func CalculateConfidenceInterval(result *RegressionResult, x float64, confidenceLevel float64) (float64, float64) {
	n := float64(len(result.DataPoints))
	yPred := Predict(result, x)
	if n < 3 {
		return yPred, yPred
	}

	meanX := 0.0
	for _, p := range result.DataPoints {
		meanX += p.X
	}
	meanX /= n

	sumSqDevX := 0.0
	sumSqResiduals := 0.0
	for _, p := range result.DataPoints {
		predY := Predict(result, p.X)
		sumSqDevX += (p.X - meanX) * (p.X - meanX)
		sumSqResiduals += (p.Y - predY) * (p.Y - predY)
	}

	standardError := math.Sqrt(sumSqResiduals / (n - 2))

	// normal approximation of the t quantile
	tStat := 2.0
	if confidenceLevel == 0.99 {
		tStat = 2.58
	} else if confidenceLevel == 0.90 {
		tStat = 1.64
	}

	predictionStdError := standardError * math.Sqrt(1+1/n+(x-meanX)*(x-meanX)/sumSqDevX)
	margin := tStat * predictionStdError

	return RoundToThousandth(yPred - margin), RoundToThousandth(yPred + margin)
}

// GenerateForecasts predicts the years following the last observed one
func GenerateForecasts(result *RegressionResult, yearsAhead int, confidenceLevel float64) []ForecastPoint {
	forecasts := make([]ForecastPoint, 0, yearsAhead)
	for i := 1; i <= yearsAhead; i++ {
		year := result.LastYear + i
		x := float64(year - result.FirstYear)
		lower, upper := CalculateConfidenceInterval(result, x, confidenceLevel)
		forecasts = append(forecasts, ForecastPoint{
			Year:          year,
			ForecastValue: Predict(result, x),
			CILower:       lower,
			CIUpper:       upper,
		})
	}
	return forecasts
}
