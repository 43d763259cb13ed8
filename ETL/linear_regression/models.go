package linear_regression

// DataPoint is one year of a country's log metric
type DataPoint struct {
	X    float64 // years since the first observed year
	Y    float64 // log-scaled value
	Year int
}

// RegressionResult holds the fitted line y = A*x + B
type RegressionResult struct {
	Country    string      `json:"country"`
	Metric     string      `json:"metric"`
	A          float64     `json:"slope"`
	B          float64     `json:"intercept"`
	R          float64     `json:"r"`
	R2         float64     `json:"r2"`
	FirstYear  int         `json:"firstYear"`
	LastYear   int         `json:"lastYear"`
	DataPoints []DataPoint `json:"-"`
}

// ForecastPoint is a predicted value with its confidence interval
type ForecastPoint struct {
	Year          int     `json:"year"`
	ForecastValue float64 `json:"value"`
	CILower       float64 `json:"ciLower"`
	CIUpper       float64 `json:"ciUpper"`
}
