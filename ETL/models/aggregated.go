package models

// ZeroSentinel replaces a sum that is exactly zero before the logarithm is taken
const ZeroSentinel = 0.1

// AggregatedRow is one (Country, Year) row of the aggregated table with its log-scaled fields
type AggregatedRow struct {
	Country      string  `json:"country"`
	Year         int     `json:"year"`
	NetMigration float64 `json:"netMigration"`
	Inflow       float64 `json:"inflow"`
	Outflow      float64 `json:"outflow"`
	LogNet       float64 `json:"logNet"`
	LogInflow    float64 `json:"logInflow"`
	LogOutflow   float64 `json:"logOutflow"`
}

// Less orders rows by country, then year
func (r AggregatedRow) Less(other AggregatedRow) bool {
	if r.Country != other.Country {
		return r.Country < other.Country
	}
	return r.Year < other.Year
}
