package figure

import (
	"strconv"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

// Year range of the slider marks
const (
	FirstMarkedYear = 2008
	LastMarkedYear  = 2017
)

// DefaultCountry is preselected in the dropdown when the data has it
const DefaultCountry = "Portugal"

// Option is a dropdown or radio entry
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type YearSlider struct {
	Min      int               `json:"min"`
	Max      int               `json:"max"`
	Step     int               `json:"step"`
	Value    int               `json:"value"`
	Included bool              `json:"included"`
	Marks    map[string]string `json:"marks"`
}

// Controls describes the dashboard inputs
type Controls struct {
	Countries      []Option   `json:"countries"`
	DefaultCountry string     `json:"defaultCountry"`
	Year           YearSlider `json:"year"`
	Metrics        []Option   `json:"metrics"`
	DefaultMetric  string     `json:"defaultMetric"`
}

// BuildControls derives the control surface from the dataset
func BuildControls(ds *models.Dataset) Controls {
	countries := ds.Countries()
	c := Controls{
		Countries:     make([]Option, len(countries)),
		Year:          yearSlider(ds.Years()),
		DefaultMetric: DefaultMetric.Token(),
	}
	for i, country := range countries {
		c.Countries[i] = Option{Label: country, Value: country}
	}
	if ds.HasCountry(DefaultCountry) {
		c.DefaultCountry = DefaultCountry
	} else if len(countries) > 0 {
		c.DefaultCountry = countries[0]
	}
	for _, m := range Metrics() {
		c.Metrics = append(c.Metrics, Option{Label: m.OptionLabel(), Value: m.Token()})
	}
	return c
}

func yearSlider(years []int) YearSlider {
	s := YearSlider{Step: 1, Marks: map[string]string{}}
	if len(years) == 0 {
		return s
	}

	s.Min = years[0]
	s.Max = LastMarkedYear
	if last := years[len(years)-1]; last < s.Max {
		s.Max = last
	}
	if s.Max < s.Min {
		s.Max = s.Min
	}
	s.Value = s.Max

	for _, year := range years {
		if year >= FirstMarkedYear && year <= LastMarkedYear && year <= s.Max {
			label := strconv.Itoa(year)
			s.Marks[label] = label
		}
	}
	return s
}
