package figure

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

// Fixed presentation settings of the choropleth
const (
	TraceType      = "choropleth"
	LocationMode   = "country names"
	Projection     = "natural earth"
	ColorBarTitle  = "Number of migrants <br> [log scale]"
	colorAxisName  = "coloraxis"
	geoName        = "geo"
	playDuration   = 500
	sliderPrefix   = models.ColumnYear + "="
	playButtonText = "&#9654;"
	stopButtonText = "&#9724;"
)

// MatterScale is the cmocean "matter" sequential palette
var MatterScale = []string{
	"rgb(253, 237, 176)", "rgb(250, 205, 145)", "rgb(246, 173, 119)",
	"rgb(240, 142, 98)", "rgb(231, 109, 84)", "rgb(216, 80, 83)",
	"rgb(195, 56, 90)", "rgb(168, 40, 96)", "rgb(138, 29, 99)",
	"rgb(107, 24, 93)", "rgb(76, 21, 80)", "rgb(47, 15, 61)",
}

// Figure is a Plotly figure description
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames"`
}

// Trace is a single choropleth trace
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Geo           string    `json:"geo"`
	ColorAxis     string    `json:"coloraxis"`
	LocationMode  string    `json:"locationmode"`
	Locations     []string  `json:"locations"`
	Z             []float64 `json:"z"`
	HoverText     []string  `json:"hovertext"`
	HoverTemplate string    `json:"hovertemplate"`
}

// Frame is one animation step
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

type Layout struct {
	Title       Title        `json:"title"`
	Geo         Geo          `json:"geo"`
	ColorAxis   ColorAxis    `json:"coloraxis"`
	Margin      Margin       `json:"margin"`
	Sliders     []Slider     `json:"sliders"`
	UpdateMenus []UpdateMenu `json:"updatemenus"`
}

type Title struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
}

type Geo struct {
	Domain     Domain            `json:"domain"`
	Projection map[string]string `json:"projection"`
}

type Domain struct {
	X [2]float64 `json:"x"`
	Y [2]float64 `json:"y"`
}

type ColorAxis struct {
	ColorScale []ColorStop `json:"colorscale"`
	CMin       float64     `json:"cmin"`
	CMax       float64     `json:"cmax"`
	ColorBar   ColorBar    `json:"colorbar"`
}

type ColorBar struct {
	Title map[string]string `json:"title"`
}

// ColorStop marshals as a [position, color] pair
type ColorStop struct {
	Position float64
	Color    string
}

func (s ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{s.Position, s.Color})
}

func (s *ColorStop) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("color stop: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Position); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &s.Color)
}

type Margin struct {
	T int `json:"t"`
}

type Slider struct {
	Active       int               `json:"active"`
	CurrentValue map[string]string `json:"currentvalue"`
	Len          float64           `json:"len"`
	X            float64           `json:"x"`
	XAnchor      string            `json:"xanchor"`
	Y            float64           `json:"y"`
	YAnchor      string            `json:"yanchor"`
	Steps        []SliderStep      `json:"steps"`
}

type SliderStep struct {
	Label  string        `json:"label"`
	Method string        `json:"method"`
	Args   []interface{} `json:"args"`
}

type UpdateMenu struct {
	Type       string   `json:"type"`
	Direction  string   `json:"direction"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x"`
	XAnchor    string   `json:"xanchor"`
	Y          float64  `json:"y"`
	YAnchor    string   `json:"yanchor"`
	Buttons    []Button `json:"buttons"`
}

type Button struct {
	Label  string        `json:"label"`
	Method string        `json:"method"`
	Args   []interface{} `json:"args"`
}

// Animation is the options object passed to Plotly.animate
type Animation struct {
	Frame       FrameOptions      `json:"frame"`
	Mode        string            `json:"mode"`
	FromCurrent bool              `json:"fromcurrent"`
	Transition  TransitionOptions `json:"transition"`
}

type FrameOptions struct {
	Duration int  `json:"duration"`
	Redraw   bool `json:"redraw"`
}

type TransitionOptions struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing"`
}

func animation(duration int) Animation {
	return Animation{
		Frame:       FrameOptions{Duration: duration, Redraw: true},
		Mode:        "immediate",
		FromCurrent: true,
		Transition:  TransitionOptions{Duration: duration, Easing: "linear"},
	}
}

// Build renders the animated choropleth of the selected metric.
// It only reads ds, so concurrent calls are safe.
func Build(ds *models.Dataset, m Metric) Figure {
	years := ds.Years()
	frames := make([]Frame, 0, len(years))
	steps := make([]SliderStep, 0, len(years))

	for _, year := range years {
		name := strconv.Itoa(year)
		frames = append(frames, Frame{
			Name: name,
			Data: []Trace{yearTrace(ds.RowsForYear(year), m, year)},
		})
		steps = append(steps, SliderStep{
			Label:  name,
			Method: "animate",
			Args:   []interface{}{[]string{name}, animation(0)},
		})
	}

	first := Trace{
		Type:         TraceType,
		Geo:          geoName,
		ColorAxis:    colorAxisName,
		LocationMode: LocationMode,
		Locations:    []string{},
		Z:            []float64{},
		HoverText:    []string{},
	}
	if len(frames) > 0 {
		first = frames[0].Data[0]
	}

	cmin, cmax := valueRange(ds.Rows(), m)

	return Figure{
		Data: []Trace{first},
		Layout: Layout{
			Title: Title{Text: "Global " + m.Label(), X: 0.5},
			Geo: Geo{
				Domain:     Domain{X: [2]float64{0, 1}, Y: [2]float64{0, 1}},
				Projection: map[string]string{"type": Projection},
			},
			ColorAxis: ColorAxis{
				ColorScale: colorScale(MatterScale),
				CMin:       cmin,
				CMax:       cmax,
				ColorBar:   ColorBar{Title: map[string]string{"text": ColorBarTitle}},
			},
			Margin: Margin{T: 60},
			Sliders: []Slider{{
				CurrentValue: map[string]string{"prefix": sliderPrefix},
				Len:          0.9,
				X:            0.1,
				XAnchor:      "left",
				YAnchor:      "top",
				Steps:        steps,
			}},
			UpdateMenus: []UpdateMenu{{
				Type:      "buttons",
				Direction: "left",
				X:         0.1,
				XAnchor:   "right",
				YAnchor:   "top",
				Buttons: []Button{
					{Label: playButtonText, Method: "animate", Args: []interface{}{nil, animation(playDuration)}},
					{Label: stopButtonText, Method: "animate", Args: []interface{}{[]interface{}{nil}, animation(0)}},
				},
			}},
		},
		Frames: frames,
	}
}

func yearTrace(rows []models.AggregatedRow, m Metric, year int) Trace {
	t := Trace{
		Type:          TraceType,
		Geo:           geoName,
		ColorAxis:     colorAxisName,
		LocationMode:  LocationMode,
		Locations:     make([]string, len(rows)),
		Z:             make([]float64, len(rows)),
		HoverText:     make([]string, len(rows)),
		HoverTemplate: fmt.Sprintf("<b>%%{hovertext}</b><br><br>%s=%d<br>%s=%%{location}<br>%s=%%{z}<extra></extra>", models.ColumnYear, year, models.ColumnCountry, ColorBarTitle),
	}
	for i, row := range rows {
		t.Locations[i] = row.Country
		t.Z[i] = m.Value(row)
		t.HoverText[i] = row.Country
	}
	return t
}

func valueRange(rows []models.AggregatedRow, m Metric) (min, max float64) {
	for i, row := range rows {
		v := m.Value(row)
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}
	return min, max
}

func colorScale(colors []string) []ColorStop {
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		pos := 0.0
		if len(colors) > 1 {
			pos = float64(i) / float64(len(colors)-1)
		}
		stops[i] = ColorStop{Position: pos, Color: c}
	}
	return stops
}
