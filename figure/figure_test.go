package figure

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

func row(country string, year int, net, in, out float64) models.AggregatedRow {
	return models.AggregatedRow{
		Country: country, Year: year,
		NetMigration: net, Inflow: in, Outflow: out,
		LogNet: math.Log(net), LogInflow: math.Log(in), LogOutflow: math.Log(out),
	}
}

func testDataset() *models.Dataset {
	return models.NewDataset([]models.AggregatedRow{
		row("Portugal", 2016, 3, 30, 27),
		row("Portugal", 2017, 15, 150, 135),
		row("Spain", 2017, 2, 400, 398),
		row("Chile", 2016, 0.1, 12, 7),
	}, "test", time.Now())
}

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics() {
		parsed, err := ParseMetric(m.Token())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMetric("log Garbage")
	assert.True(t, errors.Is(err, ErrUnknownMetric))

	_, err = ParseMetric("")
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestParseMetricLenientFallsBackToOutflow(t *testing.T) {
	m, fellBack := ParseMetricLenient("log Garbage")
	assert.Equal(t, Outflow, m)
	assert.True(t, fellBack)

	m, fellBack = ParseMetricLenient("log Net")
	assert.Equal(t, NetMigration, m)
	assert.False(t, fellBack)
}

func TestResolve(t *testing.T) {
	_, _, err := Resolve("log Garbage", false)
	assert.True(t, errors.Is(err, ErrUnknownMetric))

	m, fellBack, err := Resolve("log Garbage", true)
	require.NoError(t, err)
	assert.Equal(t, Outflow, m)
	assert.True(t, fellBack)

	m, fellBack, err = Resolve("log Inflow", false)
	require.NoError(t, err)
	assert.Equal(t, Inflow, m)
	assert.False(t, fellBack)
}

func TestMetricLabels(t *testing.T) {
	assert.Equal(t, "Net-Migration", NetMigration.Label())
	assert.Equal(t, "Migrants Inflow", Inflow.Label())
	assert.Equal(t, "Migrants Outflow", Outflow.Label())
	assert.Equal(t, "Migration Inflow", Inflow.OptionLabel())
}

func TestMetricText(t *testing.T) {
	var payload struct {
		Metric Metric `json:"metric"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"metric":"log Inflow"}`), &payload))
	assert.Equal(t, Inflow, payload.Metric)

	err := json.Unmarshal([]byte(`{"metric":"log Garbage"}`), &payload)
	assert.True(t, errors.Is(err, ErrUnknownMetric))

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"metric":"log Inflow"}`, string(out))
}

func TestBuildInflowFigure(t *testing.T) {
	ds := testDataset()
	fig := Build(ds, Inflow)

	assert.Equal(t, "Global Migrants Inflow", fig.Layout.Title.Text)
	assert.Equal(t, 0.5, fig.Layout.Title.X)
	assert.Equal(t, Projection, fig.Layout.Geo.Projection["type"])
	assert.Equal(t, ColorBarTitle, fig.Layout.ColorAxis.ColorBar.Title["text"])

	require.Len(t, fig.Frames, 2)
	assert.Equal(t, "2016", fig.Frames[0].Name)
	assert.Equal(t, "2017", fig.Frames[1].Name)

	frame2017 := fig.Frames[1].Data[0]
	assert.Equal(t, TraceType, frame2017.Type)
	assert.Equal(t, LocationMode, frame2017.LocationMode)
	assert.Equal(t, []string{"Portugal", "Spain"}, frame2017.Locations)
	assert.Equal(t, frame2017.Locations, frame2017.HoverText)
	assert.InDelta(t, math.Log(150), frame2017.Z[0], 1e-12)

	require.Len(t, fig.Data, 1)
	assert.Equal(t, fig.Frames[0].Data[0], fig.Data[0])

	assert.InDelta(t, math.Log(12), fig.Layout.ColorAxis.CMin, 1e-12)
	assert.InDelta(t, math.Log(400), fig.Layout.ColorAxis.CMax, 1e-12)

	require.Len(t, fig.Layout.Sliders, 1)
	require.Len(t, fig.Layout.Sliders[0].Steps, 2)
	assert.Equal(t, "2017", fig.Layout.Sliders[0].Steps[1].Label)
	require.Len(t, fig.Layout.UpdateMenus, 1)
	assert.Len(t, fig.Layout.UpdateMenus[0].Buttons, 2)
}

func TestBuildEachMetricReadsItsColumn(t *testing.T) {
	ds := testDataset()
	rows := ds.RowsForYear(2016)

	for _, m := range Metrics() {
		fig := Build(ds, m)
		z := fig.Frames[0].Data[0].Z
		require.Len(t, z, len(rows))
		for i, r := range rows {
			assert.Equal(t, m.Value(r), z[i], m.Token())
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	ds := testDataset()
	first, err := json.Marshal(Build(ds, NetMigration))
	require.NoError(t, err)
	second, err := json.Marshal(Build(ds, NetMigration))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFigureJSONShape(t *testing.T) {
	raw, err := json.Marshal(Build(testDataset(), Outflow))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	layout := decoded["layout"].(map[string]interface{})
	colorAxis := layout["coloraxis"].(map[string]interface{})
	scale := colorAxis["colorscale"].([]interface{})
	require.Len(t, scale, len(MatterScale))
	assert.Equal(t, []interface{}{0.0, "rgb(253, 237, 176)"}, scale[0])
	assert.Equal(t, []interface{}{1.0, "rgb(47, 15, 61)"}, scale[len(scale)-1])

	var fig Figure
	require.NoError(t, json.Unmarshal(raw, &fig))
	assert.Equal(t, "Global Migrants Outflow", fig.Layout.Title.Text)
	assert.Equal(t, "rgb(47, 15, 61)", fig.Layout.ColorAxis.ColorScale[11].Color)
}

func TestBuildEmptyDataset(t *testing.T) {
	fig := Build(models.NewDataset(nil, "empty", time.Now()), NetMigration)
	require.Len(t, fig.Data, 1)
	assert.Empty(t, fig.Data[0].Locations)
	assert.Empty(t, fig.Frames)
}

func TestBuildControls(t *testing.T) {
	c := BuildControls(testDataset())

	assert.Equal(t, []Option{
		{Label: "Chile", Value: "Chile"},
		{Label: "Portugal", Value: "Portugal"},
		{Label: "Spain", Value: "Spain"},
	}, c.Countries)
	assert.Equal(t, "Portugal", c.DefaultCountry)

	assert.Equal(t, 2016, c.Year.Min)
	assert.Equal(t, 2017, c.Year.Max)
	assert.Equal(t, 2017, c.Year.Value)
	assert.Equal(t, map[string]string{"2016": "2016", "2017": "2017"}, c.Year.Marks)

	assert.Equal(t, "log Net", c.DefaultMetric)
	assert.Equal(t, []Option{
		{Label: "Net-Migration", Value: "log Net"},
		{Label: "Migration Inflow", Value: "log Inflow"},
		{Label: "Migration Outflow", Value: "log Outflow"},
	}, c.Metrics)
}

func TestYearSliderClampsToData(t *testing.T) {
	s := yearSlider([]int{2000, 2005, 2012})
	assert.Equal(t, 2000, s.Min)
	assert.Equal(t, 2012, s.Max)
	assert.Equal(t, 2012, s.Value)
	assert.Equal(t, map[string]string{"2012": "2012"}, s.Marks)

	s = yearSlider([]int{2008, 2017, 2019})
	assert.Equal(t, 2017, s.Max)
	assert.Len(t, s.Marks, 2)

	s = yearSlider([]int{2020})
	assert.Equal(t, 2020, s.Min)
	assert.Equal(t, 2020, s.Max)
}
