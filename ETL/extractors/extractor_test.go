package extractors

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/LilVoxy/migration_dashboard/ETL/config"
	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
)

type staticSource struct {
	rows [][]string
	err  error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) ReadRows(context.Context) ([][]string, error) {
	return s.rows, s.err
}

var header = []string{"Country", "Year", "Net-Migration", "Inflow", "Outflow"}

func workbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	return f
}

func sampleWorkbook(t *testing.T) *excelize.File {
	return workbook(t, [][]interface{}{
		{"Country", "Year", "Net-Migration", "Inflow", "Outflow", "Region"},
		{"Portugal", 2017, 10, 100, 90, "Europe"},
		{"Portugal", 2017, 5, 50, 45, "Europe"},
		{"Spain", 2016, 0, 20.5, 20.5, "Europe"},
	})
}

func TestParseRecords(t *testing.T) {
	rows := [][]string{
		header,
		{"Portugal", "2017", "10", "100", "90"},
		{" Spain ", "2016.0", "", "20.5", "20.5"},
		{"", "2016", "1", "1", "1"},
	}

	records, skipped, err := ParseRecords(rows)
	require.NoError(t, err)

	assert.Equal(t, 1, skipped)
	require.Len(t, records, 2)
	assert.Equal(t, models.MigrationRecord{Country: "Portugal", Year: 2017, NetMigration: 10, Inflow: 100, Outflow: 90}, records[0])
	assert.Equal(t, models.MigrationRecord{Country: "Spain", Year: 2016, NetMigration: 0, Inflow: 20.5, Outflow: 20.5}, records[1])
}

func TestParseRecordsPadsRaggedRows(t *testing.T) {
	rows := [][]string{
		header,
		{"Portugal", "2017", "10"},
	}

	records, _, err := ParseRecords(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0.0, records[0].Inflow)
	assert.Equal(t, 0.0, records[0].Outflow)
}

func TestParseRecordsMissingColumns(t *testing.T) {
	rows := [][]string{
		{"Country", "Year", "Inflow"},
		{"Portugal", "2017", "100"},
	}

	_, _, err := ParseRecords(rows)

	var formatErr *models.DataFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, []string{"Net-Migration", "Outflow"}, formatErr.Columns)
}

func TestParseRecordsBadCells(t *testing.T) {
	tests := []struct {
		name   string
		row    []string
		column string
	}{
		{"fractional year", []string{"Portugal", "2017.5", "1", "1", "1"}, "Year"},
		{"text year", []string{"Portugal", "last year", "1", "1", "1"}, "Year"},
		{"empty year", []string{"Portugal", "", "1", "1", "1"}, "Year"},
		{"huge year", []string{"Portugal", "1e20", "1", "1", "1"}, "Year"},
		{"negative year", []string{"Portugal", "-2017", "1", "1", "1"}, "Year"},
		{"text amount", []string{"Portugal", "2017", "1", "many", "1"}, "Inflow"},
		{"nan amount", []string{"Portugal", "2017", "1", "1", "NaN"}, "Outflow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseRecords([][]string{header, tt.row})

			var formatErr *models.DataFormatError
			require.True(t, errors.As(err, &formatErr), "got %v", err)
			assert.Equal(t, []string{tt.column}, formatErr.Columns)
			assert.Equal(t, 2, formatErr.Row)
		})
	}
}

func TestParseRecordsDuplicateHeader(t *testing.T) {
	_, _, err := ParseRecords([][]string{
		{"Country", "Year", "Net-Migration", "Inflow", "Outflow", " Country"},
		{"Portugal", "2017", "1", "1", "1", "Spain"},
	})

	var formatErr *models.DataFormatError
	require.True(t, errors.As(err, &formatErr), "got %v", err)
	assert.Equal(t, []string{"Country"}, formatErr.Columns)
	assert.Equal(t, "data format: column Country: duplicate", err.Error())
}

func TestExtractorWrapsReadFailures(t *testing.T) {
	extractor := NewExtractor(staticSource{err: errors.New("connection refused")}, utils.NopLogger())

	_, err := extractor.Extract(context.Background())

	var loadErr *models.DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "static", loadErr.Source)
}

func TestExtractorEmptyTableIsLoadError(t *testing.T) {
	extractor := NewExtractor(staticSource{rows: [][]string{header}}, utils.NopLogger())

	_, err := extractor.Extract(context.Background())

	var loadErr *models.DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestExtractorKeepsFormatErrors(t *testing.T) {
	extractor := NewExtractor(staticSource{rows: [][]string{{"Country"}, {"Portugal"}}}, utils.NopLogger())

	_, err := extractor.Extract(context.Background())

	var formatErr *models.DataFormatError
	assert.True(t, errors.As(err, &formatErr))
	var loadErr *models.DataLoadError
	assert.False(t, errors.As(err, &loadErr))
}

func TestXLSXSourceFromURL(t *testing.T) {
	buf, err := sampleWorkbook(t).WriteToBuffer()
	require.NoError(t, err)
	payload := buf.Bytes()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(payload)
	}))
	defer server.Close()

	extractor := NewExtractor(NewXLSXSource(server.URL+"/Migration_In_Out.xlsx", "", time.Second), utils.NopLogger())
	data, err := extractor.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Records, 3)
	assert.Equal(t, models.MigrationRecord{Country: "Portugal", Year: 2017, NetMigration: 10, Inflow: 100, Outflow: 90}, data.Records[0])
	assert.Equal(t, 20.5, data.Records[2].Inflow)
}

func TestXLSXSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.xlsx")
	require.NoError(t, sampleWorkbook(t).SaveAs(path))

	rows, err := NewXLSXSource(path, "Sheet1", 0).ReadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Region", rows[0][5])
}

func TestXLSXSourceUnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.xlsx")
	require.NoError(t, sampleWorkbook(t).SaveAs(path))

	_, err := NewXLSXSource(path, "Nope", 0).ReadRows(context.Background())
	assert.Error(t, err)
}

func TestXLSXSourceRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o600))

	extractor := NewExtractor(NewXLSXSource(path, "", 0), utils.NopLogger())
	_, err := extractor.Extract(context.Background())

	var loadErr *models.DataLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestRemoteSourceBadStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	extractor := NewExtractor(NewCSVSource(server.URL+"/missing.csv", time.Second), utils.NopLogger())
	_, err := extractor.Extract(context.Background())

	var loadErr *models.DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "404")
}

func TestCSVSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.csv")
	content := "Country,Year,Net-Migration,Inflow,Outflow\nPortugal,2017,10,100,90\nSpain,2016,1,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	data, err := NewExtractor(NewCSVSource(path, 0), utils.NopLogger()).Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Records, 2)
	assert.Equal(t, 0.0, data.Records[1].Outflow)
}

func TestMissingFileIsLoadError(t *testing.T) {
	extractor := NewExtractor(NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), 0), utils.NopLogger())
	_, err := extractor.Extract(context.Background())

	var loadErr *models.DataLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(config.SourceConfig{Kind: config.SourceXLSX, Location: "a.xlsx"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &XLSXSource{}, src)

	src, err = NewSource(config.SourceConfig{Kind: config.SourceCSV, Location: "a.csv"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &CSVSource{}, src)

	_, err = NewSource(config.SourceConfig{Kind: config.SourceMySQL, Table: "t"}, nil)
	assert.Error(t, err)

	_, err = NewSource(config.SourceConfig{Kind: "json"}, nil)
	assert.Error(t, err)
}

func TestNewMySQLSourceRejectsInjectedTableNames(t *testing.T) {
	_, err := NewMySQLSource(nil, "migration; DROP TABLE x")
	assert.Error(t, err)

	src, err := NewMySQLSource(nil, "analytics.migration_in_out")
	require.NoError(t, err)
	assert.Equal(t, "mysql:analytics.migration_in_out", src.Name())
}
