package extractors

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"
)

// CSVSource reads a comma separated file with a header row from a file or URL
type CSVSource struct {
	Location string
	Timeout  time.Duration
	Client   *http.Client
}

// NewCSVSource creates a CSVSource using the default HTTP client
func NewCSVSource(location string, timeout time.Duration) *CSVSource {
	return &CSVSource{
		Location: location,
		Timeout:  timeout,
		Client:   http.DefaultClient,
	}
}

func (s *CSVSource) Name() string {
	return s.Location
}

func (s *CSVSource) ReadRows(ctx context.Context) ([][]string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	r, err := openLocation(ctx, client, s.Location)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}
