package extractors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads one worksheet of an Excel workbook from a file or URL
type XLSXSource struct {
	Location string
	Sheet    string // first sheet when empty
	Timeout  time.Duration
	Client   *http.Client
}

// NewXLSXSource creates an XLSXSource using the default HTTP client
func NewXLSXSource(location, sheet string, timeout time.Duration) *XLSXSource {
	return &XLSXSource{
		Location: location,
		Sheet:    sheet,
		Timeout:  timeout,
		Client:   http.DefaultClient,
	}
}

func (s *XLSXSource) Name() string {
	return s.Location
}

// ReadRows returns raw cell values, so number formats do not leak into the parsed amounts
func (s *XLSXSource) ReadRows(ctx context.Context) ([][]string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	r, err := openLocation(ctx, s.client(), s.Location)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (s *XLSXSource) client() *http.Client {
	if s.Client == nil {
		return http.DefaultClient
	}
	return s.Client
}
