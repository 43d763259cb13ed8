package processor

import (
	"encoding/json"
	"fmt"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/figure"
)

// EncodeFigure serializes a figure to JSON and compresses it
func EncodeFigure(fig figure.Figure) ([]byte, error) {
	raw, err := json.Marshal(fig)
	if err != nil {
		return nil, fmt.Errorf("encode figure: %w", err)
	}
	return CompressPayload(raw), nil
}

// FigureCache holds the compressed figure of every metric.
// The dataset never changes, so entries are never invalidated.
type FigureCache struct {
	payloads map[figure.Metric][]byte
}

// NewFigureCache renders all metrics once
func NewFigureCache(ds *models.Dataset) (*FigureCache, error) {
	c := &FigureCache{payloads: make(map[figure.Metric][]byte)}
	for _, m := range figure.Metrics() {
		payload, err := EncodeFigure(figure.Build(ds, m))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Token(), err)
		}
		c.payloads[m] = payload
	}
	return c, nil
}

// JSON returns the figure JSON of m
func (c *FigureCache) JSON(m figure.Metric) ([]byte, error) {
	payload, ok := c.payloads[m]
	if !ok {
		return nil, fmt.Errorf("%w: %d", figure.ErrUnknownMetric, int(m))
	}
	return DecompressPayload(payload)
}

// Size returns the compressed size of m's payload
func (c *FigureCache) Size(m figure.Metric) int {
	return len(c.payloads[m])
}

// Sizes returns the compressed payload size of every metric, keyed by token
func (c *FigureCache) Sizes() map[string]int {
	sizes := make(map[string]int, len(c.payloads))
	for _, m := range figure.Metrics() {
		sizes[m.Token()] = c.Size(m)
	}
	return sizes
}
