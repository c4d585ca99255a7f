package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emrdash/pkg/contracts/domain"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderChart(t *testing.T) {
	tests := []struct {
		name   string
		series domain.ChartSeries
	}{
		{
			name: "facility totals",
			series: domain.ChartSeries{
				ID: domain.ChartTxCurrByFacility, Title: "TX_CURR Distribution",
				XLabel: "FacilityName", YLabel: "TX_Curr_EMR",
				Bars: []domain.Bar{{Label: "F1", Value: 10}, {Label: "F2", Value: 20}},
			},
		},
		{
			name: "all zero",
			series: domain.ChartSeries{
				ID: domain.ChartVlCoverageByLGA, Title: "VL Coverage by LGA",
				Bars: []domain.Bar{{Label: "L2", Value: 0}},
			},
		},
		{
			name:   "no bars",
			series: domain.ChartSeries{ID: domain.ChartVlSuppressionByLGA, Title: "VL Suppression by LGA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderChart(tt.series, 0, 0)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, pngSignature), "output is a PNG")
		})
	}
}
