package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emrdash/internal/config"
	"emrdash/internal/dashboard"
	"emrdash/internal/dataprocessing"
	"emrdash/pkg/contracts/domain"
	"emrdash/pkg/contracts/events"
)

func newTestDashboardService(t *testing.T, loader DatasetLoader, hub Broadcaster) *DashboardService {
	t.Helper()
	svc, err := NewDashboardService(loader, config.Default().Dashboard, hub, nil, discardLogger())
	require.NoError(t, err)
	return svc
}

func kpiValue(view *domain.DashboardView, key string) string {
	for _, k := range view.KPIs {
		if k.Key == key {
			return k.Value
		}
	}
	return ""
}

func TestDashboardService_StartsIdle(t *testing.T) {
	svc := newTestDashboardService(t, new(MockLoader), nil)

	state := svc.State(context.Background())
	assert.Equal(t, domain.DashboardIdle, state.Status)
	assert.Equal(t, dashboard.IdlePrompt, state.Message)
	assert.Nil(t, state.View)
}

func TestDashboardService_Options(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything).Return(scenarioDataset(), nil)
	svc := newTestDashboardService(t, loader, nil)

	resp, err := svc.Options(context.Background(), domain.Selection{States: []string{"A", "A", " "}})
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, resp.Selection.States)
	assert.Equal(t, []string{"A", "B"}, resp.Options.States)
	assert.Equal(t, []string{"L1"}, resp.Options.LGAs)
	assert.Equal(t, []string{"F1"}, resp.Options.Facilities)
	assert.Equal(t, []string{"A"}, svc.Pending(context.Background()).States)

	// Editing the pending selection must not render anything.
	assert.Equal(t, domain.DashboardIdle, svc.State(context.Background()).Status)
}

func TestDashboardService_ApplyScenario(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything).Return(scenarioDataset(), nil)
	hub := new(MockBroadcaster)
	hub.On("Broadcast", mock.MatchedBy(func(msg events.WebSocketMessage) bool {
		return msg.Type == events.MessageTypeDashboardRendered
	})).Return().Twice()

	svc := newTestDashboardService(t, loader, hub)
	ctx := context.Background()

	view, err := svc.Apply(ctx, domain.Selection{States: []string{"A"}})
	require.NoError(t, err)
	assert.EqualValues(t, 10, view.Metrics.TxCurr)
	assert.Equal(t, "10", kpiValue(view, dashboard.KPITxCurr))
	assert.Equal(t, "80.0%", kpiValue(view, dashboard.KPIVlCoverage))
	assert.Equal(t, "50.0%", kpiValue(view, dashboard.KPIVlSuppression))

	state := svc.State(ctx)
	assert.Equal(t, domain.DashboardRendered, state.Status)
	assert.Same(t, view, state.View)

	view, err = svc.Apply(ctx, domain.Selection{States: []string{"B"}})
	require.NoError(t, err)
	assert.EqualValues(t, 20, view.Metrics.TxCurr)
	assert.Equal(t, "0.0%", kpiValue(view, dashboard.KPIVlCoverage))
	assert.Equal(t, "0.0%", kpiValue(view, dashboard.KPIVlSuppression))

	hub.AssertExpectations(t)
}

func TestDashboardService_ApplyLoadError(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything).Return(nil, dataprocessing.ErrSourceNotFound)
	hub := new(MockBroadcaster)
	svc := newTestDashboardService(t, loader, hub)

	_, err := svc.Apply(context.Background(), domain.Selection{})
	require.ErrorIs(t, err, dataprocessing.ErrSourceNotFound)

	_, err = svc.Options(context.Background(), domain.Selection{})
	require.ErrorIs(t, err, dataprocessing.ErrSourceNotFound)

	assert.Equal(t, domain.DashboardIdle, svc.State(context.Background()).Status)
	hub.AssertNotCalled(t, "Broadcast", mock.Anything)
}

func TestDashboardService_ExportRequiresApply(t *testing.T) {
	svc := newTestDashboardService(t, new(MockLoader), nil)

	_, err := svc.Export(context.Background())
	assert.ErrorIs(t, err, dashboard.ErrNotApplied)

	_, err = svc.Chart(context.Background(), domain.ChartTxCurrByFacility)
	assert.ErrorIs(t, err, dashboard.ErrNotApplied)
}

func TestDashboardService_Export(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything).Return(scenarioDataset(), nil)
	svc := newTestDashboardService(t, loader, nil)
	ctx := context.Background()

	_, err := svc.Apply(ctx, domain.Selection{LGAs: []string{"L2"}})
	require.NoError(t, err)

	data, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "State,LGA,FacilityName,TX_Curr_EMR\nB,L2,F2,20\n", string(data))

	_, err = svc.Apply(ctx, domain.Selection{Facilities: []string{"nowhere"}})
	require.NoError(t, err)
	data, err = svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "State,LGA,FacilityName,TX_Curr_EMR\n", string(data), "empty subset keeps the header")
}

func TestDashboardService_Chart(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything).Return(scenarioDataset(), nil)
	svc := newTestDashboardService(t, loader, nil)
	ctx := context.Background()

	_, err := svc.Apply(ctx, domain.Selection{})
	require.NoError(t, err)

	for _, id := range []string{domain.ChartTxCurrByFacility, domain.ChartVlSuppressionByLGA, domain.ChartVlCoverageByLGA} {
		png, err := svc.Chart(ctx, id)
		require.NoError(t, err, id)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")), id)
	}

	_, err = svc.Chart(ctx, "pie")
	assert.ErrorIs(t, err, dashboard.ErrUnknownChart)
}

func TestDashboardService_DatasetStatus(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Status").Return(dataprocessing.LoadStatus{Attempted: true, Loaded: true, Records: 2})
	svc := newTestDashboardService(t, loader, nil)

	assert.True(t, svc.DatasetStatus().Loaded)
	loader.AssertExpectations(t)
}
