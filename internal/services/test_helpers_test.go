package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"emrdash/internal/dataprocessing"
	"emrdash/pkg/contracts/domain"
	"emrdash/pkg/contracts/events"
)

// MockLoader is a mock for the DatasetLoader interface
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*domain.Dataset)
	return ds, args.Error(1)
}

func (m *MockLoader) Status() dataprocessing.LoadStatus {
	return m.Called().Get(0).(dataprocessing.LoadStatus)
}

// MockBroadcaster is a mock for the Broadcaster interface
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(msg events.WebSocketMessage) {
	m.Called(msg)
}

type fixedClients int

func (c fixedClients) ClientCount() int { return int(c) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scenarioDataset has two states with one facility each. Applying State A
// gives TX_CURR 10, coverage 80.0% and suppression 50.0%.
func scenarioDataset() *domain.Dataset {
	return &domain.Dataset{
		Sheet:   "Conc",
		Columns: []string{"State", "LGA", "FacilityName", "TX_Curr_EMR"},
		Records: []domain.FacilityRecord{
			{State: "A", LGA: "L1", FacilityName: "F1", TxCurr: 10, VlEligible: 5, TxPvlsD: 4, TxPvlsN: 2, Cells: []string{"A", "L1", "F1", "10"}},
			{State: "B", LGA: "L2", FacilityName: "F2", TxCurr: 20, Cells: []string{"B", "L2", "F2", "20"}},
		},
	}
}
