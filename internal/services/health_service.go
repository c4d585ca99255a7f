package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"emrdash/internal/dataprocessing"
	"emrdash/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	loader    DatasetLoader
	clients   ClientCounter
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DatasetHealth is the readiness entry for the loaded dataset.
type DatasetHealth struct {
	ServiceHealth
	dataprocessing.LoadStatus
}

// NewHealthService creates a health service. clients may be nil.
func NewHealthService(loader DatasetLoader, clients ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		loader:    loader,
		clients:   clients,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
}

// ReadinessCheck reports ready once the dataset has loaded successfully.
// It never triggers the load.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services:  make(map[string]interface{}),
	}

	dataset := hs.checkDatasetHealth()
	status.Services["dataset"] = dataset
	if hs.clients != nil {
		status.Services["websocket"] = ServiceHealth{Status: "ready"}
	}

	if dataset.Status != "ready" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "Readiness check failed",
			slog.String("dataset_status", dataset.Status),
			slog.String("message", dataset.Message))
	}
	return status
}

func (hs *HealthService) checkDatasetHealth() DatasetHealth {
	ls := hs.loader.Status()
	health := DatasetHealth{LoadStatus: ls}
	switch {
	case ls.Loaded:
		health.Status = "ready"
	case !ls.Attempted:
		health.Status = "loading"
		health.Message = "dataset has not been loaded yet"
	default:
		health.Status = "error"
		health.Message = ls.Error
	}
	return health
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	runtimeInfo := map[string]interface{}{
		"uptime":     time.Since(hs.startTime).Seconds(),
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
	}
	if hs.clients != nil {
		runtimeInfo["websocket_clients"] = hs.clients.ClientCount()
	}
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime:   runtimeInfo,
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}
